package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/storage"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	if err := insertUser(ctx, s.db, user, false); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// insertUser writes user. With ignoreExisting a user whose ID is already
// present is left untouched.
func insertUser(ctx context.Context, db execer, user *models.User, ignoreExisting bool) error {
	verb := "INSERT"
	if ignoreExisting {
		verb = "INSERT OR IGNORE"
	}
	query := verb + ` INTO users (id, name, phone, lat, lng, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.Location.Lat,
		user.Location.Lng,
		user.CreatedAt,
	)
	return err
}

// UpdateUser stores the merged phone and location of an existing user.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET phone = ?, lat = ?, lng = ? WHERE id = ?",
		user.Phone, user.Location.Lat, user.Location.Lng, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", user.ID, storage.ErrNotFound)
	}
	return nil
}

const selectUser = `SELECT id, name, phone, lat, lng, created_at FROM users`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.Location.Lat,
		&user.Location.Lng,
		&user.CreatedAt,
	)
	return user, err
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, selectUser+" WHERE id = ?", userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// FindUserByName retrieves the oldest user with the given name, ignoring case.
func (s *SQLiteStore) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		selectUser+" WHERE name = ? COLLATE NOCASE ORDER BY created_at, id LIMIT 1",
		name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by name: %w", err)
	}
	return user, nil
}
