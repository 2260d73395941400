package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/planbuddy/internal/models"
)

var ErrMissingName = errors.New("name is required")

// Credentials is what a user presents at login.
type Credentials struct {
	Name  string
	Phone string

	// Location is the resolved device position, or the default coordinate.
	Location models.Coordinates
}

// Authenticator resolves login credentials to a user.
// This abstraction allows swapping the identity source without changing the service layer.
type Authenticator interface {
	// Authenticate returns the user for creds and whether it was created.
	Authenticate(ctx context.Context, creds Credentials) (*models.User, bool, error)
}

// UserStore is the part of storage.Store the authenticator needs.
type UserStore interface {
	FindUserByName(ctx context.Context, name string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
}

// NameAuthenticator identifies users by display name.
//
// A returning user, matched without regard to case, keeps their ID and gets
// the new location and, when given, the new phone. Anyone else is created.
type NameAuthenticator struct {
	store  UserStore
	region string
}

// NewNameAuthenticator creates an authenticator that normalizes phone
// numbers in region.
func NewNameAuthenticator(store UserStore, region string) *NameAuthenticator {
	return &NameAuthenticator{store: store, region: region}
}

func (a *NameAuthenticator) Authenticate(ctx context.Context, creds Credentials) (*models.User, bool, error) {
	name := strings.TrimSpace(creds.Name)
	if name == "" {
		return nil, false, ErrMissingName
	}
	phone, err := NormalizePhone(creds.Phone, a.region)
	if err != nil {
		return nil, false, err
	}

	existing, err := a.store.FindUserByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	if existing != nil {
		existing.Location = creds.Location
		if phone != "" {
			existing.Phone = phone
		}
		if err := a.store.UpdateUser(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to update user: %w", err)
		}
		return existing, false, nil
	}

	user := &models.User{Name: name, Phone: phone, Location: creds.Location}
	if err := a.store.CreateUser(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return user, true, nil
}
