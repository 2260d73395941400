// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/planbuddy/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for users, groups and archived
// itineraries. Active plans are never stored; they live in the session.
type Store interface {
	// CreateUser persists a new user. ID and CreatedAt are filled in when empty.
	CreateUser(ctx context.Context, user *models.User) error

	// UpdateUser overwrites the phone and location of an existing user.
	UpdateUser(ctx context.Context, user *models.User) error

	// GetUser returns ErrNotFound when the user does not exist.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// FindUserByName matches case-insensitively. It returns nil, nil when
	// no user has that name.
	FindUserByName(ctx context.Context, name string) (*models.User, error)

	// CreateGroup persists a group and its members in order.
	// Members that do not exist yet are created.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns ErrNotFound when the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	ListGroups(ctx context.Context) ([]*models.Group, error)

	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMembers appends members to the end of the group.
	// Users already in the group are skipped.
	AddGroupMembers(ctx context.Context, groupID string, members []models.User) error

	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// SaveItinerary appends a finalized itinerary to ownerID's archive.
	SaveItinerary(ctx context.Context, ownerID string, it *models.FinalizedItinerary) error

	// ListItineraries returns ownerID's archive in insertion order.
	ListItineraries(ctx context.Context, ownerID string) ([]*models.FinalizedItinerary, error)

	// Close releases any resources held by the store.
	Close() error
}
