// Package repository defines the persistence interfaces consumed by the
// use case layer, keeping it independent of any specific database driver.
package repository

import (
	"context"

	"pledger/internal/domain/entity"
	"pledger/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when a create collides with an existing username.
var ErrUsernameExists = errors.New("username already exists")

// UserRepository is the persistence boundary for User records.
type UserRepository interface {
	// Create persists a new user. The implementation fills in the
	// generated ID and creation timestamp.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by exact, case-sensitive username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
