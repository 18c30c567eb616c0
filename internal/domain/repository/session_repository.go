package repository

import (
	"context"

	"pledger/internal/domain/entity"
	"pledger/internal/errors"
)

// ErrSessionNotFound is returned when no session matches the token hash.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned when a session exists but is past its expiry.
var ErrSessionExpired = errors.New("session expired")

// SessionRepository is the persistence boundary for server-side sessions.
// Lookups are read-only and safe to run concurrently from independent requests.
type SessionRepository interface {
	// Create persists a new session bound to a user.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a live session by its token hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash removes a session. Deleting a session that does not
	// exist is a no-op, which keeps logout idempotent.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}
