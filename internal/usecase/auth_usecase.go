// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"pledger/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create a new account.
type SignupInput struct {
	Username string
	Password string
}

// LoginInput defines the data required to authenticate an existing account.
type LoginInput struct {
	Username string
	Password string
}

// LogoutInput carries the session cookie value to invalidate.
type LogoutInput struct {
	SessionToken string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with the session
// cookie value the delivery layer must set on the response.
type AuthOutput struct {
	User          *entity.User
	SessionToken  string
	SessionExpiry time.Time
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	// CurrentUser resolves a session cookie value to its user. A missing,
	// malformed, or expired session yields (nil, nil) so callers can
	// redirect to the login page without branching on error kinds.
	CurrentUser(ctx context.Context, sessionToken string) (*entity.User, error)
}
