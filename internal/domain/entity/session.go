package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session associates an opaque client-held token with an authenticated user.
// Only a hash of the token is stored; the raw token lives in the signed
// browser cookie.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
