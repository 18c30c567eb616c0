package service

import (
	"time"

	"github.com/google/uuid"
)

// SessionTokenService issues and verifies the signed cookie value that carries
// a session. The cookie embeds an opaque random token plus the user id; the
// server stores only a hash of the token, and session validity is always
// re-checked against the session store.
type SessionTokenService interface {
	// Issue creates a new signed cookie value for the user. It returns the
	// cookie value and the token hash to persist server-side.
	Issue(userID uuid.UUID, ttl time.Duration) (cookieValue string, tokenHash string, err error)

	// Verify checks the cookie signature and expiry, returning the embedded
	// user id and the token hash for the session lookup.
	Verify(cookieValue string) (userID uuid.UUID, tokenHash string, err error)
}
