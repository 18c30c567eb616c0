// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns commitments. The username is the login
// identifier and is matched case-sensitively.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, generated by the database.
	Username     string    // Unique, non-empty, case-sensitive login name.
	PasswordHash string    // Salted bcrypt hash; opaque outside the hasher.
	CreatedAt    time.Time // Timestamp of when this account was created.
}
