package entity

import (
	"time"

	"github.com/google/uuid"
)

// CommitmentStatus is the lifecycle state of a commitment.
type CommitmentStatus string

const (
	// StatusOpen is the initial state of every commitment.
	StatusOpen CommitmentStatus = "open"
	// StatusCompleted is a terminal outcome.
	StatusCompleted CommitmentStatus = "completed"
	// StatusFailed is a terminal outcome.
	StatusFailed CommitmentStatus = "failed"
)

// Commitment is a user-declared task with a deadline, a self-assessed
// confidence percentage, and a one-time resolvable outcome.
type Commitment struct {
	ID            uuid.UUID        // The unique identifier, generated by the database.
	UserID        uuid.UUID        // Owning user; every commitment belongs to exactly one user.
	Text          string           // Non-empty commitment text.
	ConfidencePct int              // Declared confidence, always within [0,100] at rest.
	Deadline      time.Time        // Declared deadline.
	Status        CommitmentStatus // open, completed or failed.
	OutcomeNotes  *string          // Only set once the commitment leaves the open state.
	CreatedAt     time.Time
}

// IsOpen reports whether the commitment can still be resolved.
func (c *Commitment) IsOpen() bool {
	return c.Status == StatusOpen
}

// ParseOutcome validates a user-submitted outcome status. Only the two
// terminal states are valid resolve targets; open is never a valid outcome.
func ParseOutcome(raw string) (CommitmentStatus, bool) {
	switch CommitmentStatus(raw) {
	case StatusCompleted, StatusFailed:
		return CommitmentStatus(raw), true
	default:
		return "", false
	}
}

// ClampConfidence forces a declared confidence percentage into [0,100].
// Out-of-range input is clamped rather than rejected.
func ClampConfidence(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}

	return pct
}
