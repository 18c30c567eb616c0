package repository

import (
	"context"

	"pledger/internal/domain/entity"
	"pledger/internal/errors"

	"github.com/google/uuid"
)

// ErrCommitmentNotFound is returned when no commitment matches the lookup.
// Implementations must return it both for nonexistent ids and for ids owned
// by a different user, so the two cases are indistinguishable upstream.
var ErrCommitmentNotFound = errors.New("commitment not found")

// CommitmentRepository is the persistence boundary for Commitment records.
// Every read is scoped by the owning user id.
type CommitmentRepository interface {
	// Create persists a new open commitment. The implementation fills in
	// the generated ID and creation timestamp.
	Create(ctx context.Context, commitment *entity.Commitment) error

	// FindOwned retrieves a commitment by id, restricted to the given owner.
	FindOwned(ctx context.Context, userID, id uuid.UUID) (*entity.Commitment, error)

	// ListByUser returns all commitments owned by userID, ascending by deadline.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Commitment, error)

	// UpdateOutcome writes the resolved status and outcome notes in a single
	// statement so a partial update is never observable.
	UpdateOutcome(ctx context.Context, commitment *entity.Commitment) error
}
