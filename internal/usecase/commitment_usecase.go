package usecase

import (
	"context"

	"pledger/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateCommitmentInput carries the raw form values for a new commitment.
// Deadline is parsed and confidence clamped by the usecase, not the caller.
type CreateCommitmentInput struct {
	UserID        uuid.UUID
	Text          string
	ConfidencePct int
	Deadline      string
}

// ResolveCommitmentInput carries the raw form values for resolving an open
// commitment to a terminal status.
type ResolveCommitmentInput struct {
	UserID       uuid.UUID
	CommitmentID uuid.UUID
	Status       string
	OutcomeNotes string
}

// --- Output DTOs ---

// CommitmentOutput returns a single commitment.
type CommitmentOutput struct {
	Commitment *entity.Commitment
}

// CommitmentListOutput returns a user's commitments ordered by deadline.
type CommitmentListOutput struct {
	Commitments []*entity.Commitment
}

// CommitmentUsecase defines the interface for commitment operations. Every
// operation is scoped to the owning user; other users' commitments behave
// as if they do not exist.
type CommitmentUsecase interface {
	Create(ctx context.Context, input *CreateCommitmentInput) (*CommitmentOutput, error)
	ListByUser(ctx context.Context, userID uuid.UUID) (*CommitmentListOutput, error)
	GetOwned(ctx context.Context, userID, commitmentID uuid.UUID) (*CommitmentOutput, error)
	Resolve(ctx context.Context, input *ResolveCommitmentInput) (*CommitmentOutput, error)
}
