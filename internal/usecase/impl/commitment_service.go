package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "pledger/internal/delivery/context"
	"pledger/internal/domain/entity"
	domainerrors "pledger/internal/domain/errors"
	"pledger/internal/domain/repository"
	"pledger/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deadlineLayouts are the accepted ISO-8601 shapes for the deadline form
// field, tried in order. Browsers' datetime-local inputs omit seconds.
var deadlineLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// commitmentService implements the CommitmentUsecase interface.
type commitmentService struct {
	txManager      repository.TransactionManager
	commitmentRepo repository.CommitmentRepository
	logger         *slog.Logger
}

// CommitmentServiceParams holds dependencies for commitmentService, injected by Fx.
type CommitmentServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CommitmentRepo repository.CommitmentRepository
	Logger         *slog.Logger
}

// NewCommitmentService is the constructor for commitmentService.
func NewCommitmentService(params CommitmentServiceParams) usecase.CommitmentUsecase {
	return &commitmentService{
		txManager:      params.TxManager,
		commitmentRepo: params.CommitmentRepo,
		logger:         params.Logger,
	}
}

func (srv *commitmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create validates the raw form values and persists a new open commitment.
// Confidence is clamped into [0,100] rather than rejected.
func (srv *commitmentService) Create(ctx context.Context, input *usecase.CreateCommitmentInput) (*usecase.CommitmentOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.Wrap(domainerrors.ErrCommitmentTextRequired, "create rejected")
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidDeadline, "create rejected")
	}

	newCommitment := &entity.Commitment{
		UserID:        input.UserID,
		Text:          text,
		ConfidencePct: entity.ClampConfidence(input.ConfidencePct),
		Deadline:      deadline,
		Status:        entity.StatusOpen,
	}

	// Single insert, no transaction needed.
	if err := srv.commitmentRepo.Create(ctx, newCommitment); err != nil {
		srv.log(ctx).Error("Failed to create commitment", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create commitment")
	}

	srv.log(ctx).Debug("Commitment created", slog.Any("userID", input.UserID), slog.Any("commitmentID", newCommitment.ID))

	return &usecase.CommitmentOutput{Commitment: newCommitment}, nil
}

// ListByUser returns the user's commitments ordered by deadline ascending.
func (srv *commitmentService) ListByUser(ctx context.Context, userID uuid.UUID) (*usecase.CommitmentListOutput, error) {
	commitments, err := srv.commitmentRepo.ListByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list commitments", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list commitments")
	}

	return &usecase.CommitmentListOutput{Commitments: commitments}, nil
}

// GetOwned fetches a single commitment scoped to its owner. A commitment
// belonging to another user is reported as not found.
func (srv *commitmentService) GetOwned(ctx context.Context, userID, commitmentID uuid.UUID) (*usecase.CommitmentOutput, error) {
	commitment, err := srv.commitmentRepo.FindOwned(ctx, userID, commitmentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommitmentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCommitmentNotFound, "commitment lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find commitment")
	}

	return &usecase.CommitmentOutput{Commitment: commitment}, nil
}

// Resolve moves an open commitment to a terminal status exactly once. The
// open check runs before the submitted status is validated, so resolving an
// already-resolved commitment reports the state problem, not the input one.
func (srv *commitmentService) Resolve(ctx context.Context, input *usecase.ResolveCommitmentInput) (*usecase.CommitmentOutput, error) {
	srv.log(ctx).Info("Resolving commitment", slog.Any("userID", input.UserID), slog.Any("commitmentID", input.CommitmentID))

	var resolved *entity.Commitment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		commitmentRepo := repoFactory.CommitmentRepo()

		commitment, err := commitmentRepo.FindOwned(ctx, input.UserID, input.CommitmentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommitmentNotFound) {
				return errors.Wrap(domainerrors.ErrCommitmentNotFound, "resolve rejected")
			}

			return errors.Wrap(err, "failed to find commitment for resolve")
		}

		if !commitment.IsOpen() {
			return errors.Wrap(domainerrors.ErrCommitmentNotOpen, "resolve rejected")
		}

		outcome, ok := entity.ParseOutcome(input.Status)
		if !ok {
			return errors.Wrap(domainerrors.ErrInvalidOutcomeStatus, "resolve rejected")
		}

		commitment.Status = outcome
		commitment.OutcomeNotes = normalizeOutcomeNotes(input.OutcomeNotes)

		if err := commitmentRepo.UpdateOutcome(ctx, commitment); err != nil {
			return errors.Wrap(err, "failed to update commitment outcome")
		}
		resolved = commitment

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Resolve failed", slog.Any("commitmentID", input.CommitmentID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute resolve transaction")
	}

	srv.log(ctx).Debug("Commitment resolved", slog.Any("commitmentID", resolved.ID), slog.Any("status", resolved.Status))

	return &usecase.CommitmentOutput{Commitment: resolved}, nil
}

// parseDeadline tries each accepted layout against the raw form value.
func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range deadlineLayouts {
		if deadline, err := time.Parse(layout, raw); err == nil {
			return deadline, nil
		}
	}

	return time.Time{}, errors.Errorf("unrecognized deadline %q", raw)
}

// normalizeOutcomeNotes trims notes and stores blank input as NULL.
func normalizeOutcomeNotes(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
