package postgres

import (
	"context"

	"pledger/internal/domain/entity"
	domainerrors "pledger/internal/domain/errors"
	"pledger/internal/domain/repository"
	"pledger/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// commitmentRepository implements the domain.CommitmentRepository interface using GORM.
type commitmentRepository struct {
	db *gorm.DB
}

// NewCommitmentRepository is the constructor for commitmentRepository.
func NewCommitmentRepository(db *gorm.DB) repository.CommitmentRepository {
	return &commitmentRepository{db: db}
}

// Create persists a new open commitment owned by the given user.
func (repo *commitmentRepository) Create(ctx context.Context, commitment *entity.Commitment) error {
	commitmentM := fromCommitmentDomain(commitment)

	if err := repo.db.WithContext(ctx).Create(commitmentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("commitment owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required commitment information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create commitment")
	}

	commitment.ID = commitmentM.ID
	commitment.CreatedAt = commitmentM.CreatedAt

	return nil
}

// FindOwned retrieves a commitment by id restricted to the owning user.
// A commitment belonging to another user is reported exactly as a missing one.
func (repo *commitmentRepository) FindOwned(ctx context.Context, userID, id uuid.UUID) (*entity.Commitment, error) {
	var commitmentM model.CommitmentModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&commitmentM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommitmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find commitment")
	}

	return toCommitmentDomain(&commitmentM), nil
}

// ListByUser returns all commitments owned by userID, ascending by deadline.
func (repo *commitmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Commitment, error) {
	var commitmentMs []model.CommitmentModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deadline ASC").
		Find(&commitmentMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list commitments")
	}

	commitments := make([]*entity.Commitment, 0, len(commitmentMs))
	for i := range commitmentMs {
		commitments = append(commitments, toCommitmentDomain(&commitmentMs[i]))
	}

	return commitments, nil
}

// UpdateOutcome writes status and outcome notes in one statement so a partial
// update is never observable.
func (repo *commitmentRepository) UpdateOutcome(ctx context.Context, commitment *entity.Commitment) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CommitmentModel{}).
		Where("id = ? AND user_id = ?", commitment.ID, commitment.UserID).
		Updates(map[string]any{
			"status":        string(commitment.Status),
			"outcome_notes": commitment.OutcomeNotes,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update commitment outcome")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommitmentNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCommitmentDomain(data *model.CommitmentModel) *entity.Commitment {
	if data == nil {
		return nil
	}

	return &entity.Commitment{
		ID:            data.ID,
		UserID:        data.UserID,
		Text:          data.Text,
		ConfidencePct: data.ConfidencePct,
		Deadline:      data.Deadline,
		Status:        entity.CommitmentStatus(data.Status),
		OutcomeNotes:  data.OutcomeNotes,
		CreatedAt:     data.CreatedAt,
	}
}

func fromCommitmentDomain(data *entity.Commitment) *model.CommitmentModel {
	if data == nil {
		return nil
	}

	return &model.CommitmentModel{
		ID:            data.ID,
		UserID:        data.UserID,
		Text:          data.Text,
		ConfidencePct: data.ConfidencePct,
		Deadline:      data.Deadline,
		Status:        string(data.Status),
		OutcomeNotes:  data.OutcomeNotes,
	}
}
