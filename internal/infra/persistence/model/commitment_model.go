package model

import (
	"time"

	"github.com/google/uuid"
)

// CommitmentModel mirrors the 'commitments' table. The status column and the
// confidence range are also guarded by database check constraints.
type CommitmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Text          string    `gorm:"column:commitment_text;type:text;not null"`
	ConfidencePct int       `gorm:"column:declared_confidence_pct;not null"`
	Deadline      time.Time `gorm:"not null;index"`
	Status        string    `gorm:"type:varchar(16);not null;default:open"`
	OutcomeNotes  *string   `gorm:"type:text"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommitmentModel) TableName() string {
	return "commitments"
}
