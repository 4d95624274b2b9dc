package model

import (
	"time"

	"github.com/google/uuid"
)

// SubMotion is an amendment to a parent motion. Its sequence number is
// scoped to the parent motion, and it may only be created or edited
// while the parent is still in deliberation.
type SubMotion struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	MotionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submotions_motion_seq"`
	Seq      int       `gorm:"not null;uniqueIndex:idx_submotions_motion_seq"`

	Title         string `gorm:"size:300;not null"`
	Text          string `gorm:"not null"`
	Justification string
	Requesters    string `gorm:"size:500"`
	ContactEmail  string `gorm:"size:254"`
	ContactPerson string `gorm:"size:100"`

	Status MotionStatus `gorm:"size:32;not null;default:in_deliberation"`

	SubmittedAt       time.Time `gorm:"autoCreateTime"`
	FormalSubmittedAt time.Time `gorm:"not null"`

	AttachmentKey string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Motion Motion `gorm:"foreignKey:MotionID;constraint:OnDelete:CASCADE"`
}
