package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MotionType tags a motion with the rule set that applies to it.
type MotionType string

const (
	MotionFinance       MotionType = "finance"
	MotionStatuteChange MotionType = "statute_change"
	MotionPosition      MotionType = "position"
	MotionGeneral       MotionType = "general"
)

// MotionStatus is the lifecycle state of a motion. Every state other
// than InDeliberation is terminal.
type MotionStatus string

const (
	MotionInDeliberation      MotionStatus = "in_deliberation"
	MotionAccepted            MotionStatus = "accepted"
	MotionRejected            MotionStatus = "rejected"
	MotionWithdrawn           MotionStatus = "withdrawn"
	MotionNotHandled          MotionStatus = "not_handled"
	MotionRejectedByPresidium MotionStatus = "rejected_by_presidium"
)

// Terminal reports whether no further transitions are allowed from s.
func (s MotionStatus) Terminal() bool {
	return s != MotionInDeliberation && s != ""
}

// Valid reports whether s is a known motion status.
func (s MotionStatus) Valid() bool {
	switch s {
	case MotionInDeliberation, MotionAccepted, MotionRejected,
		MotionWithdrawn, MotionNotHandled, MotionRejectedByPresidium:
		return true
	}
	return false
}

// Motion is a formal proposal submitted for decision. Its sequence
// number is scoped to the owning period and assigned by the store.
type Motion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	PeriodNumber int       `gorm:"not null;uniqueIndex:idx_motions_period_seq"`
	Seq          int       `gorm:"not null;uniqueIndex:idx_motions_period_seq"`

	Title         string `gorm:"size:300;not null"`
	Text          string `gorm:"not null"`
	Justification string
	Requesters    string `gorm:"size:500"`
	// Contact data is kept for follow-up questions and automatic
	// updates; it is never exposed on public read paths.
	ContactEmail  string `gorm:"size:254"`
	ContactPerson string `gorm:"size:100"`

	Type        MotionType   `gorm:"size:32;not null;default:general"`
	MinReadings int          `gorm:"not null;default:1"`
	Status      MotionStatus `gorm:"size:32;not null;default:in_deliberation;index"`

	// SubmittedAt is set by the system clock; FormalSubmittedAt is the
	// formally declared submission time that drives deadlines and the
	// agenda tie-break.
	SubmittedAt       time.Time `gorm:"autoCreateTime"`
	FormalSubmittedAt time.Time `gorm:"not null"`

	// Finance motions only.
	Amount     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	BudgetLine string           `gorm:"size:10"`

	// Statute-change motions only.
	ChangesStatute bool   `gorm:"not null;default:false"`
	ComparisonKey  string `gorm:"size:512"`

	AttachmentKey string `gorm:"size:512"`

	NotesPublic   string
	NotesInternal string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Period        Period              `gorm:"foreignKey:PeriodNumber;references:Number;constraint:OnDelete:CASCADE"`
	SubMotions    []SubMotion         `gorm:"foreignKey:MotionID;constraint:OnDelete:CASCADE"`
	Readings      []Reading           `gorm:"foreignKey:MotionID;constraint:OnDelete:CASCADE"`
	Subscriptions []*PushSubscription `gorm:"many2many:subscription_motion_mapping;"`
}

// IsFinance reports whether the finance rule set applies.
func (m *Motion) IsFinance() bool { return m.Type == MotionFinance }

// IsStatuteChange reports whether the statute-change rule set applies.
func (m *Motion) IsStatuteChange() bool { return m.Type == MotionStatuteChange }

// DefaultPriority is the agenda priority used when a reading does not
// set one explicitly. Lower values appear earlier on generated agendas.
func (m *Motion) DefaultPriority() int {
	if m.ChangesStatute {
		return 300
	}
	switch m.Type {
	case MotionStatuteChange:
		return 400
	case MotionFinance:
		return 500
	default:
		return 700
	}
}
