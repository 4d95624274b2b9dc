package model

import (
	"time"

	"github.com/google/uuid"
)

// Meeting is a single council session. Its sequence number is scoped to
// the owning period and assigned by the store.
type Meeting struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	PeriodNumber int       `gorm:"not null;uniqueIndex:idx_meetings_period_seq"`
	Seq          int       `gorm:"not null;uniqueIndex:idx_meetings_period_seq"`
	Start        time.Time `gorm:"not null"`
	End          *time.Time
	Special      bool   `gorm:"not null;default:false"`
	Location     string `gorm:"size:1000"`
	Notes        string `gorm:"size:1000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	Period Period `gorm:"foreignKey:PeriodNumber;references:Number;constraint:OnDelete:CASCADE"`
}

// IsFuture reports whether the meeting has not started yet.
func (m *Meeting) IsFuture(now time.Time) bool {
	return m.Start.After(now)
}

// IsPast reports whether the meeting is over. Without a recorded end time
// a meeting counts as past once the day it started on is over.
func (m *Meeting) IsPast(now time.Time) bool {
	if m.End != nil {
		return m.End.Before(now)
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return m.Start.Before(midnight)
}

// IsRunning reports whether the meeting is currently in session.
func (m *Meeting) IsRunning(now time.Time) bool {
	return !m.IsFuture(now) && !m.IsPast(now)
}
