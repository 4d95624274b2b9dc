package model

import (
	"time"

	"github.com/google/uuid"
)

// ReadingStatus tracks how a motion's treatment in one meeting went.
type ReadingStatus string

const (
	// ReadingSuggested marks a reading proposed by the software.
	ReadingSuggested ReadingStatus = "suggested"
	// ReadingNotRead is the default before the meeting handles the item.
	ReadingNotRead ReadingStatus = "not_read"
	// ReadingRead means the reading took place successfully.
	ReadingRead ReadingStatus = "read"
	// ReadingPostponed means the item was postponed by decision.
	ReadingPostponed ReadingStatus = "postponed"
	// ReadingPostponedSessionEnd means the meeting ended first.
	ReadingPostponedSessionEnd ReadingStatus = "postponed_session_end"
	// ReadingPostponedNoQuorum means the meeting lost its quorum.
	ReadingPostponedNoQuorum ReadingStatus = "postponed_no_quorum"
	// ReadingVoted means the motion was put to a vote in this reading.
	ReadingVoted ReadingStatus = "voted"
	// ReadingTabled marks an item tabled for a later meeting.
	ReadingTabled ReadingStatus = "tabled"
)

// Valid reports whether s is a known reading status.
func (s ReadingStatus) Valid() bool {
	return s.Pending() || s.Concluded()
}

// Pending reports whether s is legal for a meeting that has not started.
func (s ReadingStatus) Pending() bool {
	switch s {
	case ReadingSuggested, ReadingNotRead, ReadingTabled:
		return true
	}
	return false
}

// Concluded reports whether s is legal for a meeting that has ended.
func (s ReadingStatus) Concluded() bool {
	switch s {
	case ReadingRead, ReadingPostponed, ReadingPostponedSessionEnd,
		ReadingPostponedNoQuorum, ReadingVoted:
		return true
	}
	return false
}

// Reading is one motion's treatment within one meeting. The
// (motion, meeting) pair is unique.
type Reading struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MotionID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_readings_motion_meeting"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_readings_motion_meeting"`

	Minutes string

	// Votable is derived on every save, never set by callers.
	Votable bool `gorm:"not null;default:false"`

	UrgencyRequested bool          `gorm:"not null;default:false"`
	Status           ReadingStatus `gorm:"size:32;not null;default:not_read"`

	// Priority orders generated agendas, lower first. Zero means
	// "use the motion type's default".
	Priority int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Motion  Motion  `gorm:"foreignKey:MotionID;constraint:OnDelete:CASCADE"`
	Meeting Meeting `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
}

// VotableAfter reports whether a reading may be voted on given how many
// earlier readings of the motion were read successfully.
func VotableAfter(priorSuccessful, minReadings int) bool {
	return priorSuccessful >= minReadings-1
}
