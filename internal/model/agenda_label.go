package model

import "github.com/google/uuid"

// AgendaLabel names a priority tier on one meeting's generated agenda.
// Tiers without a label collapse into the preceding agenda block.
type AgendaLabel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_agenda_labels_meeting_prio"`
	Priority  int       `gorm:"not null;uniqueIndex:idx_agenda_labels_meeting_prio"`
	Name      string    `gorm:"size:200;not null"`

	// Associations
	Meeting Meeting `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
}
