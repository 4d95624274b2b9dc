package model

import "time"

// MaxPeriodNumber is the highest legislative period number the council
// statute allows.
const MaxPeriodNumber = 1000

// Period represents a legislative period. Meetings and motions belong to
// exactly one period and are removed with it.
type Period struct {
	Number    int       `gorm:"primaryKey"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Meetings []Meeting `gorm:"foreignKey:PeriodNumber;references:Number;constraint:OnDelete:CASCADE"`
	Motions  []Motion  `gorm:"foreignKey:PeriodNumber;references:Number;constraint:OnDelete:CASCADE"`
}

// Contains reports whether t's calendar date falls within the period's
// [start, end] range. Only the date matters, not the time of day.
func (p *Period) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(dateOf(p.StartDate)) && !d.After(dateOf(p.EndDate))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
