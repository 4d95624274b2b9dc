package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"council-motions-backend/internal/agenda"
	"council-motions-backend/internal/model"
	"council-motions-backend/internal/validate"
)

func (s *gormStore) CreateReading(ctx context.Context, r *model.Reading) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		return saveReading(tx, r, true)
	})
}

func (s *gormStore) UpdateReading(ctx context.Context, r *model.Reading) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveReading(tx, r, false)
	})
}

// saveReading recomputes the reading's derived state, validates it
// against its motion and meeting, and persists it. Votable and the
// default priority are always derived fresh from the store so they
// cannot go stale.
func saveReading(tx *gorm.DB, r *model.Reading, create bool) error {
	var motion model.Motion
	if err := tx.Where("id = ?", r.MotionID).First(&motion).Error; err != nil {
		return err
	}
	var meeting model.Meeting
	if err := tx.Where("id = ?", r.MeetingID).First(&meeting).Error; err != nil {
		return err
	}

	if r.Status == "" {
		r.Status = model.ReadingNotRead
	}
	if r.Priority == 0 {
		r.Priority = motion.DefaultPriority()
	}

	priorRead, err := countEarlierReadings(tx, &motion, &meeting, model.ReadingRead, uuid.Nil)
	if err != nil {
		return err
	}
	r.Votable = model.VotableAfter(priorRead, motion.MinReadings)

	priorVoted, err := countEarlierReadings(tx, &motion, &meeting, model.ReadingVoted, r.ID)
	if err != nil {
		return err
	}

	facts := validate.ReadingFacts{
		Motion:     &motion,
		Meeting:    &meeting,
		PriorVoted: priorVoted > 0,
		Now:        time.Now(),
	}
	if err := validate.Reading(r, facts); err != nil {
		return err
	}

	if create {
		return tx.Create(r).Error
	}
	return tx.Save(r).Error
}

// countEarlierReadings counts the motion's readings with the given
// status in meetings sequenced strictly before the given meeting.
// exclude, when set, leaves out that reading so updates do not count
// their own row.
func countEarlierReadings(tx *gorm.DB, motion *model.Motion, meeting *model.Meeting, status model.ReadingStatus, exclude uuid.UUID) (int, error) {
	q := tx.Model(&model.Reading{}).
		Joins("JOIN meetings ON meetings.id = readings.meeting_id").
		Where("readings.motion_id = ? AND readings.status = ?", motion.ID, status).
		Where("meetings.period_number = ? AND meetings.seq < ?", meeting.PeriodNumber, meeting.Seq)
	if exclude != uuid.Nil {
		q = q.Where("readings.id <> ?", exclude)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count earlier readings: %w", err)
	}
	return int(n), nil
}

func (s *gormStore) ReadingByID(ctx context.Context, id uuid.UUID) (*model.Reading, error) {
	var r model.Reading
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *gormStore) ListReadingsForMeeting(ctx context.Context, meetingID uuid.UUID) ([]model.Reading, error) {
	return readingsForAgenda(s.db.WithContext(ctx), meetingID)
}

// ReadingOrdinal derives which reading of its motion this is: only
// successful readings in earlier meetings count, plus one.
func (s *gormStore) ReadingOrdinal(ctx context.Context, r *model.Reading) (int, error) {
	tx := s.db.WithContext(ctx)

	var motion model.Motion
	if err := tx.Where("id = ?", r.MotionID).First(&motion).Error; err != nil {
		return 0, err
	}
	var meeting model.Meeting
	if err := tx.Where("id = ?", r.MeetingID).First(&meeting).Error; err != nil {
		return 0, err
	}

	priorRead, err := countEarlierReadings(tx, &motion, &meeting, model.ReadingRead, uuid.Nil)
	if err != nil {
		return 0, err
	}
	return priorRead + 1, nil
}

// RecordVote marks the reading as voted and moves its motion to
// accepted or rejected. Both writes share one transaction: either the
// vote and the decision land together, or neither does.
func (s *gormStore) RecordVote(ctx context.Context, readingID uuid.UUID, accepted bool) (*model.Motion, error) {
	var motion model.Motion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r model.Reading
		if err := tx.Where("id = ?", readingID).First(&r).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", r.MotionID).First(&motion).Error; err != nil {
			return err
		}
		if motion.Status.Terminal() {
			return ErrMotionDecided
		}

		r.Status = model.ReadingVoted
		if err := saveReading(tx, &r, false); err != nil {
			return err
		}

		decision := model.MotionRejected
		if accepted {
			decision = model.MotionAccepted
		}
		if err := tx.Model(&model.Motion{}).Where("id = ?", motion.ID).Update("status", decision).Error; err != nil {
			return err
		}
		motion.Status = decision
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &motion, nil
}

// --- Agenda ---

// readingsForAgenda returns a meeting's readings in agenda order:
// priority ascending, oldest formal submission first within a tier.
func readingsForAgenda(tx *gorm.DB, meetingID uuid.UUID) ([]model.Reading, error) {
	var readings []model.Reading
	err := tx.
		Joins("JOIN motions ON motions.id = readings.motion_id").
		Where("readings.meeting_id = ?", meetingID).
		Order("readings.priority ASC, motions.formal_submitted_at ASC").
		Preload("Motion").
		Find(&readings).Error
	return readings, err
}

// AgendaForMeeting builds the meeting's agenda blocks from a fresh
// snapshot; calling it again re-queries and yields the same blocks for
// unchanged data.
func (s *gormStore) AgendaForMeeting(ctx context.Context, meetingID uuid.UUID) ([]agenda.Block, error) {
	tx := s.db.WithContext(ctx)

	var meeting model.Meeting
	if err := tx.Where("id = ?", meetingID).First(&meeting).Error; err != nil {
		return nil, err
	}

	readings, err := readingsForAgenda(tx, meetingID)
	if err != nil {
		return nil, err
	}

	var labels []model.AgendaLabel
	if err := tx.Where("meeting_id = ?", meetingID).Find(&labels).Error; err != nil {
		return nil, err
	}
	names := make(map[int]string, len(labels))
	for _, l := range labels {
		names[l.Priority] = l.Name
	}

	return agenda.Build(readings, names), nil
}

// ReplaceAgendaLabels swaps the meeting's full priority→name mapping.
func (s *gormStore) ReplaceAgendaLabels(ctx context.Context, meetingID uuid.UUID, labels map[int]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meeting model.Meeting
		if err := tx.Where("id = ?", meetingID).First(&meeting).Error; err != nil {
			return err
		}

		if err := tx.Where("meeting_id = ?", meetingID).Delete(&model.AgendaLabel{}).Error; err != nil {
			return err
		}
		for prio, name := range labels {
			label := model.AgendaLabel{MeetingID: meetingID, Priority: prio, Name: name}
			if err := tx.Create(&label).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
