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

// MotionFilter narrows motion listings. Zero values match everything.
type MotionFilter struct {
	Status model.MotionStatus
	Type   model.MotionType
}

// Store defines all database operations. Every mutating call runs
// validation, sequence allocation, and the write in one transaction, so
// a failed save leaves storage untouched.
type Store interface {
	DB() *gorm.DB

	CreatePeriod(ctx context.Context, p *model.Period) error
	LatestPeriod(ctx context.Context) (*model.Period, error)
	PeriodByNumber(ctx context.Context, number int) (*model.Period, error)
	ListPeriods(ctx context.Context) ([]model.Period, error)

	CreateMeeting(ctx context.Context, m *model.Meeting) error
	UpdateMeeting(ctx context.Context, m *model.Meeting) error
	MeetingByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	MeetingByNumber(ctx context.Context, period, seq int) (*model.Meeting, error)
	ListMeetings(ctx context.Context, period int) ([]model.Meeting, error)

	CreateMotion(ctx context.Context, m *model.Motion) error
	UpdateMotion(ctx context.Context, m *model.Motion) error
	MotionByID(ctx context.Context, id uuid.UUID) (*model.Motion, error)
	MotionByNumber(ctx context.Context, period, seq int) (*model.Motion, error)
	ListMotions(ctx context.Context, period int, f MotionFilter) ([]model.Motion, error)
	SetMotionStatus(ctx context.Context, id uuid.UUID, status model.MotionStatus) (*model.Motion, error)

	CreateSubMotion(ctx context.Context, sm *model.SubMotion) error
	UpdateSubMotion(ctx context.Context, sm *model.SubMotion) error
	ListSubMotions(ctx context.Context, motionID uuid.UUID) ([]model.SubMotion, error)

	CreateReading(ctx context.Context, r *model.Reading) error
	UpdateReading(ctx context.Context, r *model.Reading) error
	ReadingByID(ctx context.Context, id uuid.UUID) (*model.Reading, error)
	ListReadingsForMeeting(ctx context.Context, meetingID uuid.UUID) ([]model.Reading, error)
	ReadingOrdinal(ctx context.Context, r *model.Reading) (int, error)
	RecordVote(ctx context.Context, readingID uuid.UUID, accepted bool) (*model.Motion, error)

	AgendaForMeeting(ctx context.Context, meetingID uuid.UUID) ([]agenda.Block, error)
	ReplaceAgendaLabels(ctx context.Context, meetingID uuid.UUID, labels map[int]string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Periods ---

func (s *gormStore) CreatePeriod(ctx context.Context, p *model.Period) error {
	if err := validate.Period(p); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(p).Error
}

// resolvePeriod loads the period for an explicit number, or the latest
// period when the caller passed zero. With no period at all the system
// is unusable for writes, hence ErrNoPeriod.
func resolvePeriod(tx *gorm.DB, number int) (*model.Period, error) {
	var p model.Period
	if number == 0 {
		if err := tx.Order("number DESC").First(&p).Error; err != nil {
			if IsNotFound(err) {
				return nil, ErrNoPeriod
			}
			return nil, err
		}
		return &p, nil
	}
	if err := tx.Where("number = ?", number).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) LatestPeriod(ctx context.Context) (*model.Period, error) {
	return resolvePeriod(s.db.WithContext(ctx), 0)
}

func (s *gormStore) PeriodByNumber(ctx context.Context, number int) (*model.Period, error) {
	return resolvePeriod(s.db.WithContext(ctx), number)
}

func (s *gormStore) ListPeriods(ctx context.Context) ([]model.Period, error) {
	var periods []model.Period
	err := s.db.WithContext(ctx).Order("number DESC").Find(&periods).Error
	return periods, err
}

// --- Meetings ---

func (s *gormStore) CreateMeeting(ctx context.Context, m *model.Meeting) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		period, err := resolvePeriod(tx, m.PeriodNumber)
		if err != nil {
			return err
		}
		m.PeriodNumber = period.Number

		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.Seq == 0 {
			seq, err := nextSeq(tx, &model.Meeting{}, "period_number = ?", period.Number)
			if err != nil {
				return err
			}
			m.Seq = seq
		}

		if err := validate.Meeting(m, period); err != nil {
			return err
		}
		return tx.Create(m).Error
	})
}

func (s *gormStore) UpdateMeeting(ctx context.Context, m *model.Meeting) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		period, err := resolvePeriod(tx, m.PeriodNumber)
		if err != nil {
			return err
		}
		if err := validate.Meeting(m, period); err != nil {
			return err
		}
		return tx.Save(m).Error
	})
}

func (s *gormStore) MeetingByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	var m model.Meeting
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) MeetingByNumber(ctx context.Context, period, seq int) (*model.Meeting, error) {
	var m model.Meeting
	err := s.db.WithContext(ctx).
		Where("period_number = ? AND seq = ?", period, seq).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) ListMeetings(ctx context.Context, period int) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := s.db.WithContext(ctx).
		Where("period_number = ?", period).
		Order("seq DESC").
		Find(&meetings).Error
	return meetings, err
}

// --- Motions ---

func (s *gormStore) CreateMotion(ctx context.Context, m *model.Motion) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		period, err := resolvePeriod(tx, m.PeriodNumber)
		if err != nil {
			return err
		}
		m.PeriodNumber = period.Number

		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		applyMotionDefaults(m, time.Now())
		if m.Seq == 0 {
			seq, err := nextSeq(tx, &model.Motion{}, "period_number = ?", period.Number)
			if err != nil {
				return err
			}
			m.Seq = seq
		}

		if err := validate.Motion(m, period); err != nil {
			return err
		}
		return tx.Create(m).Error
	})
}

func (s *gormStore) UpdateMotion(ctx context.Context, m *model.Motion) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		period, err := resolvePeriod(tx, m.PeriodNumber)
		if err != nil {
			return err
		}
		if err := validate.Motion(m, period); err != nil {
			return err
		}
		return tx.Save(m).Error
	})
}

func applyMotionDefaults(m *model.Motion, now time.Time) {
	if m.Type == "" {
		m.Type = model.MotionGeneral
	}
	if m.Status == "" {
		m.Status = model.MotionInDeliberation
	}
	if m.MinReadings == 0 {
		m.MinReadings = 1
	}
	if m.FormalSubmittedAt.IsZero() {
		m.FormalSubmittedAt = now
	}
}

func (s *gormStore) MotionByID(ctx context.Context, id uuid.UUID) (*model.Motion, error) {
	var m model.Motion
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) MotionByNumber(ctx context.Context, period, seq int) (*model.Motion, error) {
	var m model.Motion
	err := s.db.WithContext(ctx).
		Where("period_number = ? AND seq = ?", period, seq).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) ListMotions(ctx context.Context, period int, f MotionFilter) ([]model.Motion, error) {
	q := s.db.WithContext(ctx).Where("period_number = ?", period)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	var motions []model.Motion
	err := q.Order("seq DESC").Find(&motions).Error
	return motions, err
}

// SetMotionStatus moves a motion from deliberation into one of the
// terminal states that are not tied to a vote (withdrawn, not handled,
// rejected by presidium).
func (s *gormStore) SetMotionStatus(ctx context.Context, id uuid.UUID, status model.MotionStatus) (*model.Motion, error) {
	if !status.Valid() || !status.Terminal() {
		return nil, validate.Errors{"status": fmt.Sprintf("%q is not a terminal motion status", status)}
	}

	var motion model.Motion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&motion).Error; err != nil {
			return err
		}
		if motion.Status.Terminal() {
			return ErrMotionDecided
		}
		motion.Status = status
		return tx.Model(&model.Motion{}).Where("id = ?", id).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &motion, nil
}

// --- SubMotions ---

func (s *gormStore) CreateSubMotion(ctx context.Context, sm *model.SubMotion) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent model.Motion
		if err := tx.Where("id = ?", sm.MotionID).First(&parent).Error; err != nil {
			return err
		}

		if sm.ID == uuid.Nil {
			sm.ID = uuid.New()
		}
		if sm.Status == "" {
			sm.Status = model.MotionInDeliberation
		}
		if sm.FormalSubmittedAt.IsZero() {
			sm.FormalSubmittedAt = time.Now()
		}
		if sm.Seq == 0 {
			seq, err := nextSeq(tx, &model.SubMotion{}, "motion_id = ?", sm.MotionID)
			if err != nil {
				return err
			}
			sm.Seq = seq
		}

		if err := validate.SubMotion(sm, &parent); err != nil {
			return err
		}
		return tx.Create(sm).Error
	})
}

func (s *gormStore) UpdateSubMotion(ctx context.Context, sm *model.SubMotion) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent model.Motion
		if err := tx.Where("id = ?", sm.MotionID).First(&parent).Error; err != nil {
			return err
		}
		// Edits re-check the parent's status, not just creation.
		if err := validate.SubMotion(sm, &parent); err != nil {
			return err
		}
		return tx.Save(sm).Error
	})
}

func (s *gormStore) ListSubMotions(ctx context.Context, motionID uuid.UUID) ([]model.SubMotion, error) {
	var subs []model.SubMotion
	err := s.db.WithContext(ctx).
		Where("motion_id = ?", motionID).
		Order("seq ASC").
		Find(&subs).Error
	return subs, err
}
