package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"council-motions-backend/internal/model"
)

var testPeriod = model.Period{
	Number:    14,
	StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	EndDate:   time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
}

func baseMotion(typ model.MotionType) model.Motion {
	return model.Motion{
		PeriodNumber:      testPeriod.Number,
		Title:             "Test motion",
		Text:              "Resolved, that...",
		Type:              typ,
		MinReadings:       1,
		Status:            model.MotionInDeliberation,
		FormalSubmittedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMotionTypeRules(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(m *model.Motion)
		badFields []string
	}{
		{
			name:   "general motion passes",
			mutate: func(m *model.Motion) {},
		},
		{
			name: "finance motion with amount and budget line passes",
			mutate: func(m *model.Motion) {
				m.Type = model.MotionFinance
				m.Amount = amount("149.90")
				m.BudgetLine = "HH-12"
			},
		},
		{
			name: "finance motion without amount",
			mutate: func(m *model.Motion) {
				m.Type = model.MotionFinance
				m.BudgetLine = "HH-12"
			},
			badFields: []string{"amount"},
		},
		{
			name: "finance motion with zero amount",
			mutate: func(m *model.Motion) {
				m.Type = model.MotionFinance
				m.Amount = amount("0")
				m.BudgetLine = "HH-12"
			},
			badFields: []string{"amount"},
		},
		{
			name: "finance motion without budget line",
			mutate: func(m *model.Motion) {
				m.Type = model.MotionFinance
				m.Amount = amount("80")
			},
			badFields: []string{"budget_line"},
		},
		{
			name: "non-finance motion with amount and budget line",
			mutate: func(m *model.Motion) {
				m.Type = model.MotionPosition
				m.Amount = amount("80")
				m.BudgetLine = "HH-12"
			},
			badFields: []string{"amount", "budget_line"},
		},
		{
			name: "statute flag on non statute-change motion",
			mutate: func(m *model.Motion) {
				m.Type = model.MotionGeneral
				m.ChangesStatute = true
			},
			badFields: []string{"changes_statute"},
		},
		{
			name: "comparison document on non statute-change motion",
			mutate: func(m *model.Motion) {
				m.ComparisonKey = "abc/comparison/diff.pdf"
			},
			badFields: []string{"comparison"},
		},
		{
			name: "statute-change motion with flag and comparison passes",
			mutate: func(m *model.Motion) {
				m.Type = model.MotionStatuteChange
				m.ChangesStatute = true
				m.ComparisonKey = "abc/comparison/diff.pdf"
			},
		},
		{
			name: "formal submission outside the period",
			mutate: func(m *model.Motion) {
				m.FormalSubmittedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			},
			badFields: []string{"formal_submitted_at"},
		},
		{
			name: "unknown type",
			mutate: func(m *model.Motion) {
				m.Type = "budgetary"
			},
			badFields: []string{"type"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := baseMotion(model.MotionGeneral)
			tc.mutate(&m)

			err := Motion(&m, &testPeriod)
			if len(tc.badFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			errs, ok := AsErrors(err)
			require.True(t, ok)
			for _, f := range tc.badFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestMotionCollectsAllViolations(t *testing.T) {
	m := baseMotion(model.MotionFinance)
	m.Title = ""
	m.MinReadings = 0
	m.FormalSubmittedAt = time.Time{}

	err := Motion(&m, &testPeriod)
	require.Error(t, err)
	errs, ok := AsErrors(err)
	require.True(t, ok)

	// One save attempt reports every broken field at once.
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "min_readings")
	assert.Contains(t, errs, "formal_submitted_at")
	assert.Contains(t, errs, "amount")
	assert.Contains(t, errs, "budget_line")
}

func TestSubMotionRequiresParentInDeliberation(t *testing.T) {
	sm := model.SubMotion{Title: "Amendment 1", Text: "Replace §2"}

	for _, status := range []model.MotionStatus{
		model.MotionAccepted, model.MotionRejected, model.MotionWithdrawn,
		model.MotionNotHandled, model.MotionRejectedByPresidium,
	} {
		parent := baseMotion(model.MotionGeneral)
		parent.Status = status

		err := SubMotion(&sm, &parent)
		require.Error(t, err, string(status))
		errs, _ := AsErrors(err)
		assert.Contains(t, errs, "motion")
	}

	parent := baseMotion(model.MotionGeneral)
	assert.NoError(t, SubMotion(&sm, &parent))
}

func TestMeeting(t *testing.T) {
	start := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)
	badEnd := start.Add(-time.Hour)

	testCases := []struct {
		name      string
		meeting   model.Meeting
		badFields []string
	}{
		{"inside the period", model.Meeting{Start: start}, nil},
		{"before the period", model.Meeting{Start: testPeriod.StartDate.AddDate(0, -1, 0)}, []string{"start"}},
		{"after the period", model.Meeting{Start: testPeriod.EndDate.AddDate(0, 1, 0)}, []string{"start"}},
		{"ends before it starts", model.Meeting{Start: start, End: &badEnd}, []string{"end"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Meeting(&tc.meeting, &testPeriod)
			if len(tc.badFields) == 0 {
				assert.NoError(t, err)
				return
			}
			errs, ok := AsErrors(err)
			require.True(t, ok)
			for _, f := range tc.badFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestReading(t *testing.T) {
	now := time.Date(2026, 6, 10, 19, 0, 0, 0, time.UTC)
	motion := baseMotion(model.MotionGeneral)
	motion.MinReadings = 2

	runningMeeting := model.Meeting{PeriodNumber: testPeriod.Number, Seq: 3, Start: now.Add(-time.Hour)}
	futureMeeting := model.Meeting{PeriodNumber: testPeriod.Number, Seq: 4, Start: now.Add(48 * time.Hour)}
	endedAt := now.Add(-time.Hour)
	endedMeeting := model.Meeting{PeriodNumber: testPeriod.Number, Seq: 2, Start: now.Add(-4 * time.Hour), End: &endedAt}

	testCases := []struct {
		name      string
		reading   model.Reading
		meeting   *model.Meeting
		mutate    func(f *ReadingFacts)
		badFields []string
	}{
		{
			name:    "plain reading in a running meeting",
			reading: model.Reading{Status: model.ReadingNotRead, Priority: 700},
			meeting: &runningMeeting,
		},
		{
			name:      "prior voted reading blocks a new one",
			reading:   model.Reading{Status: model.ReadingNotRead, Priority: 700},
			meeting:   &runningMeeting,
			mutate:    func(f *ReadingFacts) { f.PriorVoted = true },
			badFields: []string{"status"},
		},
		{
			name:      "urgency on a statute-changing motion",
			reading:   model.Reading{Status: model.ReadingNotRead, Priority: 300, UrgencyRequested: true},
			meeting:   &runningMeeting,
			mutate:    func(f *ReadingFacts) { f.Motion.ChangesStatute = true; f.Motion.Type = model.MotionStatuteChange },
			badFields: []string{"urgency_requested"},
		},
		{
			name:      "urgency while already votable",
			reading:   model.Reading{Status: model.ReadingNotRead, Priority: 700, UrgencyRequested: true, Votable: true},
			meeting:   &runningMeeting,
			badFields: []string{"urgency_requested"},
		},
		{
			name:      "concluded status before the meeting started",
			reading:   model.Reading{Status: model.ReadingRead, Priority: 700},
			meeting:   &futureMeeting,
			badFields: []string{"status"},
		},
		{
			name:    "tabled is fine before the meeting started",
			reading: model.Reading{Status: model.ReadingTabled, Priority: 700},
			meeting: &futureMeeting,
		},
		{
			name:      "pending status after the meeting ended",
			reading:   model.Reading{Status: model.ReadingNotRead, Priority: 700},
			meeting:   &endedMeeting,
			badFields: []string{"status"},
		},
		{
			name:    "voted is fine after the meeting ended",
			reading: model.Reading{Status: model.ReadingVoted, Priority: 700},
			meeting: &endedMeeting,
		},
		{
			name:      "meeting in a different period",
			reading:   model.Reading{Status: model.ReadingNotRead, Priority: 700},
			meeting:   &model.Meeting{PeriodNumber: testPeriod.Number + 1, Seq: 1, Start: now.Add(-time.Hour)},
			badFields: []string{"meeting"},
		},
		{
			name:      "meeting before formal submission",
			reading:   model.Reading{Status: model.ReadingNotRead, Priority: 700},
			meeting:   &model.Meeting{PeriodNumber: testPeriod.Number, Seq: 1, Start: motion.FormalSubmittedAt.Add(-24 * time.Hour)},
			badFields: []string{"meeting"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := motion // copy, tests may mutate
			facts := ReadingFacts{Motion: &m, Meeting: tc.meeting, Now: now}
			if tc.mutate != nil {
				tc.mutate(&facts)
			}

			err := Reading(&tc.reading, facts)
			if len(tc.badFields) == 0 {
				assert.NoError(t, err)
				return
			}
			errs, ok := AsErrors(err)
			require.True(t, ok)
			for _, f := range tc.badFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestPeriod(t *testing.T) {
	good := testPeriod
	assert.NoError(t, Period(&good))

	bad := model.Period{
		Number:    0,
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	err := Period(&bad)
	require.Error(t, err)
	errs, _ := AsErrors(err)
	assert.Contains(t, errs, "number")
	assert.Contains(t, errs, "end_date")
}
