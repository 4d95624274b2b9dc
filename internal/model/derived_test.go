package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPriority(t *testing.T) {
	testCases := []struct {
		name     string
		motion   Motion
		expected int
	}{
		{"statute-changing motion", Motion{Type: MotionStatuteChange, ChangesStatute: true}, 300},
		{"statute change without statute flag", Motion{Type: MotionStatuteChange}, 400},
		{"finance motion", Motion{Type: MotionFinance}, 500},
		{"position motion", Motion{Type: MotionPosition}, 700},
		{"general motion", Motion{Type: MotionGeneral}, 700},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.motion.DefaultPriority())
		})
	}
}

func TestVotableAfter(t *testing.T) {
	// With two required readings the threshold is one prior success.
	assert.False(t, VotableAfter(0, 2))
	assert.True(t, VotableAfter(1, 2))
	assert.True(t, VotableAfter(2, 2))

	// A single required reading is votable right away.
	assert.True(t, VotableAfter(0, 1))
}

func TestMeetingPhases(t *testing.T) {
	now := time.Date(2026, 5, 12, 18, 0, 0, 0, time.UTC)

	future := Meeting{Start: now.Add(2 * time.Hour)}
	assert.True(t, future.IsFuture(now))
	assert.False(t, future.IsPast(now))

	running := Meeting{Start: now.Add(-1 * time.Hour)}
	assert.True(t, running.IsRunning(now))

	endedAt := now.Add(-30 * time.Minute)
	ended := Meeting{Start: now.Add(-3 * time.Hour), End: &endedAt}
	assert.True(t, ended.IsPast(now))

	// No end time recorded: past once the starting day is over.
	yesterday := Meeting{Start: now.Add(-24 * time.Hour)}
	assert.True(t, yesterday.IsPast(now))
	assert.False(t, yesterday.IsRunning(now))
}

func TestReadingStatusSets(t *testing.T) {
	pending := []ReadingStatus{ReadingSuggested, ReadingNotRead, ReadingTabled}
	concluded := []ReadingStatus{
		ReadingRead, ReadingPostponed, ReadingPostponedSessionEnd,
		ReadingPostponedNoQuorum, ReadingVoted,
	}

	for _, s := range pending {
		assert.True(t, s.Pending(), string(s))
		assert.False(t, s.Concluded(), string(s))
	}
	for _, s := range concluded {
		assert.True(t, s.Concluded(), string(s))
		assert.False(t, s.Pending(), string(s))
	}
	assert.False(t, ReadingStatus("bogus").Valid())
}

func TestPeriodContains(t *testing.T) {
	p := Period{
		Number:    12,
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, p.Contains(time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2027, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC)))
}
