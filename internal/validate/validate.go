// Package validate holds the per-entity invariant checks that run
// before every persist. Checks are pure functions over the entity and
// pre-fetched facts; all violations of one save attempt are collected
// into a single Errors value instead of failing on the first one.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"council-motions-backend/internal/model"
)

// Errors maps field names to violation messages. It is returned by
// every validator and reported to the caller as one unit.
type Errors map[string]string

// Error renders the violations sorted by field name.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, e[f])
	}
	return b.String()
}

func (e Errors) add(field, format string, args ...any) {
	e[field] = fmt.Sprintf(format, args...)
}

// orNil returns e as an error only when violations were recorded, so
// callers can compare the result against nil.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// AsErrors unwraps err into an Errors map if it is one.
func AsErrors(err error) (Errors, bool) {
	var e Errors
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Period checks a legislative period before persisting.
func Period(p *model.Period) error {
	errs := Errors{}
	if p.Number < 1 || p.Number > model.MaxPeriodNumber {
		errs.add("number", "period number must be between 1 and %d", model.MaxPeriodNumber)
	}
	if p.StartDate.IsZero() {
		errs.add("start_date", "start date is required")
	}
	if p.EndDate.IsZero() {
		errs.add("end_date", "end date is required")
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		errs.add("end_date", "period cannot end before it starts")
	}
	return errs.orNil()
}

// Meeting checks a meeting against its owning period.
func Meeting(m *model.Meeting, period *model.Period) error {
	errs := Errors{}
	if m.Start.IsZero() {
		errs.add("start", "start time is required")
	} else if !period.Contains(m.Start) {
		errs.add("start", "date %s is outside legislative period %d (%s to %s)",
			m.Start.Format("2006-01-02"), period.Number,
			period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}
	if m.End != nil && m.End.Before(m.Start) {
		errs.add("end", "meeting cannot end before it starts")
	}
	return errs.orNil()
}

// typeRule describes which field sets a motion type requires or allows.
// Dispatching over this table keeps the per-type branching flat.
type typeRule struct {
	finance bool // amount and budget line required; forbidden elsewhere
	statute bool // changes-statute flag and comparison document allowed
}

var typeRules = map[model.MotionType]typeRule{
	model.MotionFinance:       {finance: true},
	model.MotionStatuteChange: {statute: true},
	model.MotionPosition:      {},
	model.MotionGeneral:       {},
}

// Motion checks a motion against its owning period and the rule set of
// its type.
func Motion(m *model.Motion, period *model.Period) error {
	errs := Errors{}

	rule, known := typeRules[m.Type]
	if !known {
		errs.add("type", "unknown motion type %q", m.Type)
	}

	if m.Title == "" {
		errs.add("title", "title is required")
	}
	if m.MinReadings < 1 {
		errs.add("min_readings", "at least one reading is required before a vote")
	}
	if !m.Status.Valid() {
		errs.add("status", "unknown status %q", m.Status)
	}

	if m.FormalSubmittedAt.IsZero() {
		errs.add("formal_submitted_at", "formal submission time is required")
	} else if !period.Contains(m.FormalSubmittedAt) {
		errs.add("formal_submitted_at", "date %s is outside legislative period %d (%s to %s)",
			m.FormalSubmittedAt.Format("2006-01-02"), period.Number,
			period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}

	hasAmount := m.Amount != nil && m.Amount.IsPositive()
	if rule.finance {
		if !hasAmount {
			errs.add("amount", "finance motions must state a positive amount")
		}
		if m.BudgetLine == "" {
			errs.add("budget_line", "finance motions must name a budget line")
		}
	} else {
		if m.Amount != nil {
			errs.add("amount", "only finance motions may state an amount")
		}
		if m.BudgetLine != "" {
			errs.add("budget_line", "only finance motions may name a budget line")
		}
	}

	if !rule.statute {
		if m.ChangesStatute {
			errs.add("changes_statute", "only statute-change motions may change the governing statute")
		}
		if m.ComparisonKey != "" {
			errs.add("comparison", "a comparison document is only allowed on statute-change motions")
		}
	}

	return errs.orNil()
}

// SubMotion checks an amendment against its parent motion. The parent
// must still be in deliberation, on creation and on every later edit.
func SubMotion(sm *model.SubMotion, parent *model.Motion) error {
	errs := Errors{}
	if sm.Title == "" {
		errs.add("title", "title is required")
	}
	if parent.Status != model.MotionInDeliberation {
		errs.add("motion", "parent motion %d/%d is no longer in deliberation (status %q)",
			parent.PeriodNumber, parent.Seq, parent.Status)
	}
	return errs.orNil()
}

// ReadingFacts carries the cross-entity state a reading is checked
// against. PriorVoted must be computed with the reading itself excluded
// so updates do not trip over their own row.
type ReadingFacts struct {
	Motion     *model.Motion
	Meeting    *model.Meeting
	PriorVoted bool
	Now        time.Time
}

// Reading checks a reading against its motion, its meeting, and the
// meeting's current phase.
func Reading(r *model.Reading, facts ReadingFacts) error {
	errs := Errors{}
	motion, meeting := facts.Motion, facts.Meeting

	if !r.Status.Valid() {
		errs.add("status", "unknown status %q", r.Status)
	}
	if r.Priority < 0 {
		errs.add("priority", "priority cannot be negative")
	}

	if motion.PeriodNumber != meeting.PeriodNumber {
		errs.add("meeting", "meeting and motion must belong to the same legislative period")
	}

	if facts.PriorVoted {
		errs.add("status", "the motion was already voted on in an earlier meeting; reset that reading to %q before voting again", model.ReadingRead)
	}

	if meeting.Start.Before(motion.FormalSubmittedAt) {
		errs.add("meeting", "meeting starts before the motion was formally submitted")
	}

	if motion.ChangesStatute && r.UrgencyRequested {
		errs.add("urgency_requested", "statute-changing motions cannot be voted under urgency")
	}
	if r.UrgencyRequested && r.Votable {
		errs.add("urgency_requested", "the reading is already votable, an urgency request is pointless")
	}

	if meeting.IsFuture(facts.Now) && !r.Status.Pending() {
		errs.add("status", "the meeting has not started yet; status %q makes no sense", r.Status)
	}
	if meeting.End != nil && meeting.End.Before(facts.Now) && !r.Status.Concluded() {
		errs.add("status", "the meeting is already over; status %q makes no sense", r.Status)
	}

	return errs.orNil()
}
