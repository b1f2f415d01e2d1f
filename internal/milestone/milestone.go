package milestone

import (
	"fmt"
	"time"

	"fitChallengeEngine/internal/calendar"
	"fitChallengeEngine/internal/challenge"
)

// Milestone is one labeled sub-period of a challenge. Milestones are derived
// on every call and never stored.
type Milestone struct {
	Index int       `json:"index" yaml:"index"`
	Label string    `json:"label" yaml:"label"`
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Contains reports whether date falls inside the milestone, inclusive.
func (m *Milestone) Contains(date time.Time) bool {
	d := calendar.Normalize(date)
	return !d.Before(m.Start) && !d.After(m.End)
}

// Partition splits a challenge's [start, end] range into contiguous
// milestones per its granularity. The last milestone is truncated to the
// challenge end date. An inverted range yields an empty slice; a missing date
// or granularity is a hard error, as is a partition that fails to tile the
// range.
func Partition(ch *challenge.Challenge) ([]Milestone, error) {
	if ch.StartDate.IsZero() || ch.EndDate.IsZero() {
		return nil, fmt.Errorf("challenge %q is missing start or end date", ch.Name)
	}

	start := calendar.Normalize(ch.StartDate)
	end := calendar.Normalize(ch.EndDate)
	if start.After(end) {
		return nil, nil
	}

	var unit string
	switch ch.Granularity {
	case challenge.GranularityDay:
		unit = "Day"
	case challenge.GranularityWeek:
		unit = "Week"
	case challenge.GranularityMonth:
		unit = "Month"
	default:
		return nil, fmt.Errorf("challenge %q has unknown granularity %q", ch.Name, ch.Granularity)
	}

	var milestones []Milestone
	index := 1
	for cursor := start; !cursor.After(end); index++ {
		var candidate time.Time
		switch ch.Granularity {
		case challenge.GranularityDay:
			candidate = cursor
		case challenge.GranularityWeek:
			candidate = cursor.AddDate(0, 0, 6)
		case challenge.GranularityMonth:
			candidate = calendar.EndOfMonth(cursor)
		}
		if candidate.After(end) {
			candidate = end
		}

		milestones = append(milestones, Milestone{
			Index: index,
			Label: fmt.Sprintf("%s %d", unit, index),
			Start: cursor,
			End:   candidate,
		})
		cursor = candidate.AddDate(0, 0, 1)
	}

	if err := verifyCoverage(milestones, start, end); err != nil {
		return nil, err
	}
	return milestones, nil
}

// verifyCoverage asserts that the milestones tile [start, end] exactly.
func verifyCoverage(milestones []Milestone, start, end time.Time) error {
	cursor := start
	for _, m := range milestones {
		if !m.Start.Equal(cursor) {
			return fmt.Errorf("milestone partition broken: %q starts at %s, expected %s",
				m.Label, calendar.DayKey(m.Start), calendar.DayKey(cursor))
		}
		if m.End.Before(m.Start) {
			return fmt.Errorf("milestone partition broken: %q ends before it starts", m.Label)
		}
		cursor = m.End.AddDate(0, 0, 1)
	}
	if !cursor.Equal(end.AddDate(0, 0, 1)) {
		return fmt.Errorf("milestone partition broken: coverage ends at %s, expected %s",
			calendar.DayKey(cursor.AddDate(0, 0, -1)), calendar.DayKey(end))
	}
	return nil
}

// Active returns the milestone containing the reference date, or nil when the
// date lies outside the challenge. The reference date is an explicit
// parameter so callers stay deterministic; "today" is the caller's choice.
func Active(milestones []Milestone, referenceDate time.Time) *Milestone {
	for i := range milestones {
		if milestones[i].Contains(referenceDate) {
			return &milestones[i]
		}
	}
	return nil
}
