package calendar

import (
	"fmt"
	"time"
)

// DayFormat is the canonical key format for a civil calendar day.
const DayFormat = "2006-01-02"

// Normalize truncates a timestamp to its civil calendar day, represented as
// midnight UTC. Using UTC midnight for every date keeps comparisons and
// day-stepping free of DST drift.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the "YYYY-MM-DD" key for a date.
func DayKey(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a "YYYY-MM-DD" string into a normalized date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// SameDay reports whether two timestamps fall on the same civil day.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// DatesInRange returns every calendar day from start to end inclusive, in
// order. Returns an empty slice when start is after end.
func DatesInRange(start, end time.Time) []time.Time {
	start = Normalize(start)
	end = Normalize(end)

	var dates []time.Time
	for curr := start; !curr.After(end); curr = curr.AddDate(0, 0, 1) {
		dates = append(dates, curr)
	}
	return dates
}

// DaysBetween returns the inclusive day count of [start, end], or 0 when the
// range is inverted.
func DaysBetween(start, end time.Time) int {
	start = Normalize(start)
	end = Normalize(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// EndOfMonth returns the last day of t's calendar month.
func EndOfMonth(t time.Time) time.Time {
	t = Normalize(t)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
}
