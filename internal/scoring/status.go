package scoring

import (
	"time"

	"fitChallengeEngine/internal/activity"
	"fitChallengeEngine/internal/calendar"
)

// Status is a day's tri-state completion level against a required activity
// set.
type Status string

const (
	StatusNone    Status = "none"
	StatusPartial Status = "partial"
	StatusFull    Status = "full"
)

// DailyStatus classifies one calendar day from a participant's logs. Only
// completed logs on that day count. Full means every required activity has at
// least one completed log; partial means some but not all. An empty required
// set classifies as none: a day cannot be complete against no requirements.
func DailyStatus(date time.Time, logs []*activity.ActivityLog, required []activity.Code) Status {
	done := make(map[activity.Code]bool)
	for _, l := range logs {
		if l.Completed && calendar.SameDay(l.Date, date) {
			done[l.Code] = true
		}
	}
	if len(done) == 0 {
		return StatusNone
	}
	if len(required) == 0 {
		return StatusNone
	}

	for _, code := range required {
		if !done[code] {
			return StatusPartial
		}
	}
	return StatusFull
}

// StatusesForWindow classifies every day of [start, end] in order, one status
// per calendar day. Used to build the leaderboard's day grid.
func StatusesForWindow(start, end time.Time, logs []*activity.ActivityLog, required []activity.Code) []Status {
	days := calendar.DatesInRange(start, end)
	statuses := make([]Status, 0, len(days))
	for _, day := range days {
		statuses = append(statuses, DailyStatus(day, logs, required))
	}
	return statuses
}
