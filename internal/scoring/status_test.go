package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/activity"
)

var required = []activity.Code{
	activity.CodeWalk,
	activity.CodeWater,
	activity.CodeWorkout,
	activity.CodeRamadanPrep,
}

func day(d int) time.Time {
	return time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC)
}

func completedLog(p uuid.UUID, code activity.Code, d int) *activity.ActivityLog {
	return &activity.ActivityLog{
		ID:            uuid.New(),
		ParticipantID: p,
		Code:          code,
		Date:          day(d),
		Completed:     true,
	}
}

func TestDailyStatusNone(t *testing.T) {
	p := uuid.New()
	if got := DailyStatus(day(1), nil, required); got != StatusNone {
		t.Errorf("no logs = %s, want none", got)
	}

	// Incomplete logs do not count.
	logs := []*activity.ActivityLog{{ParticipantID: p, Code: activity.CodeWalk, Date: day(1), Completed: false}}
	if got := DailyStatus(day(1), logs, required); got != StatusNone {
		t.Errorf("incomplete log = %s, want none", got)
	}

	// Logs on another day do not count.
	logs = []*activity.ActivityLog{completedLog(p, activity.CodeWalk, 2)}
	if got := DailyStatus(day(1), logs, required); got != StatusNone {
		t.Errorf("other-day log = %s, want none", got)
	}
}

func TestDailyStatusPartial(t *testing.T) {
	p := uuid.New()
	logs := []*activity.ActivityLog{
		completedLog(p, activity.CodeWalk, 1),
		completedLog(p, activity.CodeWater, 1),
	}
	if got := DailyStatus(day(1), logs, required); got != StatusPartial {
		t.Errorf("2 of 4 activities = %s, want partial", got)
	}
}

func TestDailyStatusFull(t *testing.T) {
	p := uuid.New()
	var logs []*activity.ActivityLog
	for _, code := range required {
		logs = append(logs, completedLog(p, code, 1))
	}
	if got := DailyStatus(day(1), logs, required); got != StatusFull {
		t.Errorf("all activities = %s, want full", got)
	}

	// Extra undefined activities do not break full.
	logs = append(logs, completedLog(p, activity.Code("YOGA"), 1))
	if got := DailyStatus(day(1), logs, required); got != StatusFull {
		t.Errorf("all + extra = %s, want full", got)
	}
}

// Adding a completed log can only move the status forward.
func TestDailyStatusMonotonic(t *testing.T) {
	p := uuid.New()
	order := map[Status]int{StatusNone: 0, StatusPartial: 1, StatusFull: 2}

	var logs []*activity.ActivityLog
	prev := DailyStatus(day(1), logs, required)
	for _, code := range required {
		logs = append(logs, completedLog(p, code, 1))
		curr := DailyStatus(day(1), logs, required)
		if order[curr] < order[prev] {
			t.Fatalf("status moved backward: %s -> %s", prev, curr)
		}
		prev = curr
	}
	if prev != StatusFull {
		t.Fatalf("expected full after all activities, got %s", prev)
	}
}

func TestDailyStatusEmptyRequiredSetIsNone(t *testing.T) {
	p := uuid.New()
	logs := []*activity.ActivityLog{completedLog(p, activity.CodeWalk, 1)}
	if got := DailyStatus(day(1), logs, nil); got != StatusNone {
		t.Errorf("empty required set = %s, want none", got)
	}
}

func TestStatusesForWindow(t *testing.T) {
	p := uuid.New()
	var logs []*activity.ActivityLog
	for _, code := range required {
		logs = append(logs, completedLog(p, code, 2))
	}
	logs = append(logs, completedLog(p, activity.CodeWalk, 3))

	statuses := StatusesForWindow(day(1), day(3), logs, required)
	want := []Status{StatusNone, StatusFull, StatusPartial}
	if len(statuses) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(statuses))
	}
	for i, w := range want {
		if statuses[i] != w {
			t.Errorf("day %d = %s, want %s", i+1, statuses[i], w)
		}
	}
}
