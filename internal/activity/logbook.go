package activity

import (
	"time"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/calendar"
)

// LogBook holds activity logs with at most one entry per natural key. A later
// upsert with the same key supersedes the stored log's completed state, value,
// note and timestamp, keeping the original ID.
type LogBook struct {
	logs  []*ActivityLog
	index map[string]int
}

func NewLogBook() *LogBook {
	return &LogBook{index: make(map[string]int)}
}

// Upsert inserts the log or overwrites the existing log sharing its natural
// key. The date is normalized so logs carrying a time-of-day still collapse
// onto their calendar day.
func (b *LogBook) Upsert(log *ActivityLog) *ActivityLog {
	stored := *log
	stored.Date = calendar.Normalize(log.Date)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.LoggedAt.IsZero() {
		stored.LoggedAt = time.Now()
	}

	key := stored.NaturalKey()
	if i, ok := b.index[key]; ok {
		existing := b.logs[i]
		existing.Completed = stored.Completed
		existing.Value = stored.Value
		existing.Note = stored.Note
		existing.LoggedAt = stored.LoggedAt
		return existing
	}

	b.index[key] = len(b.logs)
	b.logs = append(b.logs, &stored)
	return &stored
}

// Logs returns a snapshot of all stored logs in insertion order.
func (b *LogBook) Logs() []*ActivityLog {
	out := make([]*ActivityLog, len(b.logs))
	copy(out, b.logs)
	return out
}

// ParticipantLogs returns the stored logs for one participant.
func (b *LogBook) ParticipantLogs(participantID uuid.UUID) []*ActivityLog {
	var out []*ActivityLog
	for _, l := range b.logs {
		if l.ParticipantID == participantID {
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of distinct natural keys stored.
func (b *LogBook) Len() int {
	return len(b.logs)
}
