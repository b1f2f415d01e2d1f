package leaderboard

import (
	"sort"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/scoring"
)

// Entry is one participant's row on a leaderboard. Entries are rebuilt on
// every request and never cached.
type Entry struct {
	ParticipantID uuid.UUID        `json:"participant_id"`
	DisplayName   string           `json:"display_name"`
	Score         int              `json:"score"`
	Rank          int              `json:"rank"`
	Successful    bool             `json:"successful"`
	DayStatuses   []scoring.Status `json:"day_statuses,omitempty"`
}

type Leaderboard struct {
	Entries           []*Entry `json:"entries"`
	TotalParticipants int      `json:"total_participants"`
}

// Position returns the ranked entry for a participant, or nil when absent.
func (l *Leaderboard) Position(participantID uuid.UUID) *Entry {
	for _, e := range l.Entries {
		if e.ParticipantID == participantID {
			return e
		}
	}
	return nil
}

// Rank sorts entries by score descending and assigns dense ranks: tied scores
// share a rank and the next distinct score gets the next consecutive integer.
// Ties are broken by participant ID ascending so the output is deterministic
// regardless of input order. Re-ranking ranked entries is a no-op.
func Rank(entries []*Entry) *Leaderboard {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].ParticipantID.String() < sorted[j].ParticipantID.String()
	})

	currentRank := 0
	lastScore := -1
	for i, e := range sorted {
		if i == 0 || e.Score != lastScore {
			currentRank++
			lastScore = e.Score
		}
		e.Rank = currentRank
	}

	return &Leaderboard{
		Entries:           sorted,
		TotalParticipants: len(sorted),
	}
}
