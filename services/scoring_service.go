package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/activity"
	"fitChallengeEngine/internal/challenge"
	"fitChallengeEngine/internal/leaderboard"
	"fitChallengeEngine/internal/milestone"
	"fitChallengeEngine/internal/scoring"
)

// ErrNotFound is returned by collaborators when a challenge or participant
// does not exist.
var ErrNotFound = errors.New("not found")

// Participant is the minimal identity the engine needs for a leaderboard row.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// ChallengeSource supplies challenge definitions.
type ChallengeSource interface {
	ChallengeByID(ctx context.Context, id uuid.UUID) (*challenge.Challenge, error)
}

// ActivityLogSource supplies a complete, consistent snapshot of every
// participant's logs for a challenge window.
type ActivityLogSource interface {
	ChallengeLogs(ctx context.Context, challengeID uuid.UUID, start, end time.Time) ([]*activity.ActivityLog, error)
}

// ParticipantSource supplies the challenge roster.
type ParticipantSource interface {
	Participants(ctx context.Context, challengeID uuid.UUID) ([]*Participant, error)
}

// ScoringService computes milestones, window stats and leaderboards for a
// challenge. It holds no state of its own: every operation reads a fresh
// snapshot from its collaborators and allocates its own output, so concurrent
// calls are independent.
type ScoringService struct {
	challenges   ChallengeSource
	logs         ActivityLogSource
	participants ParticipantSource
}

func NewScoringService(challenges ChallengeSource, logs ActivityLogSource, participants ParticipantSource) *ScoringService {
	return &ScoringService{
		challenges:   challenges,
		logs:         logs,
		participants: participants,
	}
}

func (s *ScoringService) challenge(ctx context.Context, id uuid.UUID) (*challenge.Challenge, error) {
	ch, err := s.challenges.ChallengeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("challenge not found: %w", err)
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	return ch, nil
}

// Milestones partitions the challenge's date range into labeled periods.
func (s *ScoringService) Milestones(ctx context.Context, challengeID uuid.UUID) ([]milestone.Milestone, error) {
	ch, err := s.challenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	return milestone.Partition(ch)
}

// ActiveMilestone returns the milestone containing referenceDate, or nil when
// the date falls outside the challenge. The reference date is explicit; the
// service never consults the system clock.
func (s *ScoringService) ActiveMilestone(ctx context.Context, challengeID uuid.UUID, referenceDate time.Time) (*milestone.Milestone, error) {
	milestones, err := s.Milestones(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	return milestone.Active(milestones, referenceDate), nil
}

// ParticipantStats aggregates one participant's logs over a window.
func (s *ScoringService) ParticipantStats(ctx context.Context, challengeID, participantID uuid.UUID, windowStart, windowEnd time.Time) (*scoring.WindowStats, error) {
	ch, err := s.challenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logs, err := s.logs.ChallengeLogs(ctx, challengeID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	var own []*activity.ActivityLog
	for _, l := range logs {
		if l.ParticipantID == participantID {
			own = append(own, l)
		}
	}

	stats := scoring.Aggregate(ch, windowStart, windowEnd, own)
	observeComputation("participant_stats", string(ch.Model), start, len(own))
	return stats, nil
}

// Leaderboard runs the full pipeline for a window: aggregate every
// participant's logs, classify each day for the grid, then dense-rank.
func (s *ScoringService) Leaderboard(ctx context.Context, challengeID uuid.UUID, windowStart, windowEnd time.Time) (*leaderboard.Leaderboard, error) {
	ch, err := s.challenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	return s.buildLeaderboard(ctx, ch, challengeID, windowStart, windowEnd, true, nil)
}

// AllTimeLeaderboard ranks the whole challenge range. The success badge is
// stricter than a single window: a participant is successful all-time only
// when every milestone window was successful. No day grid is attached.
func (s *ScoringService) AllTimeLeaderboard(ctx context.Context, challengeID uuid.UUID) (*leaderboard.Leaderboard, error) {
	ch, err := s.challenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	milestones, err := milestone.Partition(ch)
	if err != nil {
		return nil, err
	}
	return s.buildLeaderboard(ctx, ch, challengeID, ch.StartDate, ch.EndDate, false, milestones)
}

func (s *ScoringService) buildLeaderboard(ctx context.Context, ch *challenge.Challenge, challengeID uuid.UUID, windowStart, windowEnd time.Time, withDayGrid bool, successMilestones []milestone.Milestone) (*leaderboard.Leaderboard, error) {
	start := time.Now()

	roster, err := s.participants.Participants(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}
	logs, err := s.logs.ChallengeLogs(ctx, challengeID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	byParticipant := make(map[uuid.UUID][]*activity.ActivityLog)
	known := make(map[uuid.UUID]bool, len(roster))
	for _, p := range roster {
		known[p.ID] = true
	}
	orphaned := 0
	for _, l := range logs {
		if !known[l.ParticipantID] {
			orphaned++
			continue
		}
		byParticipant[l.ParticipantID] = append(byParticipant[l.ParticipantID], l)
	}
	if orphaned > 0 {
		log.Printf("Leaderboard: skipping %d logs for participants not on challenge %s roster", orphaned, challengeID)
	}

	required := ch.RequiredCodes()
	entries := make([]*leaderboard.Entry, 0, len(roster))
	for _, p := range roster {
		own := byParticipant[p.ID]
		stats := scoring.Aggregate(ch, windowStart, windowEnd, own)

		entry := &leaderboard.Entry{
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
			Score:         stats.Score,
			Successful:    stats.Successful,
		}
		if withDayGrid {
			entry.DayStatuses = scoring.StatusesForWindow(windowStart, windowEnd, own, required)
		}
		if successMilestones != nil {
			entry.Successful = allWindowsSuccessful(ch, successMilestones, own)
		}
		entries = append(entries, entry)
	}

	board := leaderboard.Rank(entries)
	observeComputation("leaderboard", string(ch.Model), start, len(logs))
	return board, nil
}

// allWindowsSuccessful reports whether a participant met every condition in
// every milestone window of the challenge.
func allWindowsSuccessful(ch *challenge.Challenge, milestones []milestone.Milestone, logs []*activity.ActivityLog) bool {
	for _, m := range milestones {
		if !scoring.Aggregate(ch, m.Start, m.End, logs).Successful {
			return false
		}
	}
	return len(milestones) > 0
}
