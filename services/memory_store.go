package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/activity"
	"fitChallengeEngine/internal/calendar"
	"fitChallengeEngine/internal/challenge"
	"fitChallengeEngine/internal/snapshot"
)

// MemoryStore is an in-memory implementation of the engine's collaborator
// contracts, used by the CLI and tests. It enforces the same
// upsert-by-natural-key semantics the real storage layer would.
type MemoryStore struct {
	mu           sync.RWMutex
	challenges   map[uuid.UUID]*challenge.Challenge
	participants map[uuid.UUID][]*Participant
	book         *activity.LogBook
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		challenges:   make(map[uuid.UUID]*challenge.Challenge),
		participants: make(map[uuid.UUID][]*Participant),
		book:         activity.NewLogBook(),
	}
}

// NewMemoryStoreFromSnapshot seeds a store with a decoded snapshot.
func NewMemoryStoreFromSnapshot(snap *snapshot.Snapshot) *MemoryStore {
	store := NewMemoryStore()
	store.AddChallenge(snap.Challenge)
	for _, p := range snap.Participants {
		store.AddParticipant(snap.Challenge.ID, &Participant{ID: p.ID, DisplayName: p.DisplayName})
	}
	for _, l := range snap.Logs {
		store.UpsertLog(l)
	}
	return store
}

func (m *MemoryStore) AddChallenge(ch *challenge.Challenge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch.ID == uuid.Nil {
		ch.ID = uuid.New()
	}
	m.challenges[ch.ID] = ch
}

func (m *MemoryStore) AddParticipant(challengeID uuid.UUID, p *Participant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.participants[challengeID] = append(m.participants[challengeID], p)
}

// UpsertLog stores a log, superseding any earlier log with the same
// (participant, date, activity) key.
func (m *MemoryStore) UpsertLog(l *activity.ActivityLog) *activity.ActivityLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.book.Upsert(l)
}

func (m *MemoryStore) ChallengeByID(ctx context.Context, id uuid.UUID) (*challenge.Challenge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.challenges[id]
	if !ok {
		return nil, fmt.Errorf("challenge %s: %w", id, ErrNotFound)
	}
	return ch, nil
}

func (m *MemoryStore) Participants(ctx context.Context, challengeID uuid.UUID) ([]*Participant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.challenges[challengeID]; !ok {
		return nil, fmt.Errorf("challenge %s: %w", challengeID, ErrNotFound)
	}
	roster := make([]*Participant, len(m.participants[challengeID]))
	copy(roster, m.participants[challengeID])
	return roster, nil
}

// ChallengeLogs returns every participant's logs with dates inside
// [start, end]. Logs with no challenge ID are treated as belonging to every
// challenge, matching the legacy single-challenge data.
func (m *MemoryStore) ChallengeLogs(ctx context.Context, challengeID uuid.UUID, start, end time.Time) ([]*activity.ActivityLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start = calendar.Normalize(start)
	end = calendar.Normalize(end)

	var out []*activity.ActivityLog
	for _, l := range m.book.Logs() {
		if l.ChallengeID != nil && *l.ChallengeID != challengeID {
			continue
		}
		d := calendar.Normalize(l.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
