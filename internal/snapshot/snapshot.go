package snapshot

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/activity"
	"fitChallengeEngine/internal/challenge"
)

// Participant is a member of the snapshot's challenge.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// Snapshot bundles one challenge, its participants and their activity logs.
// It is the engine's file-based collaborator: whatever the surrounding
// application persists, a snapshot is the complete in-memory view handed to
// the engine.
type Snapshot struct {
	Challenge    *challenge.Challenge
	Participants []*Participant
	Logs         []*activity.ActivityLog
}

// Load reads and decodes a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	snap, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}
