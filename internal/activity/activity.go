package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/calendar"
)

// Code identifies a trackable activity category (e.g. WALK, WATER).
type Code string

const (
	CodeWalk        Code = "WALK"
	CodeWater       Code = "WATER"
	CodeWorkout     Code = "WORKOUT"
	CodeRamadanPrep Code = "RAMADAN_PREP"
)

// ActivityLog is one participant's record for one activity on one calendar
// day. Logs are upserted by natural key, never duplicated.
type ActivityLog struct {
	ID            uuid.UUID  `json:"id"`
	ParticipantID uuid.UUID  `json:"participant_id"`
	ChallengeID   *uuid.UUID `json:"challenge_id,omitempty"`
	Code          Code       `json:"code"`
	Date          time.Time  `json:"date"`
	Completed     bool       `json:"completed"`
	Value         *float64   `json:"value,omitempty"`
	Note          *string    `json:"note,omitempty"`
	LoggedAt      time.Time  `json:"logged_at"`
}

// NaturalKey identifies the (participant, day, activity) slot this log fills.
func (l *ActivityLog) NaturalKey() string {
	return fmt.Sprintf("%s|%s|%s", l.ParticipantID, calendar.DayKey(l.Date), l.Code)
}
