package snapshot

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fitChallengeEngine/internal/activity"
	"fitChallengeEngine/internal/calendar"
	"fitChallengeEngine/internal/challenge"
)

// Wire representation of a snapshot file. IDs and dates travel as strings;
// the dto layer parses them into domain types so yaml decoding stays dumb.

type snapshotDoc struct {
	Challenge    *challengeDoc    `yaml:"challenge"`
	Participants []participantDoc `yaml:"participants"`
	Logs         []logDoc         `yaml:"logs"`
}

type challengeDoc struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	StartDate   string        `yaml:"start_date"`
	EndDate     string        `yaml:"end_date"`
	Granularity string        `yaml:"granularity"`
	Model       string        `yaml:"model"`
	Activities  []activityDoc `yaml:"activities"`
	Metrics     []metricDoc   `yaml:"metrics"`
}

type activityDoc struct {
	Code           string  `yaml:"code"`
	Name           string  `yaml:"name"`
	Unit           string  `yaml:"unit"`
	RequiredAmount float64 `yaml:"required_amount"`
	ScoreCap       int     `yaml:"score_cap"`
	MinDays        int     `yaml:"min_days"`
}

type metricDoc struct {
	Name        string    `yaml:"name"`
	Unit        string    `yaml:"unit"`
	Aggregation string    `yaml:"aggregation"`
	Rules       []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	ThresholdMin float64  `yaml:"threshold_min"`
	ThresholdMax *float64 `yaml:"threshold_max"`
	Points       int      `yaml:"points"`
	Priority     int      `yaml:"priority"`
}

type participantDoc struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
}

type logDoc struct {
	ID            string   `yaml:"id"`
	ParticipantID string   `yaml:"participant_id"`
	Code          string   `yaml:"code"`
	Date          string   `yaml:"date"`
	Completed     bool     `yaml:"completed"`
	Value         *float64 `yaml:"value"`
	Note          *string  `yaml:"note"`
	LoggedAt      string   `yaml:"logged_at"`
}

// Decode parses snapshot YAML, validates the challenge and collapses logs by
// natural key so duplicates behave exactly as runtime upserts.
func Decode(data []byte) (*Snapshot, error) {
	var doc snapshotDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if doc.Challenge == nil {
		return nil, fmt.Errorf("snapshot has no challenge")
	}

	ch, err := doc.Challenge.toDomain()
	if err != nil {
		return nil, err
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	snap := &Snapshot{Challenge: ch}
	for _, p := range doc.Participants {
		id, err := parseID(p.ID)
		if err != nil {
			return nil, fmt.Errorf("participant %q: %w", p.DisplayName, err)
		}
		snap.Participants = append(snap.Participants, &Participant{ID: id, DisplayName: p.DisplayName})
	}

	book := activity.NewLogBook()
	for i, l := range doc.Logs {
		domainLog, err := l.toDomain()
		if err != nil {
			return nil, fmt.Errorf("log %d: %w", i, err)
		}
		book.Upsert(domainLog)
	}
	snap.Logs = book.Logs()
	return snap, nil
}

func (d *challengeDoc) toDomain() (*challenge.Challenge, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("challenge id: %w", err)
	}
	startDate, err := calendar.ParseDay(d.StartDate)
	if err != nil {
		return nil, fmt.Errorf("challenge start_date: %w", err)
	}
	endDate, err := calendar.ParseDay(d.EndDate)
	if err != nil {
		return nil, fmt.Errorf("challenge end_date: %w", err)
	}

	ch := &challenge.Challenge{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Granularity: challenge.Granularity(d.Granularity),
		Model:       challenge.ScoringModel(d.Model),
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	for _, a := range d.Activities {
		ch.Activities = append(ch.Activities, challenge.ActivityDefinition{
			Code:           activity.Code(a.Code),
			Name:           a.Name,
			Unit:           a.Unit,
			RequiredAmount: a.RequiredAmount,
			ScoreCap:       a.ScoreCap,
			MinDays:        a.MinDays,
		})
	}
	for _, m := range d.Metrics {
		metric := challenge.Metric{
			Name:        m.Name,
			Unit:        m.Unit,
			Aggregation: challenge.AggregationMethod(m.Aggregation),
		}
		for _, r := range m.Rules {
			metric.Rules = append(metric.Rules, challenge.ScoringRule{
				ThresholdMin: r.ThresholdMin,
				ThresholdMax: r.ThresholdMax,
				Points:       r.Points,
				Priority:     r.Priority,
			})
		}
		ch.Metrics = append(ch.Metrics, metric)
	}
	return ch, nil
}

func (d *logDoc) toDomain() (*activity.ActivityLog, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	participantID, err := uuid.Parse(d.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("participant_id %q: %w", d.ParticipantID, err)
	}
	date, err := calendar.ParseDay(d.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	log := &activity.ActivityLog{
		ID:            id,
		ParticipantID: participantID,
		Code:          activity.Code(d.Code),
		Date:          date,
		Completed:     d.Completed,
		Value:         d.Value,
		Note:          d.Note,
	}
	if d.LoggedAt != "" {
		loggedAt, err := time.Parse(time.RFC3339, d.LoggedAt)
		if err != nil {
			return nil, fmt.Errorf("logged_at: %w", err)
		}
		log.LoggedAt = loggedAt
	}
	return log, nil
}

// parseID parses a uuid, generating one when the field was omitted.
func parseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(s)
}
