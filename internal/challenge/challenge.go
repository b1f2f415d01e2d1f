package challenge

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"fitChallengeEngine/internal/activity"
)

// Granularity controls how a challenge's range is partitioned into milestones.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ScoringModel selects the scoring strategy applied to a challenge's logs.
type ScoringModel string

const (
	// ModelCategoryCaps scores distinct qualifying days per activity
	// category, capped per category.
	ModelCategoryCaps ScoringModel = "category_caps"
	// ModelMetricBrackets aggregates logged values per metric and awards
	// points from threshold brackets.
	ModelMetricBrackets ScoringModel = "metric_brackets"
)

// AggregationMethod is how a metric folds its window's logged values.
type AggregationMethod string

const (
	AggregationSum   AggregationMethod = "sum"
	AggregationCount AggregationMethod = "count"
	AggregationMax   AggregationMethod = "max"
	AggregationLast  AggregationMethod = "last"
)

// ActivityDefinition is one required activity of a category-caps challenge.
type ActivityDefinition struct {
	Code           activity.Code `json:"code" validate:"required"`
	Name           string        `json:"name"`
	Unit           string        `json:"unit"`
	RequiredAmount float64       `json:"required_amount"`
	// ScoreCap bounds how many qualifying days this category contributes
	// to the window score.
	ScoreCap int `json:"score_cap" validate:"gte=0"`
	// MinDays is the distinct-day threshold a window must reach for this
	// category to count as met.
	MinDays int `json:"min_days" validate:"gte=0"`
}

// ScoringRule is one threshold bracket of a metric. Brackets with a nil
// ThresholdMax are open-ended.
type ScoringRule struct {
	ThresholdMin float64  `json:"threshold_min"`
	ThresholdMax *float64 `json:"threshold_max,omitempty"`
	Points       int      `json:"points" validate:"gte=0"`
	Priority     int      `json:"priority"`
}

// Metric is one tracked quantity of a metric-brackets challenge.
type Metric struct {
	Name        string            `json:"name" validate:"required"`
	Unit        string            `json:"unit"`
	Aggregation AggregationMethod `json:"aggregation" validate:"required,oneof=sum count max last"`
	Rules       []ScoringRule     `json:"rules" validate:"required,min=1,dive"`
}

type Challenge struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	StartDate   time.Time            `json:"start_date" validate:"required"`
	EndDate     time.Time            `json:"end_date" validate:"required"`
	Granularity Granularity          `json:"granularity" validate:"required,oneof=day week month"`
	Model       ScoringModel         `json:"model" validate:"required,oneof=category_caps metric_brackets"`
	Activities  []ActivityDefinition `json:"activities,omitempty" validate:"dive"`
	Metrics     []Metric             `json:"metrics,omitempty" validate:"dive"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the challenge definition. A failure here is a contract
// violation by the definition source, not an expected runtime state.
func (c *Challenge) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid challenge definition: %w", err)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("invalid challenge definition: end date %s before start date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	switch c.Model {
	case ModelCategoryCaps:
		if len(c.Activities) == 0 {
			return fmt.Errorf("invalid challenge definition: category_caps challenge has no activities")
		}
	case ModelMetricBrackets:
		if len(c.Metrics) == 0 {
			return fmt.Errorf("invalid challenge definition: metric_brackets challenge has no metrics")
		}
	}
	return nil
}

// RequiredCodes returns the activity codes a day must cover to count as fully
// complete.
func (c *Challenge) RequiredCodes() []activity.Code {
	codes := make([]activity.Code, 0, len(c.Activities))
	for _, a := range c.Activities {
		codes = append(codes, a.Code)
	}
	return codes
}

// Activity looks up a definition by code.
func (c *Challenge) Activity(code activity.Code) (ActivityDefinition, bool) {
	for _, a := range c.Activities {
		if a.Code == code {
			return a, true
		}
	}
	return ActivityDefinition{}, false
}
