package scoring

import (
	"time"

	"fitChallengeEngine/internal/activity"
	"fitChallengeEngine/internal/calendar"
	"fitChallengeEngine/internal/challenge"
)

// WindowStats is one participant's aggregate over a date window. Counts are
// raw distinct-day counts; caps apply only to Score.
type WindowStats struct {
	WindowStart time.Time `json:"window_start" yaml:"window_start"`
	WindowEnd   time.Time `json:"window_end" yaml:"window_end"`
	// PerCategoryDays maps activity code (or metric name) to its raw
	// distinct-day count within the window.
	PerCategoryDays map[string]int `json:"per_category_days" yaml:"per_category_days"`
	Score           int            `json:"score" yaml:"score"`
	Successful      bool           `json:"successful" yaml:"successful"`
}

// Aggregate computes a participant's window stats under the challenge's
// scoring model.
func Aggregate(ch *challenge.Challenge, windowStart, windowEnd time.Time, logs []*activity.ActivityLog) *WindowStats {
	switch ch.Model {
	case challenge.ModelMetricBrackets:
		return metricBracketsStats(ch, windowStart, windowEnd, logs)
	default:
		return categoryCapsStats(ch, windowStart, windowEnd, logs)
	}
}

// categoryCapsStats implements the distinct-day model: each category counts
// the unique days it was completed on, contributes min(count, cap) to the
// score, and the window is successful only when every category reaches its
// minimum-days threshold. Categories logged but not defined on the challenge
// contribute nothing and raise nothing.
func categoryCapsStats(ch *challenge.Challenge, windowStart, windowEnd time.Time, logs []*activity.ActivityLog) *WindowStats {
	windowStart = calendar.Normalize(windowStart)
	windowEnd = calendar.Normalize(windowEnd)

	days := make(map[activity.Code]map[string]bool)
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		d := calendar.Normalize(l.Date)
		if d.Before(windowStart) || d.After(windowEnd) {
			continue
		}
		if days[l.Code] == nil {
			days[l.Code] = make(map[string]bool)
		}
		days[l.Code][calendar.DayKey(d)] = true
	}

	stats := &WindowStats{
		WindowStart:     windowStart,
		WindowEnd:       windowEnd,
		PerCategoryDays: make(map[string]int),
		Successful:      true,
	}
	for _, def := range ch.Activities {
		count := len(days[def.Code])
		stats.PerCategoryDays[string(def.Code)] = count

		capped := count
		if capped > def.ScoreCap {
			capped = def.ScoreCap
		}
		stats.Score += capped

		if count < def.MinDays {
			stats.Successful = false
		}
	}
	return stats
}

// metricBracketsStats implements the generalized model: each metric folds its
// window's completed values by its aggregation method, then earns the points
// of the highest-priority bracket matching the aggregate. The window is
// successful only when every metric earned points.
func metricBracketsStats(ch *challenge.Challenge, windowStart, windowEnd time.Time, logs []*activity.ActivityLog) *WindowStats {
	windowStart = calendar.Normalize(windowStart)
	windowEnd = calendar.Normalize(windowEnd)

	stats := &WindowStats{
		WindowStart:     windowStart,
		WindowEnd:       windowEnd,
		PerCategoryDays: make(map[string]int),
		Successful:      true,
	}
	for _, metric := range ch.Metrics {
		var windowLogs []*activity.ActivityLog
		daySet := make(map[string]bool)
		for _, l := range logs {
			if !l.Completed || string(l.Code) != metric.Name {
				continue
			}
			d := calendar.Normalize(l.Date)
			if d.Before(windowStart) || d.After(windowEnd) {
				continue
			}
			windowLogs = append(windowLogs, l)
			daySet[calendar.DayKey(d)] = true
		}
		stats.PerCategoryDays[metric.Name] = len(daySet)

		value := aggregateValues(metric.Aggregation, windowLogs)
		points := bracketPoints(value, metric.Rules)
		stats.Score += points
		if points <= 0 {
			stats.Successful = false
		}
	}
	return stats
}

func aggregateValues(method challenge.AggregationMethod, logs []*activity.ActivityLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	switch method {
	case challenge.AggregationCount:
		return float64(len(logs))
	case challenge.AggregationMax:
		max := rawValue(logs[0])
		for _, l := range logs[1:] {
			if v := rawValue(l); v > max {
				max = v
			}
		}
		return max
	case challenge.AggregationLast:
		last := logs[0]
		for _, l := range logs[1:] {
			if l.LoggedAt.After(last.LoggedAt) {
				last = l
			}
		}
		return rawValue(last)
	default: // sum
		var sum float64
		for _, l := range logs {
			sum += rawValue(l)
		}
		return sum
	}
}

// bracketPoints picks the highest-priority rule whose [min, max] bracket
// contains the value. No matching bracket means zero points.
func bracketPoints(value float64, rules []challenge.ScoringRule) int {
	best := -1
	points := 0
	for _, r := range rules {
		if value < r.ThresholdMin {
			continue
		}
		if r.ThresholdMax != nil && value > *r.ThresholdMax {
			continue
		}
		if r.Priority > best {
			best = r.Priority
			points = r.Points
		}
	}
	return points
}

func rawValue(l *activity.ActivityLog) float64 {
	if l.Value == nil {
		return 0
	}
	return *l.Value
}
