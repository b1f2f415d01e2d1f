package scoring

import (
	"testing"

	"github.com/google/uuid"

	"fitChallengeEngine/internal/activity"
	"fitChallengeEngine/internal/challenge"
)

func capsChallenge() *challenge.Challenge {
	return &challenge.Challenge{
		Name:        "Ramadan Prep",
		StartDate:   day(1),
		EndDate:     day(28),
		Granularity: challenge.GranularityWeek,
		Model:       challenge.ModelCategoryCaps,
		Activities: []challenge.ActivityDefinition{
			{Code: activity.CodeWalk, ScoreCap: 5, MinDays: 5},
			{Code: activity.CodeWater, ScoreCap: 5, MinDays: 5},
			{Code: activity.CodeWorkout, ScoreCap: 3, MinDays: 3},
			{Code: activity.CodeRamadanPrep, ScoreCap: 5, MinDays: 5},
		},
	}
}

func fptr(v float64) *float64 { return &v }

func TestAggregateCountsDistinctDays(t *testing.T) {
	p := uuid.New()
	logs := []*activity.ActivityLog{
		completedLog(p, activity.CodeWalk, 1),
		completedLog(p, activity.CodeWalk, 1), // duplicate day
		completedLog(p, activity.CodeWalk, 2),
	}
	stats := Aggregate(capsChallenge(), day(1), day(7), logs)
	if stats.PerCategoryDays["WALK"] != 2 {
		t.Errorf("WALK days = %d, want 2 (duplicate day counted once)", stats.PerCategoryDays["WALK"])
	}
}

func TestAggregateCapsScoreButNotRawCount(t *testing.T) {
	p := uuid.New()
	var logs []*activity.ActivityLog
	for d := 1; d <= 10; d++ {
		logs = append(logs, completedLog(p, activity.CodeWorkout, d))
	}
	stats := Aggregate(capsChallenge(), day(1), day(14), logs)

	if stats.PerCategoryDays["WORKOUT"] != 10 {
		t.Errorf("raw WORKOUT days = %d, want 10", stats.PerCategoryDays["WORKOUT"])
	}
	// Cap 3 bounds the contribution to score.
	if stats.Score != 3 {
		t.Errorf("score = %d, want 3", stats.Score)
	}
}

func TestAggregateWindowBounds(t *testing.T) {
	p := uuid.New()
	logs := []*activity.ActivityLog{
		completedLog(p, activity.CodeWalk, 1),
		completedLog(p, activity.CodeWalk, 7),
		completedLog(p, activity.CodeWalk, 8), // outside
	}
	stats := Aggregate(capsChallenge(), day(1), day(7), logs)
	if stats.PerCategoryDays["WALK"] != 2 {
		t.Errorf("WALK days = %d, want 2 (window is inclusive, day 8 excluded)", stats.PerCategoryDays["WALK"])
	}
}

func TestAggregateIgnoresIncompleteAndUnknown(t *testing.T) {
	p := uuid.New()
	logs := []*activity.ActivityLog{
		{ParticipantID: p, Code: activity.CodeWalk, Date: day(1), Completed: false},
		completedLog(p, activity.Code("YOGA"), 1), // not defined on the challenge
	}
	stats := Aggregate(capsChallenge(), day(1), day(7), logs)
	if stats.Score != 0 {
		t.Errorf("score = %d, want 0", stats.Score)
	}
	if _, ok := stats.PerCategoryDays["YOGA"]; ok {
		t.Error("unknown category leaked into stats")
	}
}

func TestAggregateSuccessfulRequiresEveryThreshold(t *testing.T) {
	p := uuid.New()
	var logs []*activity.ActivityLog
	addDays := func(code activity.Code, days int) {
		for d := 1; d <= days; d++ {
			logs = append(logs, completedLog(p, code, d))
		}
	}
	addDays(activity.CodeWalk, 5)
	addDays(activity.CodeWater, 4) // one short of its threshold
	addDays(activity.CodeWorkout, 3)
	addDays(activity.CodeRamadanPrep, 5)

	stats := Aggregate(capsChallenge(), day(1), day(7), logs)
	if stats.Successful {
		t.Error("window marked successful with WATER below threshold")
	}
	if stats.Score != 5+4+3+5 {
		t.Errorf("score = %d, want 17", stats.Score)
	}

	logs = append(logs, completedLog(p, activity.CodeWater, 5))
	stats = Aggregate(capsChallenge(), day(1), day(7), logs)
	if !stats.Successful {
		t.Error("window not successful with every threshold met")
	}
}

func TestAggregateIdempotentUnderUpsert(t *testing.T) {
	participant := uuid.New()

	book := activity.NewLogBook()
	book.Upsert(&activity.ActivityLog{ParticipantID: participant, Code: activity.CodeWalk, Date: day(1), Completed: true})
	once := Aggregate(capsChallenge(), day(1), day(7), book.Logs())

	// Submitting the same natural key again must not change the stats.
	book.Upsert(&activity.ActivityLog{ParticipantID: participant, Code: activity.CodeWalk, Date: day(1), Completed: true})
	twice := Aggregate(capsChallenge(), day(1), day(7), book.Logs())

	if once.Score != twice.Score || once.PerCategoryDays["WALK"] != twice.PerCategoryDays["WALK"] {
		t.Errorf("stats changed after duplicate upsert: %+v vs %+v", once, twice)
	}
}

func bracketsChallenge() *challenge.Challenge {
	return &challenge.Challenge{
		Name:        "Spring Distance",
		StartDate:   day(1),
		EndDate:     day(28),
		Granularity: challenge.GranularityWeek,
		Model:       challenge.ModelMetricBrackets,
		Metrics: []challenge.Metric{
			{
				Name:        "distance",
				Unit:        "miles",
				Aggregation: challenge.AggregationSum,
				Rules: []challenge.ScoringRule{
					{ThresholdMin: 5, ThresholdMax: fptr(14.9), Points: 1, Priority: 0},
					{ThresholdMin: 15, Points: 3, Priority: 1},
				},
			},
			{
				Name:        "sessions",
				Unit:        "count",
				Aggregation: challenge.AggregationCount,
				Rules: []challenge.ScoringRule{
					{ThresholdMin: 3, Points: 2, Priority: 0},
				},
			},
		},
	}
}

func metricLog(p uuid.UUID, name string, d int, value float64) *activity.ActivityLog {
	l := completedLog(p, activity.Code(name), d)
	l.Value = fptr(value)
	return l
}

func TestAggregateMetricBracketsSum(t *testing.T) {
	p := uuid.New()
	logs := []*activity.ActivityLog{
		metricLog(p, "distance", 1, 6),
		metricLog(p, "distance", 2, 10), // sum 16 -> top bracket
		metricLog(p, "sessions", 1, 1),
		metricLog(p, "sessions", 2, 1),
		metricLog(p, "sessions", 3, 1), // count 3 -> 2 points
	}
	stats := Aggregate(bracketsChallenge(), day(1), day(7), logs)
	if stats.Score != 5 {
		t.Errorf("score = %d, want 5 (3 distance + 2 sessions)", stats.Score)
	}
	if !stats.Successful {
		t.Error("expected successful with every metric earning points")
	}
	if stats.PerCategoryDays["distance"] != 2 {
		t.Errorf("distance days = %d, want 2", stats.PerCategoryDays["distance"])
	}
}

func TestAggregateMetricBracketsUnsuccessfulWhenMetricEarnsNothing(t *testing.T) {
	p := uuid.New()
	logs := []*activity.ActivityLog{
		metricLog(p, "distance", 1, 20),
		metricLog(p, "sessions", 1, 1), // count 1, below every bracket
	}
	stats := Aggregate(bracketsChallenge(), day(1), day(7), logs)
	if stats.Score != 3 {
		t.Errorf("score = %d, want 3", stats.Score)
	}
	if stats.Successful {
		t.Error("expected unsuccessful with a pointless metric")
	}
}

func TestAggregateMetricBracketsPriorityWins(t *testing.T) {
	// Overlapping brackets: the higher-priority rule decides.
	ch := &challenge.Challenge{
		Name:        "overlap",
		StartDate:   day(1),
		EndDate:     day(7),
		Granularity: challenge.GranularityWeek,
		Model:       challenge.ModelMetricBrackets,
		Metrics: []challenge.Metric{
			{
				Name:        "distance",
				Aggregation: challenge.AggregationSum,
				Rules: []challenge.ScoringRule{
					{ThresholdMin: 0, Points: 1, Priority: 0},
					{ThresholdMin: 10, Points: 5, Priority: 2},
					{ThresholdMin: 10, Points: 2, Priority: 1},
				},
			},
		},
	}
	stats := Aggregate(ch, day(1), day(7), []*activity.ActivityLog{metricLog(uuid.New(), "distance", 1, 12)})
	if stats.Score != 5 {
		t.Errorf("score = %d, want 5 (priority 2 bracket)", stats.Score)
	}
}

func TestAggregateMetricMaxAndLast(t *testing.T) {
	p := uuid.New()
	mk := func(agg challenge.AggregationMethod) *challenge.Challenge {
		return &challenge.Challenge{
			Name:        "m",
			StartDate:   day(1),
			EndDate:     day(7),
			Granularity: challenge.GranularityWeek,
			Model:       challenge.ModelMetricBrackets,
			Metrics: []challenge.Metric{
				{
					Name:        "weight",
					Aggregation: agg,
					Rules:       []challenge.ScoringRule{{ThresholdMin: 80, Points: 1}},
				},
			},
		}
	}

	l1 := metricLog(p, "weight", 1, 85)
	l1.LoggedAt = day(1)
	l2 := metricLog(p, "weight", 3, 75)
	l2.LoggedAt = day(3)
	logs := []*activity.ActivityLog{l1, l2}

	if stats := Aggregate(mk(challenge.AggregationMax), day(1), day(7), logs); stats.Score != 1 {
		t.Errorf("max: score = %d, want 1 (max 85 >= 80)", stats.Score)
	}
	// Last takes the latest logged value, 75, below the bracket.
	if stats := Aggregate(mk(challenge.AggregationLast), day(1), day(7), logs); stats.Score != 0 {
		t.Errorf("last: score = %d, want 0", stats.Score)
	}
}

func TestAggregateEmptyWindow(t *testing.T) {
	stats := Aggregate(capsChallenge(), day(7), day(1), nil)
	if stats.Score != 0 {
		t.Errorf("inverted window score = %d, want 0", stats.Score)
	}
	if stats.Successful {
		t.Error("inverted window cannot be successful with non-zero thresholds")
	}
}
