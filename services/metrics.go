package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_computations_total",
			Help: "Total number of scoring computations",
		},
		[]string{"operation", "model"},
	)
	computationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_computation_duration_seconds",
			Help:    "Duration of scoring computations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	logsAggregated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_logs_aggregated_total",
			Help: "Total number of activity logs fed through the aggregator",
		},
	)
)

// InitPrometheus registers the engine metrics. Call this from the embedding
// application; serving /metrics is the embedder's concern.
func InitPrometheus() {
	prometheus.MustRegister(computationsTotal)
	prometheus.MustRegister(computationDuration)
	prometheus.MustRegister(logsAggregated)
}

func observeComputation(operation, model string, start time.Time, logCount int) {
	computationsTotal.WithLabelValues(operation, model).Inc()
	computationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	logsAggregated.Add(float64(logCount))
}
