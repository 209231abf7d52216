// ================================
// metrics/metrics.go - Self-monitoring for the dashboard pipeline
// ================================

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeFormatError = "format_error"
	OutcomeError       = "error"
)

// Dataset load results.
const (
	LoadHit   = "hit"
	LoadMiss  = "miss"
	LoadError = "error"
)

var (
	// Render pipeline metrics
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enomdash_pipeline_runs_total",
			Help: "Total number of view renders by outcome",
		},
		[]string{"view", "outcome"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enomdash_pipeline_duration_seconds",
			Help:    "Render pipeline duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"view"},
	)

	RowsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enomdash_rows_dropped_total",
			Help: "Rows dropped by coercion or unusable periods",
		},
		[]string{"view"},
	)

	StaleSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enomdash_stale_selections_total",
			Help: "Selections repaired because they were no longer valid",
		},
		[]string{"view", "dimension"},
	)

	// Dataset cache metrics
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enomdash_dataset_loads_total",
			Help: "Dataset cache lookups",
		},
		[]string{"source", "result"}, // hit/miss/error
	)
)

// RecordRun records one render pass.
func RecordRun(view, outcome string, elapsed time.Duration) {
	PipelineRunsTotal.WithLabelValues(view, outcome).Inc()
	PipelineDuration.WithLabelValues(view).Observe(elapsed.Seconds())
}

// RecordDropped adds the rows a render pass could not use.
func RecordDropped(view string, n int) {
	if n > 0 {
		RowsDroppedTotal.WithLabelValues(view).Add(float64(n))
	}
}

// RecordStale counts a repaired selection.
func RecordStale(view, dimension string) {
	StaleSelectionsTotal.WithLabelValues(view, dimension).Inc()
}

// RecordLoad counts a dataset cache lookup.
func RecordLoad(source, result string) {
	DatasetLoadsTotal.WithLabelValues(source, result).Inc()
}
