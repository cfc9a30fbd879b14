package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics is the process-wide set of counters/histograms tracking
// pipeline throughput and outcomes, grounded in the teacher's
// internal/server/metrics.go shape. Unlike the teacher it is not registered
// against the global default registerer: Run takes no dependency on a
// package-level singleton (spec.md §9), and the caller decides whether/where
// to expose the registry (no promhttp wiring lives in this module — there is
// no server in scope).
type PipelineMetrics struct {
	Registry *prometheus.Registry

	documentsProcessed *prometheus.CounterVec
	runDuration        prometheus.Histogram
	nextActionTotal    *prometheus.CounterVec
	classificationType *prometheus.CounterVec
}

// NewPipelineMetrics builds a PipelineMetrics with its own registry under
// the given namespace.
func NewPipelineMetrics(namespace string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	m := &PipelineMetrics{
		Registry: registry,
		documentsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "Total number of Expediente documents run through the pipeline.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a full pipeline Run.",
			Buckets:   prometheus.DefBuckets,
		}),
		nextActionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fusion_next_action_total",
			Help:      "Fusion NextAction outcomes by label.",
		}, []string{"next_action"}),
		classificationType: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_type_total",
			Help:      "RequirementType outcomes by label.",
		}, []string{"requirement_type"}),
	}

	registry.MustRegister(m.documentsProcessed, m.runDuration, m.nextActionTotal, m.classificationType)
	return m
}

// observeRun records one completed Run: its duration, its fusion
// NextAction, and its assigned RequirementType.
func (m *PipelineMetrics) observeRun(started time.Time, result Result, err error) {
	if m == nil {
		return
	}
	m.runDuration.Observe(time.Since(started).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.documentsProcessed.WithLabelValues(outcome).Inc()

	if err == nil {
		m.nextActionTotal.WithLabelValues(result.Fusion.NextAction.String()).Inc()
		m.classificationType.WithLabelValues(result.Classification.Type.String()).Inc()
	}
}
