// Package metrics provides Prometheus metrics for reconciliation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"partsync/internal/domain"
	"partsync/internal/property"
	"partsync/internal/reconcile"
)

var (
	// Run metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partsync_runs_total",
			Help: "Total number of reconciliation runs",
		},
		[]string{"kind", "source"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partsync_run_duration_seconds",
			Help:    "Time taken to reconcile and map one document",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"kind"},
	)

	// Outcome metrics
	ConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partsync_conflicts_total",
			Help: "Total number of part/drawing conflicts found",
		},
		[]string{"field"},
	)

	GapFillsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partsync_gap_fills_total",
			Help: "Total number of gap-fills proposed from drawings",
		},
		[]string{"field"},
	)

	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partsync_property_suggestions_total",
			Help: "Total number of property suggestions generated",
		},
		[]string{"category"},
	)

	UnassignedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "partsync_unassigned_suggestions_total",
			Help: "Total number of suggestions that could not be placed into the schema",
		},
	)

	// Review metrics
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partsync_decisions_total",
			Help: "Total number of operator decisions recorded",
		},
		[]string{"decision"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partsync_exports_total",
			Help: "Total number of review sheet exports",
		},
		[]string{"format", "status"},
	)
)

// RecordRun records the outcome of one reconcile + map pass.
func RecordRun(kind domain.DocumentKind, source string, res *reconcile.Result, set *property.SuggestionSet, duration time.Duration) {
	RunsTotal.WithLabelValues(string(kind), source).Inc()
	RunDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
	if res != nil {
		for _, c := range res.Conflicts {
			ConflictsTotal.WithLabelValues(string(c.Field)).Inc()
		}
		for _, g := range res.GapFills {
			GapFillsTotal.WithLabelValues(string(g.Field)).Inc()
		}
	}
	if set != nil {
		for _, s := range set.Suggestions {
			SuggestionsTotal.WithLabelValues(string(s.Category)).Inc()
		}
		UnassignedTotal.Add(float64(len(set.Unassigned)))
	}
}

// RecordDecision records an accept/reject verdict.
func RecordDecision(d domain.Decision) {
	DecisionsTotal.WithLabelValues(string(d)).Inc()
}

// RecordExport records a review sheet export attempt.
func RecordExport(format domain.ExportFormat, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ExportsTotal.WithLabelValues(string(format), status).Inc()
}
