package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collaborator and panel Prometheus metrics.
var (
	CollaboratorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recopanel",
			Name:      "collaborator_requests_total",
			Help:      "Total number of requests sent to the recommendation service",
		},
		[]string{"endpoint", "status"},
	)

	CollaboratorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recopanel",
			Name:      "collaborator_request_duration_seconds",
			Help:      "Recommendation service request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	CollaboratorErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recopanel",
			Name:      "collaborator_errors_total",
			Help:      "Total recommendation service errors",
		},
		[]string{"endpoint", "error_type"}, // "transport" / "status" / "decode"
	)

	PanelSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recopanel",
			Name:      "panel_submissions_total",
			Help:      "Query panel submissions by payload kind",
		},
		[]string{"kind"}, // "text" / "url" / "ignored"
	)

	PanelOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recopanel",
			Name:      "panel_outcomes_total",
			Help:      "Query panel request outcomes",
		},
		[]string{"outcome"}, // "succeeded" / "failed" / "stale"
	)

	PanelResultItems = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recopanel",
			Name:      "panel_result_items",
			Help:      "Number of items returned per successful request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
)

var registerOnce sync.Once

// RegisterCollaboratorMetrics registers collaborator and panel metrics. Call from main.
func RegisterCollaboratorMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(CollaboratorRequestsTotal)
		prometheus.MustRegister(CollaboratorRequestDuration)
		prometheus.MustRegister(CollaboratorErrorsTotal)
		prometheus.MustRegister(PanelSubmissionsTotal)
		prometheus.MustRegister(PanelOutcomesTotal)
		prometheus.MustRegister(PanelResultItems)
	})
}
