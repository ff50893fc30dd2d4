// Package metrics holds the Prometheus instruments and HTTP middleware.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and retrieval metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partdex",
			Name:      "retrieval_requests_total",
			Help:      "Retrieval backend calls by outcome",
		},
		[]string{"backend", "status"}, // backend: lexical|vector|embedding|analyzer
	)

	RetrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "partdex",
			Name:      "retrieval_duration_seconds",
			Help:      "Retrieval backend call duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend"},
	)

	RetrievalDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partdex",
			Name:      "retrieval_degraded_total",
			Help:      "Backend failures recovered to neutral defaults",
		},
		[]string{"backend"},
	)

	FusionMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "partdex",
			Name:      "fusion_matches",
			Help:      "Fused result count per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	ClarificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "partdex",
			Name:      "clarifications_total",
			Help:      "Responses answered with a clarifying question",
		},
	)
)

// Embedding and completion metrics.
var (
	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partdex",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	AnalysisVerdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partdex",
			Name:      "analysis_verdicts_total",
			Help:      "Query analysis verdicts by status",
		},
		[]string{"status"}, // specific|ambiguous|fallback
	)
)

var registered bool

// Register registers all partdex metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(
		RetrievalRequestsTotal,
		RetrievalDuration,
		RetrievalDegradedTotal,
		FusionMatches,
		ClarificationsTotal,
		EmbeddingTokensTotal,
		AnalysisVerdictsTotal,
	)
	registered = true
}
