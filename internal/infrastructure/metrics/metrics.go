package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Companion API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Token counters
	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "tokens_prompt_total",
			Help:      "Total prompt tokens consumed",
		},
		[]string{"model"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "tokens_completion_total",
			Help:      "Total completion tokens generated",
		},
		[]string{"model"},
	)

	// Generation call failures
	GenerationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "generation_errors_total",
			Help:      "Total generation call failures",
		},
		[]string{"model"},
	)

	// Generation call duration
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "generation_duration_seconds",
			Help:      "Generation call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	// Chat turns
	TurnsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "turns_created_total",
			Help:      "Chat turns created",
		},
		[]string{"persona"},
	)

	// Journal entries
	JournalsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "journals_created_total",
			Help:      "Journal entries created",
		},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "friendbot",
			Subsystem: "companion_api",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"operation", "status"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordTokens records token usage for a completion request
func RecordTokens(model string, promptTokens, completionTokens int) {
	TokensPromptTotal.WithLabelValues(model).Add(float64(promptTokens))
	TokensCompletionTotal.WithLabelValues(model).Add(float64(completionTokens))
}

// RecordGeneration records one generation call outcome
func RecordGeneration(model string, durationSec float64, failed bool) {
	GenerationDuration.WithLabelValues(model).Observe(durationSec)
	if failed {
		GenerationErrorsTotal.WithLabelValues(model).Inc()
	}
}
