// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nlp_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlp_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// IntentPredictionsTotal tracks intent predictions by label.
	IntentPredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlp_intent_predictions_total",
			Help: "Total intent predictions by label",
		},
		[]string{"intent"},
	)

	// ClassifierFailuresTotal counts classifier invocations that failed and
	// were substituted with the general intent.
	ClassifierFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlp_classifier_failures_total",
			Help: "Total classifier failures substituted with the general intent",
		},
	)

	// ToolCallsTotal tracks backend tool calls by action and outcome.
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlp_tool_calls_total",
			Help: "Total backend tool calls",
		},
		[]string{"action", "status"},
	)

	// ToolCallDuration tracks backend tool call duration.
	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nlp_tool_call_duration_seconds",
			Help:    "Backend tool call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"action"},
	)

	// SuggestionsTotal tracks which suggestion strategy served each turn.
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlp_suggestions_total",
			Help: "Suggestion strategy usage by path",
		},
		[]string{"strategy"},
	)

	// DegradedResponsesTotal counts requests that hit the dispatcher's
	// degraded-response boundary.
	DegradedResponsesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlp_degraded_responses_total",
			Help: "Total responses produced by the degraded-response boundary",
		},
	)

	// ActiveSessions tracks sessions held in the in-memory context store.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nlp_active_sessions",
			Help: "Number of sessions in the in-memory context store",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordToolCall records metrics for one backend tool call.
func RecordToolCall(action, status string, duration float64) {
	ToolCallsTotal.WithLabelValues(action, status).Inc()
	ToolCallDuration.WithLabelValues(action).Observe(duration)
}
