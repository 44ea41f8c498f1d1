// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesTotal tracks inbound Telegram updates by kind.
	UpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total inbound Telegram updates",
		},
		[]string{"kind"},
	)

	// InterviewsStarted tracks interview sessions created.
	InterviewsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interviews_started_total",
			Help: "Total interview sessions created",
		},
	)

	// InterviewsCompleted tracks interview sessions that reached the completed state.
	InterviewsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interviews_completed_total",
			Help: "Total interview sessions completed",
		},
	)

	// VerificationsTotal tracks membership verification attempts by result.
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_verifications_total",
			Help: "Total membership verification attempts",
		},
		[]string{"result"},
	)

	// LLMRequestDuration tracks model call duration.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM request duration in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"model", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// TurnsTotal tracks interview turns appended by role.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_turns_total",
			Help: "Total interview turns appended",
		},
		[]string{"role"},
	)

	// BroadcastsTotal tracks broadcast deliveries by status.
	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_messages_total",
			Help: "Total broadcast delivery attempts",
		},
		[]string{"status"},
	)
)

// RecordLLMCall records metrics for a single model invocation.
func RecordLLMCall(model, status string, durationSec float64, tokensIn, tokensOut int) {
	LLMRequestDuration.WithLabelValues(model, status).Observe(durationSec)
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}

// RecordVerification records a membership verification attempt.
func RecordVerification(verified bool) {
	result := "rejected"
	if verified {
		result = "verified"
	}
	VerificationsTotal.WithLabelValues(result).Inc()
}
