package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	InvitationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invitations_sent_total",
			Help: "Invitation emails processed, by outcome",
		},
		[]string{"result"}, // result: sent, failed
	)

	SummariesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "problem_statement_summaries_total",
			Help: "Problem statement summaries generated, by summarizer",
		},
		[]string{"source"}, // source: openai, stub
	)
)

// RecordHTTPRequestDuration observes one finished request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementInvitation counts one invitation outcome.
func IncrementInvitation(result string) {
	InvitationsSent.WithLabelValues(result).Inc()
}

// IncrementSummary counts one generated summary.
func IncrementSummary(source string) {
	SummariesGenerated.WithLabelValues(source).Inc()
}
