package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Marketplace backend call duration (seconds)
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_upstream_request_duration_seconds",
			Help:    "Marketplace backend request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"endpoint", "status"},
	)

	// Dispatched user actions by result: ok, rejected, blocked, failed
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_actions_total",
			Help: "Total number of user actions dispatched",
		},
		[]string{"action", "result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route", "status"},
	)
)

func RecordUpstream(endpoint, status string, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())
}

func RecordAction(action, result string) {
	ActionsTotal.WithLabelValues(action, result).Inc()
}

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
