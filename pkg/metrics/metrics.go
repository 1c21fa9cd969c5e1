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

	TaskOperationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operation_count",
			Help: "Total number of task operations",
		},
		[]string{"operation", "outcome"}, // operation: list, create, update, delete
	)

	AuthAttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempt_count",
			Help: "Total number of register/login attempts",
		},
		[]string{"endpoint", "outcome"},
	)
)

// RecordHTTPRequestDuration records the latency of one HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementTaskOperation counts one task operation by outcome.
func IncrementTaskOperation(operation, outcome string) {
	TaskOperationCount.WithLabelValues(operation, outcome).Inc()
}

// IncrementAuthAttempt counts one auth attempt by outcome.
func IncrementAuthAttempt(endpoint, outcome string) {
	AuthAttemptCount.WithLabelValues(endpoint, outcome).Inc()
}
