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
			Help: "Total number of task store operations",
		},
		[]string{"operation", "outcome"}, // outcome: ok, duplicate, not_found, error
	)

	SessionValidationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_validation_count",
			Help: "Total number of session validations",
		},
		[]string{"outcome"}, // outcome: ok, invalid
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementTaskOperation(operation, outcome string) {
	TaskOperationCount.WithLabelValues(operation, outcome).Inc()
}

func IncrementSessionValidation(outcome string) {
	SessionValidationCount.WithLabelValues(outcome).Inc()
}
