// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts terminal outcomes by status (success, failed, rejected).
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gqlbatch_operations_total",
			Help: "Total number of operations that reached a terminal outcome.",
		},
		[]string{"status"},
	)

	// AttemptsTotal counts individual transport attempts, including retries.
	AttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gqlbatch_request_attempts_total",
			Help: "Total number of HTTP requests sent, including retries.",
		},
	)

	// InFlight tracks the number of requests currently outstanding. It is
	// bounded by the configured concurrency limit.
	InFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gqlbatch_in_flight_requests",
			Help: "Number of requests currently outstanding.",
		},
	)
)
