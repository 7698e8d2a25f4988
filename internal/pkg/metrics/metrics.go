// Package metrics holds the Prometheus collectors of the ordering service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering"

var (
	// RequestsTotal counts HTTP requests by route and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// OrderErrors counts rejected order operations by error code.
	OrderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_errors_total",
			Help:      "Order operations rejected, by error code",
		},
		[]string{"code"},
	)

	// SideEffectFailures counts post-commit side effects that failed, by kind.
	SideEffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Post-commit side effects that failed",
		},
		[]string{"kind"},
	)

	OutboxPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_messages_published_total",
			Help:      "Outbox messages published to the broker",
		},
	)

	// CircuitBreakerState is 0 when closed, 1 when open and 2 when half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit"},
	)

	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_failures_total",
			Help:      "Calls that failed or were refused by a circuit breaker",
		},
		[]string{"circuit"},
	)
)
