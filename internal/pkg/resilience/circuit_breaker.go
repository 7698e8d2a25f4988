// Package resilience guards calls to remote collaborators with circuit breakers.
package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"ordering/internal/pkg/metrics"
)

// BreakerSettings tunes a circuit breaker. Zero values fall back to defaults.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MaxRequests == 0 {
		s.MaxRequests = 3
	}
	if s.Interval == 0 {
		s.Interval = 15 * time.Second
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MinRequests == 0 {
		s.MinRequests = 3
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	return s
}

// CircuitBreaker wraps gobreaker and reports its state to Prometheus.
type CircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

func NewCircuitBreaker(name string, settings BreakerSettings, logger *slog.Logger) *CircuitBreaker {
	s := settings.withDefaults()
	logger = logger.With("component", "circuit_breaker", "circuit", name)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			logger.Warn("circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(gobreaker.StateClosed))

	return &CircuitBreaker{cb: cb, name: name}
}

// Call runs fn through the breaker. An open breaker fails fast without calling fn.
func (b *CircuitBreaker) Call(fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	if err != nil {
		metrics.CircuitBreakerFailures.WithLabelValues(b.name).Inc()
		return b.describe(err)
	}
	return nil
}

func (b *CircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *CircuitBreaker) describe(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return fmt.Errorf("circuit breaker %s is open: %w", b.name, err)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("circuit breaker %s is half-open and busy: %w", b.name, err)
	default:
		return err
	}
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
