// Package resilience provides opt-in fault-tolerance wrappers for API
// calls: retry with exponential backoff and a circuit breaker. The
// resource clients never retry on their own; callers that want a retry
// policy wrap individual calls with Do.
package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds resilience parameters.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
}

// RetryWithBackoff executes fn with exponential backoff + jitter.
// It respects context cancellation.
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * cfg.InitialBackoff
			jitter := time.Duration(rand.Int63n(int64(backoff/2) + 1))
			wait := backoff + jitter

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return lastErr
}

// NewCircuitBreaker creates a circuit breaker with sensible defaults
// for a flaky backend.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // half-open: allow 3 requests
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

// Do wraps a single typed API call with the circuit breaker and retry
// policy. The zero-value breaker pointer means "retry only".
func Do[T any](ctx context.Context, cfg Config, cb *gobreaker.CircuitBreaker, call func(context.Context) (T, error)) (T, error) {
	var out T

	run := func() error {
		var err error
		out, err = call(ctx)
		return err
	}

	if cb == nil {
		err := RetryWithBackoff(ctx, cfg, run)
		return out, err
	}

	_, err := cb.Execute(func() (any, error) {
		return nil, RetryWithBackoff(ctx, cfg, run)
	})
	return out, err
}
