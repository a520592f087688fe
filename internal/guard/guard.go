// Package guard wraps external provider calls with deadlines, pacing and
// circuit breaking so that a misbehaving provider can slow a batch down but
// never hang or abort it.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// TimeoutError marks an external call that exceeded its deadline. The batch
// treats it as a normal per-phase failure, not a fatal condition.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Op, e.Timeout)
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// WithTimeout runs fn under a hard deadline. A context expiry is converted
// into a typed TimeoutError so callers can distinguish a hang from a
// provider-reported failure.
func WithTimeout(ctx context.Context, timeout time.Duration, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := fn(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
		return &TimeoutError{Op: op, Timeout: timeout}
	}
	return err
}

// Pacer enforces a fixed delay between consecutive items to keep the
// aggregate request rate under provider quotas.
type Pacer struct {
	delay time.Duration
}

// NewPacer creates a pacer with the given inter-item delay.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait sleeps for the configured delay or until ctx is cancelled,
// whichever comes first.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Breaker wraps provider calls in a circuit breaker. After a run of
// consecutive failures the breaker opens and further calls fail fast until
// the cool-down elapses, which stops a dead provider from eating the
// per-term timeout budget for every remaining word in a batch.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker creates a breaker for the named provider. It opens after five
// consecutive failures and probes again after 30 seconds. Errors matching
// one of the ignorable sentinels still reach the caller but do not count
// as provider failures: a rejected input says nothing about provider
// health.
func NewBreaker(name string, ignorable ...error) *Breaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			for _, sentinel := range ignorable {
				if errors.Is(err, sentinel) {
					return true
				}
			}
			return false
		},
	})
	return &Breaker{cb: cb}
}

// Do executes fn through the circuit breaker.
func (b *Breaker) Do(fn func() error) error {
	if b == nil {
		return fn()
	}
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// State returns the current breaker state for logging.
func (b *Breaker) State() string {
	return b.cb.State().String()
}
