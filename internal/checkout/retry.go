package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/Supermili365/expirapp/internal/upstream"
)

// Policy bounds retries of one store submission. Server-side failures
// (5xx) and transport errors are retried with exponential backoff
// (base, 2*base, ...); client errors (4xx) stop immediately. No jitter.
type Policy struct {
	MaxAttempts int
	Base        time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, Base: time.Second}
}

func retryable(err error) bool {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	// Transport failure: the request may never have reached the backend.
	return true
}

// Do runs fn up to MaxAttempts times, sleeping between retryable failures.
// The wait honours ctx; an in-flight attempt is never interrupted here.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == attempts-1 {
			return lastErr
		}

		delay := p.Base << attempt // base, 2*base, 4*base, ...
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}
