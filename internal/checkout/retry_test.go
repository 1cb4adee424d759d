package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Supermili365/expirapp/internal/upstream"
)

func fastPolicy() Policy {
	return Policy{MaxAttempts: 3, Base: time.Millisecond}
}

func TestRetry_ServerErrorRetriedUpToLimit(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return &upstream.StatusError{Code: 503, Body: "unavailable"}
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls, "a 503 gets every allowed attempt")
}

func TestRetry_ServerErrorEventuallySucceeds(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		if calls < 2 {
			return &upstream.StatusError{Code: 503}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls, "retried at least once before succeeding")
}

func TestRetry_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return &upstream.StatusError{Code: 400, Body: "bad payload"}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls, "4xx must fail immediately")
}

func TestRetry_TransportErrorRetried(t *testing.T) {
	calls := 0
	boom := errors.New("connection refused")
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom, "last observed error is reported")
	assert.Equal(t, 3, calls)
}

func TestRetry_ContextCancelStopsBackoffWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{MaxAttempts: 3, Base: time.Hour}

	done := make(chan error, 1)
	go func() {
		done <- p.Do(ctx, func() error {
			calls++
			return &upstream.StatusError{Code: 500}
		})
	}()
	cancel()

	select {
	case err := <-done:
		assert.Error(t, err)
		assert.LessOrEqual(t, calls, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not observe cancellation")
	}
}
