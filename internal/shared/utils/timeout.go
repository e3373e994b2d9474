package utils

import (
	"context"
	"time"

	"synagogue-manager/internal/shared/errors"
)

// RaceTimeout races fn against a timer. If the timer fires first, a timeout
// error is returned and the zero value of T. The underlying call is NOT
// cancelled; it keeps running in its own goroutine and its eventual result
// is discarded.
func RaceTimeout[T any](ctx context.Context, operation string, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	// Buffered so the late finisher never blocks after the race is lost.
	done := make(chan result, 1)
	go func() {
		value, err := fn(ctx)
		done <- result{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case res := <-done:
		return res.value, res.err
	case <-timer.C:
		return zero, errors.NewTimeoutError(operation)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
