package utils

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"synagogue-manager/internal/shared/errors"
)

func TestRaceTimeout_FastOperationWins(t *testing.T) {
	v, err := RaceTimeout(context.Background(), "insert", 200*time.Millisecond, func(ctx context.Context) (string, error) {
		return "doc-1", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "doc-1", v)
}

func TestRaceTimeout_TimerWins(t *testing.T) {
	release := make(chan struct{})
	var finished atomic.Bool

	_, err := RaceTimeout(context.Background(), "insert", 20*time.Millisecond, func(ctx context.Context) (string, error) {
		<-release
		finished.Store(true)
		return "late", nil
	})
	assert.Error(t, err)
	assert.True(t, errors.IsTimeout(err))

	// The losing operation is not cancelled; it completes after the race.
	assert.False(t, finished.Load())
	close(release)
	assert.Eventually(t, finished.Load, time.Second, 5*time.Millisecond)
}

func TestRaceTimeout_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RaceTimeout(ctx, "getAll", time.Second, func(ctx context.Context) (int, error) {
		select {} // never returns
	})
	assert.ErrorIs(t, err, context.Canceled)
}
