package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"patron-manager/core/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_Add(t *testing.T) {
	s := scheduler.New(zap.NewNop())

	require.NoError(t, s.Add("patreon", "@every 1h", func(context.Context) error { return nil }))
	assert.ErrorContains(t, s.Add("patreon", "@every 1h", func(context.Context) error { return nil }), "already scheduled")
	assert.Error(t, s.Add("bad", "not a spec", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("off", "", func(context.Context) error { return nil }))

	assert.ElementsMatch(t, []string{"patreon"}, s.Jobs())
}

func TestScheduler_RunOnStart(t *testing.T) {
	s := scheduler.New(zap.NewNop())
	var calls atomic.Int32

	require.NoError(t, s.Add("ok", "@every 1h", func(context.Context) error {
		calls.Add(1)
		return nil
	}))
	require.NoError(t, s.Add("failing", "@every 1h", func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}))

	s.Start(true)
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
