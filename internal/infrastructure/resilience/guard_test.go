package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(name string) Config {
	cfg := DefaultConfig(name)
	cfg.RateLimit = 0
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	return cfg
}

func TestGuard_Do(t *testing.T) {
	t.Run("passes through success", func(t *testing.T) {
		g := NewGuard(testConfig("ok"), zap.NewNop(), nil)

		called := false
		err := g.Do(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("returns provider error", func(t *testing.T) {
		g := NewGuard(testConfig("fail"), zap.NewNop(), nil)
		boom := errors.New("boom")

		err := g.Do(context.Background(), func(ctx context.Context) error { return boom })

		assert.ErrorIs(t, err, boom)
	})

	t.Run("applies deadline", func(t *testing.T) {
		cfg := testConfig("slow")
		cfg.Timeout = 20 * time.Millisecond
		g := NewGuard(cfg, zap.NewNop(), nil)

		err := g.Do(context.Background(), func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestGuard_OpensCircuit(t *testing.T) {
	var transitions []gobreaker.State
	g := NewGuard(testConfig("flaky"), zap.NewNop(), func(name string, from, to gobreaker.State) {
		transitions = append(transitions, to)
	})
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		_ = g.Do(context.Background(), func(ctx context.Context) error { return boom })
	}

	assert.Equal(t, "flaky", g.Name())
	assert.Equal(t, gobreaker.StateOpen, g.State())
	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)

	called := false
	err := g.Do(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestGuard_RateLimiterHonoursDeadline(t *testing.T) {
	cfg := testConfig("limited")
	cfg.RateLimit = 0.001
	cfg.Burst = 1
	cfg.Timeout = 20 * time.Millisecond
	g := NewGuard(cfg, zap.NewNop(), nil)

	require.NoError(t, g.Do(context.Background(), func(ctx context.Context) error { return nil }))

	err := g.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}
