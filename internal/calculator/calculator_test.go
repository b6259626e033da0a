package calculator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chaos-world/status-core/internal/cache"
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/clock"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/stats"
	mockstats "github.com/chaos-world/status-core/internal/stats/mock"
	"github.com/chaos-world/status-core/internal/status"
)

var (
	burningMagnitude = catalog.ScalingRule{Base: 15.0, ScalingFactor: 0.1, ScalingStat: "intelligence", Min: 0, Max: 100}
	burningDuration  = catalog.ScalingRule{Base: 10.0, ScalingFactor: 0.05, ScalingStat: "wisdom", Min: 0, Max: 60}
)

func TestCalculator_Magnitude(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers context stats over provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mockstats.NewMockProvider(ctrl)
		// Provider must not be consulted when the context carries the stat
		calc := New(&Config{StatProvider: provider})

		sctx := &status.Context{ActorID: "actor-1", Stats: map[string]float64{"intelligence": 50}}
		v, err := calc.Magnitude(ctx, "fire_burning", burningMagnitude, "actor-1", sctx)
		require.NoError(t, err)
		assert.InDelta(t, 20.0, v, 1e-9)
	})

	t.Run("falls back to provider", func(t *testing.T) {
		provider := stats.NewMapProvider(map[string]map[string]float64{
			"actor-1": {"intelligence": 50},
		})
		calc := New(&Config{StatProvider: provider})

		v, err := calc.Magnitude(ctx, "fire_burning", burningMagnitude, "actor-1", &status.Context{ActorID: "actor-1"})
		require.NoError(t, err)
		assert.InDelta(t, 20.0, v, 1e-9)
	})

	t.Run("missing stat defaults to zero", func(t *testing.T) {
		calc := New(&Config{})

		v, err := calc.Magnitude(ctx, "fire_burning", burningMagnitude, "actor-1", nil)
		require.NoError(t, err)
		assert.InDelta(t, 15.0, v, 1e-9)
	})

	t.Run("cache hit skips recomputation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mockstats.NewMockProvider(ctrl)
		provider.EXPECT().
			GetStatValue(gomock.Any(), "actor-1", "intelligence").
			Return(50.0, nil).
			Times(1)

		calc := New(&Config{
			StatProvider: provider,
			Cache:        cache.NewMemory(clock.NewSystem()),
			TTL:          time.Minute,
		})

		for i := 0; i < 3; i++ {
			v, err := calc.Magnitude(ctx, "fire_burning", burningMagnitude, "actor-1", nil)
			require.NoError(t, err)
			assert.InDelta(t, 20.0, v, 1e-9)
		}
	})

	t.Run("provider failure is a system error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mockstats.NewMockProvider(ctrl)
		provider.EXPECT().
			GetStatValue(gomock.Any(), "actor-1", "intelligence").
			Return(0.0, errors.New("stats service down"))

		calc := New(&Config{StatProvider: provider})

		_, err := calc.Magnitude(ctx, "fire_burning", burningMagnitude, "actor-1", nil)
		require.Error(t, err)
		assert.True(t, engerr.IsUnavailable(err))
		assert.Equal(t, "actor-1", engerr.GetMeta(err)["actor_id"])
	})
}

func TestCalculator_Duration(t *testing.T) {
	ctx := context.Background()
	calc := New(&Config{})

	d, err := calc.Duration(ctx, "fire_burning", burningDuration, "actor-1", &status.Context{
		ActorID: "actor-1",
		Stats:   map[string]float64{"wisdom": 40},
	})
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, d)
}

func TestCalculator_MagnitudeAndDurationCachedIndependently(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemory(clock.NewSystem())
	calc := New(&Config{Cache: mem, TTL: time.Minute})

	sctx := &status.Context{
		ActorID: "actor-1",
		Stats:   map[string]float64{"intelligence": 50, "wisdom": 40},
	}

	_, err := calc.Magnitude(ctx, "fire_burning", burningMagnitude, "actor-1", sctx)
	require.NoError(t, err)
	_, err = calc.Duration(ctx, "fire_burning", burningDuration, "actor-1", sctx)
	require.NoError(t, err)

	_, magCached := mem.Get(ctx, cache.Key("magnitude", "fire_burning", "actor-1"))
	_, durCached := mem.Get(ctx, cache.Key("duration", "fire_burning", "actor-1"))
	assert.True(t, magCached)
	assert.True(t, durCached)

	calc.Invalidate(ctx, "fire_burning", "actor-1")
	_, magCached = mem.Get(ctx, cache.Key("magnitude", "fire_burning", "actor-1"))
	assert.False(t, magCached)
}
