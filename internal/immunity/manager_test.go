package immunity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaos-world/status-core/internal/calculator"
	"github.com/chaos-world/status-core/internal/clock"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/events"
	"github.com/chaos-world/status-core/internal/status"
	"github.com/chaos-world/status-core/internal/testutils"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(e events.Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *recordingBus) count(t events.Type) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestImmunities() (*Manager, *recordingBus, *clock.Fixed) {
	clk := clock.NewFixed(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	bus := &recordingBus{}
	m := New(&Config{
		Calculator: calculator.New(&calculator.Config{}),
		Clock:      clk,
		Bus:        bus,
	})
	return m, bus, clk
}

func TestImmunityManager_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and gates", func(t *testing.T) {
		m, bus, clk := newTestImmunities()
		def := testutils.StunWardImmunity()

		res, err := m.Apply(ctx, "actor-1", &def, nil)
		require.NoError(t, err)
		require.True(t, res.Applied)
		assert.InDelta(t, 1.0, res.Magnitude, 1e-9)
		assert.Equal(t, 30*time.Second, res.Duration)
		assert.Equal(t, clk.Now().Add(30*time.Second), res.ExpiresAt)

		assert.True(t, m.IsImmune("actor-1", "shock_stun"))
		assert.False(t, m.IsImmune("actor-1", "fire_burning"))
		assert.False(t, m.IsImmune("actor-2", "shock_stun"))
		assert.Equal(t, 1, bus.count(events.ImmunityApplied))
	})

	t.Run("immunities accumulate without conflict resolution", func(t *testing.T) {
		m, _, _ := newTestImmunities()
		stunWard := testutils.StunWardImmunity()
		fireWard := testutils.FireWardImmunity()

		_, err := m.Apply(ctx, "actor-1", &stunWard, nil)
		require.NoError(t, err)
		_, err = m.Apply(ctx, "actor-1", &stunWard, nil)
		require.NoError(t, err)
		_, err = m.Apply(ctx, "actor-1", &fireWard, nil)
		require.NoError(t, err)

		assert.Len(t, m.Get("actor-1"), 3)
		assert.True(t, m.IsImmune("actor-1", "shock_stun"))
		assert.True(t, m.IsImmune("actor-1", "fire_burning"))
	})

	t.Run("no targets rejected", func(t *testing.T) {
		m, _, _ := newTestImmunities()
		def := testutils.StunWardImmunity()
		def.Targets = nil

		_, err := m.Apply(ctx, "actor-1", &def, nil)
		require.Error(t, err)
		assert.True(t, engerr.IsValidation(err))
	})
}

func TestImmunityManager_Expiry(t *testing.T) {
	ctx := context.Background()
	m, _, clk := newTestImmunities()
	def := testutils.StunWardImmunity() // 30s duration

	_, err := m.Apply(ctx, "actor-1", &def, nil)
	require.NoError(t, err)
	require.True(t, m.IsImmune("actor-1", "shock_stun"))

	clk.Advance(31 * time.Second)
	assert.False(t, m.IsImmune("actor-1", "shock_stun"))
	assert.Empty(t, m.Get("actor-1"))
}

func TestImmunityManager_Break(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates and pins expiry to now", func(t *testing.T) {
		m, bus, _ := newTestImmunities()
		def := testutils.StunWardImmunity()

		_, err := m.Apply(ctx, "actor-1", &def, nil)
		require.NoError(t, err)

		res := m.Break("actor-1", "stun_ward")
		assert.True(t, res.Removed)
		assert.False(t, m.IsImmune("actor-1", "shock_stun"))
		assert.Equal(t, 1, bus.count(events.ImmunityBroken))
	})

	t.Run("idempotent", func(t *testing.T) {
		m, _, _ := newTestImmunities()
		def := testutils.StunWardImmunity()

		_, err := m.Apply(ctx, "actor-1", &def, nil)
		require.NoError(t, err)

		require.True(t, m.Break("actor-1", "stun_ward").Removed)

		second := m.Break("actor-1", "stun_ward")
		assert.False(t, second.Removed)
		assert.Equal(t, status.ReasonNotFound, second.Reason)
	})

	t.Run("absent immunity is benign", func(t *testing.T) {
		m, _, _ := newTestImmunities()
		res := m.Break("actor-1", "stun_ward")
		assert.False(t, res.Removed)
		assert.Equal(t, status.ReasonNotFound, res.Reason)
	})
}

func TestImmunityManager_TickSweepDestroysExpired(t *testing.T) {
	ctx := context.Background()
	m, bus, clk := newTestImmunities()
	def := testutils.StunWardImmunity() // 30s duration

	const grants = 100
	for i := 0; i < grants; i++ {
		_, err := m.Apply(ctx, "actor-1", &def, nil)
		require.NoError(t, err)
	}
	require.Len(t, m.Get("actor-1"), grants)

	clk.Advance(31 * time.Second)

	// The per-tick evaluation destroys elapsed instances instead of
	// leaving them to accumulate behind the read-time filters.
	broken := m.EvaluateBreaks("actor-1", nil)
	assert.Empty(t, broken, "elapsed instances expire, they do not break")
	assert.Empty(t, m.Get("actor-1"))
	assert.Equal(t, grants, bus.count(events.ImmunityExpired))
	assert.Zero(t, bus.count(events.ImmunityBroken))

	assert.Empty(t, m.table("actor-1").instances, "expired instances must leave the table")
}

func TestImmunityManager_BreakConditions(t *testing.T) {
	ctx := context.Background()

	t.Run("check reports pending break", func(t *testing.T) {
		m, _, _ := newTestImmunities()
		def := testutils.StunWardImmunity() // breaks on low_health property

		_, err := m.Apply(ctx, "actor-1", &def, nil)
		require.NoError(t, err)

		assert.False(t, m.CheckBreakConditions("actor-1", "stun_ward", &status.Context{}))
		assert.True(t, m.CheckBreakConditions("actor-1", "stun_ward", &status.Context{
			Properties: map[string]any{"low_health": true},
		}))
	})

	t.Run("evaluate breaks matching immunities", func(t *testing.T) {
		m, bus, _ := newTestImmunities()
		stunWard := testutils.StunWardImmunity()
		fireWard := testutils.FireWardImmunity() // no break conditions

		_, err := m.Apply(ctx, "actor-1", &stunWard, nil)
		require.NoError(t, err)
		_, err = m.Apply(ctx, "actor-1", &fireWard, nil)
		require.NoError(t, err)

		broken := m.EvaluateBreaks("actor-1", &status.Context{
			Properties: map[string]any{"low_health": true},
		})
		assert.Equal(t, []string{"stun_ward"}, broken)
		assert.False(t, m.IsImmune("actor-1", "shock_stun"))
		assert.True(t, m.IsImmune("actor-1", "fire_burning"))
		assert.Equal(t, 1, bus.count(events.ImmunityBroken))

		// Second evaluation finds nothing left to break
		assert.Empty(t, m.EvaluateBreaks("actor-1", &status.Context{
			Properties: map[string]any{"low_health": true},
		}))
	})
}
