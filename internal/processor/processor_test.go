package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaos-world/status-core/internal/calculator"
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/clock"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/immunity"
	"github.com/chaos-world/status-core/internal/manager"
	"github.com/chaos-world/status-core/internal/stats"
	"github.com/chaos-world/status-core/internal/status"
	"github.com/chaos-world/status-core/internal/testutils"
)

type harness struct {
	proc *Processor
	mgr  *manager.Manager
	imm  *immunity.Manager
	cat  *catalog.Catalog
	clk  *clock.Fixed
}

func newHarness(t *testing.T, provider stats.Provider) *harness {
	t.Helper()

	clk := clock.NewFixed(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	calc := calculator.New(&calculator.Config{StatProvider: provider})
	imm := immunity.New(&immunity.Config{Calculator: calc, Clock: clk})
	mgr := manager.New(&manager.Config{Calculator: calc, Immunities: imm, Clock: clk})
	cat := catalog.New(testutils.TestSnapshot(t))

	return &harness{
		proc: New(&Config{
			Manager:    mgr,
			Immunities: imm,
			Calculator: calc,
			Catalog:    cat,
			Clock:      clk,
		}),
		mgr: mgr,
		imm: imm,
		cat: cat,
		clk: clk,
	}
}

func casterContext() *status.Context {
	return &status.Context{
		Stats: map[string]float64{"intelligence": 50, "wisdom": 40},
	}
}

func TestProcessTick_DamageOverTime(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	def := testutils.BurningDefinition()
	res, err := h.mgr.Apply(ctx, "actor-1", &def, h.cat.Snapshot(), casterContext())
	require.NoError(t, err)
	require.True(t, res.Applied)
	assert.InDelta(t, 20.0, res.Magnitude, 1e-9)
	assert.Equal(t, 12*time.Second, res.Duration)

	outcomes, err := h.proc.ProcessTick(ctx, "actor-1", casterContext())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	out := outcomes[0]
	assert.True(t, out.Success)
	assert.False(t, out.Expired)
	require.NotNil(t, out.Request)
	assert.Equal(t, "fire_burning", out.Request.EffectID)
	assert.Equal(t, "actor-1", out.Request.ActorID)
	assert.InDelta(t, 20.0, out.Request.Magnitude, 1e-9)
	assert.Equal(t, "fire", out.Request.Element)
	assert.Equal(t, status.DamageKindDamage, out.Request.Kind)
}

func TestProcessTick_HealOverTime(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	def := testutils.RegenDefinition()
	_, err := h.mgr.Apply(ctx, "actor-1", &def, h.cat.Snapshot(), nil)
	require.NoError(t, err)

	outcomes, err := h.proc.ProcessTick(ctx, "actor-1", nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NotNil(t, outcomes[0].Request)
	assert.Equal(t, status.DamageKindHeal, outcomes[0].Request.Kind)
	assert.Equal(t, "nature", outcomes[0].Request.Element)
	assert.InDelta(t, 5.0, outcomes[0].Request.Magnitude, 1e-9)
}

func TestProcessTick_ElementProperty(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	sctx := casterContext()
	sctx.Properties = map[string]any{"element": "holy"}

	def := testutils.BurningDefinition()
	_, err := h.mgr.Apply(ctx, "actor-1", &def, h.cat.Snapshot(), sctx)
	require.NoError(t, err)

	outcomes, err := h.proc.ProcessTick(ctx, "actor-1", sctx)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NotNil(t, outcomes[0].Request)
	assert.Equal(t, "holy", outcomes[0].Request.Element)
}

func TestProcessTick_ControlEmitsNoRequest(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	def := testutils.StunDefinition()
	_, err := h.mgr.Apply(ctx, "actor-1", &def, h.cat.Snapshot(), nil)
	require.NoError(t, err)

	outcomes, err := h.proc.ProcessTick(ctx, "actor-1", nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Nil(t, outcomes[0].Request)
	assert.Nil(t, outcomes[0].StatDeltas)
}

func TestProcessTick_StatModifier(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	might := catalog.EffectDefinition{
		ID:        "arcane_might",
		Name:      "Arcane Might",
		Kind:      catalog.KindStatModifier,
		Magnitude: catalog.ScalingRule{Base: 4.0, Min: 0, Max: 20},
		Duration:  catalog.ScalingRule{Base: 10.0, Min: 0, Max: 60},
		Priority:  5,
	}
	sctx := &status.Context{Properties: map[string]any{"stat": "strength"}}
	_, err := h.mgr.Apply(ctx, "actor-1", &might, h.cat.Snapshot(), sctx)
	require.NoError(t, err)

	outcomes, err := h.proc.ProcessTick(ctx, "actor-1", sctx)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Nil(t, outcomes[0].Request)
	assert.Equal(t, map[string]float64{"strength": 4.0}, outcomes[0].StatDeltas)
}

func TestProcessTick_RecomputesTimeVaryingMagnitude(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	def := testutils.BurningDefinition()
	res, err := h.mgr.Apply(ctx, "actor-1", &def, h.cat.Snapshot(), casterContext())
	require.NoError(t, err)
	require.InDelta(t, 20.0, res.Magnitude, 1e-9)

	// Intelligence rose between ticks; the next tick picks up the new value.
	boosted := &status.Context{Stats: map[string]float64{"intelligence": 100}}
	outcomes, err := h.proc.ProcessTick(ctx, "actor-1", boosted)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NotNil(t, outcomes[0].Request)
	assert.InDelta(t, 25.0, outcomes[0].Request.Magnitude, 1e-9)

	instances := h.mgr.Get("actor-1")
	require.Len(t, instances, 1)
	assert.InDelta(t, 25.0, instances[0].Magnitude, 1e-9)
}

func TestProcessTick_Expiry(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	def := testutils.BurningDefinition()
	_, err := h.mgr.Apply(ctx, "actor-1", &def, h.cat.Snapshot(), casterContext())
	require.NoError(t, err)

	h.clk.Advance(13 * time.Second) // past the 12s duration

	outcomes, err := h.proc.ProcessTick(ctx, "actor-1", casterContext())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Expired)
	assert.Empty(t, h.mgr.Get("actor-1"))

	// Retirement already happened; a second tick sees nothing.
	outcomes, err = h.proc.ProcessTick(ctx, "actor-1", casterContext())
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestProcessTick_EvaluatesImmunityBreaks(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	ward := testutils.StunWardImmunity()
	_, err := h.imm.Apply(ctx, "actor-1", &ward, nil)
	require.NoError(t, err)
	require.True(t, h.imm.IsImmune("actor-1", "shock_stun"))

	_, err = h.proc.ProcessTick(ctx, "actor-1", &status.Context{
		Properties: map[string]any{"low_health": true},
	})
	require.NoError(t, err)
	assert.False(t, h.imm.IsImmune("actor-1", "shock_stun"))
}

func TestProcessTick_EmptyActorID(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.proc.ProcessTick(context.Background(), "", nil)
	require.Error(t, err)
	assert.True(t, engerr.IsInvalidArgument(err))
}
