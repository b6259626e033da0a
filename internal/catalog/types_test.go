package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalingRule_Resolve(t *testing.T) {
	t.Run("applies base plus scaled stat", func(t *testing.T) {
		rule := ScalingRule{Base: 15.0, ScalingFactor: 0.1, ScalingStat: "intelligence", Min: 0, Max: 100}
		assert.InDelta(t, 20.0, rule.Resolve(50.0), 1e-9)
	})

	t.Run("duration example", func(t *testing.T) {
		rule := ScalingRule{Base: 10.0, ScalingFactor: 0.05, ScalingStat: "wisdom", Min: 0, Max: 60}
		assert.InDelta(t, 12.0, rule.Resolve(40.0), 1e-9)
	})

	t.Run("clamps to min", func(t *testing.T) {
		rule := ScalingRule{Base: 5.0, ScalingFactor: -1.0, Min: 2.0, Max: 100}
		assert.InDelta(t, 2.0, rule.Resolve(50.0), 1e-9)
	})

	t.Run("clamps to max", func(t *testing.T) {
		rule := ScalingRule{Base: 90.0, ScalingFactor: 1.0, Min: 0, Max: 100}
		assert.InDelta(t, 100.0, rule.Resolve(50.0), 1e-9)
	})

	t.Run("zero max leaves value unbounded above", func(t *testing.T) {
		rule := ScalingRule{Base: 90.0, ScalingFactor: 1.0, Min: 0}
		assert.InDelta(t, 140.0, rule.Resolve(50.0), 1e-9)
	})
}

func TestCondition_Matches(t *testing.T) {
	stats := map[string]float64{"strength": 12}
	props := map[string]any{"wet": true}

	t.Run("environment", func(t *testing.T) {
		cond := Condition{Type: "environment", Value: "underwater"}
		assert.True(t, cond.Matches("underwater", stats, props))
		assert.False(t, cond.Matches("desert", stats, props))
	})

	t.Run("min_stat", func(t *testing.T) {
		cond := Condition{Type: "min_stat", Key: "strength", Threshold: 10}
		assert.True(t, cond.Matches("", stats, props))

		cond.Threshold = 15
		assert.False(t, cond.Matches("", stats, props))
	})

	t.Run("min_stat missing stat compares as zero", func(t *testing.T) {
		cond := Condition{Type: "min_stat", Key: "luck", Threshold: 1}
		assert.False(t, cond.Matches("", stats, props))
	})

	t.Run("has_property", func(t *testing.T) {
		cond := Condition{Type: "has_property", Key: "wet"}
		assert.True(t, cond.Matches("", stats, props))

		cond.Key = "dry"
		assert.False(t, cond.Matches("", stats, props))
	})

	t.Run("unknown type never matches", func(t *testing.T) {
		cond := Condition{Type: "phase_of_moon", Value: "full"}
		assert.False(t, cond.Matches("full", stats, props))
	})
}

func TestEffectKind(t *testing.T) {
	assert.True(t, KindDamageOverTime.TimeVarying())
	assert.True(t, KindHealOverTime.TimeVarying())
	assert.False(t, KindControl.TimeVarying())
	assert.False(t, KindStatModifier.TimeVarying())

	assert.True(t, KindDamageOverTime.EmitsRequest())
	assert.True(t, KindHealOverTime.EmitsRequest())
	assert.False(t, KindMovementRestriction.EmitsRequest())
}

func TestEffectDefinition_HasCategory(t *testing.T) {
	def := EffectDefinition{ID: "shock_stun", Categories: []string{"control", "debuff"}}
	assert.True(t, def.HasCategory("control"))
	assert.False(t, def.HasCategory("damage"))
}

func TestImmunityDefinition_Blocks(t *testing.T) {
	def := ImmunityDefinition{ID: "stun_ward", Targets: []string{"shock_stun", "earth_root"}}
	assert.True(t, def.Blocks("shock_stun"))
	assert.False(t, def.Blocks("fire_burning"))
}
