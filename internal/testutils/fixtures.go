package testutils

import (
	"testing"

	"github.com/chaos-world/status-core/internal/catalog"
)

// BurningDefinition is the canonical damage-over-time fixture: magnitude
// 15 + intelligence*0.1, duration 10s + wisdom*0.05.
func BurningDefinition() catalog.EffectDefinition {
	return catalog.EffectDefinition{
		ID:         "fire_burning",
		Name:       "Burning",
		Kind:       catalog.KindDamageOverTime,
		Categories: []string{"damage"},
		Magnitude: catalog.ScalingRule{
			Base:          15.0,
			ScalingFactor: 0.1,
			ScalingStat:   "intelligence",
			Min:           0,
			Max:           100,
		},
		Duration: catalog.ScalingRule{
			Base:          10.0,
			ScalingFactor: 0.05,
			ScalingStat:   "wisdom",
			Min:           0,
			Max:           60,
		},
		Priority: 10,
	}
}

// RegenDefinition is a heal-over-time fixture with flat scaling
func RegenDefinition() catalog.EffectDefinition {
	return catalog.EffectDefinition{
		ID:         "nature_regen",
		Name:       "Regeneration",
		Kind:       catalog.KindHealOverTime,
		Categories: []string{"restoration"},
		Magnitude:  catalog.ScalingRule{Base: 5.0, Min: 0, Max: 50},
		Duration:   catalog.ScalingRule{Base: 8.0, Min: 0, Max: 60},
		Stacking:   catalog.StackingPolicy{Stackable: true, MaxStacks: 3, Behavior: catalog.StackAdditive},
		Priority:   5,
	}
}

// StunDefinition is a control-category fixture; control is flagged
// non-concurrent in TestSnapshot.
func StunDefinition() catalog.EffectDefinition {
	return catalog.EffectDefinition{
		ID:         "shock_stun",
		Name:       "Stun",
		Kind:       catalog.KindControl,
		Categories: []string{"control"},
		Magnitude:  catalog.ScalingRule{Base: 1.0, Min: 0, Max: 1},
		Duration:   catalog.ScalingRule{Base: 3.0, Min: 0, Max: 10},
		Priority:   20,
	}
}

// RootDefinition is a second control-category fixture with lower priority
func RootDefinition() catalog.EffectDefinition {
	return catalog.EffectDefinition{
		ID:         "earth_root",
		Name:       "Root",
		Kind:       catalog.KindMovementRestriction,
		Categories: []string{"control"},
		Magnitude:  catalog.ScalingRule{Base: 1.0, Min: 0, Max: 1},
		Duration:   catalog.ScalingRule{Base: 5.0, Min: 0, Max: 20},
		Priority:   10,
	}
}

// StunWardImmunity blocks shock_stun and breaks when the actor takes the
// low_health property.
func StunWardImmunity() catalog.ImmunityDefinition {
	return catalog.ImmunityDefinition{
		ID:        "stun_ward",
		Name:      "Stun Ward",
		Targets:   []string{"shock_stun"},
		Magnitude: catalog.ScalingRule{Base: 1.0, Min: 0, Max: 1},
		Duration:  catalog.ScalingRule{Base: 30.0, Min: 0, Max: 120},
		BreakConditions: []catalog.Condition{
			{Type: "has_property", Key: "low_health"},
		},
	}
}

// FireWardImmunity blocks fire_burning
func FireWardImmunity() catalog.ImmunityDefinition {
	return catalog.ImmunityDefinition{
		ID:        "fire_ward",
		Name:      "Fire Ward",
		Targets:   []string{"fire_burning"},
		Magnitude: catalog.ScalingRule{Base: 1.0, Min: 0, Max: 1},
		Duration:  catalog.ScalingRule{Base: 30.0, Min: 0, Max: 120},
	}
}

// TestSnapshot builds a snapshot over the standard fixtures
func TestSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.NewSnapshot(
		[]catalog.EffectDefinition{
			BurningDefinition(),
			RegenDefinition(),
			StunDefinition(),
			RootDefinition(),
		},
		[]catalog.ImmunityDefinition{
			StunWardImmunity(),
			FireWardImmunity(),
		},
		[]string{"control"},
	)
	if err != nil {
		t.Fatalf("failed to build fixture snapshot: %v", err)
	}
	return snap
}
