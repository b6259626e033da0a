package catalog

// EffectKind classifies what an effect does to its actor
type EffectKind string

const (
	KindDamageOverTime      EffectKind = "damage_over_time"
	KindHealOverTime        EffectKind = "heal_over_time"
	KindStatModifier        EffectKind = "stat_modifier"
	KindMovementRestriction EffectKind = "movement_restriction"
	KindControl             EffectKind = "control"
	KindImmunityGrant       EffectKind = "immunity_grant"
	KindTransformation      EffectKind = "transformation"
)

// TimeVarying reports whether the kind's magnitude should be recomputed
// each tick instead of reusing the value resolved at application time.
func (k EffectKind) TimeVarying() bool {
	return k == KindDamageOverTime || k == KindHealOverTime
}

// EmitsRequest reports whether instances of this kind produce a damage or
// heal request for the downstream combat system on each tick.
func (k EffectKind) EmitsRequest() bool {
	return k == KindDamageOverTime || k == KindHealOverTime
}

// StackBehavior defines how stacked instances combine
type StackBehavior string

const (
	StackAdditive StackBehavior = "additive"
	StackReplace  StackBehavior = "replace"
	StackMultiply StackBehavior = "multiply"
)

// ScalingRule resolves a concrete value from a base plus a scaled actor stat.
// The resolved value is clamped into [Min, Max]. For duration rules the
// values are seconds.
type ScalingRule struct {
	Base          float64 `yaml:"base"`
	ScalingFactor float64 `yaml:"scaling_factor"`
	ScalingStat   string  `yaml:"scaling_stat"`
	Min           float64 `yaml:"min"`
	Max           float64 `yaml:"max"`
}

// Resolve applies the scaling formula and clamps the result
func (r ScalingRule) Resolve(statValue float64) float64 {
	v := r.Base + statValue*r.ScalingFactor
	if v < r.Min {
		return r.Min
	}
	if r.Max > 0 && v > r.Max {
		return r.Max
	}
	return v
}

// StackingPolicy defines whether and how an effect stacks with itself
type StackingPolicy struct {
	Stackable bool          `yaml:"stackable"`
	MaxStacks int           `yaml:"max_stacks"`
	Behavior  StackBehavior `yaml:"behavior"`
}

// Condition is a predicate gating effect application or breaking an
// immunity. Supported types:
//
//	environment:  context environment tag equals Value
//	min_stat:     context stat Key is at least Threshold
//	has_property: context property bag contains Key
type Condition struct {
	Type      string  `yaml:"type"`
	Key       string  `yaml:"key"`
	Value     string  `yaml:"value"`
	Threshold float64 `yaml:"threshold"`
}

// Matches evaluates the predicate against the per-operation inputs
func (c Condition) Matches(env string, stats map[string]float64, props map[string]any) bool {
	switch c.Type {
	case "environment":
		return env == c.Value
	case "min_stat":
		return stats[c.Key] >= c.Threshold
	case "has_property":
		_, ok := props[c.Key]
		return ok
	}
	// Unknown predicate types never match; a typo'd condition should not
	// silently let every application through.
	return false
}

// EffectDefinition is the immutable template for a status effect
type EffectDefinition struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Kind         EffectKind     `yaml:"kind"`
	Categories   []string       `yaml:"categories"`
	Magnitude    ScalingRule    `yaml:"magnitude"`
	Duration     ScalingRule    `yaml:"duration"`
	Stacking     StackingPolicy `yaml:"stacking"`
	Priority     int            `yaml:"priority"`
	VulnerableTo []string       `yaml:"vulnerable_to"`
	Conditions   []Condition    `yaml:"conditions"`
}

// HasCategory reports whether the definition carries the given category tag
func (d *EffectDefinition) HasCategory(category string) bool {
	for _, c := range d.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ImmunityDefinition is the immutable template for an immunity grant
type ImmunityDefinition struct {
	ID              string      `yaml:"id"`
	Name            string      `yaml:"name"`
	Targets         []string    `yaml:"targets"`
	Magnitude       ScalingRule `yaml:"magnitude"`
	Duration        ScalingRule `yaml:"duration"`
	BreakConditions []Condition `yaml:"break_conditions"`
}

// Blocks reports whether this immunity's target set contains effectID
func (d *ImmunityDefinition) Blocks(effectID string) bool {
	for _, t := range d.Targets {
		if t == effectID {
			return true
		}
	}
	return false
}
