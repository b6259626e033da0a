// Package status defines the value types shared across the engine: effect
// and immunity instances, the per-operation context, and the result objects
// handed back to callers.
package status

import (
	"time"

	"github.com/chaos-world/status-core/internal/catalog"
)

// Context carries the per-operation inputs for one apply or tick. It is
// never stored; its lifetime is the duration of the call it was built for.
type Context struct {
	ActorID     string
	TargetID    string
	SourceID    string
	Environment string
	Timestamp   time.Time
	Stats       map[string]float64
	Properties  map[string]any
}

// Stat returns a named stat value and whether the context carries it
func (c *Context) Stat(name string) (float64, bool) {
	if c == nil || c.Stats == nil {
		return 0, false
	}
	v, ok := c.Stats[name]
	return v, ok
}

// EffectInstance is one concrete, time-bounded application of an effect
// definition to an actor. Priority and stacking data are copied from the
// definition at application time so later catalog reloads never alter a
// live instance.
type EffectInstance struct {
	ID         string
	EffectID   string
	Kind       catalog.EffectKind
	Categories []string
	Magnitude  float64
	Duration   time.Duration
	Priority   int
	Stackable  bool
	AppliedAt  time.Time
	ExpiresAt  time.Time
	Active     bool
	Source     string
	Properties map[string]any
}

// Expired reports whether the instance's lifetime has elapsed at now
func (i *EffectInstance) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// HasCategory reports whether the instance carries the category tag
func (i *EffectInstance) HasCategory(category string) bool {
	for _, c := range i.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ImmunityInstance is one active immunity grant on an actor
type ImmunityInstance struct {
	ID              string
	ImmunityID      string
	Targets         []string
	Magnitude       float64 // fraction blocked, 0..1; gating currently treats any active immunity as a full block
	AppliedAt       time.Time
	ExpiresAt       time.Time
	Active          bool
	BreakConditions []catalog.Condition
}

// Expired reports whether the immunity's lifetime has elapsed at now
func (i *ImmunityInstance) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Blocks reports whether the immunity's target set contains effectID
func (i *ImmunityInstance) Blocks(effectID string) bool {
	for _, t := range i.Targets {
		if t == effectID {
			return true
		}
	}
	return false
}

// BlockReason marks why an operation did not change state. These are
// ordinary results, not errors: a combat driver processing thousands of
// actors treats "didn't apply" as routine.
type BlockReason string

const (
	ReasonImmunity BlockReason = "immunity"
	ReasonStacking BlockReason = "stacking"
	ReasonNotFound BlockReason = "not_found"
)

// ApplyResult reports the outcome of applying an effect or immunity
type ApplyResult struct {
	Applied    bool
	Reason     BlockReason
	InstanceID string
	EffectID   string
	Magnitude  float64
	Duration   time.Duration
	AppliedAt  time.Time
	ExpiresAt  time.Time
}

// Blocked builds a non-applied result with the given reason
func Blocked(effectID string, reason BlockReason) *ApplyResult {
	return &ApplyResult{EffectID: effectID, Reason: reason}
}

// RemoveResult reports the outcome of removing an instance
type RemoveResult struct {
	Removed    bool
	Reason     BlockReason
	InstanceID string
	EffectID   string
}

// DamageKind maps an effect kind to the downstream combat operation
type DamageKind string

const (
	DamageKindDamage DamageKind = "damage"
	DamageKindHeal   DamageKind = "heal"
)

// DamageRequest is the value object emitted for the external combat
// system. Ownership transfers to the caller; the engine keeps no reference
// after returning it.
type DamageRequest struct {
	EffectID   string
	ActorID    string
	Magnitude  float64
	Element    string
	Kind       DamageKind
	Properties map[string]any
}

// TickOutcome is the per-instance result of one processor tick
type TickOutcome struct {
	InstanceID string
	EffectID   string
	Success    bool
	Expired    bool
	Request    *DamageRequest
	StatDeltas map[string]float64
}
