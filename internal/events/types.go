package events

import "time"

// Type identifies an engine notification
type Type string

const (
	EffectApplied   Type = "effect.applied"
	EffectRemoved   Type = "effect.removed"
	EffectExpired   Type = "effect.expired"
	ImmunityApplied Type = "immunity.applied"
	ImmunityBroken  Type = "immunity.broken"
	ImmunityExpired Type = "immunity.expired"
)

// Event is one engine notification. Events are plain values; listeners get
// their own copy reference and must not expect to influence the engine.
type Event struct {
	Type       Type
	ActorID    string
	EffectID   string
	InstanceID string
	At         time.Time
	Payload    map[string]any
}
