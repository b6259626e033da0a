// Package manager owns the authoritative table of active effect instances
// per actor. Tables are sharded by actor id; operations on different actors
// never contend, operations on the same actor are serialized because
// stacking resolution reads then writes the actor's table.
package manager

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/chaos-world/status-core/internal/calculator"
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/clock"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/events"
	"github.com/chaos-world/status-core/internal/status"
	"github.com/chaos-world/status-core/internal/uuid"
)

const shardCount = 32

// ImmunityChecker answers whether an actor is currently immune to an effect
type ImmunityChecker interface {
	IsImmune(actorID, effectID string) bool
}

type actorTable struct {
	mu        sync.Mutex
	instances []*status.EffectInstance // insertion order
}

type shard struct {
	mu     sync.RWMutex
	actors map[string]*actorTable
}

// Config holds configuration for the manager
type Config struct {
	Calculator *calculator.Calculator
	Immunities ImmunityChecker
	Clock      clock.Clock
	IDGen      uuid.Generator
	Bus        events.Publisher
}

// Manager implements apply/remove/get over the per-actor instance tables
type Manager struct {
	shards [shardCount]*shard
	calc   *calculator.Calculator
	immune ImmunityChecker
	clock  clock.Clock
	ids    uuid.Generator
	bus    events.Publisher
}

// New creates a manager
func New(cfg *Config) *Manager {
	if cfg == nil || cfg.Calculator == nil {
		panic("manager: calculator is required")
	}

	m := &Manager{
		calc:   cfg.Calculator,
		immune: cfg.Immunities,
		clock:  cfg.Clock,
		ids:    cfg.IDGen,
		bus:    cfg.Bus,
	}
	if m.clock == nil {
		m.clock = clock.NewSystem()
	}
	if m.ids == nil {
		m.ids = uuid.NewPrefixedGenerator("inst_", uuid.NewGoogleUUIDGenerator())
	}
	if m.bus == nil {
		m.bus = events.NoopPublisher{}
	}
	for i := range m.shards {
		m.shards[i] = &shard{actors: make(map[string]*actorTable)}
	}
	return m
}

func (m *Manager) shard(actorID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return m.shards[h.Sum32()%shardCount]
}

func (m *Manager) table(actorID string) *actorTable {
	s := m.shard(actorID)

	s.mu.RLock()
	t, ok := s.actors[actorID]
	s.mu.RUnlock()
	if ok {
		return t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok = s.actors[actorID]; ok {
		return t
	}
	t = &actorTable{}
	s.actors[actorID] = t
	return t
}

// Apply resolves and stores a new effect instance for the actor. Blocked
// applications (immunity, stacking) are reported as results, not errors;
// only validation and collaborator failures return an error.
func (m *Manager) Apply(ctx context.Context, actorID string, def *catalog.EffectDefinition, snap *catalog.Snapshot, sctx *status.Context) (*status.ApplyResult, error) {
	if actorID == "" {
		return nil, engerr.InvalidArgument("actor id cannot be empty")
	}
	if def == nil {
		return nil, engerr.InvalidArgument("effect definition cannot be nil")
	}
	if def.ID == "" {
		return nil, engerr.Validation("effect definition missing id")
	}

	env := ""
	var statMap map[string]float64
	var propMap map[string]any
	if sctx != nil {
		env = sctx.Environment
		statMap = sctx.Stats
		propMap = sctx.Properties
	}
	for _, cond := range def.Conditions {
		if !cond.Matches(env, statMap, propMap) {
			return nil, engerr.Validationf("effect %q: application condition %q not met", def.ID, cond.Type).
				WithMeta("actor_id", actorID)
		}
	}

	if m.immune != nil && m.immune.IsImmune(actorID, def.ID) {
		return status.Blocked(def.ID, status.ReasonImmunity), nil
	}

	// Resolve before taking the actor lock; the stat provider may block on
	// I/O and must not hold up unrelated operations on this actor.
	magnitude, err := m.calc.Magnitude(ctx, def.ID, def.Magnitude, actorID, sctx)
	if err != nil {
		return nil, err
	}
	duration, err := m.calc.Duration(ctx, def.ID, def.Duration, actorID, sctx)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	inst := &status.EffectInstance{
		ID:         m.ids.New(),
		EffectID:   def.ID,
		Kind:       def.Kind,
		Categories: append([]string(nil), def.Categories...),
		Magnitude:  magnitude,
		Duration:   duration,
		Priority:   def.Priority,
		Stackable:  def.Stacking.Stackable,
		AppliedAt:  now,
		ExpiresAt:  now.Add(duration),
		Active:     true,
		Properties: map[string]any{},
	}
	if sctx != nil {
		inst.Source = sctx.SourceID
		for k, v := range sctx.Properties {
			inst.Properties[k] = v
		}
	}

	t := m.table(actorID)
	t.mu.Lock()
	decision, conflicts := resolveStacking(t.instances, def, snap)

	var replaced []*status.EffectInstance
	switch decision {
	case decisionIgnore:
		t.mu.Unlock()
		return status.Blocked(def.ID, status.ReasonStacking), nil

	case decisionReplace:
		removed := make(map[string]bool, len(conflicts))
		for _, c := range conflicts {
			c.Active = false
			removed[c.ID] = true
		}
		replaced = conflicts
		kept := t.instances[:0]
		for _, existing := range t.instances {
			if !removed[existing.ID] {
				kept = append(kept, existing)
			}
		}
		t.instances = kept

	case decisionStack:
		if def.Stacking.Stackable && def.Stacking.MaxStacks > 0 {
			count := 0
			for _, existing := range t.instances {
				if existing.Active && existing.EffectID == def.ID {
					count++
				}
			}
			if count >= def.Stacking.MaxStacks {
				t.mu.Unlock()
				return status.Blocked(def.ID, status.ReasonStacking), nil
			}
		}
	}

	t.instances = append(t.instances, inst)
	t.mu.Unlock()

	for _, old := range replaced {
		m.bus.Publish(events.Event{
			Type:       events.EffectRemoved,
			ActorID:    actorID,
			EffectID:   old.EffectID,
			InstanceID: old.ID,
			At:         now,
			Payload:    map[string]any{"replaced_by": inst.ID},
		})
	}

	m.bus.Publish(events.Event{
		Type:       events.EffectApplied,
		ActorID:    actorID,
		EffectID:   def.ID,
		InstanceID: inst.ID,
		At:         now,
		Payload:    map[string]any{"magnitude": magnitude, "duration": duration.String()},
	})

	return &status.ApplyResult{
		Applied:    true,
		InstanceID: inst.ID,
		EffectID:   def.ID,
		Magnitude:  magnitude,
		Duration:   duration,
		AppliedAt:  now,
		ExpiresAt:  inst.ExpiresAt,
	}, nil
}

// Remove removes the first active instance of the effect, in insertion
// order. A missing instance is a benign not_found result.
func (m *Manager) Remove(actorID, effectID string) *status.RemoveResult {
	t := m.table(actorID)

	t.mu.Lock()
	var target *status.EffectInstance
	for i, inst := range t.instances {
		if inst.Active && inst.EffectID == effectID {
			target = inst
			target.Active = false
			t.instances = append(t.instances[:i], t.instances[i+1:]...)
			break
		}
	}
	t.mu.Unlock()

	if target == nil {
		return &status.RemoveResult{Reason: status.ReasonNotFound, EffectID: effectID}
	}

	m.bus.Publish(events.Event{
		Type:       events.EffectRemoved,
		ActorID:    actorID,
		EffectID:   effectID,
		InstanceID: target.ID,
		At:         m.clock.Now(),
	})
	return &status.RemoveResult{Removed: true, InstanceID: target.ID, EffectID: effectID}
}

// RemoveBySource removes all active instances applied by the given source
// and returns how many were removed.
func (m *Manager) RemoveBySource(actorID, source string) int {
	t := m.table(actorID)

	t.mu.Lock()
	var removed []*status.EffectInstance
	kept := t.instances[:0]
	for _, inst := range t.instances {
		if inst.Active && inst.Source == source {
			inst.Active = false
			removed = append(removed, inst)
			continue
		}
		kept = append(kept, inst)
	}
	t.instances = kept
	t.mu.Unlock()

	now := m.clock.Now()
	for _, inst := range removed {
		m.bus.Publish(events.Event{
			Type:       events.EffectRemoved,
			ActorID:    actorID,
			EffectID:   inst.EffectID,
			InstanceID: inst.ID,
			At:         now,
		})
	}
	return len(removed)
}

// Get returns a snapshot of the actor's active instances in insertion
// order. Callers needing priority order must sort.
func (m *Manager) Get(actorID string) []status.EffectInstance {
	t := m.table(actorID)

	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]status.EffectInstance, 0, len(t.instances))
	for _, inst := range t.instances {
		if inst.Active {
			out = append(out, *inst)
		}
	}
	return out
}

// CountActive returns the number of active instances of one effect
func (m *Manager) CountActive(actorID, effectID string) int {
	t := m.table(actorID)

	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, inst := range t.instances {
		if inst.Active && inst.EffectID == effectID {
			count++
		}
	}
	return count
}

// HasCategory reports whether any active instance carries the category
func (m *Manager) HasCategory(actorID, category string) bool {
	t := m.table(actorID)

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, inst := range t.instances {
		if inst.Active && inst.HasCategory(category) {
			return true
		}
	}
	return false
}

// SetMagnitude updates a live instance's magnitude after a recompute.
// Returns false if the instance is gone.
func (m *Manager) SetMagnitude(actorID, instanceID string, magnitude float64) bool {
	t := m.table(actorID)

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, inst := range t.instances {
		if inst.Active && inst.ID == instanceID {
			inst.Magnitude = magnitude
			return true
		}
	}
	return false
}

// Expire deactivates and removes one instance if its lifetime has elapsed
// at the given time. Returns true only for the call that performed the
// removal, making expiry idempotent across repeated ticks.
func (m *Manager) Expire(actorID, instanceID string, now time.Time) bool {
	t := m.table(actorID)

	t.mu.Lock()
	var expired *status.EffectInstance
	for i, inst := range t.instances {
		if inst.ID == instanceID && inst.Active && inst.Expired(now) {
			expired = inst
			expired.Active = false
			t.instances = append(t.instances[:i], t.instances[i+1:]...)
			break
		}
	}
	t.mu.Unlock()

	if expired == nil {
		return false
	}

	m.bus.Publish(events.Event{
		Type:       events.EffectExpired,
		ActorID:    actorID,
		EffectID:   expired.EffectID,
		InstanceID: expired.ID,
		At:         now,
	})
	return true
}
