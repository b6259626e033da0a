// Package immunity tracks active immunity grants per actor and answers the
// manager's gating question. Immunities accumulate: no stacking resolution
// is performed, and several simultaneous immunities to the same effect are
// allowed; their blocking effect is the union.
package immunity

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/chaos-world/status-core/internal/calculator"
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/clock"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/events"
	"github.com/chaos-world/status-core/internal/status"
	"github.com/chaos-world/status-core/internal/uuid"
)

const shardCount = 32

type actorTable struct {
	mu        sync.Mutex
	instances []*status.ImmunityInstance
}

type shard struct {
	mu     sync.RWMutex
	actors map[string]*actorTable
}

// Config holds configuration for the immunity manager
type Config struct {
	Calculator *calculator.Calculator
	Clock      clock.Clock
	IDGen      uuid.Generator
	Bus        events.Publisher
}

// Manager owns the per-actor immunity tables
type Manager struct {
	shards [shardCount]*shard
	calc   *calculator.Calculator
	clock  clock.Clock
	ids    uuid.Generator
	bus    events.Publisher
}

// New creates an immunity manager
func New(cfg *Config) *Manager {
	if cfg == nil || cfg.Calculator == nil {
		panic("immunity: calculator is required")
	}

	m := &Manager{
		calc:  cfg.Calculator,
		clock: cfg.Clock,
		ids:   cfg.IDGen,
		bus:   cfg.Bus,
	}
	if m.clock == nil {
		m.clock = clock.NewSystem()
	}
	if m.ids == nil {
		m.ids = uuid.NewPrefixedGenerator("imm_", uuid.NewGoogleUUIDGenerator())
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

// Apply resolves and stores an immunity instance. Magnitude is the blocked
// fraction and is clamped into [0, 1] regardless of the rule's bounds.
func (m *Manager) Apply(ctx context.Context, actorID string, def *catalog.ImmunityDefinition, sctx *status.Context) (*status.ApplyResult, error) {
	if actorID == "" {
		return nil, engerr.InvalidArgument("actor id cannot be empty")
	}
	if def == nil {
		return nil, engerr.InvalidArgument("immunity definition cannot be nil")
	}
	if def.ID == "" {
		return nil, engerr.Validation("immunity definition missing id")
	}
	if len(def.Targets) == 0 {
		return nil, engerr.Validationf("immunity %q has no target effects", def.ID)
	}

	magnitude, err := m.calc.Magnitude(ctx, def.ID, def.Magnitude, actorID, sctx)
	if err != nil {
		return nil, err
	}
	if magnitude < 0 {
		magnitude = 0
	} else if magnitude > 1 {
		magnitude = 1
	}
	duration, err := m.calc.Duration(ctx, def.ID, def.Duration, actorID, sctx)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	inst := &status.ImmunityInstance{
		ID:              m.ids.New(),
		ImmunityID:      def.ID,
		Targets:         append([]string(nil), def.Targets...),
		Magnitude:       magnitude,
		AppliedAt:       now,
		ExpiresAt:       now.Add(duration),
		Active:          true,
		BreakConditions: append([]catalog.Condition(nil), def.BreakConditions...),
	}

	t := m.table(actorID)
	t.mu.Lock()
	t.instances = append(t.instances, inst)
	t.mu.Unlock()

	m.bus.Publish(events.Event{
		Type:       events.ImmunityApplied,
		ActorID:    actorID,
		EffectID:   def.ID,
		InstanceID: inst.ID,
		At:         now,
		Payload:    map[string]any{"magnitude": magnitude, "targets": inst.Targets},
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

// IsImmune reports whether any active, unexpired immunity targets the
// effect. Any single match blocks fully (union-of-full-block).
func (m *Manager) IsImmune(actorID, effectID string) bool {
	t := m.table(actorID)
	now := m.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, inst := range t.instances {
		if inst.Active && !inst.Expired(now) && inst.Blocks(effectID) {
			return true
		}
	}
	return false
}

// Get returns a snapshot of the actor's active immunity instances
func (m *Manager) Get(actorID string) []status.ImmunityInstance {
	t := m.table(actorID)
	now := m.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]status.ImmunityInstance, 0, len(t.instances))
	for _, inst := range t.instances {
		if inst.Active && !inst.Expired(now) {
			out = append(out, *inst)
		}
	}
	return out
}

// CheckBreakConditions reports whether any break predicate of the named
// immunity holds against the context.
func (m *Manager) CheckBreakConditions(actorID, immunityID string, sctx *status.Context) bool {
	env := ""
	var statMap map[string]float64
	var propMap map[string]any
	if sctx != nil {
		env = sctx.Environment
		statMap = sctx.Stats
		propMap = sctx.Properties
	}

	t := m.table(actorID)
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, inst := range t.instances {
		if !inst.Active || inst.ImmunityID != immunityID {
			continue
		}
		for _, cond := range inst.BreakConditions {
			if cond.Matches(env, statMap, propMap) {
				return true
			}
		}
	}
	return false
}

// Break deactivates the first active instance of the immunity, pinning its
// expiry to now. Idempotent: breaking an absent or already broken immunity
// is a benign not_found result.
func (m *Manager) Break(actorID, immunityID string) *status.RemoveResult {
	t := m.table(actorID)
	now := m.clock.Now()

	t.mu.Lock()
	var broken *status.ImmunityInstance
	for i, inst := range t.instances {
		if inst.Active && inst.ImmunityID == immunityID {
			broken = inst
			broken.Active = false
			broken.ExpiresAt = now
			t.instances = append(t.instances[:i], t.instances[i+1:]...)
			break
		}
	}
	t.mu.Unlock()

	if broken == nil {
		return &status.RemoveResult{Reason: status.ReasonNotFound, EffectID: immunityID}
	}

	m.bus.Publish(events.Event{
		Type:       events.ImmunityBroken,
		ActorID:    actorID,
		EffectID:   immunityID,
		InstanceID: broken.ID,
		At:         now,
	})
	return &status.RemoveResult{Removed: true, InstanceID: broken.ID, EffectID: immunityID}
}

// EvaluateBreaks breaks every immunity whose break conditions hold against
// the context and returns the broken immunity ids. Called once per tick, it
// also sweeps instances whose lifetime has elapsed so a long-running engine
// never accumulates dead immunity rows.
func (m *Manager) EvaluateBreaks(actorID string, sctx *status.Context) []string {
	env := ""
	var statMap map[string]float64
	var propMap map[string]any
	if sctx != nil {
		env = sctx.Environment
		statMap = sctx.Stats
		propMap = sctx.Properties
	}

	t := m.table(actorID)
	now := m.clock.Now()

	t.mu.Lock()
	var broken, expired []*status.ImmunityInstance
	kept := t.instances[:0]
	for _, inst := range t.instances {
		if inst.Active && inst.Expired(now) {
			inst.Active = false
			expired = append(expired, inst)
			continue
		}
		if inst.Active && breaks(inst, env, statMap, propMap) {
			inst.Active = false
			inst.ExpiresAt = now
			broken = append(broken, inst)
			continue
		}
		kept = append(kept, inst)
	}
	t.instances = kept
	t.mu.Unlock()

	for _, inst := range expired {
		m.bus.Publish(events.Event{
			Type:       events.ImmunityExpired,
			ActorID:    actorID,
			EffectID:   inst.ImmunityID,
			InstanceID: inst.ID,
			At:         now,
		})
	}

	ids := make([]string, 0, len(broken))
	for _, inst := range broken {
		ids = append(ids, inst.ImmunityID)
		m.bus.Publish(events.Event{
			Type:       events.ImmunityBroken,
			ActorID:    actorID,
			EffectID:   inst.ImmunityID,
			InstanceID: inst.ID,
			At:         now,
		})
	}
	return ids
}

func breaks(inst *status.ImmunityInstance, env string, statMap map[string]float64, propMap map[string]any) bool {
	for _, cond := range inst.BreakConditions {
		if cond.Matches(env, statMap, propMap) {
			return true
		}
	}
	return false
}
