// Package processor drives engine ticks: it walks an actor's active
// instances, refreshes time-varying magnitudes, emits damage and heal
// requests for the downstream combat system, and retires expired
// instances. The processor never touches actor health itself.
package processor

import (
	"context"
	"strings"

	"github.com/chaos-world/status-core/internal/calculator"
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/clock"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/immunity"
	"github.com/chaos-world/status-core/internal/manager"
	"github.com/chaos-world/status-core/internal/status"
)

// Config holds configuration for the processor
type Config struct {
	Manager    *manager.Manager
	Immunities *immunity.Manager
	Calculator *calculator.Calculator
	Catalog    *catalog.Catalog
	Clock      clock.Clock
	// BatchConcurrency caps concurrent actors in ProcessBatch; 0 uses a
	// default of 8.
	BatchConcurrency int
}

// Processor orchestrates per-tick processing
type Processor struct {
	manager    *manager.Manager
	immunities *immunity.Manager
	calc       *calculator.Calculator
	catalog    *catalog.Catalog
	clock      clock.Clock
	batchLimit int
}

// New creates a processor
func New(cfg *Config) *Processor {
	if cfg == nil || cfg.Manager == nil || cfg.Calculator == nil || cfg.Catalog == nil {
		panic("processor: manager, calculator and catalog are required")
	}

	p := &Processor{
		manager:    cfg.Manager,
		immunities: cfg.Immunities,
		calc:       cfg.Calculator,
		catalog:    cfg.Catalog,
		clock:      cfg.Clock,
		batchLimit: cfg.BatchConcurrency,
	}
	if p.clock == nil {
		p.clock = clock.NewSystem()
	}
	if p.batchLimit <= 0 {
		p.batchLimit = 8
	}
	return p
}

// ProcessTick runs one tick for one actor and returns per-instance
// outcomes in the actor's instance order. Only a collaborator failure
// (SystemError) returns an error; blocked or expired instances are
// ordinary outcomes.
func (p *Processor) ProcessTick(ctx context.Context, actorID string, sctx *status.Context) ([]status.TickOutcome, error) {
	if actorID == "" {
		return nil, engerr.InvalidArgument("actor id cannot be empty")
	}

	if p.immunities != nil {
		p.immunities.EvaluateBreaks(actorID, sctx)
	}

	snap := p.catalog.Snapshot()
	instances := p.manager.Get(actorID)
	now := p.clock.Now()

	outcomes := make([]status.TickOutcome, 0, len(instances))
	for i := range instances {
		inst := &instances[i]
		outcome := status.TickOutcome{
			InstanceID: inst.ID,
			EffectID:   inst.EffectID,
			Success:    true,
		}

		magnitude := inst.Magnitude
		if inst.Kind.TimeVarying() {
			if def, ok := snap.Effect(inst.EffectID); ok {
				recomputed, err := p.calc.Magnitude(ctx, inst.EffectID, def.Magnitude, actorID, sctx)
				if err != nil {
					return outcomes, err
				}
				if recomputed != magnitude {
					magnitude = recomputed
					p.manager.SetMagnitude(actorID, inst.ID, magnitude)
				}
			}
		}

		if inst.Kind.EmitsRequest() {
			outcome.Request = buildRequest(inst, actorID, magnitude)
		}
		if inst.Kind == catalog.KindStatModifier {
			if stat, ok := inst.Properties["stat"].(string); ok && stat != "" {
				outcome.StatDeltas = map[string]float64{stat: magnitude}
			}
		}

		if inst.Expired(now) {
			outcome.Expired = p.manager.Expire(actorID, inst.ID, now)
		}

		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func buildRequest(inst *status.EffectInstance, actorID string, magnitude float64) *status.DamageRequest {
	kind := status.DamageKindDamage
	if inst.Kind == catalog.KindHealOverTime {
		kind = status.DamageKindHeal
	}

	props := make(map[string]any, len(inst.Properties))
	for k, v := range inst.Properties {
		props[k] = v
	}

	return &status.DamageRequest{
		EffectID:   inst.EffectID,
		ActorID:    actorID,
		Magnitude:  magnitude,
		Element:    elementTag(inst),
		Kind:       kind,
		Properties: props,
	}
}

// elementTag resolves the element for a damage request: the instance's
// element property when present, else the effect-id prefix before the
// first underscore, else neutral.
func elementTag(inst *status.EffectInstance) string {
	if el, ok := inst.Properties["element"].(string); ok && el != "" {
		return el
	}
	if idx := strings.Index(inst.EffectID, "_"); idx > 0 {
		return inst.EffectID[:idx]
	}
	return "neutral"
}
