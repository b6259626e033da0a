package manager

import (
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/status"
)

type stackingDecision int

const (
	decisionStack stackingDecision = iota
	decisionReplace
	decisionIgnore
)

// resolveStacking decides how a new application of def interacts with the
// actor's existing instances. Must be called with the actor table locked.
//
// Conflicting instances are those with the same effect id, or sharing a
// category the catalog flags non-concurrent (e.g. two different control
// effects). With no conflicts the new instance stacks. Otherwise the new
// priority is compared against the highest conflicting priority:
//
//	new > max            → Replace (all conflicting instances removed)
//	new == max, stackable → Stack
//	new == max, otherwise → Ignore (the earlier instance always wins)
//	new < max            → Ignore
func resolveStacking(existing []*status.EffectInstance, def *catalog.EffectDefinition, snap *catalog.Snapshot) (stackingDecision, []*status.EffectInstance) {
	var conflicts []*status.EffectInstance
	for _, inst := range existing {
		if !inst.Active {
			continue
		}
		if inst.EffectID == def.ID || sharesNonConcurrentCategory(inst, def, snap) {
			conflicts = append(conflicts, inst)
		}
	}

	if len(conflicts) == 0 {
		return decisionStack, nil
	}

	maxPriority := conflicts[0].Priority
	for _, c := range conflicts[1:] {
		if c.Priority > maxPriority {
			maxPriority = c.Priority
		}
	}

	switch {
	case def.Priority > maxPriority:
		return decisionReplace, conflicts
	case def.Priority == maxPriority && def.Stacking.Stackable:
		return decisionStack, nil
	default:
		return decisionIgnore, nil
	}
}

func sharesNonConcurrentCategory(inst *status.EffectInstance, def *catalog.EffectDefinition, snap *catalog.Snapshot) bool {
	if snap == nil {
		return false
	}
	for _, cat := range def.Categories {
		if snap.NonConcurrent(cat) && inst.HasCategory(cat) {
			return true
		}
	}
	return false
}
