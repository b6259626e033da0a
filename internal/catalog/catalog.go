// Package catalog holds the read-only effect and immunity definitions the
// engine resolves against. The active definition set is an immutable
// snapshot behind an atomic pointer: hot reload swaps the whole snapshot,
// and in-flight operations finish against whichever snapshot they read.
package catalog

import (
	"sync/atomic"

	engerr "github.com/chaos-world/status-core/internal/errors"
)

// Snapshot is one immutable definition set
type Snapshot struct {
	effects       map[string]*EffectDefinition
	immunities    map[string]*ImmunityDefinition
	nonConcurrent map[string]bool
}

// NewSnapshot builds a snapshot from definition slices. Definitions are
// copied into the snapshot's maps; callers must not mutate them afterwards.
func NewSnapshot(effects []EffectDefinition, immunities []ImmunityDefinition, nonConcurrentCategories []string) (*Snapshot, error) {
	s := &Snapshot{
		effects:       make(map[string]*EffectDefinition, len(effects)),
		immunities:    make(map[string]*ImmunityDefinition, len(immunities)),
		nonConcurrent: make(map[string]bool, len(nonConcurrentCategories)),
	}

	for i := range effects {
		def := effects[i]
		if def.ID == "" {
			return nil, engerr.Validation("effect definition missing id")
		}
		if def.Priority < 0 {
			return nil, engerr.Validationf("effect %q: priority must not be negative", def.ID)
		}
		if _, dup := s.effects[def.ID]; dup {
			return nil, engerr.Validationf("duplicate effect definition %q", def.ID)
		}
		s.effects[def.ID] = &def
	}

	for i := range immunities {
		def := immunities[i]
		if def.ID == "" {
			return nil, engerr.Validation("immunity definition missing id")
		}
		if _, dup := s.immunities[def.ID]; dup {
			return nil, engerr.Validationf("duplicate immunity definition %q", def.ID)
		}
		s.immunities[def.ID] = &def
	}

	for _, cat := range nonConcurrentCategories {
		s.nonConcurrent[cat] = true
	}

	return s, nil
}

// Effect looks up an effect definition by id
func (s *Snapshot) Effect(id string) (*EffectDefinition, bool) {
	def, ok := s.effects[id]
	return def, ok
}

// Immunity looks up an immunity definition by id
func (s *Snapshot) Immunity(id string) (*ImmunityDefinition, bool) {
	def, ok := s.immunities[id]
	return def, ok
}

// NonConcurrent reports whether the category allows only one active effect
// at a time across different effect ids.
func (s *Snapshot) NonConcurrent(category string) bool {
	return s.nonConcurrent[category]
}

// EffectCount returns the number of effect definitions
func (s *Snapshot) EffectCount() int {
	return len(s.effects)
}

// ImmunityCount returns the number of immunity definitions
func (s *Snapshot) ImmunityCount() int {
	return len(s.immunities)
}

// Catalog is the engine-facing handle over the current snapshot
type Catalog struct {
	current atomic.Pointer[Snapshot]
}

// New creates a catalog serving the given snapshot
func New(snapshot *Snapshot) *Catalog {
	c := &Catalog{}
	if snapshot == nil {
		snapshot = emptySnapshot()
	}
	c.current.Store(snapshot)
	return c
}

// Snapshot returns the current definition set. Callers hold the returned
// snapshot for the whole operation so a mid-operation reload never mixes
// old and new definitions.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Reload atomically swaps in a new snapshot
func (c *Catalog) Reload(snapshot *Snapshot) error {
	if snapshot == nil {
		return engerr.InvalidArgument("snapshot cannot be nil")
	}
	c.current.Store(snapshot)
	return nil
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		effects:       map[string]*EffectDefinition{},
		immunities:    map[string]*ImmunityDefinition{},
		nonConcurrent: map[string]bool{},
	}
}
