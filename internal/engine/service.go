// Package engine exposes the status effect engine's public operation
// surface as a single service facade wired over the catalog, calculator,
// immunity manager, effect manager and processor.
package engine

//go:generate mockgen -destination=mock/mock_service.go -package=mockengine -source=service.go

import (
	"context"
	"time"

	"github.com/chaos-world/status-core/internal/cache"
	"github.com/chaos-world/status-core/internal/calculator"
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/clock"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/events"
	"github.com/chaos-world/status-core/internal/immunity"
	"github.com/chaos-world/status-core/internal/manager"
	"github.com/chaos-world/status-core/internal/processor"
	"github.com/chaos-world/status-core/internal/stats"
	"github.com/chaos-world/status-core/internal/status"
	"github.com/chaos-world/status-core/internal/uuid"
)

// Service is the engine's public operation surface
type Service interface {
	// Apply applies an effect to an actor; blocked applications are
	// results, not errors
	Apply(ctx context.Context, actorID, effectID string, sctx *status.Context) (*status.ApplyResult, error)

	// Remove removes the first active instance of the effect
	Remove(actorID, effectID string) *status.RemoveResult

	// RemoveBySource removes all active instances applied by source
	RemoveBySource(actorID, source string) int

	// GetActive returns a snapshot of the actor's active instances
	GetActive(actorID string) []status.EffectInstance

	// CountActive returns the number of active stacks of one effect
	CountActive(actorID, effectID string) int

	// HasCategory reports whether any active instance carries the category
	HasCategory(actorID, category string) bool

	// ProcessTick runs one engine tick for one actor
	ProcessTick(ctx context.Context, actorID string, sctx *status.Context) ([]status.TickOutcome, error)

	// ProcessBatch ticks many actors, aborting on the first system error
	ProcessBatch(ctx context.Context, actorIDs []string, makeContext processor.ContextFunc) (map[string][]status.TickOutcome, error)

	// ApplyImmunity applies an immunity grant to an actor
	ApplyImmunity(ctx context.Context, actorID, immunityID string, sctx *status.Context) (*status.ApplyResult, error)

	// IsImmune reports whether an active immunity targets the effect
	IsImmune(actorID, effectID string) bool

	// BreakImmunity deactivates an immunity; idempotent
	BreakImmunity(actorID, immunityID string) *status.RemoveResult

	// GetImmunities returns a snapshot of the actor's active immunities
	GetImmunities(actorID string) []status.ImmunityInstance

	// ReloadDefinitions atomically swaps the definition catalog
	ReloadDefinitions(snapshot *catalog.Snapshot) error
}

// ServiceConfig holds configuration for the engine service
type ServiceConfig struct {
	Catalog      *catalog.Catalog
	StatProvider stats.Provider
	Cache        cache.Cache
	Clock        clock.Clock
	IDGen        uuid.Generator
	Bus          events.Publisher
	// CacheTTL bounds how long resolved magnitudes/durations stay cached
	CacheTTL time.Duration
	// BatchConcurrency caps concurrent actors in ProcessBatch
	BatchConcurrency int
}

type service struct {
	catalog    *catalog.Catalog
	calc       *calculator.Calculator
	immunities *immunity.Manager
	manager    *manager.Manager
	processor  *processor.Processor
}

// NewService creates the engine service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Catalog == nil {
		panic("engine: catalog is required")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}
	bus := cfg.Bus
	if bus == nil {
		bus = events.NoopPublisher{}
	}

	calc := calculator.New(&calculator.Config{
		StatProvider: cfg.StatProvider,
		Cache:        cfg.Cache,
		TTL:          cfg.CacheTTL,
	})

	immunities := immunity.New(&immunity.Config{
		Calculator: calc,
		Clock:      clk,
		IDGen:      cfg.IDGen,
		Bus:        bus,
	})

	mgr := manager.New(&manager.Config{
		Calculator: calc,
		Immunities: immunities,
		Clock:      clk,
		IDGen:      cfg.IDGen,
		Bus:        bus,
	})

	proc := processor.New(&processor.Config{
		Manager:          mgr,
		Immunities:       immunities,
		Calculator:       calc,
		Catalog:          cfg.Catalog,
		Clock:            clk,
		BatchConcurrency: cfg.BatchConcurrency,
	})

	return &service{
		catalog:    cfg.Catalog,
		calc:       calc,
		immunities: immunities,
		manager:    mgr,
		processor:  proc,
	}
}

func (s *service) Apply(ctx context.Context, actorID, effectID string, sctx *status.Context) (*status.ApplyResult, error) {
	snap := s.catalog.Snapshot()
	def, ok := snap.Effect(effectID)
	if !ok {
		return nil, engerr.Validationf("unknown effect %q", effectID)
	}
	return s.manager.Apply(ctx, actorID, def, snap, sctx)
}

func (s *service) Remove(actorID, effectID string) *status.RemoveResult {
	return s.manager.Remove(actorID, effectID)
}

func (s *service) RemoveBySource(actorID, source string) int {
	return s.manager.RemoveBySource(actorID, source)
}

func (s *service) GetActive(actorID string) []status.EffectInstance {
	return s.manager.Get(actorID)
}

func (s *service) CountActive(actorID, effectID string) int {
	return s.manager.CountActive(actorID, effectID)
}

func (s *service) HasCategory(actorID, category string) bool {
	return s.manager.HasCategory(actorID, category)
}

func (s *service) ProcessTick(ctx context.Context, actorID string, sctx *status.Context) ([]status.TickOutcome, error) {
	return s.processor.ProcessTick(ctx, actorID, sctx)
}

func (s *service) ProcessBatch(ctx context.Context, actorIDs []string, makeContext processor.ContextFunc) (map[string][]status.TickOutcome, error) {
	return s.processor.ProcessBatch(ctx, actorIDs, makeContext)
}

func (s *service) ApplyImmunity(ctx context.Context, actorID, immunityID string, sctx *status.Context) (*status.ApplyResult, error) {
	snap := s.catalog.Snapshot()
	def, ok := snap.Immunity(immunityID)
	if !ok {
		return nil, engerr.Validationf("unknown immunity %q", immunityID)
	}
	return s.immunities.Apply(ctx, actorID, def, sctx)
}

func (s *service) IsImmune(actorID, effectID string) bool {
	return s.immunities.IsImmune(actorID, effectID)
}

func (s *service) BreakImmunity(actorID, immunityID string) *status.RemoveResult {
	return s.immunities.Break(actorID, immunityID)
}

func (s *service) GetImmunities(actorID string) []status.ImmunityInstance {
	return s.immunities.Get(actorID)
}

func (s *service) ReloadDefinitions(snapshot *catalog.Snapshot) error {
	return s.catalog.Reload(snapshot)
}
