package processor

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/chaos-world/status-core/internal/status"
)

// ContextFunc builds the per-operation context for one actor in a batch
type ContextFunc func(actorID string) *status.Context

// ProcessBatch ticks a sequence of actors and returns their outcomes keyed
// by actor id. Calculator work is warmed grouped by effect id first, which
// only affects cache locality: per-actor outcomes are identical to calling
// ProcessTick for each actor in turn. The first collaborator failure
// aborts the whole batch.
func (p *Processor) ProcessBatch(ctx context.Context, actorIDs []string, makeContext ContextFunc) (map[string][]status.TickOutcome, error) {
	if makeContext == nil {
		makeContext = func(string) *status.Context { return nil }
	}

	if err := p.warmBatch(ctx, actorIDs, makeContext); err != nil {
		return nil, err
	}

	results := make(map[string][]status.TickOutcome, len(actorIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.batchLimit)
	for _, actorID := range actorIDs {
		actorID := actorID
		g.Go(func() error {
			outcomes, err := p.ProcessTick(gctx, actorID, makeContext(actorID))
			if err != nil {
				return err
			}
			mu.Lock()
			results[actorID] = outcomes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// warmBatch resolves every time-varying magnitude the batch will need,
// ordered by effect id so the calculator cache is populated one effect at
// a time.
func (p *Processor) warmBatch(ctx context.Context, actorIDs []string, makeContext ContextFunc) error {
	snap := p.catalog.Snapshot()

	type task struct {
		effectID string
		actorID  string
	}
	var tasks []task
	seen := make(map[task]bool)

	for _, actorID := range actorIDs {
		for _, inst := range p.manager.Get(actorID) {
			if !inst.Kind.TimeVarying() {
				continue
			}
			t := task{effectID: inst.EffectID, actorID: actorID}
			if !seen[t] {
				seen[t] = true
				tasks = append(tasks, t)
			}
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].effectID != tasks[j].effectID {
			return tasks[i].effectID < tasks[j].effectID
		}
		return tasks[i].actorID < tasks[j].actorID
	})

	for _, t := range tasks {
		def, ok := snap.Effect(t.effectID)
		if !ok {
			continue
		}
		if _, err := p.calc.Magnitude(ctx, t.effectID, def.Magnitude, t.actorID, makeContext(t.actorID)); err != nil {
			return err
		}
	}
	return nil
}
