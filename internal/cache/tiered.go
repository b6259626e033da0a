package cache

import (
	"context"
	"time"
)

// Tiered reads through an ordered list of tiers, fastest first. A hit in a
// slower tier backfills the faster ones so subsequent reads stay local.
type Tiered struct {
	tiers []Cache
}

// NewTiered creates a multi-tier cache. Nil tiers are skipped; with no
// usable tier every read misses.
func NewTiered(tiers ...Cache) *Tiered {
	kept := make([]Cache, 0, len(tiers))
	for _, t := range tiers {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &Tiered{tiers: kept}
}

// Get checks tiers in order and backfills faster tiers on a hit. The
// backfill TTL is short: the authoritative TTL lives with the writer, and
// a slightly stale fast-tier entry only costs one extra recompute.
func (t *Tiered) Get(ctx context.Context, key string) (float64, bool) {
	for i, tier := range t.tiers {
		value, ok := tier.Get(ctx, key)
		if !ok {
			continue
		}
		for j := 0; j < i; j++ {
			t.tiers[j].Set(ctx, key, value, 5*time.Second)
		}
		return value, true
	}
	return 0, false
}

// Set writes the value to every tier
func (t *Tiered) Set(ctx context.Context, key string, value float64, ttl time.Duration) {
	for _, tier := range t.tiers {
		tier.Set(ctx, key, value, ttl)
	}
}

// Delete drops the key from every tier
func (t *Tiered) Delete(ctx context.Context, key string) {
	for _, tier := range t.tiers {
		tier.Delete(ctx, key)
	}
}
