// Package cache provides the engine's best-effort read cache. A cache miss
// is always safe: the calculator recomputes and repopulates. Tiers may drop
// writes under contention or outage without affecting correctness.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores resolved scalar values (magnitudes, duration seconds) under
// string keys with a per-entry TTL.
type Cache interface {
	// Get returns the cached value and whether it was present and fresh
	Get(ctx context.Context, key string) (float64, bool)

	// Set stores the value best-effort; failures are silently dropped
	Set(ctx context.Context, key string, value float64, ttl time.Duration)

	// Delete drops the key from every tier best-effort
	Delete(ctx context.Context, key string)
}

// Key builds the cache key for one resolved value. kind distinguishes
// magnitude from duration entries so they expire independently.
func Key(kind, effectID, actorID string) string {
	return fmt.Sprintf("status:%s:%s:%s", kind, effectID, actorID)
}

// Noop is a Cache that stores nothing, for wiring the engine cache-less
type Noop struct{}

// Get always misses
func (Noop) Get(context.Context, string) (float64, bool) { return 0, false }

// Set drops the value
func (Noop) Set(context.Context, string, float64, time.Duration) {}

// Delete does nothing
func (Noop) Delete(context.Context, string) {}
