// Package calculator resolves concrete magnitudes and durations from
// definition scaling rules and actor stats.
package calculator

import (
	"context"
	"time"

	"github.com/chaos-world/status-core/internal/cache"
	"github.com/chaos-world/status-core/internal/catalog"
	engerr "github.com/chaos-world/status-core/internal/errors"
	"github.com/chaos-world/status-core/internal/stats"
	"github.com/chaos-world/status-core/internal/status"
)

// DefaultTTL is how long resolved values stay cached when no TTL is
// configured.
const DefaultTTL = 30 * time.Second

// Config holds configuration for the calculator
type Config struct {
	StatProvider stats.Provider
	Cache        cache.Cache
	TTL          time.Duration
}

// Calculator computes resolved values with per-(effect, actor) caching.
// Resolution is pure given identical inputs, so serving a cached value in
// place of a recompute is always sound.
type Calculator struct {
	provider stats.Provider
	cache    cache.Cache
	ttl      time.Duration
}

// New creates a calculator
func New(cfg *Config) *Calculator {
	if cfg == nil {
		cfg = &Config{}
	}

	c := &Calculator{
		provider: cfg.StatProvider,
		cache:    cfg.Cache,
		ttl:      cfg.TTL,
	}
	if c.cache == nil {
		c.cache = cache.Noop{}
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	return c
}

// Magnitude resolves an effect's magnitude rule for an actor
func (c *Calculator) Magnitude(ctx context.Context, effectID string, rule catalog.ScalingRule, actorID string, sctx *status.Context) (float64, error) {
	return c.resolve(ctx, cache.Key("magnitude", effectID, actorID), rule, actorID, sctx)
}

// Duration resolves an effect's duration rule for an actor. Rule values are
// seconds.
func (c *Calculator) Duration(ctx context.Context, effectID string, rule catalog.ScalingRule, actorID string, sctx *status.Context) (time.Duration, error) {
	seconds, err := c.resolve(ctx, cache.Key("duration", effectID, actorID), rule, actorID, sctx)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Invalidate drops the cached values for one (effect, actor) pair
func (c *Calculator) Invalidate(ctx context.Context, effectID, actorID string) {
	c.cache.Delete(ctx, cache.Key("magnitude", effectID, actorID))
	c.cache.Delete(ctx, cache.Key("duration", effectID, actorID))
}

func (c *Calculator) resolve(ctx context.Context, key string, rule catalog.ScalingRule, actorID string, sctx *status.Context) (float64, error) {
	if value, ok := c.cache.Get(ctx, key); ok {
		return value, nil
	}

	statValue, err := c.statValue(ctx, rule.ScalingStat, actorID, sctx)
	if err != nil {
		return 0, err
	}

	value := rule.Resolve(statValue)
	c.cache.Set(ctx, key, value, c.ttl)
	return value, nil
}

// statValue looks up the scaling stat: context stat map first, then the
// external provider, defaulting to 0.
func (c *Calculator) statValue(ctx context.Context, statName, actorID string, sctx *status.Context) (float64, error) {
	if statName == "" {
		return 0, nil
	}
	if v, ok := sctx.Stat(statName); ok {
		return v, nil
	}
	if c.provider == nil {
		return 0, nil
	}

	v, err := c.provider.GetStatValue(ctx, actorID, statName)
	if err != nil {
		return 0, engerr.WrapWithCode(err, engerr.CodeUnavailable, "stat provider lookup failed").
			WithMeta("actor_id", actorID).
			WithMeta("stat", statName)
	}
	return v, nil
}
