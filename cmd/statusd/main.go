package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/chaos-world/status-core/internal/cache"
	"github.com/chaos-world/status-core/internal/catalog"
	"github.com/chaos-world/status-core/internal/config"
	"github.com/chaos-world/status-core/internal/engine"
	"github.com/chaos-world/status-core/internal/events"
	"github.com/chaos-world/status-core/internal/status"
)

// actorRegistry tracks every actor that ever received an effect so the
// tick loop knows who to process.
type actorRegistry struct {
	mu     sync.Mutex
	actors map[string]bool
}

func newActorRegistry() *actorRegistry {
	return &actorRegistry{actors: make(map[string]bool)}
}

func (r *actorRegistry) HandleEvent(event events.Event) error {
	r.mu.Lock()
	r.actors[event.ActorID] = true
	r.mu.Unlock()
	return nil
}

func (r *actorRegistry) Priority() int { return 0 }
func (r *actorRegistry) ID() string    { return "actor-registry" }

func (r *actorRegistry) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.actors))
	for a := range r.actors {
		out = append(out, a)
	}
	return out
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	snapshot, err := catalog.LoadFile(cfg.Engine.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded catalog: %d effects, %d immunities",
		snapshot.EffectCount(), snapshot.ImmunityCount())

	// Cache tiers: always the in-process tier, plus Redis when configured
	tiers := []cache.Cache{cache.NewMemory(nil)}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Printf("Redis unreachable (%v), running memory-only cache", err)
			redisClient = nil
		} else {
			log.Printf("Connected to Redis at %s", cfg.Redis.Addr)
			tiers = append(tiers, cache.NewRedis(redisClient))
		}
	}

	bus := events.NewBus()
	registry := newActorRegistry()
	bus.Subscribe(events.EffectApplied, registry)
	bus.Subscribe(events.ImmunityApplied, registry)

	svc := engine.NewService(&engine.ServiceConfig{
		Catalog:          catalog.New(snapshot),
		Cache:            cache.NewTiered(tiers...),
		Bus:              bus,
		CacheTTL:         cfg.Engine.CacheTTL,
		BatchConcurrency: cfg.Engine.BatchConcurrency,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(cfg.Engine.TickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case now := <-ticker.C:
				runTick(gctx, svc, registry, now)
			}
		}
	})

	log.Printf("statusd running, tick interval %s", cfg.Engine.TickInterval)
	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Printf("tick loop stopped: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
	}
	log.Println("statusd shut down")
}

func runTick(ctx context.Context, svc engine.Service, registry *actorRegistry, now time.Time) {
	actors := registry.list()
	if len(actors) == 0 {
		return
	}

	results, err := svc.ProcessBatch(ctx, actors, func(actorID string) *status.Context {
		return &status.Context{ActorID: actorID, Timestamp: now}
	})
	if err != nil {
		log.Printf("tick failed: %v", err)
		return
	}

	for actorID, outcomes := range results {
		for _, outcome := range outcomes {
			if outcome.Request != nil {
				log.Printf("damage request: actor=%s effect=%s kind=%s element=%s magnitude=%.2f",
					actorID, outcome.Request.EffectID, outcome.Request.Kind,
					outcome.Request.Element, outcome.Request.Magnitude)
			}
			if outcome.Expired {
				log.Printf("effect expired: actor=%s effect=%s", actorID, outcome.EffectID)
			}
		}
	}
}
