package cache

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the slower shared tier. All failures degrade to cache misses;
// the tier never surfaces an error to its caller.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis cache tier
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Get returns the value if Redis holds a fresh entry
func (r *Redis) Get(ctx context.Context, key string) (float64, bool) {
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("StatusCache: redis get %s failed: %v", key, err)
		}
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("StatusCache: redis key %s holds malformed value %q", key, raw)
		return 0, false
	}
	return value, true
}

// Set stores the value with a TTL; write failures are dropped
func (r *Redis) Set(ctx context.Context, key string, value float64, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw := strconv.FormatFloat(value, 'f', -1, 64)
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("StatusCache: redis set %s failed: %v", key, err)
	}
}

// Delete drops the key best-effort
func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Printf("StatusCache: redis del %s failed: %v", key, err)
	}
}
