package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the status daemon
type Config struct {
	Redis  RedisConfig
	Engine EngineConfig
}

// RedisConfig holds Redis-specific configuration. An empty Addr disables
// the Redis cache tier; the engine then runs memory-only.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// EngineConfig holds engine tuning knobs
type EngineConfig struct {
	CatalogPath      string
	CacheTTL         time.Duration
	TickInterval     time.Duration
	BatchConcurrency int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Engine: EngineConfig{
			CatalogPath:      getEnvOrDefault("CATALOG_PATH", "catalog.yaml"),
			CacheTTL:         time.Duration(getEnvAsIntOrDefault("STATUS_CACHE_TTL_SECONDS", 30)) * time.Second,
			TickInterval:     time.Duration(getEnvAsIntOrDefault("TICK_INTERVAL_MS", 1000)) * time.Millisecond,
			BatchConcurrency: getEnvAsIntOrDefault("BATCH_CONCURRENCY", 8),
		},
	}

	if cfg.Engine.TickInterval <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL_MS must be positive")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
