package cache

import (
	"context"
	"errors"
	"time"

	"placementhub/internal/config"

	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the read-through cache used for hot listing and stats
// payloads. Values are opaque byte slices; callers own serialization.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob-style pattern,
	// e.g. "stats:*".
	DeletePattern(ctx context.Context, pattern string) error

	Health(ctx context.Context) error
	Close() error
}

// New selects a provider from configuration. The memory provider is the
// default and needs no external service.
func New(cfg config.CacheConfig, logger *zap.Logger) (Cache, error) {
	switch cfg.Provider {
	case "redis":
		return NewRedisCache(cfg.RedisURL, logger)
	case "", "memory":
		return NewMemoryCache(logger), nil
	default:
		return nil, errors.New("cache: unknown provider " + cfg.Provider)
	}
}
