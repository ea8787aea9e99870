// Package cache memoizes comparison results keyed by their inputs.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/invest-compare/internal/config"
	"github.com/iwvelando/invest-compare/pkg/constants"
)

// Cache stores opaque values under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key derives a stable cache key for a comparison of the given kind.
func Key(kind string, input any) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("cache key for %s: %w", kind, err)
	}
	return kind + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}

// New selects a cache backend from configuration. It returns a nil Cache when
// caching is disabled.
func New(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case constants.CacheBackendNone:
		return nil, nil
	case "", constants.CacheBackendMemory:
		return NewMemory(), nil
	case constants.CacheBackendRedis:
		addr := cfg.RedisAddress
		if addr == "" {
			addr = constants.DefaultRedisAddress
		}
		return NewRedis(addr), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
