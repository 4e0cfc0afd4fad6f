package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Redis-backed implementation of the PackageCache port.
// Values are JSON-encoded CachedPackage documents stored under
// prefix+key with a fixed TTL.
type RedisPackageCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisPackageCache(client redis.UniversalClient, prefix string, ttl time.Duration) (*RedisPackageCache, error) {
	if client == nil {
		return nil, errors.New("redis package cache: client is nil")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("redis package cache: ttl must be non-negative, got %v", ttl)
	}
	return &RedisPackageCache{client: client, prefix: prefix, ttl: ttl}, nil
}

// Fetch the cached package for key. A missing key is a miss, not an error.
func (c *RedisPackageCache) Get(ctx context.Context, key string) (_ ports.CachedPackage, _ bool, err error) {
	defer obs.Time(ctx, "package.cache.Get")(&err)

	if strings.TrimSpace(key) == "" {
		return ports.CachedPackage{}, false, errors.New("get package cache: key must not be empty")
	}

	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.CachedPackage{}, false, nil
	}
	if err != nil {
		return ports.CachedPackage{}, false, fmt.Errorf("get package cache key=%q: %w", key, err)
	}

	var pkg ports.CachedPackage
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return ports.CachedPackage{}, false, fmt.Errorf("get package cache key=%q: decode: %w", key, err)
	}

	return pkg, true, nil
}

// Store a package under key, replacing any previous value.
func (c *RedisPackageCache) Put(ctx context.Context, key string, pkg ports.CachedPackage) (err error) {
	defer obs.Time(ctx, "package.cache.Put")(&err)

	if strings.TrimSpace(key) == "" {
		return errors.New("put package cache: key must not be empty")
	}

	raw, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("put package cache key=%q: encode: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put package cache key=%q: %w", key, err)
	}

	return nil
}
