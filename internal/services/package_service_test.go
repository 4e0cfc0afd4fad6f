package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
	rediscache "tour-package-service/internal/adapters/cache"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	entries map[string]ports.CachedPackage
	gets    int
	puts    int
	getErr  error
	putErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]ports.CachedPackage{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (ports.CachedPackage, bool, error) {
	m.gets++
	if m.getErr != nil {
		return ports.CachedPackage{}, false, m.getErr
	}
	p, ok := m.entries[key]
	return p, ok, nil
}

func (m *memoryCache) Put(_ context.Context, key string, pkg ports.CachedPackage) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[key] = pkg
	return nil
}

func TestPackageServiceGeneratesAndCaches(t *testing.T) {
	cache := newMemoryCache()
	catalog := scenarioCatalog(t)
	svc, err := NewPackageService(catalog, WithCache(cache))
	require.NoError(t, err)

	req := PackageRequest{RegionID: "R1", Limits: domain.NewLimits(intPtr(5), floatPtr(300))}

	first, err := svc.GeneratePackage(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, first.TourIDs())
	assert.Equal(t, 1, cache.puts)

	entry, ok := cache.entries[catalog.Fingerprint()+"|R1|5|300"]
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, entry.TourIDs)
	assert.Equal(t, 18, entry.TotalValue)

	second, err := svc.GeneratePackage(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts, "a hit must not rewrite the cache")
	assert.Equal(t, first.TourIDs(), second.TourIDs())
	assert.Equal(t, first.TotalCost, second.TotalCost)
	assert.Equal(t, first.TotalValue, second.TotalValue)
}

func TestPackageServiceDiscardsStaleCacheEntries(t *testing.T) {
	catalog := scenarioCatalog(t)
	fp := catalog.Fingerprint()
	cache := newMemoryCache()
	cache.entries[fp+"|R1|-|-"] = ports.CachedPackage{RegionID: "R1", TourIDs: []string{"A", "C"}, TotalValue: 13}
	cache.entries[fp+"|R1|-|100"] = ports.CachedPackage{RegionID: "R1", TourIDs: []string{"gone"}}

	svc, err := NewPackageService(catalog, WithCache(cache))
	require.NoError(t, err)

	pkg, err := svc.GeneratePackage(context.Background(), PackageRequest{RegionID: "R1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, pkg.TourIDs(), "overlapping cached package is rejected")

	pkg, err = svc.GeneratePackage(context.Background(), PackageRequest{RegionID: "R1", Limits: domain.NewLimits(nil, floatPtr(100))})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, pkg.TourIDs(), "unknown cached tour is a miss")
}

func TestPackageServiceCacheFailuresDegrade(t *testing.T) {
	var buf bytes.Buffer
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.putErr = errors.New("redis down")

	svc, err := NewPackageService(scenarioCatalog(t), WithCache(cache), WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	pkg, err := svc.GeneratePackage(context.Background(), PackageRequest{RegionID: "R1"})
	require.NoError(t, err)
	assert.Equal(t, 18, pkg.TotalValue)
	assert.Contains(t, buf.String(), "package cache read failed")
	assert.Contains(t, buf.String(), "package cache write failed")
	assert.Contains(t, buf.String(), `"component":"package_service"`)
}

func TestPackageServiceSkipsCachingTruncatedResults(t *testing.T) {
	cache := newMemoryCache()
	svc, err := NewPackageService(scenarioCatalog(t),
		WithCache(cache),
		WithSearchOptions(SearchOptions{MaxVisits: 2}),
		WithSearchTimeout(time.Second),
	)
	require.NoError(t, err)

	pkg, err := svc.GeneratePackage(context.Background(), PackageRequest{RegionID: "R1"})
	require.NoError(t, err)
	assert.True(t, pkg.Truncated)
	assert.Zero(t, cache.puts)
}

func TestPackageServiceTrimsRegion(t *testing.T) {
	svc, err := NewPackageService(scenarioCatalog(t))
	require.NoError(t, err)

	pkg, err := svc.GeneratePackage(context.Background(), PackageRequest{RegionID: "  R1 "})
	require.NoError(t, err)
	assert.Equal(t, "R1", pkg.RegionID)
	assert.Len(t, pkg.Tours, 2)
}

func TestNewPackageServiceRequiresCatalog(t *testing.T) {
	_, err := NewPackageService(nil)
	assert.ErrorIs(t, err, ErrNilCatalog)
}

func TestPackageCacheKey(t *testing.T) {
	assert.Equal(t, "f1|R1|-|-", PackageCacheKey("f1", "R1", domain.Limits{}))
	assert.Equal(t, "f1|R1|0|-", PackageCacheKey("f1", "R1", domain.NewLimits(intPtr(0), nil)))
	assert.Equal(t, "f1|R1|-|99.5", PackageCacheKey("f1", "R1", domain.NewLimits(nil, floatPtr(99.5))))
}

func TestPackageServiceCacheIsScopedToCatalog(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	shared, err := rediscache.NewRedisPackageCache(client, "tourpkg:", time.Hour)
	require.NoError(t, err)

	req := PackageRequest{RegionID: "R1"}

	before, err := NewPackageService(scenarioCatalog(t), WithCache(shared))
	require.NoError(t, err)
	pkg, err := before.GeneratePackage(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, pkg.TourIDs())

	// Same catalog plus a disjoint tour D, e.g. after a reseed and restart.
	reseeded := buildCatalog(t,
		map[string]int{"a1": 5, "a2": 3, "a3": 10, "a4": 50},
		[]tourSpec{
			{id: "A", region: "R1", days: 2, cost: 100, attractions: []string{"a1", "a2"}},
			{id: "B", region: "R1", days: 3, cost: 150, attractions: []string{"a3"}},
			{id: "C", region: "R1", days: 1, cost: 50, attractions: []string{"a1"}},
			{id: "D", region: "R1", days: 1, cost: 20, attractions: []string{"a4"}},
		},
	)
	after, err := NewPackageService(reseeded, WithCache(shared))
	require.NoError(t, err)

	pkg, err = after.GeneratePackage(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, pkg.TourIDs())
	assert.Equal(t, 68, pkg.TotalValue)

	// Each catalog keeps its own entry.
	assert.Len(t, mr.Keys(), 2)
}
