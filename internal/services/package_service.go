package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/ports"

	"github.com/rs/zerolog"
)

// Input to PackageService.GeneratePackage.
type PackageRequest struct {
	RegionID string
	Limits   domain.Limits
}

// PackageService serves package recommendations over a catalog loaded once
// per session. It holds no per-request state and is safe for concurrent use.
type PackageService struct {
	catalog *domain.Catalog
	cache   ports.PackageCache
	search  SearchOptions
	timeout time.Duration
	log     zerolog.Logger
}

type Option func(*PackageService)

// Memoize results in cache. Only complete (non-truncated) searches are stored.
func WithCache(cache ports.PackageCache) Option {
	return func(s *PackageService) { s.cache = cache }
}

func WithSearchOptions(opts SearchOptions) Option {
	return func(s *PackageService) { s.search = opts }
}

// Bound the wall-clock time of a single search. Zero disables the deadline.
func WithSearchTimeout(d time.Duration) Option {
	return func(s *PackageService) { s.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *PackageService) { s.log = l }
}

func NewPackageService(catalog *domain.Catalog, opts ...Option) (*PackageService, error) {
	if catalog == nil {
		return nil, fmt.Errorf("new package service: %w", ErrNilCatalog)
	}

	s := &PackageService{
		catalog: catalog,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "package_service").Logger()

	return s, nil
}

// GeneratePackage returns the best package for the request, consulting the
// cache first when one is configured. Cache failures degrade to a fresh
// search and are only logged.
func (s *PackageService) GeneratePackage(ctx context.Context, req PackageRequest) (domain.TravelPackage, error) {
	regionID := strings.TrimSpace(req.RegionID)
	key := PackageCacheKey(s.catalog.Fingerprint(), regionID, req.Limits)

	if pkg, ok := s.fromCache(ctx, key, regionID, req.Limits); ok {
		s.logResult(ctx, pkg, req.Limits, true)
		return pkg, nil
	}

	searchCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	pkg, err := GeneratePackage(searchCtx, s.catalog, regionID, req.Limits, s.search)
	if err != nil {
		return domain.TravelPackage{}, fmt.Errorf("package service: %w", err)
	}

	if s.cache != nil && !pkg.Truncated {
		entry := ports.CachedPackage{
			RegionID:   pkg.RegionID,
			TourIDs:    pkg.TourIDs(),
			TotalCost:  pkg.TotalCost,
			TotalDays:  pkg.TotalDays,
			TotalValue: pkg.TotalValue,
			Visited:    pkg.Visited,
			StoredAt:   time.Now().UTC(),
		}
		if err := s.cache.Put(ctx, key, entry); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("package cache write failed")
		}
	}

	s.logResult(ctx, pkg, req.Limits, false)
	return pkg, nil
}

// Rehydrate a cached entry against the catalog. Entries that reference
// unknown tours or disagree with recomputed totals are treated as misses.
func (s *PackageService) fromCache(ctx context.Context, key, regionID string, limits domain.Limits) (domain.TravelPackage, bool) {
	if s.cache == nil {
		return domain.TravelPackage{}, false
	}

	entry, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("package cache read failed")
		return domain.TravelPackage{}, false
	}
	if !ok {
		return domain.TravelPackage{}, false
	}

	tours := make([]*domain.Tour, 0, len(entry.TourIDs))
	for _, id := range entry.TourIDs {
		t, found := s.catalog.Tour(id)
		if !found {
			s.log.Warn().Str("key", key).Str("tour_id", id).Msg("cached package references unknown tour")
			return domain.TravelPackage{}, false
		}
		tours = append(tours, t)
	}

	pkg := domain.Summarize(regionID, tours)
	pkg.TotalCost = entry.TotalCost
	pkg.TotalDays = entry.TotalDays
	pkg.TotalValue = entry.TotalValue
	pkg.Visited = entry.Visited

	if err := pkg.Validate(limits); err != nil {
		if errors.Is(err, domain.ErrInvalidPackage) {
			s.log.Warn().Err(err).Str("key", key).Msg("discarding stale cached package")
		}
		return domain.TravelPackage{}, false
	}

	return pkg, true
}

func (s *PackageService) logResult(ctx context.Context, pkg domain.TravelPackage, limits domain.Limits, cached bool) {
	s.log.Info().
		Str("req_id", obs.RequestID(ctx)).
		Str("region_id", pkg.RegionID).
		Str("limits", limits.String()).
		Strs("tours", pkg.TourIDs()).
		Float64("total_cost", pkg.TotalCost).
		Int("total_value", pkg.TotalValue).
		Int("visited", pkg.Visited).
		Bool("truncated", pkg.Truncated).
		Bool("cached", cached).
		Msg("package generated")
}

// PackageCacheKey builds the cache key for a request against the catalog
// identified by fingerprint. Unset caps are encoded as "-" so they never
// collide with a numeric cap.
func PackageCacheKey(fingerprint, regionID string, limits domain.Limits) string {
	days := "-"
	if limits.MaxDays != nil {
		days = strconv.Itoa(*limits.MaxDays)
	}
	budget := "-"
	if limits.MaxBudget != nil {
		budget = strconv.FormatFloat(*limits.MaxBudget, 'f', -1, 64)
	}
	return fingerprint + "|" + regionID + "|" + days + "|" + budget
}
