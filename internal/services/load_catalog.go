package services

import (
	"context"
	"fmt"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// LoadCatalog reads every catalog entity through the repository port and
// links the tour<->attraction relation on both sides.
//
// Regions, tours and attractions are independent reads and are fetched
// concurrently; relation rows are read once the entity sets are known.
// A relation naming an unknown tour or attraction fails the load.
func LoadCatalog(ctx context.Context, repo ports.CatalogRepository) (_ *domain.Catalog, err error) {
	defer obs.Time(ctx, "catalog.Load")(&err)

	var (
		regions     []*domain.Region
		tours       []*domain.Tour
		attractions []*domain.Attraction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, e := repo.ListRegions(gctx)
		if e != nil {
			return fmt.Errorf("list regions: %w", e)
		}
		regions = r
		return nil
	})
	g.Go(func() error {
		t, e := repo.ListTours(gctx)
		if e != nil {
			return fmt.Errorf("list tours: %w", e)
		}
		tours = t
		return nil
	})
	g.Go(func() error {
		a, e := repo.ListAttractions(gctx)
		if e != nil {
			return fmt.Errorf("list attractions: %w", e)
		}
		attractions = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	edges, err := repo.ListTourAttractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: list tour attractions: %w", err)
	}

	catalog, err := domain.NewCatalog(regions, tours, attractions, edges)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return catalog, nil
}
