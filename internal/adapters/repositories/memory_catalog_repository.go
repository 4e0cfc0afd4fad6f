package repositories

import (
	"context"
	"tour-package-service/internal/domain"
)

// In-memory implementation of the CatalogRepository port, backed by a seed
// document. Each call returns freshly allocated, unlinked entities so that
// repeated catalog loads never share state.
type MemoryCatalogRepository struct {
	seed CatalogSeed
}

func NewMemoryCatalogRepository(seed CatalogSeed) *MemoryCatalogRepository {
	return &MemoryCatalogRepository{seed: seed}
}

func (m *MemoryCatalogRepository) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*domain.Region, 0, len(m.seed.Regions))
	for _, r := range m.seed.Regions {
		out = append(out, &domain.Region{RegionID: r.RegionID, Name: r.Name})
	}
	return out, nil
}

// Tours are returned in seed order.
func (m *MemoryCatalogRepository) ListTours(ctx context.Context) ([]*domain.Tour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*domain.Tour, 0, len(m.seed.Tours))
	for _, t := range m.seed.Tours {
		out = append(out, domain.NewTour(t.TourID, t.Name, t.RegionID, t.Days, t.Cost))
	}
	return out, nil
}

func (m *MemoryCatalogRepository) ListAttractions(ctx context.Context) ([]*domain.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*domain.Attraction, 0, len(m.seed.Attractions))
	for _, a := range m.seed.Attractions {
		out = append(out, domain.NewAttraction(a.AttractionID, a.Name, a.CulturalValue))
	}
	return out, nil
}

func (m *MemoryCatalogRepository) ListTourAttractions(ctx context.Context) ([]domain.TourAttraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.TourAttraction, 0, len(m.seed.TourAttractions))
	for _, e := range m.seed.TourAttractions {
		out = append(out, domain.TourAttraction{TourID: e.TourID, AttractionID: e.AttractionID})
	}
	return out, nil
}
