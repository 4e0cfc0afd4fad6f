package ports

import (
	"context"
	"tour-package-service/internal/domain"
)

// Port: a boundary for retrieving catalog entities from a data source.
// Entities are returned unlinked; the tour<->attraction relation is supplied
// separately and wired once at load time.
type CatalogRepository interface {
	// Retrieve all regions.
	ListRegions(ctx context.Context) ([]*domain.Region, error)
	// Retrieve all tours in a stable order (ascending tour id).
	ListTours(ctx context.Context) ([]*domain.Tour, error)
	// Retrieve all attractions.
	ListAttractions(ctx context.Context) ([]*domain.Attraction, error)
	// Retrieve every tour -> attraction relation row.
	ListTourAttractions(ctx context.Context) ([]domain.TourAttraction, error)
}
