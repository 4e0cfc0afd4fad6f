package services

import (
	"testing"
	"tour-package-service/internal/domain"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

type tourSpec struct {
	id          string
	region      string
	days        int
	cost        float64
	attractions []string
}

// Build a linked catalog from compact tour specs and attraction values.
func buildCatalog(t *testing.T, values map[string]int, specs []tourSpec) *domain.Catalog {
	t.Helper()

	regionSet := map[string]struct{}{}
	regions := []*domain.Region{}
	tours := make([]*domain.Tour, 0, len(specs))
	edges := []domain.TourAttraction{}
	for _, s := range specs {
		if _, ok := regionSet[s.region]; !ok {
			regionSet[s.region] = struct{}{}
			regions = append(regions, &domain.Region{RegionID: s.region})
		}
		tours = append(tours, domain.NewTour(s.id, s.id, s.region, s.days, s.cost))
		for _, a := range s.attractions {
			edges = append(edges, domain.TourAttraction{TourID: s.id, AttractionID: a})
		}
	}

	attractions := make([]*domain.Attraction, 0, len(values))
	for id, v := range values {
		attractions = append(attractions, domain.NewAttraction(id, id, v))
	}

	c, err := domain.NewCatalog(regions, tours, attractions, edges)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

// Region R1 with A(2d, 100, a1:5 a2:3), B(3d, 150, a3:10), C(1d, 50, a1:5).
func scenarioCatalog(t *testing.T) *domain.Catalog {
	return buildCatalog(t,
		map[string]int{"a1": 5, "a2": 3, "a3": 10, "a9": 7},
		[]tourSpec{
			{id: "A", region: "R1", days: 2, cost: 100, attractions: []string{"a1", "a2"}},
			{id: "B", region: "R1", days: 3, cost: 150, attractions: []string{"a3"}},
			{id: "C", region: "R1", days: 1, cost: 50, attractions: []string{"a1"}},
			{id: "Z", region: "R2", days: 1, cost: 10, attractions: []string{"a9"}},
		},
	)
}

func tourIDs(tours []*domain.Tour) []string {
	ids := make([]string, 0, len(tours))
	for _, t := range tours {
		ids = append(ids, t.TourID)
	}
	return ids
}
