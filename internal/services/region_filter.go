package services

import "tour-package-service/internal/domain"

// FilterRegionTours returns the ordered candidate list for a region.
//
// A tour is kept when it belongs to the region and individually fits under
// every cap that is set (both caps must hold when both are set). This is a
// pre-filter only: a tour that fits on its own may still be rejected once
// combined with other tours during the search.
//
// The result is a fresh slice in catalog order with duplicates removed; the
// catalog is never modified.
func FilterRegionTours(catalog *domain.Catalog, regionID string, limits domain.Limits) []*domain.Tour {
	candidates := make([]*domain.Tour, 0)
	if catalog == nil || regionID == "" {
		return candidates
	}

	seen := make(map[string]struct{})
	for _, t := range catalog.Tours() {
		if t.RegionID != regionID {
			continue
		}
		if !limits.Admits(t) {
			continue
		}
		if _, ok := seen[t.TourID]; ok {
			continue
		}
		seen[t.TourID] = struct{}{}
		candidates = append(candidates, t)
	}

	return candidates
}
