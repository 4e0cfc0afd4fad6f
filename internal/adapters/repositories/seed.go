package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type RegionSeed struct {
	RegionID string `json:"region_id"`
	Name     string `json:"name"`
}

type TourSeed struct {
	TourID   string  `json:"tour_id"`
	Name     string  `json:"name"`
	RegionID string  `json:"region_id"`
	Days     int     `json:"days"`
	Cost     float64 `json:"cost"`
}

type AttractionSeed struct {
	AttractionID  string `json:"attraction_id"`
	Name          string `json:"name"`
	CulturalValue int    `json:"cultural_value"`
}

type TourAttractionSeed struct {
	TourID       string `json:"tour_id"`
	AttractionID string `json:"attraction_id"`
}

// Catalog document used to seed any store.
type CatalogSeed struct {
	Regions         []RegionSeed         `json:"regions"`
	Tours           []TourSeed           `json:"tours"`
	Attractions     []AttractionSeed     `json:"attractions"`
	TourAttractions []TourAttractionSeed `json:"tour_attractions"`
}

// Read and validate a catalog seed file.
func LoadSeed(jsonPath string) (CatalogSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return CatalogSeed{}, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var seed CatalogSeed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return CatalogSeed{}, fmt.Errorf("load seed: parse json: %w", err)
	}

	if err := seed.Normalize(); err != nil {
		return CatalogSeed{}, fmt.Errorf("load seed: %w", err)
	}

	return seed, nil
}

// Normalize trims identifiers and rejects rows that would break the catalog
// invariants: missing ids, non-positive durations, negative costs or values,
// and relations naming unknown tours, attractions or regions.
func (s *CatalogSeed) Normalize() error {
	regions := make(map[string]struct{}, len(s.Regions))
	for i := range s.Regions {
		r := &s.Regions[i]
		r.RegionID = strings.TrimSpace(r.RegionID)
		if r.RegionID == "" {
			return fmt.Errorf("region at index %d: region_id cannot be empty", i+1)
		}
		regions[r.RegionID] = struct{}{}
	}

	tours := make(map[string]struct{}, len(s.Tours))
	for i := range s.Tours {
		t := &s.Tours[i]
		t.TourID = strings.TrimSpace(t.TourID)
		t.RegionID = strings.TrimSpace(t.RegionID)
		if t.TourID == "" {
			return fmt.Errorf("tour at index %d: tour_id cannot be empty", i+1)
		}
		if _, ok := regions[t.RegionID]; !ok {
			return fmt.Errorf("tour %q: unknown region %q", t.TourID, t.RegionID)
		}
		if t.Days <= 0 {
			return fmt.Errorf("tour %q: days must be positive, got %d", t.TourID, t.Days)
		}
		if t.Cost < 0 {
			return fmt.Errorf("tour %q: cost must be non-negative, got %v", t.TourID, t.Cost)
		}
		tours[t.TourID] = struct{}{}
	}

	attractions := make(map[string]struct{}, len(s.Attractions))
	for i := range s.Attractions {
		a := &s.Attractions[i]
		a.AttractionID = strings.TrimSpace(a.AttractionID)
		if a.AttractionID == "" {
			return fmt.Errorf("attraction at index %d: attraction_id cannot be empty", i+1)
		}
		if a.CulturalValue < 0 {
			return fmt.Errorf("attraction %q: cultural_value must be non-negative, got %d", a.AttractionID, a.CulturalValue)
		}
		attractions[a.AttractionID] = struct{}{}
	}

	for i := range s.TourAttractions {
		e := &s.TourAttractions[i]
		e.TourID = strings.TrimSpace(e.TourID)
		e.AttractionID = strings.TrimSpace(e.AttractionID)
		if _, ok := tours[e.TourID]; !ok {
			return fmt.Errorf("relation at index %d: unknown tour %q", i+1, e.TourID)
		}
		if _, ok := attractions[e.AttractionID]; !ok {
			return fmt.Errorf("relation at index %d: unknown attraction %q", i+1, e.AttractionID)
		}
	}

	return nil
}
