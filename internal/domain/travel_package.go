package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidPackage = errors.New("invalid travel package")

// Represents the recommended selection of tours for one region.
// TotalCost, TotalDays and TotalValue are derived from Tours; TotalValue
// counts every attraction once. Visited and Truncated describe the search
// that produced the package and are not part of its identity.
type TravelPackage struct {
	RegionID   string
	Tours      []*Tour
	TotalCost  float64
	TotalDays  int
	TotalValue int

	Visited   int
	Truncated bool
}

// Return the tour ids in package order.
func (p TravelPackage) TourIDs() []string {
	ids := make([]string, 0, len(p.Tours))
	for _, t := range p.Tours {
		ids = append(ids, t.TourID)
	}
	return ids
}

// Recompute totals from the selected tours.
func Summarize(regionID string, tours []*Tour) TravelPackage {
	p := TravelPackage{RegionID: regionID, Tours: tours}
	seen := make(map[string]struct{})
	for _, t := range tours {
		p.TotalCost += t.Cost
		p.TotalDays += t.Days
		for _, a := range t.Attractions {
			if _, ok := seen[a.AttractionID]; ok {
				continue
			}
			seen[a.AttractionID] = struct{}{}
			p.TotalValue += a.CulturalValue
		}
	}
	return p
}

// Check the package against its own totals and the supplied caps.
// Attractions must be disjoint across tours and every tour must belong to
// the package region.
func (p TravelPackage) Validate(limits Limits) error {
	seen := make(map[string]string)
	for _, t := range p.Tours {
		if p.RegionID != "" && t.RegionID != p.RegionID {
			return fmt.Errorf("validate package: tour %q is in region %q, want %q: %w", t.TourID, t.RegionID, p.RegionID, ErrInvalidPackage)
		}
		for _, a := range t.Attractions {
			if other, ok := seen[a.AttractionID]; ok {
				return fmt.Errorf("validate package: attraction %q shared by tours %q and %q: %w", a.AttractionID, other, t.TourID, ErrInvalidPackage)
			}
			seen[a.AttractionID] = t.TourID
		}
	}

	want := Summarize(p.RegionID, p.Tours)
	if want.TotalDays != p.TotalDays {
		return fmt.Errorf("validate package: total days %d, want %d: %w", p.TotalDays, want.TotalDays, ErrInvalidPackage)
	}
	if want.TotalValue != p.TotalValue {
		return fmt.Errorf("validate package: total value %d, want %d: %w", p.TotalValue, want.TotalValue, ErrInvalidPackage)
	}
	if math.Abs(want.TotalCost-p.TotalCost) > CostTolerance {
		return fmt.Errorf("validate package: total cost %v, want %v: %w", p.TotalCost, want.TotalCost, ErrInvalidPackage)
	}

	if limits.MaxDays != nil && p.TotalDays > *limits.MaxDays {
		return fmt.Errorf("validate package: %d days exceeds cap %d: %w", p.TotalDays, *limits.MaxDays, ErrInvalidPackage)
	}
	if !limits.FitsBudget(p.TotalCost) {
		return fmt.Errorf("validate package: cost %v exceeds cap %v: %w", p.TotalCost, *limits.MaxBudget, ErrInvalidPackage)
	}

	return nil
}
