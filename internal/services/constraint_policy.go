package services

import "tour-package-service/internal/domain"

// ConstraintPolicy decides whether a tour may join a partial package.
// It is a pure predicate over the accumulated state of one search branch.
type ConstraintPolicy struct {
	Limits domain.Limits
}

// Acceptable rejects the tour if it revisits an attraction already counted,
// or if adding it would push the running days or cost past a cap that is
// set. Caps that are unset are not checked. Caps are inclusive, and the
// budget cap allows domain.CostTolerance of float rounding.
func (p ConstraintPolicy) Acceptable(
	tour *domain.Tour,
	daysUsed int,
	costUsed float64,
	attractionsUsed map[string]struct{},
) bool {
	// Attraction uniqueness holds regardless of caps.
	if tour.SharesAny(attractionsUsed) {
		return false
	}
	if p.Limits.MaxDays != nil && daysUsed+tour.Days > *p.Limits.MaxDays {
		return false
	}
	if !p.Limits.FitsBudget(costUsed + tour.Cost) {
		return false
	}
	return true
}
