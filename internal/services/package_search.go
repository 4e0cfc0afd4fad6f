package services

import (
	"context"
	"errors"
	"fmt"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/obs"
)

var ErrNilCatalog = errors.New("catalog must be non-nil")

// Marks "no package found yet"; any real package value (>= 0) beats it.
const noPackageValue = -1

// Context cancellation is polled once per this many visited nodes.
const ctxCheckInterval = 1024

// SearchOptions bounds an otherwise exhaustive search.
type SearchOptions struct {
	// Maximum number of search nodes to expand. Zero means unlimited.
	MaxVisits int
}

// One level of the explicit search stack: the tour that was pushed to reach
// it, the running totals after the push, and the next candidate index to try.
type searchFrame struct {
	next  int
	tour  *domain.Tour
	added []string
	days  int
	cost  float64
	value int
}

// Best-so-far state for a single search call. Kept local so that concurrent
// or reentrant searches never share it.
type searchState struct {
	bestValue int
	bestTours []*domain.Tour
	bestDays  int
	bestCost  float64
	visited   int
	truncated bool
}

// GeneratePackage recommends the package of tours for a region that
// maximizes cultural value under the optional caps.
//
// Unknown or empty regions are not an error: the result is the empty
// package with zero cost and value.
func GeneratePackage(
	ctx context.Context,
	catalog *domain.Catalog,
	regionID string,
	limits domain.Limits,
	opts SearchOptions,
) (_ domain.TravelPackage, err error) {
	defer obs.Time(ctx, "package.Generate")(&err)

	if catalog == nil {
		return domain.TravelPackage{}, fmt.Errorf("generate package: %w", ErrNilCatalog)
	}

	candidates := FilterRegionTours(catalog, regionID, limits)
	return SearchPackage(ctx, regionID, candidates, limits, opts), nil
}

// SearchPackage enumerates subsets of candidates depth-first, choosing
// tours only at increasing indices so each subset is visited exactly once.
//
// At every node the partial package replaces the best one when its value is
// strictly greater; on ties the first package found in search order wins.
// Cultural value accumulates only for attractions not already counted.
//
// The traversal uses an explicit stack rather than recursion, visiting nodes
// in the same order a recursive descent would. When the visit budget is
// exhausted or ctx is done, the best package found so far is returned with
// Truncated set.
func SearchPackage(
	ctx context.Context,
	regionID string,
	candidates []*domain.Tour,
	limits domain.Limits,
	opts SearchOptions,
) domain.TravelPackage {
	policy := ConstraintPolicy{Limits: limits}
	st := searchState{bestValue: noPackageValue}

	partial := make([]*domain.Tour, 0, len(candidates))
	used := make(map[string]struct{})

	stack := make([]searchFrame, 0, len(candidates)+1)
	stack = append(stack, searchFrame{})
	st.visit(partial, stack[0])

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		descended := false
		for top.next < len(candidates) {
			if st.exhausted(ctx, opts) {
				st.truncated = true
				break
			}

			i := top.next
			top.next++

			tour := candidates[i]
			if !policy.Acceptable(tour, top.days, top.cost, used) {
				continue
			}

			// Only attractions new to this branch contribute value.
			marginal := 0
			added := make([]string, 0, len(tour.Attractions))
			for _, a := range tour.Attractions {
				if _, ok := used[a.AttractionID]; ok {
					continue
				}
				used[a.AttractionID] = struct{}{}
				added = append(added, a.AttractionID)
				marginal += a.CulturalValue
			}

			child := searchFrame{
				next:  i + 1,
				tour:  tour,
				added: added,
				days:  top.days + tour.Days,
				cost:  top.cost + tour.Cost,
				value: top.value + marginal,
			}
			partial = append(partial, tour)
			stack = append(stack, child)
			st.visit(partial, child)

			descended = true
			break
		}

		if st.truncated {
			break
		}
		if descended {
			continue
		}

		// Undo exactly what this frame added before returning to the parent.
		done := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if done.tour != nil {
			partial = partial[:len(partial)-1]
			for _, id := range done.added {
				delete(used, id)
			}
		}
	}

	return domain.TravelPackage{
		RegionID:   regionID,
		Tours:      st.bestTours,
		TotalCost:  st.bestCost,
		TotalDays:  st.bestDays,
		TotalValue: st.bestValue,
		Visited:    st.visited,
		Truncated:  st.truncated,
	}
}

func (s *searchState) visit(partial []*domain.Tour, f searchFrame) {
	s.visited++
	if s.bestValue == noPackageValue || f.value > s.bestValue {
		s.bestValue = f.value
		s.bestTours = append(make([]*domain.Tour, 0, len(partial)), partial...)
		s.bestDays = f.days
		s.bestCost = f.cost
	}
}

func (s *searchState) exhausted(ctx context.Context, opts SearchOptions) bool {
	if opts.MaxVisits > 0 && s.visited >= opts.MaxVisits {
		return true
	}
	if s.visited%ctxCheckInterval == 0 && ctx.Err() != nil {
		return true
	}
	return false
}
