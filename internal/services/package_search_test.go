package services

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"tour-package-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePackageScenario(t *testing.T) {
	catalog := scenarioCatalog(t)
	limits := domain.NewLimits(intPtr(5), floatPtr(300))

	pkg, err := GeneratePackage(context.Background(), catalog, "R1", limits, SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, pkg.TourIDs())
	assert.Equal(t, 250.0, pkg.TotalCost)
	assert.Equal(t, 18, pkg.TotalValue)
	assert.Equal(t, 5, pkg.TotalDays)
	assert.Equal(t, "R1", pkg.RegionID)
	assert.False(t, pkg.Truncated)
	// root, A, AB, B, BC, C
	assert.Equal(t, 6, pkg.Visited)
	assert.NoError(t, pkg.Validate(limits))
}

func TestGeneratePackageWithoutCaps(t *testing.T) {
	catalog := scenarioCatalog(t)

	pkg, err := GeneratePackage(context.Background(), catalog, "R1", domain.Limits{}, SearchOptions{})
	require.NoError(t, err)

	// C can never join A (shared a1); B+C is worth 15 < 18.
	assert.Equal(t, []string{"A", "B"}, pkg.TourIDs())
	assert.Equal(t, 18, pkg.TotalValue)
}

func TestGeneratePackageTightCaps(t *testing.T) {
	catalog := scenarioCatalog(t)

	cases := []struct {
		name   string
		limits domain.Limits
		want   []string
		value  int
		cost   float64
	}{
		{"day cap fits B alone", domain.NewLimits(intPtr(3), nil), []string{"B"}, 10, 150},
		{"day cap equal to single tour", domain.NewLimits(intPtr(1), nil), []string{"C"}, 5, 50},
		{"budget cap equal to single tour", domain.NewLimits(nil, floatPtr(100)), []string{"A"}, 8, 100},
		{"budget allows B and C", domain.NewLimits(nil, floatPtr(200)), []string{"B", "C"}, 15, 200},
		{"zero caps", domain.NewLimits(intPtr(0), floatPtr(0)), []string{}, 0, 0},
		{"negative caps", domain.NewLimits(intPtr(-3), floatPtr(-1)), []string{}, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pkg, err := GeneratePackage(context.Background(), catalog, "R1", tc.limits, SearchOptions{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, pkg.TourIDs())
			assert.Equal(t, tc.value, pkg.TotalValue)
			assert.Equal(t, tc.cost, pkg.TotalCost)
			assert.NoError(t, pkg.Validate(tc.limits))
		})
	}
}

func TestGeneratePackageEmptyRegion(t *testing.T) {
	catalog := scenarioCatalog(t)

	for _, region := range []string{"", "R9"} {
		pkg, err := GeneratePackage(context.Background(), catalog, region, domain.Limits{}, SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, pkg.Tours)
		assert.Zero(t, pkg.TotalCost)
		assert.Zero(t, pkg.TotalValue)
		assert.Equal(t, 1, pkg.Visited)
	}
}

func TestGeneratePackageNilCatalog(t *testing.T) {
	_, err := GeneratePackage(context.Background(), nil, "R1", domain.Limits{}, SearchOptions{})
	assert.ErrorIs(t, err, ErrNilCatalog)
}

func TestSearchPackageKeepsFirstOnTie(t *testing.T) {
	catalog := buildCatalog(t,
		map[string]int{"a": 5, "b": 5},
		[]tourSpec{
			{id: "X", region: "R1", days: 1, cost: 10, attractions: []string{"a"}},
			{id: "Y", region: "R1", days: 1, cost: 10, attractions: []string{"b"}},
		},
	)

	pkg, err := GeneratePackage(context.Background(), catalog, "R1", domain.NewLimits(intPtr(1), nil), SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, pkg.TourIDs())
}

func TestSearchPackageZeroValueToursDoNotReplaceEmptyPackage(t *testing.T) {
	catalog := buildCatalog(t,
		map[string]int{"dull": 0},
		[]tourSpec{{id: "D", region: "R1", days: 1, cost: 10, attractions: []string{"dull"}}},
	)

	pkg, err := GeneratePackage(context.Background(), catalog, "R1", domain.Limits{}, SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, pkg.Tours)
	assert.Zero(t, pkg.TotalValue)
}

func TestSearchPackageSiblingBranchesDoNotLeakAttractions(t *testing.T) {
	// P uses "x"; once the P branch is abandoned, Q (which also uses "x")
	// must be combinable with R.
	catalog := buildCatalog(t,
		map[string]int{"x": 1, "y": 1, "big": 20},
		[]tourSpec{
			{id: "P", region: "R1", days: 5, cost: 0, attractions: []string{"x"}},
			{id: "Q", region: "R1", days: 1, cost: 0, attractions: []string{"x", "big"}},
			{id: "R", region: "R1", days: 1, cost: 0, attractions: []string{"y"}},
		},
	)

	pkg, err := GeneratePackage(context.Background(), catalog, "R1", domain.NewLimits(intPtr(5), nil), SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Q", "R"}, pkg.TourIDs())
	assert.Equal(t, 22, pkg.TotalValue)
}

func TestSearchPackageVisitBudget(t *testing.T) {
	catalog := scenarioCatalog(t)

	pkg, err := GeneratePackage(context.Background(), catalog, "R1", domain.Limits{}, SearchOptions{MaxVisits: 2})
	require.NoError(t, err)
	assert.True(t, pkg.Truncated)
	assert.Equal(t, 2, pkg.Visited)
	assert.Equal(t, []string{"A"}, pkg.TourIDs(), "best so far is returned")
	assert.Equal(t, 8, pkg.TotalValue)

	pkg, err = GeneratePackage(context.Background(), catalog, "R1", domain.Limits{}, SearchOptions{MaxVisits: 1000})
	require.NoError(t, err)
	assert.False(t, pkg.Truncated)
}

func disjointCatalog(t *testing.T, n int) *domain.Catalog {
	values := make(map[string]int, n)
	specs := make([]tourSpec, 0, n)
	for i := 0; i < n; i++ {
		a := fmt.Sprintf("a%05d", i)
		values[a] = 1
		specs = append(specs, tourSpec{id: fmt.Sprintf("T%05d", i), region: "R1", days: 1, cost: 1, attractions: []string{a}})
	}
	return buildCatalog(t, values, specs)
}

func TestSearchPackageCancelledContext(t *testing.T) {
	catalog := disjointCatalog(t, 12) // 4096 subsets

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pkg, err := GeneratePackage(ctx, catalog, "R1", domain.Limits{}, SearchOptions{})
	require.NoError(t, err)
	assert.True(t, pkg.Truncated)
	assert.Less(t, pkg.Visited, 4096)
	assert.NoError(t, pkg.Validate(domain.Limits{}))
}

func TestSearchPackageDeepChainUsesExplicitStack(t *testing.T) {
	const n = 10000
	catalog := disjointCatalog(t, n)

	pkg, err := GeneratePackage(context.Background(), catalog, "R1", domain.Limits{}, SearchOptions{MaxVisits: n + 1})
	require.NoError(t, err)
	assert.True(t, pkg.Truncated)
	assert.Len(t, pkg.Tours, n)
	assert.Equal(t, n, pkg.TotalValue)
}

func TestSearchPackageIsDeterministic(t *testing.T) {
	catalog := scenarioCatalog(t)
	limits := domain.NewLimits(intPtr(5), floatPtr(300))

	first, err := GeneratePackage(context.Background(), catalog, "R1", limits, SearchOptions{})
	require.NoError(t, err)
	second, err := GeneratePackage(context.Background(), catalog, "R1", limits, SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Recursive reference search, written directly from the backtracking rules.
func referenceSearch(candidates []*domain.Tour, limits domain.Limits) ([]string, int) {
	policy := ConstraintPolicy{Limits: limits}
	bestValue := -1
	var best []string

	var recurse func(start int, partial []string, days int, cost float64, value int, used map[string]struct{})
	recurse = func(start int, partial []string, days int, cost float64, value int, used map[string]struct{}) {
		if bestValue == -1 || value > bestValue {
			bestValue = value
			best = append([]string{}, partial...)
		}
		for i := start; i < len(candidates); i++ {
			tour := candidates[i]
			if !policy.Acceptable(tour, days, cost, used) {
				continue
			}
			next := make(map[string]struct{}, len(used)+len(tour.Attractions))
			for k := range used {
				next[k] = struct{}{}
			}
			marginal := 0
			for _, a := range tour.Attractions {
				if _, ok := next[a.AttractionID]; !ok {
					next[a.AttractionID] = struct{}{}
					marginal += a.CulturalValue
				}
			}
			recurse(i+1, append(partial, tour.TourID), days+tour.Days, cost+tour.Cost, value+marginal, next)
		}
	}
	recurse(0, nil, 0, 0, 0, map[string]struct{}{})

	return best, bestValue
}

func TestSearchPackageMatchesReferenceOnRandomCatalogs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		nAttractions := 2 + rng.Intn(8)
		values := make(map[string]int, nAttractions)
		for i := 0; i < nAttractions; i++ {
			values[fmt.Sprintf("a%d", i)] = rng.Intn(6)
		}

		nTours := rng.Intn(10)
		specs := make([]tourSpec, 0, nTours)
		for i := 0; i < nTours; i++ {
			var attractions []string
			for j := 0; j < nAttractions; j++ {
				if rng.Intn(4) == 0 {
					attractions = append(attractions, fmt.Sprintf("a%d", j))
				}
			}
			region := "R1"
			if rng.Intn(5) == 0 {
				region = "R2"
			}
			specs = append(specs, tourSpec{
				id:          fmt.Sprintf("T%02d", i),
				region:      region,
				days:        1 + rng.Intn(4),
				cost:        float64(rng.Intn(200)),
				attractions: attractions,
			})
		}
		catalog := buildCatalog(t, values, specs)

		var limits domain.Limits
		if rng.Intn(2) == 0 {
			limits.MaxDays = intPtr(rng.Intn(10))
		}
		if rng.Intn(2) == 0 {
			limits.MaxBudget = floatPtr(float64(rng.Intn(500)))
		}

		pkg, err := GeneratePackage(context.Background(), catalog, "R1", limits, SearchOptions{})
		require.NoError(t, err)

		wantIDs, wantValue := referenceSearch(FilterRegionTours(catalog, "R1", limits), limits)
		if wantIDs == nil {
			wantIDs = []string{}
		}

		require.Equal(t, wantIDs, pkg.TourIDs(), "round %d", round)
		require.Equal(t, wantValue, pkg.TotalValue, "round %d", round)
		require.NoError(t, pkg.Validate(limits), "round %d", round)
	}
}
