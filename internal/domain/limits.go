package domain

import (
	"fmt"
	"strconv"
)

// Slack allowed when comparing summed costs, so that sums such as
// 0.1 + 0.2 still fit under a 0.3 cap.
const CostTolerance = 1e-6

// Optional caps on a travel package. A nil field means the cap is unset and
// its check is skipped entirely. Caps are inclusive upper bounds; zero or
// negative values are valid and simply restrictive.
type Limits struct {
	MaxDays   *int
	MaxBudget *float64
}

func NewLimits(maxDays *int, maxBudget *float64) Limits {
	return Limits{MaxDays: maxDays, MaxBudget: maxBudget}
}

// Report whether a single tour fits under every cap that is set.
func (l Limits) Admits(t *Tour) bool {
	if l.MaxDays != nil && t.Days > *l.MaxDays {
		return false
	}
	if l.MaxBudget != nil && !l.FitsBudget(t.Cost) {
		return false
	}
	return true
}

// Report whether cost fits under the budget cap, within CostTolerance.
// An unset cap admits any cost.
func (l Limits) FitsBudget(cost float64) bool {
	return l.MaxBudget == nil || cost <= *l.MaxBudget+CostTolerance
}

// Stable textual form used for cache keys and logs; "-" marks an unset cap.
func (l Limits) String() string {
	days := "-"
	if l.MaxDays != nil {
		days = strconv.Itoa(*l.MaxDays)
	}
	budget := "-"
	if l.MaxBudget != nil {
		budget = strconv.FormatFloat(*l.MaxBudget, 'f', -1, 64)
	}
	return fmt.Sprintf("days=%s budget=%s", days, budget)
}
