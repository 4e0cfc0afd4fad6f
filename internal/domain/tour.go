package domain

// Represents a purchasable multi-day offering tied to a single region.
// A Tour owns its attraction membership; the same Attraction pointer may be
// shared by several tours.
type Tour struct {
	TourID   string
	Name     string
	RegionID string
	Days     int
	Cost     float64

	// Ordered membership for deterministic iteration; attractionSet mirrors it.
	Attractions   []*Attraction
	attractionSet map[string]struct{}
}

func NewTour(id, name, regionID string, days int, cost float64) *Tour {
	return &Tour{
		TourID:        id,
		Name:          name,
		RegionID:      regionID,
		Days:          days,
		Cost:          cost,
		attractionSet: make(map[string]struct{}),
	}
}

// Add an attraction to the tour and mirror the relation on the attraction.
// Adding the same attraction twice is a no-op.
func (t *Tour) AddAttraction(a *Attraction) {
	if t.attractionSet == nil {
		t.attractionSet = make(map[string]struct{})
	}
	if _, ok := t.attractionSet[a.AttractionID]; ok {
		return
	}
	t.attractionSet[a.AttractionID] = struct{}{}
	t.Attractions = append(t.Attractions, a)

	if a.Tours == nil {
		a.Tours = make(map[string]*Tour)
	}
	a.Tours[t.TourID] = t
}

// Report whether the tour visits the given attraction.
func (t *Tour) Visits(attractionID string) bool {
	_, ok := t.attractionSet[attractionID]
	return ok
}

// Report whether the tour visits any attraction present in used.
func (t *Tour) SharesAny(used map[string]struct{}) bool {
	if len(used) == 0 {
		return false
	}
	for _, a := range t.Attractions {
		if _, ok := used[a.AttractionID]; ok {
			return true
		}
	}
	return false
}
