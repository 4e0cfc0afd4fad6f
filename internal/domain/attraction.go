package domain

// Represents a point of interest visited by one or more tours.
// CulturalValue is the quantity a travel package maximizes.
// Tours is a back-reference populated at catalog load time; an Attraction
// does not own the tours listed there.
type Attraction struct {
	AttractionID  string
	Name          string
	CulturalValue int
	Tours         map[string]*Tour
}

func NewAttraction(id, name string, value int) *Attraction {
	return &Attraction{
		AttractionID:  id,
		Name:          name,
		CulturalValue: value,
		Tours:         make(map[string]*Tour),
	}
}
