package domain

// Geographic area that groups tours. Used only as a filter key.
type Region struct {
	RegionID string
	Name     string
}
