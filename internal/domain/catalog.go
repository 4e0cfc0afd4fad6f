package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrUnknownTour       = errors.New("unknown tour")
	ErrUnknownAttraction = errors.New("unknown attraction")
	ErrDuplicateID       = errors.New("duplicate id")
)

// Relation row linking a tour to one of its attractions.
type TourAttraction struct {
	TourID       string
	AttractionID string
}

// In-memory, read-only view over regions, tours and attractions with the
// tour<->attraction relation mirrored on both sides.
//
// A Catalog is built once per session and must not be mutated afterwards;
// concurrent readers need no locking.
type Catalog struct {
	regions     []*Region
	regionByID  map[string]*Region
	tours       []*Tour
	tourByID    map[string]*Tour
	attractions map[string]*Attraction

	fingerprint string
}

// Build a catalog from entity lists and relation rows.
// Tours keep the order in which they are supplied. Any relation naming an
// unknown tour or attraction is rejected, since the catalog could not keep
// both sides of the relation consistent.
func NewCatalog(
	regions []*Region,
	tours []*Tour,
	attractions []*Attraction,
	edges []TourAttraction,
) (*Catalog, error) {
	c := &Catalog{
		regions:     make([]*Region, 0, len(regions)),
		regionByID:  make(map[string]*Region, len(regions)),
		tours:       make([]*Tour, 0, len(tours)),
		tourByID:    make(map[string]*Tour, len(tours)),
		attractions: make(map[string]*Attraction, len(attractions)),
	}

	for _, r := range regions {
		if _, ok := c.regionByID[r.RegionID]; ok {
			return nil, fmt.Errorf("new catalog: region %q: %w", r.RegionID, ErrDuplicateID)
		}
		c.regionByID[r.RegionID] = r
		c.regions = append(c.regions, r)
	}

	for _, t := range tours {
		if _, ok := c.tourByID[t.TourID]; ok {
			return nil, fmt.Errorf("new catalog: tour %q: %w", t.TourID, ErrDuplicateID)
		}
		c.tourByID[t.TourID] = t
		c.tours = append(c.tours, t)
	}

	for _, a := range attractions {
		if _, ok := c.attractions[a.AttractionID]; ok {
			return nil, fmt.Errorf("new catalog: attraction %q: %w", a.AttractionID, ErrDuplicateID)
		}
		c.attractions[a.AttractionID] = a
	}

	for _, e := range edges {
		t, ok := c.tourByID[e.TourID]
		if !ok {
			return nil, fmt.Errorf("new catalog: relation (%q, %q): %w", e.TourID, e.AttractionID, ErrUnknownTour)
		}
		a, ok := c.attractions[e.AttractionID]
		if !ok {
			return nil, fmt.Errorf("new catalog: relation (%q, %q): %w", e.TourID, e.AttractionID, ErrUnknownAttraction)
		}
		t.AddAttraction(a)
	}

	c.fingerprint = c.computeFingerprint()
	return c, nil
}

// Fingerprint identifies the catalog content: every region, tour,
// attraction and relation, independent of load order. Catalogs that could
// yield different packages have different fingerprints.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

func (c *Catalog) computeFingerprint() string {
	h := xxhash.New()
	field := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.WriteString("\x00")
	}

	regionIDs := make([]string, 0, len(c.regionByID))
	for id := range c.regionByID {
		regionIDs = append(regionIDs, id)
	}
	sort.Strings(regionIDs)
	for _, id := range regionIDs {
		field("r")
		field(id)
	}

	tourIDs := make([]string, 0, len(c.tourByID))
	for id := range c.tourByID {
		tourIDs = append(tourIDs, id)
	}
	sort.Strings(tourIDs)
	for _, id := range tourIDs {
		t := c.tourByID[id]
		field("t")
		field(t.TourID)
		field(t.RegionID)
		field(strconv.Itoa(t.Days))
		field(strconv.FormatFloat(t.Cost, 'g', -1, 64))

		visits := make([]string, 0, len(t.Attractions))
		for _, a := range t.Attractions {
			visits = append(visits, a.AttractionID)
		}
		sort.Strings(visits)
		for _, a := range visits {
			field("v")
			field(a)
		}
	}

	attractionIDs := make([]string, 0, len(c.attractions))
	for id := range c.attractions {
		attractionIDs = append(attractionIDs, id)
	}
	sort.Strings(attractionIDs)
	for _, id := range attractionIDs {
		field("a")
		field(id)
		field(strconv.Itoa(c.attractions[id].CulturalValue))
	}

	return strconv.FormatUint(h.Sum64(), 16)
}

// Regions in load order.
func (c *Catalog) Regions() []*Region {
	out := make([]*Region, len(c.regions))
	copy(out, c.regions)
	return out
}

func (c *Catalog) HasRegion(id string) bool {
	_, ok := c.regionByID[id]
	return ok
}

// Tours in catalog iteration order. The returned slice is a fresh copy.
func (c *Catalog) Tours() []*Tour {
	out := make([]*Tour, len(c.tours))
	copy(out, c.tours)
	return out
}

func (c *Catalog) Tour(id string) (*Tour, bool) {
	t, ok := c.tourByID[id]
	return t, ok
}

func (c *Catalog) Attraction(id string) (*Attraction, bool) {
	a, ok := c.attractions[id]
	return a, ok
}

// Tours belonging to a region, in catalog order.
func (c *Catalog) ToursInRegion(regionID string) []*Tour {
	out := make([]*Tour, 0)
	for _, t := range c.tours {
		if t.RegionID == regionID {
			out = append(out, t)
		}
	}
	return out
}
