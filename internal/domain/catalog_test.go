package domain

import (
	"errors"
	"testing"
)

func TestNewCatalogMirrorsRelations(t *testing.T) {
	// build test data
	a1 := NewAttraction("a1", "Colosseum", 5)
	a2 := NewAttraction("a2", "Forum", 3)
	tourA := NewTour("A", "Ancient Rome", "R1", 2, 100)
	tourC := NewTour("C", "Arena Night", "R1", 1, 50)

	edges := []TourAttraction{
		{TourID: "A", AttractionID: "a1"},
		{TourID: "A", AttractionID: "a2"},
		{TourID: "C", AttractionID: "a1"},
		{TourID: "A", AttractionID: "a1"}, // duplicate edge
	}

	c, err := NewCatalog(
		[]*Region{{RegionID: "R1", Name: "Lazio"}},
		[]*Tour{tourA, tourC},
		[]*Attraction{a1, a2},
		edges,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// verify behavior
	if len(tourA.Attractions) != 2 {
		t.Fatalf("tour A attractions = %d, want 2", len(tourA.Attractions))
	}
	if !tourA.Visits("a1") || !tourA.Visits("a2") {
		t.Errorf("tour A should visit a1 and a2")
	}
	if len(a1.Tours) != 2 {
		t.Errorf("a1 back-references = %d, want 2", len(a1.Tours))
	}
	if a1.Tours["C"] != tourC {
		t.Errorf("a1 should back-reference tour C")
	}
	if a2.Tours["A"] != tourA || len(a2.Tours) != 1 {
		t.Errorf("a2 back-references = %v, want only tour A", a2.Tours)
	}

	if !c.HasRegion("R1") || c.HasRegion("R2") {
		t.Errorf("HasRegion mismatch")
	}
	if got := c.Tours(); len(got) != 2 || got[0] != tourA || got[1] != tourC {
		t.Errorf("tours out of order: %v", got)
	}
}

func TestNewCatalogRejectsDanglingRelations(t *testing.T) {
	tours := []*Tour{NewTour("A", "", "R1", 1, 1)}
	attractions := []*Attraction{NewAttraction("a1", "", 1)}

	_, err := NewCatalog(nil, tours, attractions, []TourAttraction{{TourID: "X", AttractionID: "a1"}})
	if !errors.Is(err, ErrUnknownTour) {
		t.Fatalf("err = %v, want ErrUnknownTour", err)
	}

	tours = []*Tour{NewTour("A", "", "R1", 1, 1)}
	attractions = []*Attraction{NewAttraction("a1", "", 1)}
	_, err = NewCatalog(nil, tours, attractions, []TourAttraction{{TourID: "A", AttractionID: "zz"}})
	if !errors.Is(err, ErrUnknownAttraction) {
		t.Fatalf("err = %v, want ErrUnknownAttraction", err)
	}
}

func TestNewCatalogRejectsDuplicateTours(t *testing.T) {
	tours := []*Tour{NewTour("A", "", "R1", 1, 1), NewTour("A", "", "R1", 2, 2)}
	_, err := NewCatalog(nil, tours, nil, nil)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestCatalogToursInRegion(t *testing.T) {
	tours := []*Tour{
		NewTour("A", "", "R1", 1, 1),
		NewTour("B", "", "R2", 1, 1),
		NewTour("C", "", "R1", 1, 1),
	}
	c, err := NewCatalog(nil, tours, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.ToursInRegion("R1")
	if len(got) != 2 || got[0].TourID != "A" || got[1].TourID != "C" {
		t.Fatalf("ToursInRegion(R1) = %v, want [A C]", got)
	}
	if got := c.ToursInRegion("nope"); len(got) != 0 {
		t.Fatalf("ToursInRegion(nope) = %v, want empty", got)
	}
}

func fingerprintCatalog(t *testing.T, reverse bool, value int, extraEdge bool) string {
	t.Helper()

	regions := []*Region{{RegionID: "R1"}, {RegionID: "R2"}}
	tours := []*Tour{NewTour("A", "", "R1", 2, 100), NewTour("B", "", "R1", 3, 150)}
	attractions := []*Attraction{NewAttraction("a1", "", value), NewAttraction("a2", "", 3)}
	edges := []TourAttraction{{TourID: "A", AttractionID: "a1"}, {TourID: "B", AttractionID: "a2"}}
	if extraEdge {
		edges = append(edges, TourAttraction{TourID: "A", AttractionID: "a2"})
	}
	if reverse {
		regions[0], regions[1] = regions[1], regions[0]
		tours[0], tours[1] = tours[1], tours[0]
		attractions[0], attractions[1] = attractions[1], attractions[0]
		edges[0], edges[1] = edges[1], edges[0]
	}

	c, err := NewCatalog(regions, tours, attractions, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c.Fingerprint()
}

func TestCatalogFingerprint(t *testing.T) {
	base := fingerprintCatalog(t, false, 5, false)
	if base == "" {
		t.Fatal("fingerprint is empty")
	}
	if got := fingerprintCatalog(t, true, 5, false); got != base {
		t.Errorf("fingerprint depends on load order: %s != %s", got, base)
	}
	if got := fingerprintCatalog(t, false, 6, false); got == base {
		t.Errorf("changed cultural value kept fingerprint %s", got)
	}
	if got := fingerprintCatalog(t, false, 5, true); got == base {
		t.Errorf("added relation kept fingerprint %s", got)
	}
}
