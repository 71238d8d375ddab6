package domain

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := GeoLocation{Latitude: 22.2819, Longitude: 114.1582}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := GeoLocation{Latitude: 22.2819, Longitude: 114.1582}
	b := GeoLocation{Latitude: 22.2976, Longitude: 114.1722}

	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Central to Tsim Sha Tsui, roughly 2.3 km across the harbour.
	central := GeoLocation{Latitude: 22.2819, Longitude: 114.1582}
	tst := GeoLocation{Latitude: 22.2976, Longitude: 114.1722}

	d := Distance(central, tst)
	if d < 2100 || d > 2500 {
		t.Fatalf("expected roughly 2.3km between Central and TST, got %f m", d)
	}
}

func TestCoordsToListIsLonLat(t *testing.T) {
	p := GeoLocation{Latitude: 22.3, Longitude: 114.2}
	coords := p.CoordsToList()
	if len(coords) != 2 || coords[0] != 114.2 || coords[1] != 22.3 {
		t.Fatalf("expected [lon, lat], got %v", coords)
	}
}
