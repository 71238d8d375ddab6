package domain

import (
	"errors"
	"testing"
	"time"
)

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func activity(id string, start, end time.Time) ItineraryActivity {
	return ItineraryActivity{
		ID:              id,
		AttractionID:    "attr-" + id,
		Name:            "Activity " + id,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start).Minutes()),
	}
}

func TestOverlaps(t *testing.T) {
	a := activity("a", at(9, 0), at(10, 0))
	b := activity("b", at(9, 30), at(10, 30))
	c := activity("c", at(10, 0), at(11, 0))

	if !a.Overlaps(b) {
		t.Fatal("expected a and b to overlap")
	}
	if !b.Overlaps(a) {
		t.Fatal("expected overlap to be symmetric")
	}
	// Touching endpoints are not a conflict.
	if a.Overlaps(c) {
		t.Fatal("expected touching activities not to overlap")
	}
}

func TestSortedByStartTieBreaksOnID(t *testing.T) {
	b := activity("b", at(9, 0), at(10, 0))
	a := activity("a", at(9, 0), at(10, 0))
	late := activity("z", at(8, 0), at(8, 30))

	sorted := SortedByStart([]ItineraryActivity{b, a, late})

	if sorted[0].ID != "z" || sorted[1].ID != "a" || sorted[2].ID != "b" {
		t.Fatalf("unexpected order: %s, %s, %s", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestRecomputeTotalsCountsActivitiesAndLegs(t *testing.T) {
	first := activity("a", at(9, 0), at(10, 0))
	first.EstimatedCost = 50

	second := activity("b", at(10, 15), at(11, 15))
	second.EstimatedCost = 20
	second.TravelFromPrevious = &TravelInfo{
		Mode:            ModeWalking,
		DurationMinutes: 15,
		DistanceMeters:  900,
		Cost:            0,
	}

	third := activity("c", at(11, 30), at(12, 0))
	third.EstimatedCost = 10
	third.TravelFromPrevious = &TravelInfo{
		Mode:            ModeMTR,
		DurationMinutes: 15,
		DistanceMeters:  3000,
		Cost:            7.5,
	}

	day := ItineraryDay{Date: testDate, Activities: []ItineraryActivity{first, second, third}}.RecomputeTotals()

	if day.TotalDurationMinutes != 60+15+60+15+30 {
		t.Fatalf("unexpected total duration %d", day.TotalDurationMinutes)
	}
	if day.EstimatedCost != 50+20+10+7.5 {
		t.Fatalf("unexpected day cost %f", day.EstimatedCost)
	}
	// Only walking-mode legs contribute to walking distance.
	if day.WalkingDistanceMeter != 900 {
		t.Fatalf("unexpected walking distance %f", day.WalkingDistanceMeter)
	}

	it := Itinerary{
		ID:        "trip",
		StartDate: testDate,
		EndDate:   testDate,
		Days:      []ItineraryDay{day},
	}.RecomputeTotals()

	if it.TotalEstimatedCost != day.EstimatedCost {
		t.Fatalf("trip cost %f does not match day cost %f", it.TotalEstimatedCost, day.EstimatedCost)
	}
	if it.TotalWalkingDistance != day.WalkingDistanceMeter {
		t.Fatalf("trip walking distance %f does not match day %f", it.TotalWalkingDistance, day.WalkingDistanceMeter)
	}
}

func validItinerary() Itinerary {
	day := ItineraryDay{
		Date: testDate,
		Activities: []ItineraryActivity{
			activity("a", at(9, 0), at(10, 0)),
			activity("b", at(10, 30), at(12, 0)),
		},
	}
	day.Activities[1].TravelFromPrevious = &TravelInfo{Mode: ModeWalking, DurationMinutes: 30}

	return Itinerary{
		ID:        "trip",
		StartDate: testDate,
		EndDate:   testDate,
		Days:      []ItineraryDay{day},
	}
}

func TestValidateAcceptsWellFormedItinerary(t *testing.T) {
	if err := validItinerary().Validate(); err != nil {
		t.Fatalf("expected valid itinerary, got %v", err)
	}
}

func TestValidateRejectsWrongDayCount(t *testing.T) {
	it := validItinerary()
	it.EndDate = testDate.AddDate(0, 0, 2)

	var verr *ValidationError
	if err := it.Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for missing days, got %v", err)
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	it := validItinerary()
	it.Days[0].Activities[1].StartTime = at(9, 30)
	it.Days[0].Activities[1].EndTime = at(11, 0)

	var cerr *ConflictError
	if err := it.Validate(); !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError for overlapping activities, got %v", err)
	}
}

func TestValidateRejectsTravelLegOnFirstActivity(t *testing.T) {
	it := validItinerary()
	it.Days[0].Activities[0].TravelFromPrevious = &TravelInfo{Mode: ModeWalking, DurationMinutes: 10}

	var verr *ValidationError
	if err := it.Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for first-activity travel leg, got %v", err)
	}
}

func TestValidateRejectsInconsistentDuration(t *testing.T) {
	it := validItinerary()
	it.Days[0].Activities[0].DurationMinutes = 45

	var verr *ValidationError
	if err := it.Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for duration mismatch, got %v", err)
	}
}

func TestValidateRejectsOverlongDay(t *testing.T) {
	it := validItinerary()
	it.Days[0].Activities = []ItineraryActivity{
		activity("a", at(6, 0), at(15, 0)),
		activity("b", at(15, 0), at(23, 30)),
	}

	var ierr *InfeasibleError
	if err := it.Validate(); !errors.As(err, &ierr) {
		t.Fatalf("expected InfeasibleError for day over the time bound, got %v", err)
	}
}

func TestDayIndexForAndFindActivity(t *testing.T) {
	it := validItinerary()

	if di := it.DayIndexFor(at(18, 45)); di != 0 {
		t.Fatalf("expected day index 0, got %d", di)
	}
	if di := it.DayIndexFor(testDate.AddDate(0, 0, 5)); di != -1 {
		t.Fatalf("expected -1 for out-of-range date, got %d", di)
	}

	di, ai, ok := it.FindActivity("b")
	if !ok || di != 0 || ai != 1 {
		t.Fatalf("FindActivity(b) = (%d, %d, %v)", di, ai, ok)
	}
	if _, _, ok := it.FindActivity("missing"); ok {
		t.Fatal("expected missing activity not to be found")
	}
}
