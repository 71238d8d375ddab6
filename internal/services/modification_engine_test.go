package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/adapters/catalog"
	"trip-planner-service/internal/adapters/weather"
	"trip-planner-service/internal/domain"
)

var modDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func modAt(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func testActivity(id string, start, end time.Time) domain.ItineraryActivity {
	return domain.ItineraryActivity{
		ID:              id,
		AttractionID:    "attr-" + id,
		Name:            "Activity " + id,
		Location:        domain.GeoLocation{Latitude: 22.2819, Longitude: 114.1582},
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start).Minutes()),
		Category:        "scenic",
	}
}

func testItinerary(activities ...domain.ItineraryActivity) domain.Itinerary {
	day := domain.ItineraryDay{Date: modDate, Activities: domain.SortedByStart(activities)}
	it := domain.Itinerary{
		ID:        "trip-1",
		UserID:    "user-1",
		StartDate: modDate,
		EndDate:   modDate,
		Days:      []domain.ItineraryDay{day},
	}
	return it.RecomputeTotals()
}

func newTestEngine() *ModificationEngine {
	estimator := NewTravelEstimator(nil)
	scheduler := NewDayScheduler(estimator, nil, DefaultStartHour)
	return NewModificationEngine(scheduler, catalog.NewStaticCatalog(nil), weather.NewStaticProvider())
}

func TestApplyRejectsNilModification(t *testing.T) {
	e := newTestEngine()

	_, err := e.Apply(context.Background(), testItinerary(), nil)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(
		testActivity("a", modAt(9, 0), modAt(10, 0)),
		testActivity("b", modAt(12, 0), modAt(13, 0)),
	)

	_, err := e.Apply(context.Background(), it, domain.RemoveActivity{ActivityID: "a"})
	require.NoError(t, err)

	require.Len(t, it.Days[0].Activities, 2, "input snapshot must stay intact")
	require.Equal(t, "a", it.Days[0].Activities[0].ID)
}

func TestAddActivityIntoFreeDay(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(testActivity("a", modAt(9, 0), modAt(10, 0)))

	got, err := e.Apply(context.Background(), it, domain.AddActivity{
		Activity: testActivity("new", modAt(14, 0), modAt(15, 30)),
		Reason:   "late lunch nearby",
	})
	require.NoError(t, err)

	require.Len(t, got.Days[0].Activities, 2)
	added := got.Days[0].Activities[1]
	require.Equal(t, "new", added.ID)
	require.Equal(t, modAt(14, 0), added.StartTime)
	require.NoError(t, got.Validate())
}

func TestAddActivityConflictRetimesIntoGap(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(
		testActivity("a", modAt(9, 0), modAt(10, 0)),
		testActivity("b", modAt(12, 0), modAt(13, 0)),
	)

	got, err := e.Apply(context.Background(), it, domain.AddActivity{
		Activity: testActivity("new", modAt(9, 30), modAt(10, 30)),
	})
	require.NoError(t, err)

	_, ai, ok := got.FindActivity("new")
	require.True(t, ok)
	added := got.Days[0].Activities[ai]
	require.Equal(t, modAt(10, 0), added.StartTime, "retimed into the 10:00 gap")
	require.Equal(t, modAt(11, 0), added.EndTime)
}

func TestAddActivityConflictAppendsAfterLastActivity(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(testActivity("a", modAt(9, 0), modAt(12, 0)))

	got, err := e.Apply(context.Background(), it, domain.AddActivity{
		Activity: testActivity("new", modAt(10, 0), modAt(11, 0)),
	})
	require.NoError(t, err)

	_, ai, ok := got.FindActivity("new")
	require.True(t, ok)
	added := got.Days[0].Activities[ai]
	require.Equal(t, modAt(12, 0), added.StartTime, "first open slot is right after the last activity")
	require.Equal(t, modAt(13, 0), added.EndTime)
}

func TestAddActivityFailsWhenDayIsFull(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(
		testActivity("a", modAt(9, 0), modAt(15, 0)),
		testActivity("b", modAt(15, 0), modAt(21, 30)),
	)

	_, err := e.Apply(context.Background(), it, domain.AddActivity{
		Activity: testActivity("new", modAt(10, 0), modAt(11, 0)),
	})

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestAddActivityOutsideRange(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(testActivity("a", modAt(9, 0), modAt(10, 0)))

	outside := testActivity("new", modAt(9, 0).AddDate(0, 0, 3), modAt(10, 0).AddDate(0, 0, 3))
	_, err := e.Apply(context.Background(), it, domain.AddActivity{Activity: outside})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRemoveActivityNotFound(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(testActivity("a", modAt(9, 0), modAt(10, 0)))

	_, err := e.Apply(context.Background(), it, domain.RemoveActivity{ActivityID: "ghost"})

	var nerr *domain.NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestRemoveActivityRefreshesLegs(t *testing.T) {
	e := newTestEngine()

	a := testActivity("a", modAt(9, 0), modAt(10, 0))
	b := testActivity("b", modAt(10, 30), modAt(11, 30))
	b.Location = domain.GeoLocation{Latitude: 22.2976, Longitude: 114.1722}
	c := testActivity("c", modAt(12, 30), modAt(13, 30))
	c.Location = domain.GeoLocation{Latitude: 22.3193, Longitude: 114.1694}

	it := testItinerary(a, b, c)

	got, err := e.Apply(context.Background(), it, domain.RemoveActivity{ActivityID: "b"})
	require.NoError(t, err)

	require.Len(t, got.Days[0].Activities, 2)
	require.Nil(t, got.Days[0].Activities[0].TravelFromPrevious)
	leg := got.Days[0].Activities[1].TravelFromPrevious
	require.NotNil(t, leg, "surviving successor gets a rebuilt leg")
	require.Positive(t, leg.DurationMinutes)
}

func TestReplaceActivityPreservesStartTime(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(testActivity("a", modAt(9, 0), modAt(11, 0)))

	got, err := e.Apply(context.Background(), it, domain.ReplaceActivity{
		ActivityID: "a",
		Content: domain.ActivityContent{
			AttractionID:    "history-museum",
			Name:            "Hong Kong Museum of History",
			Location:        domain.GeoLocation{Latitude: 22.3014, Longitude: 114.1773},
			Category:        "museum",
			DurationMinutes: 90,
			EstimatedCost:   10,
		},
	})
	require.NoError(t, err)

	replaced := got.Days[0].Activities[0]
	require.Equal(t, "history-museum", replaced.AttractionID)
	require.Equal(t, modAt(9, 0), replaced.StartTime)
	require.Equal(t, modAt(10, 30), replaced.EndTime)
}

func TestReplaceActivityKeepsDurationWhenUnspecified(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(testActivity("a", modAt(9, 0), modAt(11, 0)))

	got, err := e.Apply(context.Background(), it, domain.ReplaceActivity{
		ActivityID: "a",
		Content:    domain.ActivityContent{AttractionID: "star-ferry", Name: "Star Ferry"},
	})
	require.NoError(t, err)

	replaced := got.Days[0].Activities[0]
	require.Equal(t, 120, replaced.DurationMinutes)
	require.Equal(t, modAt(11, 0), replaced.EndTime)
}

func TestRescheduleActivityMovesWithinDay(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(
		testActivity("a", modAt(9, 0), modAt(10, 0)),
		testActivity("b", modAt(12, 0), modAt(13, 0)),
	)

	got, err := e.Apply(context.Background(), it, domain.RescheduleActivity{
		ActivityID: "b",
		NewStart:   modAt(15, 0),
	})
	require.NoError(t, err)

	_, ai, ok := got.FindActivity("b")
	require.True(t, ok)
	moved := got.Days[0].Activities[ai]
	require.Equal(t, modAt(15, 0), moved.StartTime)
	require.Equal(t, modAt(16, 0), moved.EndTime)
}

func TestRescheduleActivityConflictIsHard(t *testing.T) {
	e := newTestEngine()

	it := testItinerary(
		testActivity("a", modAt(9, 0), modAt(10, 0)),
		testActivity("b", modAt(12, 0), modAt(13, 0)),
	)

	// ADD would slot-find around this; RESCHEDULE must refuse.
	_, err := e.Apply(context.Background(), it, domain.RescheduleActivity{
		ActivityID: "b",
		NewStart:   modAt(9, 30),
	})

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestRescheduleActivityAcrossDays(t *testing.T) {
	e := newTestEngine()

	dayOne := domain.ItineraryDay{Date: modDate, Activities: []domain.ItineraryActivity{
		testActivity("a", modAt(9, 0), modAt(10, 0)),
		testActivity("b", modAt(12, 0), modAt(13, 0)),
	}}
	dayTwo := domain.ItineraryDay{Date: modDate.AddDate(0, 0, 1), Activities: []domain.ItineraryActivity{
		testActivity("c", modAt(9, 0).AddDate(0, 0, 1), modAt(10, 0).AddDate(0, 0, 1)),
	}}
	it := domain.Itinerary{
		ID:        "trip-1",
		StartDate: modDate,
		EndDate:   modDate.AddDate(0, 0, 1),
		Days:      []domain.ItineraryDay{dayOne, dayTwo},
	}.RecomputeTotals()

	got, err := e.Apply(context.Background(), it, domain.RescheduleActivity{
		ActivityID: "b",
		NewStart:   modAt(14, 0).AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	require.Len(t, got.Days[0].Activities, 1)
	require.Len(t, got.Days[1].Activities, 2)

	di, _, ok := got.FindActivity("b")
	require.True(t, ok)
	require.Equal(t, 1, di)
}

func TestWeatherAdjustmentSwapsOutdoorActivities(t *testing.T) {
	e := newTestEngine()

	exposed := testActivity("a", modAt(9, 0), modAt(11, 0))
	exposed.WeatherDependent = true
	it := testItinerary(exposed)

	storm := &domain.WeatherInfo{
		Temperature:   domain.TemperatureRange{Min: 18, Max: 24},
		Precipitation: 12,
		Condition:     "heavy rain",
	}

	got, err := e.Apply(context.Background(), it, domain.WeatherAdjustment{
		Date:       modDate,
		Conditions: storm,
	})
	require.NoError(t, err)

	swapped := got.Days[0].Activities[0]
	require.False(t, swapped.WeatherDependent)
	require.NotEqual(t, exposed.AttractionID, swapped.AttractionID)
	// The slot the outdoor activity held is preserved exactly.
	require.Equal(t, exposed.StartTime, swapped.StartTime)
	require.Equal(t, exposed.EndTime, swapped.EndTime)
}

func TestWeatherAdjustmentNoOpWhenFriendly(t *testing.T) {
	e := newTestEngine()

	exposed := testActivity("a", modAt(9, 0), modAt(11, 0))
	exposed.WeatherDependent = true
	it := testItinerary(exposed)

	mild := &domain.WeatherInfo{
		Temperature:   domain.TemperatureRange{Min: 18, Max: 26},
		Precipitation: 0,
		WindSpeed:     5,
	}

	got, err := e.Apply(context.Background(), it, domain.WeatherAdjustment{
		Date:       modDate,
		Conditions: mild,
	})
	require.NoError(t, err)
	require.Equal(t, exposed.AttractionID, got.Days[0].Activities[0].AttractionID)
}

func TestWeatherAdjustmentSkipsAlreadyUsedAlternatives(t *testing.T) {
	e := newTestEngine()

	first := testActivity("a", modAt(9, 0), modAt(10, 0))
	first.WeatherDependent = true
	second := testActivity("b", modAt(11, 0), modAt(12, 0))
	second.WeatherDependent = true
	it := testItinerary(first, second)

	storm := &domain.WeatherInfo{
		Temperature:   domain.TemperatureRange{Min: 18, Max: 24},
		Precipitation: 12,
	}

	got, err := e.Apply(context.Background(), it, domain.WeatherAdjustment{
		Date:       modDate,
		Conditions: storm,
	})
	require.NoError(t, err)

	acts := got.Days[0].Activities
	require.NotEqual(t, acts[0].AttractionID, acts[1].AttractionID, "each swap must use a distinct alternative")
}

func TestCrowdAdjustmentRetimesRushHourActivities(t *testing.T) {
	e := newTestEngine()
	e.now = func() time.Time { return modAt(8, 30) }

	it := testItinerary(
		testActivity("a", modAt(8, 0), modAt(9, 0)),
		testActivity("b", modAt(9, 0), modAt(10, 0)),
		testActivity("c", modAt(13, 0), modAt(14, 0)),
	)

	got, err := e.Apply(context.Background(), it, domain.CrowdAdjustment{Date: modDate})
	require.NoError(t, err)

	_, ai, ok := got.FindActivity("a")
	require.True(t, ok)
	require.Equal(t, modAt(11, 0), got.Days[0].Activities[ai].StartTime)

	// The second rush-hour activity stacks after the first instead of
	// landing on the same target hour.
	_, bi, ok := got.FindActivity("b")
	require.True(t, ok)
	require.Equal(t, modAt(12, 0), got.Days[0].Activities[bi].StartTime)

	_, ci, ok := got.FindActivity("c")
	require.True(t, ok)
	require.Equal(t, modAt(13, 0), got.Days[0].Activities[ci].StartTime, "off-peak activities stay put")
}

func TestCrowdAdjustmentStacksPastOccupiedTargetSlot(t *testing.T) {
	e := newTestEngine()
	e.now = func() time.Time { return modAt(8, 30) }

	// Lunch already holds the 11:00 target hour; the retimed activity must
	// land after it rather than on top of it.
	it := testItinerary(
		testActivity("rush", modAt(8, 0), modAt(9, 0)),
		testActivity("lunch", modAt(11, 0), modAt(12, 0)),
	)

	got, err := e.Apply(context.Background(), it, domain.CrowdAdjustment{Date: modDate})
	require.NoError(t, err)

	_, ri, ok := got.FindActivity("rush")
	require.True(t, ok)
	require.Equal(t, modAt(12, 0), got.Days[0].Activities[ri].StartTime)

	_, li, ok := got.FindActivity("lunch")
	require.True(t, ok)
	require.Equal(t, modAt(11, 0), got.Days[0].Activities[li].StartTime, "the occupant stays put")
	require.NoError(t, got.Validate())
}

func TestCrowdAdjustmentNoOpOutsideRushWindow(t *testing.T) {
	e := newTestEngine()
	e.now = func() time.Time { return modAt(13, 0) }

	it := testItinerary(testActivity("a", modAt(8, 0), modAt(9, 0)))

	got, err := e.Apply(context.Background(), it, domain.CrowdAdjustment{Date: modDate})
	require.NoError(t, err)
	require.Equal(t, modAt(8, 0), got.Days[0].Activities[0].StartTime)
}
