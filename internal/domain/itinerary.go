package domain

import (
	"fmt"
	"slices"
	"time"
)

// TravelMode identifies one way of moving between two activities.
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeMTR     TravelMode = "mtr"
	ModeBus     TravelMode = "bus"
	ModeTram    TravelMode = "tram"
	ModeFerry   TravelMode = "ferry"
	ModeTaxi    TravelMode = "taxi"
)

// TravelInfo describes the travel leg that precedes an activity.
// It is immutable planning data and contains no side effects.
type TravelInfo struct {
	Mode            TravelMode
	DurationMinutes int
	DistanceMeters  float64
	Cost            float64
	Instructions    []string
}

// ItineraryActivity is a single scheduled visit to an attraction.
// Invariant: EndTime = StartTime + DurationMinutes. The first activity of a
// day never carries TravelFromPrevious.
type ItineraryActivity struct {
	ID                 string
	AttractionID       string
	Name               string
	Description        string
	Location           GeoLocation
	StartTime          time.Time
	EndTime            time.Time
	DurationMinutes    int
	Category           string
	EstimatedCost      float64
	WeatherDependent   bool
	PracticalTips      []string
	TravelFromPrevious *TravelInfo
}

// Overlaps reports whether two activities occupy intersecting time ranges.
// Touching endpoints (a ends exactly when b starts) do not overlap.
func (a ItineraryActivity) Overlaps(b ItineraryActivity) bool {
	return a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
}

// ItineraryDay is one calendar date of the plan with its time-ordered
// activities and aggregate metrics.
type ItineraryDay struct {
	Date                 time.Time
	Activities           []ItineraryActivity
	TotalDurationMinutes int
	WalkingDistanceMeter float64
	EstimatedCost        float64
	WeatherForecast      *WeatherInfo
}

// Itinerary is the full multi-day plan for one trip. Treated as an immutable
// snapshot: every modification produces a new value.
type Itinerary struct {
	ID                    string
	UserID                string
	Title                 string
	Description           string
	StartDate             time.Time
	EndDate               time.Time
	Days                  []ItineraryDay
	TotalEstimatedCost    float64
	TotalWalkingDistance  float64
	WeatherConsiderations []string
}

// SortedByStart returns a copy of activities ordered by start time, with ids
// as a deterministic tie-break.
func SortedByStart(activities []ItineraryActivity) []ItineraryActivity {
	out := slices.Clone(activities)
	slices.SortStableFunc(out, func(a, b ItineraryActivity) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// RecomputeTotals returns a copy of the day with aggregate metrics derived
// from its activities and travel legs. Walking distance counts walking-mode
// legs only.
func (d ItineraryDay) RecomputeTotals() ItineraryDay {
	out := d
	out.TotalDurationMinutes = 0
	out.WalkingDistanceMeter = 0
	out.EstimatedCost = 0

	for _, a := range d.Activities {
		out.TotalDurationMinutes += a.DurationMinutes
		out.EstimatedCost += a.EstimatedCost
		if t := a.TravelFromPrevious; t != nil {
			out.TotalDurationMinutes += t.DurationMinutes
			out.EstimatedCost += t.Cost
			if t.Mode == ModeWalking {
				out.WalkingDistanceMeter += t.DistanceMeters
			}
		}
	}
	return out
}

// RecomputeTotals returns a copy of the itinerary with per-day and trip-wide
// aggregates rebuilt from the activity data.
func (it Itinerary) RecomputeTotals() Itinerary {
	out := it
	out.Days = make([]ItineraryDay, len(it.Days))
	out.TotalEstimatedCost = 0
	out.TotalWalkingDistance = 0

	for i, d := range it.Days {
		nd := d.RecomputeTotals()
		out.Days[i] = nd
		out.TotalEstimatedCost += nd.EstimatedCost
		out.TotalWalkingDistance += nd.WalkingDistanceMeter
	}
	return out
}

// DayIndexFor returns the index of the day matching the calendar date, or -1.
func (it Itinerary) DayIndexFor(date time.Time) int {
	for i, d := range it.Days {
		if sameDate(d.Date, date) {
			return i
		}
	}
	return -1
}

// FindActivity locates an activity by id. It returns the day index, the
// activity index within the day, and whether the id was found.
func (it Itinerary) FindActivity(activityID string) (int, int, bool) {
	for di, d := range it.Days {
		for ai, a := range d.Activities {
			if a.ID == activityID {
				return di, ai, true
			}
		}
	}
	return -1, -1, false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Scheduled activity time per day is bounded: a day carrying more than this
// many minutes of activities and travel fails validation outright.
const maxDayMinutes = 16 * 60

// Validate checks the structural invariants of the snapshot: one day per
// calendar date in range, chronological day order, per-day activities sorted
// and pairwise non-overlapping, no travel leg on a day's first activity,
// consistent activity durations, and a sane per-day time budget.
func (it Itinerary) Validate() error {
	wantDays := int(it.EndDate.Sub(it.StartDate).Hours()/24) + 1
	if len(it.Days) != wantDays {
		return &ValidationError{Detail: fmt.Sprintf(
			"itinerary %s has %d days, want %d for range %s..%s",
			it.ID, len(it.Days), wantDays,
			it.StartDate.Format("2006-01-02"), it.EndDate.Format("2006-01-02"),
		)}
	}

	for di, day := range it.Days {
		if di > 0 && !it.Days[di-1].Date.Before(day.Date) {
			return &ValidationError{Detail: fmt.Sprintf(
				"day %d (%s) is not after day %d", di, day.Date.Format("2006-01-02"), di-1,
			)}
		}

		minutes := 0
		for ai, a := range day.Activities {
			if !a.EndTime.Equal(a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)) {
				return &ValidationError{Detail: fmt.Sprintf(
					"activity %s end time does not equal start + %d minutes", a.ID, a.DurationMinutes,
				)}
			}
			if ai == 0 {
				if a.TravelFromPrevious != nil {
					return &ValidationError{Detail: fmt.Sprintf(
						"first activity %s of %s carries a travel leg", a.ID, day.Date.Format("2006-01-02"),
					)}
				}
			} else {
				prev := day.Activities[ai-1]
				if a.StartTime.Before(prev.EndTime) {
					return &ConflictError{
						ActivityID: a.ID,
						Detail: fmt.Sprintf(
							"activity %s (%s) overlaps %s (ends %s)",
							a.ID, a.StartTime.Format("15:04"), prev.ID, prev.EndTime.Format("15:04"),
						),
					}
				}
			}

			minutes += a.DurationMinutes
			if a.TravelFromPrevious != nil {
				minutes += a.TravelFromPrevious.DurationMinutes
			}
		}

		if minutes > maxDayMinutes {
			return &InfeasibleError{Detail: fmt.Sprintf(
				"day %s carries %d scheduled minutes, limit is %d",
				day.Date.Format("2006-01-02"), minutes, maxDayMinutes,
			)}
		}
	}
	return nil
}
