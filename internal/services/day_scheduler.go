package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
)

// DefaultStartHour is the hour a day's first activity begins when the caller
// does not override it.
const DefaultStartHour = 9

// DayScheduler turns an unordered set of selected attractions into a
// time-ordered day plan with travel legs between consecutive activities.
//
// Ordering uses a greedy nearest-neighbor walk over Haversine distance. The
// algorithm minimizes the immediate hop at each step and does not attempt
// global route optimization; determinism and simplicity are preferred over
// optimality.
type DayScheduler struct {
	estimator    *TravelEstimator
	allowedModes []domain.TravelMode
	startHour    int
}

func NewDayScheduler(estimator *TravelEstimator, allowedModes []domain.TravelMode, startHour int) *DayScheduler {
	if len(allowedModes) == 0 {
		allowedModes = DefaultModes
	}
	if startHour <= 0 || startHour > 23 {
		startHour = DefaultStartHour
	}
	return &DayScheduler{estimator: estimator, allowedModes: allowedModes, startHour: startHour}
}

// Schedule produces the day's activities for the given calendar date. The
// first activity starts exactly at the preferred start hour and never
// carries a travel leg; each later activity starts when travel from its
// predecessor completes.
func (s *DayScheduler) Schedule(
	ctx context.Context,
	selected []domain.AttractionCandidate,
	date time.Time,
	startLocation *domain.GeoLocation,
) []domain.ItineraryActivity {
	if len(selected) == 0 {
		return []domain.ItineraryActivity{}
	}

	route := orderByNearestNeighbor(selected, startLocation)

	// Leg durations depend only on the route geometry, so all legs can be
	// batch-evaluated before the clock walk assigns concrete times.
	stops := make([]domain.GeoLocation, len(route))
	for i, a := range route {
		stops[i] = a.Location
	}
	legs := computeLegs(ctx, s.estimator, stops, s.allowedModes)

	clock := time.Date(date.Year(), date.Month(), date.Day(), s.startHour, 0, 0, 0, date.Location())

	activities := make([]domain.ItineraryActivity, 0, len(route))
	for i, attraction := range route {
		var travel *domain.TravelInfo
		if i > 0 {
			leg := legs[i-1]
			travel = &leg
			clock = clock.Add(time.Duration(leg.DurationMinutes) * time.Minute)
		}

		start := clock
		end := start.Add(time.Duration(attraction.AverageDuration) * time.Minute)

		activities = append(activities, domain.ItineraryActivity{
			ID:                 uuid.NewString(),
			AttractionID:       attraction.ID,
			Name:               attraction.Name,
			Description:        attraction.Description,
			Location:           attraction.Location,
			StartTime:          start,
			EndTime:            end,
			DurationMinutes:    attraction.AverageDuration,
			Category:           primaryCategory(attraction),
			EstimatedCost:      attraction.EstimatedCost,
			WeatherDependent:   attraction.WeatherDependent,
			PracticalTips:      attraction.PracticalTips,
			TravelFromPrevious: travel,
		})

		clock = end
	}

	return activities
}

// RecomputeTravel rebuilds every travel leg of a day from the current
// activity order without moving activity times. Used after modifications
// change a day's composition.
func (s *DayScheduler) RecomputeTravel(ctx context.Context, day domain.ItineraryDay) domain.ItineraryDay {
	out := day
	out.Activities = domain.SortedByStart(day.Activities)

	if len(out.Activities) == 0 {
		return out.RecomputeTotals()
	}

	stops := make([]domain.GeoLocation, len(out.Activities))
	for i, a := range out.Activities {
		stops[i] = a.Location
	}
	legs := computeLegs(ctx, s.estimator, stops, s.allowedModes)

	out.Activities[0].TravelFromPrevious = nil
	for i := 1; i < len(out.Activities); i++ {
		leg := legs[i-1]
		out.Activities[i].TravelFromPrevious = &leg
	}

	return out.RecomputeTotals()
}

// orderByNearestNeighbor returns the attractions in visiting order. With no
// start location the input order is kept; otherwise the route repeatedly
// hops to the closest unvisited attraction.
func orderByNearestNeighbor(
	selected []domain.AttractionCandidate,
	start *domain.GeoLocation,
) []domain.AttractionCandidate {
	if start == nil {
		out := make([]domain.AttractionCandidate, len(selected))
		copy(out, selected)
		return out
	}

	remaining := make([]domain.AttractionCandidate, len(selected))
	copy(remaining, selected)

	route := make([]domain.AttractionCandidate, 0, len(selected))
	current := *start

	for len(remaining) > 0 {
		bestIdx := -1
		minDistance := math.Inf(1)

		// Select next visit by minimum distance (greedy step.)
		for i, c := range remaining {
			d := domain.Distance(current, c.Location)
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if d < minDistance || (d == minDistance && bestIdx >= 0 && c.ID < remaining[bestIdx].ID) {
				minDistance = d
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		route = append(route, next)
		current = next.Location
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return route
}

func primaryCategory(a domain.AttractionCandidate) string {
	if len(a.Categories) == 0 {
		return "general"
	}
	return a.Categories[0]
}
