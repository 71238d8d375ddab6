package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Soft per-day budget: days scheduled past this are trimmed from the end
// until they fit.
const dayBudgetMinutes = 12 * 60

// ItineraryRequest is the input for building a fresh itinerary.
type ItineraryRequest struct {
	UserID        string
	StartDate     time.Time
	EndDate       time.Time
	StartLocation *domain.GeoLocation
	Preferences   domain.UserPreferences
	Constraints   *SelectionConstraints
}

// ItineraryAssembler builds a complete itinerary by driving selection and
// scheduling once per calendar date, then running a feasibility pass over
// the result.
type ItineraryAssembler struct {
	catalog   ports.AttractionCatalog
	weather   ports.WeatherProvider
	selector  *AttractionSelector
	scheduler *DayScheduler
}

func NewItineraryAssembler(
	catalog ports.AttractionCatalog,
	weather ports.WeatherProvider,
	selector *AttractionSelector,
	scheduler *DayScheduler,
) *ItineraryAssembler {
	return &ItineraryAssembler{
		catalog:   catalog,
		weather:   weather,
		selector:  selector,
		scheduler: scheduler,
	}
}

// Assemble builds an itinerary for every date in [StartDate, EndDate]
// inclusive. Assembly is all-or-nothing: any failure returns an error and no
// partial itinerary.
func (a *ItineraryAssembler) Assemble(ctx context.Context, req ItineraryRequest) (_ domain.Itinerary, err error) {
	defer obs.Time(ctx, "assemble itinerary")(&err)

	if req.EndDate.Before(req.StartDate) {
		return domain.Itinerary{}, &domain.ValidationError{Detail: fmt.Sprintf(
			"end date %s precedes start date %s",
			req.EndDate.Format("2006-01-02"), req.StartDate.Format("2006-01-02"),
		)}
	}

	candidates, err := a.catalog.Recommended(ctx, req.Preferences)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("assemble itinerary: fetch candidates: %w", err)
	}
	if len(candidates) == 0 {
		return domain.Itinerary{}, &domain.ValidationError{Detail: "attraction catalog returned no candidates"}
	}

	// Weather providers degrade internally; a hard failure here still must
	// not sink the whole trip, so assembly proceeds without forecasts.
	forecasts, err := a.weather.Forecast(ctx, req.StartDate, req.EndDate)
	if err != nil {
		forecasts = nil
	}
	byDate := make(map[string]domain.WeatherInfo, len(forecasts))
	for _, f := range forecasts {
		byDate[f.Date.Format("2006-01-02")] = f
	}

	days := make([]domain.ItineraryDay, 0, 8)
	for date := req.StartDate; !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		var forecast *domain.WeatherInfo
		if f, ok := byDate[date.Format("2006-01-02")]; ok {
			fc := f
			forecast = &fc
		}

		selected := a.selector.Select(candidates, req.Preferences, forecast, req.Constraints)
		activities := a.scheduler.Schedule(ctx, selected, date, req.StartLocation)

		day := domain.ItineraryDay{
			Date:            date,
			Activities:      activities,
			WeatherForecast: forecast,
		}
		days = append(days, day.RecomputeTotals())
	}

	for i := range days {
		trimmed, err := enforceDayBudget(days[i])
		if err != nil {
			return domain.Itinerary{}, fmt.Errorf("assemble itinerary: %w", err)
		}
		days[i] = trimmed
	}

	it := domain.Itinerary{
		ID:                    uuid.NewString(),
		UserID:                req.UserID,
		Title:                 tripTitle(req),
		Description:           tripDescription(req),
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		Days:                  days,
		WeatherConsiderations: weatherNotes(forecasts),
	}
	return it.RecomputeTotals(), nil
}

// enforceDayBudget drops activities from the end of an over-long day until
// it fits the 12-hour budget. This is a best-effort trim, not a constraint
// solver; the last activity holds the lowest scheduling priority by virtue
// of being the route's final stop. Note the trim can drop a force-included
// attraction; callers pinning attractions should keep days short.
func enforceDayBudget(day domain.ItineraryDay) (domain.ItineraryDay, error) {
	out := day
	for out.TotalDurationMinutes > dayBudgetMinutes && len(out.Activities) > 1 {
		out.Activities = out.Activities[:len(out.Activities)-1]
		out = out.RecomputeTotals()
	}

	if out.TotalDurationMinutes > dayBudgetMinutes {
		return domain.ItineraryDay{}, &domain.InfeasibleError{Detail: fmt.Sprintf(
			"day %s still needs %d minutes after trimming, budget is %d",
			out.Date.Format("2006-01-02"), out.TotalDurationMinutes, dayBudgetMinutes,
		)}
	}
	return out, nil
}

// tripTitle derives a deterministic title from trip length and the top two
// interests.
func tripTitle(req ItineraryRequest) string {
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1

	interests := req.Preferences.Interests
	switch len(interests) {
	case 0:
		return fmt.Sprintf("%d-Day Hong Kong Trip", days)
	case 1:
		return fmt.Sprintf("%d-Day Hong Kong Trip: %s", days, titleCase(interests[0]))
	default:
		return fmt.Sprintf("%d-Day Hong Kong Trip: %s & %s", days, titleCase(interests[0]), titleCase(interests[1]))
	}
}

func tripDescription(req ItineraryRequest) string {
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if len(req.Preferences.Interests) == 0 {
		return fmt.Sprintf("A %d-day itinerary tailored to your travel style.", days)
	}
	return fmt.Sprintf(
		"A %d-day itinerary built around %s.",
		days, strings.Join(req.Preferences.Interests, ", "),
	)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// weatherNotes turns the forecast into trip-level guidance strings.
func weatherNotes(forecasts []domain.WeatherInfo) []string {
	notes := make([]string, 0, len(forecasts))
	for _, f := range forecasts {
		switch {
		case f.Precipitation > 5:
			notes = append(notes, fmt.Sprintf(
				"Rain expected on %s (%.0f mm): indoor attractions are prioritized.",
				f.Date.Format("Jan 2"), f.Precipitation,
			))
		case f.Temperature.Max > 35:
			notes = append(notes, fmt.Sprintf(
				"Very hot on %s (up to %.0f°C): plan outdoor stops early in the day.",
				f.Date.Format("Jan 2"), f.Temperature.Max,
			))
		case f.Temperature.Min < 10:
			notes = append(notes, fmt.Sprintf(
				"Cold on %s (down to %.0f°C): bring warm layers.",
				f.Date.Format("Jan 2"), f.Temperature.Min,
			))
		}
	}
	return notes
}
