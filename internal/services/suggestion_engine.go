package services

import (
	"context"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// Peak visiting window for crowd suggestions.
const (
	peakStartHour = 10
	peakEndHour   = 16
)

// Travel legs longer than this prompt a reschedule suggestion.
const longLegMinutes = 60

// Categories that draw heavy foot traffic during the peak window.
var highTrafficCategories = map[string]struct{}{
	"market":     {},
	"shopping":   {},
	"theme-park": {},
	"landmark":   {},
}

// SuggestionEngine inspects an itinerary against live signals and proposes
// modifications without applying them. Each heuristic returns nothing on
// internal failure; a broken signal never breaks the read path.
type SuggestionEngine struct {
	weather ports.WeatherProvider
	now     func() time.Time
}

func NewSuggestionEngine(weather ports.WeatherProvider) *SuggestionEngine {
	return &SuggestionEngine{weather: weather, now: time.Now}
}

// Suggest returns candidate modifications for today's schedule.
func (s *SuggestionEngine) Suggest(ctx context.Context, it domain.Itinerary) []domain.Modification {
	out := []domain.Modification{}
	out = append(out, s.weatherSuggestions(ctx, it)...)
	out = append(out, s.crowdSuggestions(it)...)
	out = append(out, s.longLegSuggestions(it)...)
	return out
}

// weatherSuggestions proposes a weather adjustment when current conditions
// are not outdoor friendly and today still has weather-dependent activities
// ahead.
func (s *SuggestionEngine) weatherSuggestions(ctx context.Context, it domain.Itinerary) []domain.Modification {
	now := s.now()
	di := it.DayIndexFor(now)
	if di < 0 {
		return nil
	}

	current, err := s.weather.Current(ctx)
	if err != nil || current.OutdoorFriendly() {
		return nil
	}

	exposed := 0
	for _, a := range it.Days[di].Activities {
		if a.WeatherDependent && a.StartTime.After(now) {
			exposed++
		}
	}
	if exposed == 0 {
		return nil
	}

	conditions := current
	return []domain.Modification{domain.WeatherAdjustment{
		Date:       now,
		Conditions: &conditions,
		Reason: fmt.Sprintf(
			"%s expected; %d upcoming outdoor activities could move indoors",
			current.Condition, exposed,
		),
		RequestedAt: now,
	}}
}

// crowdSuggestions proposes an off-peak shuffle when today's plan visits
// high-traffic categories during the peak window.
func (s *SuggestionEngine) crowdSuggestions(it domain.Itinerary) []domain.Modification {
	now := s.now()
	di := it.DayIndexFor(now)
	if di < 0 {
		return nil
	}

	busy := 0
	for _, a := range it.Days[di].Activities {
		if _, hot := highTrafficCategories[a.Category]; !hot {
			continue
		}
		h := a.StartTime.Hour()
		if h >= peakStartHour && h < peakEndHour {
			busy++
		}
	}
	if busy == 0 {
		return nil
	}

	return []domain.Modification{domain.CrowdAdjustment{
		Date: now,
		Reason: fmt.Sprintf(
			"%d activities hit high-traffic spots during peak hours (%02d:00–%02d:00)",
			busy, peakStartHour, peakEndHour,
		),
		RequestedAt: now,
	}}
}

// longLegSuggestions flags activities reached by travel legs longer than an
// hour and proposes pulling them right up against their predecessor.
func (s *SuggestionEngine) longLegSuggestions(it domain.Itinerary) []domain.Modification {
	now := s.now()
	out := []domain.Modification{}

	for _, day := range it.Days {
		for i := 1; i < len(day.Activities); i++ {
			a := day.Activities[i]
			leg := a.TravelFromPrevious
			if leg == nil || leg.DurationMinutes <= longLegMinutes {
				continue
			}

			prev := day.Activities[i-1]
			earliest := prev.EndTime.Add(time.Duration(leg.DurationMinutes) * time.Minute)
			if !earliest.Before(a.StartTime) {
				continue
			}

			out = append(out, domain.RescheduleActivity{
				ActivityID: a.ID,
				NewStart:   earliest,
				Reason: fmt.Sprintf(
					"travel into %s takes %d minutes; starting at %s removes idle time",
					a.Name, leg.DurationMinutes, earliest.Format("15:04"),
				),
				RequestedAt: now,
			})
		}
	}
	return out
}
