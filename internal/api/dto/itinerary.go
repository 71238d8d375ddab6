package dto

import (
	"time"

	"trip-planner-service/internal/domain"
)

type GeoLocation struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Address   string  `json:"address,omitempty"`
}

type BudgetRange struct {
	Min      float64 `json:"min" validate:"min=0"`
	Max      float64 `json:"max" validate:"min=0"`
	Currency string  `json:"currency"`
}

type Preferences struct {
	Interests           []string    `json:"interests"`
	Budget              BudgetRange `json:"budget"`
	GroupType           string      `json:"group_type" validate:"omitempty,oneof=solo couple family friends"`
	DietaryRestrictions []string    `json:"dietary_restrictions,omitempty"`
	ActivityLevel       string      `json:"activity_level" validate:"omitempty,oneof=low moderate high"`
	AccessibilityNeeds  []string    `json:"accessibility_needs,omitempty"`
	Language            string      `json:"language,omitempty"`
}

type Constraints struct {
	MustIncludeAttractions []string `json:"must_include_attractions,omitempty"`
	ExcludeAttractions     []string `json:"exclude_attractions,omitempty"`
}

type CreateItineraryRequest struct {
	UserID        string       `json:"user_id" validate:"required"`
	StartDate     string       `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string       `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartLocation *GeoLocation `json:"start_location,omitempty"`
	Preferences   Preferences  `json:"preferences"`
	Constraints   *Constraints `json:"constraints,omitempty"`
}

type TravelInfoResponse struct {
	Mode            string   `json:"mode"`
	DurationMinutes int      `json:"duration_minutes"`
	DistanceMeters  float64  `json:"distance_meters"`
	Cost            float64  `json:"cost"`
	Instructions    []string `json:"instructions"`
}

type ActivityResponse struct {
	ID                 string              `json:"id"`
	AttractionID       string              `json:"attraction_id"`
	Name               string              `json:"name"`
	Description        string              `json:"description,omitempty"`
	Location           GeoLocation         `json:"location"`
	StartTime          time.Time           `json:"start_time"`
	EndTime            time.Time           `json:"end_time"`
	DurationMinutes    int                 `json:"duration_minutes"`
	Category           string              `json:"category"`
	EstimatedCost      float64             `json:"estimated_cost"`
	WeatherDependent   bool                `json:"weather_dependent"`
	PracticalTips      []string            `json:"practical_tips,omitempty"`
	TravelFromPrevious *TravelInfoResponse `json:"travel_from_previous,omitempty"`
}

type WeatherResponse struct {
	Date          string  `json:"date"`
	TempMin       float64 `json:"temp_min"`
	TempMax       float64 `json:"temp_max"`
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
	Condition     string  `json:"condition"`
	Description   string  `json:"description,omitempty"`
}

type DayResponse struct {
	Date                 string             `json:"date"`
	Activities           []ActivityResponse `json:"activities"`
	TotalDurationMinutes int                `json:"total_duration_minutes"`
	WalkingDistanceMeter float64            `json:"walking_distance_meters"`
	EstimatedCost        float64            `json:"estimated_cost"`
	Weather              *WeatherResponse   `json:"weather,omitempty"`
}

type ItineraryResponse struct {
	ID                    string        `json:"id"`
	UserID                string        `json:"user_id"`
	Title                 string        `json:"title"`
	Description           string        `json:"description"`
	StartDate             string        `json:"start_date"`
	EndDate               string        `json:"end_date"`
	Days                  []DayResponse `json:"days"`
	TotalEstimatedCost    float64       `json:"total_estimated_cost"`
	TotalWalkingDistance  float64       `json:"total_walking_distance_meters"`
	WeatherConsiderations []string      `json:"weather_considerations,omitempty"`
}

// FromItinerary maps a domain snapshot onto the wire shape.
func FromItinerary(it domain.Itinerary) ItineraryResponse {
	days := make([]DayResponse, 0, len(it.Days))
	for _, d := range it.Days {
		activities := make([]ActivityResponse, 0, len(d.Activities))
		for _, a := range d.Activities {
			activities = append(activities, fromActivity(a))
		}

		day := DayResponse{
			Date:                 d.Date.Format("2006-01-02"),
			Activities:           activities,
			TotalDurationMinutes: d.TotalDurationMinutes,
			WalkingDistanceMeter: d.WalkingDistanceMeter,
			EstimatedCost:        d.EstimatedCost,
		}
		if f := d.WeatherForecast; f != nil {
			day.Weather = &WeatherResponse{
				Date:          f.Date.Format("2006-01-02"),
				TempMin:       f.Temperature.Min,
				TempMax:       f.Temperature.Max,
				Humidity:      f.Humidity,
				Precipitation: f.Precipitation,
				WindSpeed:     f.WindSpeed,
				Condition:     f.Condition,
				Description:   f.Description,
			}
		}
		days = append(days, day)
	}

	return ItineraryResponse{
		ID:                    it.ID,
		UserID:                it.UserID,
		Title:                 it.Title,
		Description:           it.Description,
		StartDate:             it.StartDate.Format("2006-01-02"),
		EndDate:               it.EndDate.Format("2006-01-02"),
		Days:                  days,
		TotalEstimatedCost:    it.TotalEstimatedCost,
		TotalWalkingDistance:  it.TotalWalkingDistance,
		WeatherConsiderations: it.WeatherConsiderations,
	}
}

func fromActivity(a domain.ItineraryActivity) ActivityResponse {
	out := ActivityResponse{
		ID:           a.ID,
		AttractionID: a.AttractionID,
		Name:         a.Name,
		Description:  a.Description,
		Location: GeoLocation{
			Latitude:  a.Location.Latitude,
			Longitude: a.Location.Longitude,
			Address:   a.Location.Address,
		},
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		DurationMinutes:  a.DurationMinutes,
		Category:         a.Category,
		EstimatedCost:    a.EstimatedCost,
		WeatherDependent: a.WeatherDependent,
		PracticalTips:    a.PracticalTips,
	}
	if t := a.TravelFromPrevious; t != nil {
		out.TravelFromPrevious = &TravelInfoResponse{
			Mode:            string(t.Mode),
			DurationMinutes: t.DurationMinutes,
			DistanceMeters:  t.DistanceMeters,
			Cost:            t.Cost,
			Instructions:    t.Instructions,
		}
	}
	return out
}
