package dto

import (
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
)

// NewActivity carries the proposed activity for ADD_ACTIVITY.
type NewActivity struct {
	AttractionID     string      `json:"attraction_id"`
	Name             string      `json:"name" validate:"required"`
	Description      string      `json:"description,omitempty"`
	Location         GeoLocation `json:"location"`
	StartTime        time.Time   `json:"start_time" validate:"required"`
	DurationMinutes  int         `json:"duration_minutes" validate:"required,min=1"`
	Category         string      `json:"category,omitempty"`
	EstimatedCost    float64     `json:"estimated_cost,omitempty"`
	WeatherDependent bool        `json:"weather_dependent,omitempty"`
	PracticalTips    []string    `json:"practical_tips,omitempty"`
}

// ReplacementContent carries the substitute fields for REPLACE_ACTIVITY.
type ReplacementContent struct {
	AttractionID     string      `json:"attraction_id"`
	Name             string      `json:"name" validate:"required"`
	Description      string      `json:"description,omitempty"`
	Location         GeoLocation `json:"location"`
	Category         string      `json:"category,omitempty"`
	DurationMinutes  int         `json:"duration_minutes,omitempty"`
	EstimatedCost    float64     `json:"estimated_cost,omitempty"`
	WeatherDependent bool        `json:"weather_dependent,omitempty"`
	PracticalTips    []string    `json:"practical_tips,omitempty"`
}

// ModificationRequest is the wire form of one modification. Type selects the
// variant; exactly the payload fields that variant needs must be present.
type ModificationRequest struct {
	Type        string              `json:"type" validate:"required,oneof=ADD_ACTIVITY REMOVE_ACTIVITY REPLACE_ACTIVITY RESCHEDULE_ACTIVITY WEATHER_ADJUSTMENT CROWD_ADJUSTMENT"`
	ActivityID  string              `json:"activity_id,omitempty"`
	Activity    *NewActivity        `json:"activity,omitempty"`
	Content     *ReplacementContent `json:"content,omitempty"`
	NewStart    *time.Time          `json:"new_start_time,omitempty"`
	Date        *time.Time          `json:"date,omitempty"`
	Reason      string              `json:"reason,omitempty"`
}

// ToModification maps the wire form onto the domain sum type, checking that
// the variant-specific payload is present.
func (r ModificationRequest) ToModification(now time.Time) (domain.Modification, error) {
	switch domain.ModificationKind(r.Type) {
	case domain.KindAddActivity:
		if r.Activity == nil {
			return nil, &domain.ValidationError{Detail: "ADD_ACTIVITY requires an activity payload"}
		}
		a := r.Activity
		return domain.AddActivity{
			Activity: domain.ItineraryActivity{
				AttractionID: a.AttractionID,
				Name:         a.Name,
				Description:  a.Description,
				Location: domain.GeoLocation{
					Latitude:  a.Location.Latitude,
					Longitude: a.Location.Longitude,
					Address:   a.Location.Address,
				},
				StartTime:        a.StartTime,
				DurationMinutes:  a.DurationMinutes,
				Category:         a.Category,
				EstimatedCost:    a.EstimatedCost,
				WeatherDependent: a.WeatherDependent,
				PracticalTips:    a.PracticalTips,
			},
			Reason:      r.Reason,
			RequestedAt: now,
		}, nil

	case domain.KindRemoveActivity:
		if r.ActivityID == "" {
			return nil, &domain.ValidationError{Detail: "REMOVE_ACTIVITY requires activity_id"}
		}
		return domain.RemoveActivity{ActivityID: r.ActivityID, Reason: r.Reason, RequestedAt: now}, nil

	case domain.KindReplaceActivity:
		if r.ActivityID == "" || r.Content == nil {
			return nil, &domain.ValidationError{Detail: "REPLACE_ACTIVITY requires activity_id and content"}
		}
		c := r.Content
		return domain.ReplaceActivity{
			ActivityID: r.ActivityID,
			Content: domain.ActivityContent{
				AttractionID: c.AttractionID,
				Name:         c.Name,
				Description:  c.Description,
				Location: domain.GeoLocation{
					Latitude:  c.Location.Latitude,
					Longitude: c.Location.Longitude,
					Address:   c.Location.Address,
				},
				Category:         c.Category,
				DurationMinutes:  c.DurationMinutes,
				EstimatedCost:    c.EstimatedCost,
				WeatherDependent: c.WeatherDependent,
				PracticalTips:    c.PracticalTips,
			},
			Reason:      r.Reason,
			RequestedAt: now,
		}, nil

	case domain.KindRescheduleActivity:
		if r.ActivityID == "" || r.NewStart == nil {
			return nil, &domain.ValidationError{Detail: "RESCHEDULE_ACTIVITY requires activity_id and new_start_time"}
		}
		return domain.RescheduleActivity{
			ActivityID:  r.ActivityID,
			NewStart:    *r.NewStart,
			Reason:      r.Reason,
			RequestedAt: now,
		}, nil

	case domain.KindWeatherAdjustment:
		m := domain.WeatherAdjustment{Reason: r.Reason, RequestedAt: now}
		if r.Date != nil {
			m.Date = *r.Date
		}
		return m, nil

	case domain.KindCrowdAdjustment:
		m := domain.CrowdAdjustment{Reason: r.Reason, RequestedAt: now}
		if r.Date != nil {
			m.Date = *r.Date
		}
		return m, nil

	default:
		return nil, &domain.ValidationError{Detail: fmt.Sprintf("unknown modification type %q", r.Type)}
	}
}

// SuggestionResponse is one proposed modification from the suggestion
// engine; it mirrors ModificationRequest so a client can send it back as-is.
type SuggestionResponse struct {
	Type       string     `json:"type"`
	ActivityID string     `json:"activity_id,omitempty"`
	NewStart   *time.Time `json:"new_start_time,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Reason     string     `json:"reason"`
}

// FromModification maps a proposed domain modification to its wire form.
func FromModification(m domain.Modification) SuggestionResponse {
	out := SuggestionResponse{Type: string(m.Kind()), Reason: m.Why()}
	switch v := m.(type) {
	case domain.RescheduleActivity:
		start := v.NewStart
		out.ActivityID = v.ActivityID
		out.NewStart = &start
	case domain.RemoveActivity:
		out.ActivityID = v.ActivityID
	case domain.ReplaceActivity:
		out.ActivityID = v.ActivityID
	case domain.WeatherAdjustment:
		date := v.Date
		out.Date = &date
	case domain.CrowdAdjustment:
		date := v.Date
		out.Date = &date
	}
	return out
}

type ListSuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}
