package catalog

import (
	"context"

	"trip-planner-service/internal/domain"
)

// StaticCatalog is an in-memory implementation of the AttractionCatalog
// port. Used for tests and as the fallback when no database is configured.
type StaticCatalog struct {
	candidates []domain.AttractionCandidate
}

func NewStaticCatalog(candidates []domain.AttractionCandidate) *StaticCatalog {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	return &StaticCatalog{candidates: candidates}
}

func (c *StaticCatalog) Recommended(ctx context.Context, prefs domain.UserPreferences) ([]domain.AttractionCandidate, error) {
	out := make([]domain.AttractionCandidate, len(c.candidates))
	copy(out, c.candidates)
	return out, nil
}

func (c *StaticCatalog) ByCategory(ctx context.Context, category string) ([]domain.AttractionCandidate, error) {
	out := make([]domain.AttractionCandidate, 0, len(c.candidates))
	for _, cand := range c.candidates {
		if cand.HasCategory(category) {
			out = append(out, cand)
		}
	}
	return out, nil
}

// DefaultCandidates is a compact Hong Kong attraction set for local runs and
// tests. Coordinates are real; ratings and costs are representative.
func DefaultCandidates() []domain.AttractionCandidate {
	return []domain.AttractionCandidate{
		{
			ID:          "victoria-peak",
			Name:        "Victoria Peak",
			Description: "Panoramic views over the harbour from the Peak Tram upper terminus.",
			Location:    domain.GeoLocation{Latitude: 22.2759, Longitude: 114.1455, Address: "The Peak"},
			Categories:  []string{"scenic", "landmark"},
			AverageDuration: 150, EstimatedCost: 88, WeatherDependent: true,
			OpeningHours:  "10:00-23:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "moderate", Afternoon: "high", Evening: "very_high", PeakHours: []int{11, 12, 13, 17, 18}},
			PracticalTips: []string{"Buy Peak Tram tickets online to skip the queue"},
			LocalInsights: []domain.LocalInsight{{Tip: "Walk the Lugard Road loop for quieter views", Rating: 4.7}},
		},
		{
			ID:          "star-ferry",
			Name:        "Star Ferry Crossing",
			Description: "The classic harbour crossing between Central and Tsim Sha Tsui.",
			Location:    domain.GeoLocation{Latitude: 22.2873, Longitude: 114.1607, Address: "Central Pier 7"},
			Categories:  []string{"scenic", "cultural"},
			AverageDuration: 45, EstimatedCost: 5, WeatherDependent: true,
			OpeningHours:  "06:30-23:30",
			CrowdPattern:  domain.CrowdPattern{Morning: "low", Afternoon: "moderate", Evening: "high"},
			PracticalTips: []string{"Sit on the upper deck for the skyline"},
			LocalInsights: []domain.LocalInsight{{Tip: "Cross at dusk for the light show", Rating: 4.8}},
		},
		{
			ID:          "history-museum",
			Name:        "Hong Kong Museum of History",
			Description: "The story of Hong Kong from prehistory to the handover.",
			Location:    domain.GeoLocation{Latitude: 22.3014, Longitude: 114.1773, Address: "100 Chatham Road South, Tsim Sha Tsui"},
			Categories:  []string{"cultural", "museum"},
			AverageDuration: 120, EstimatedCost: 10, WeatherDependent: false,
			OpeningHours:  "10:00-18:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "low", Afternoon: "moderate", Evening: "low"},
			PracticalTips: []string{"Closed on Tuesdays"},
			LocalInsights: []domain.LocalInsight{{Tip: "The Hong Kong Story exhibit deserves two hours", Rating: 4.5}},
		},
		{
			ID:          "temple-street",
			Name:        "Temple Street Night Market",
			Description: "Open-air market with street food, fortune tellers, and opera singers.",
			Location:    domain.GeoLocation{Latitude: 22.3048, Longitude: 114.1700, Address: "Temple Street, Jordan"},
			Categories:  []string{"market", "nightlife", "dining"},
			AverageDuration: 90, EstimatedCost: 150, WeatherDependent: true,
			OpeningHours:  "17:00-23:30",
			CrowdPattern:  domain.CrowdPattern{Morning: "very_low", Afternoon: "low", Evening: "very_high", PeakHours: []int{19, 20, 21}},
			PracticalTips: []string{"Haggle; start at half the asking price"},
			LocalInsights: []domain.LocalInsight{{Tip: "Try the clay pot rice at the north end", Rating: 4.3}},
		},
		{
			ID:          "man-mo-temple",
			Name:        "Man Mo Temple",
			Description: "Incense-filled temple dedicated to the gods of literature and war.",
			Location:    domain.GeoLocation{Latitude: 22.2840, Longitude: 114.1500, Address: "124-126 Hollywood Road, Sheung Wan"},
			Categories:  []string{"cultural", "landmark"},
			AverageDuration: 45, EstimatedCost: 0, WeatherDependent: false,
			OpeningHours:  "08:00-18:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "moderate", Afternoon: "high", Evening: "low"},
			LocalInsights: []domain.LocalInsight{{Tip: "Mornings are quietest before the tour groups", Rating: 4.4}},
		},
		{
			ID:          "hk-park",
			Name:        "Hong Kong Park",
			Description: "Aviary, tai chi garden, and greenery between the towers of Admiralty.",
			Location:    domain.GeoLocation{Latitude: 22.2771, Longitude: 114.1622, Address: "19 Cotton Tree Drive, Admiralty"},
			Categories:  []string{"scenic", "family"},
			AverageDuration: 75, EstimatedCost: 0, WeatherDependent: true,
			OpeningHours:  "06:00-23:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "low", Afternoon: "moderate", Evening: "moderate"},
			LocalInsights: []domain.LocalInsight{{Tip: "The Edward Youde Aviary is free and underrated", Rating: 4.2}},
		},
		{
			ID:          "tai-kwun",
			Name:        "Tai Kwun",
			Description: "Restored central police station compound with galleries and courtyards.",
			Location:    domain.GeoLocation{Latitude: 22.2817, Longitude: 114.1540, Address: "10 Hollywood Road, Central"},
			Categories:  []string{"cultural", "gallery"},
			AverageDuration: 105, EstimatedCost: 0, WeatherDependent: false,
			OpeningHours:  "08:00-23:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "low", Afternoon: "moderate", Evening: "high"},
			LocalInsights: []domain.LocalInsight{{Tip: "Check the JC Contemporary exhibition calendar", Rating: 4.6}},
		},
		{
			ID:          "ifc-mall",
			Name:        "IFC Mall",
			Description: "Harbourfront mall above the Airport Express with a rooftop garden.",
			Location:    domain.GeoLocation{Latitude: 22.2851, Longitude: 114.1577, Address: "8 Finance Street, Central"},
			Categories:  []string{"shopping", "dining"},
			AverageDuration: 120, EstimatedCost: 300, WeatherDependent: false,
			OpeningHours:  "10:00-22:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "low", Afternoon: "high", Evening: "high", PeakHours: []int{13, 14, 18, 19}},
			LocalInsights: []domain.LocalInsight{{Tip: "The rooftop garden on level 4 is open to all", Rating: 4.0}},
		},
		{
			ID:          "ocean-park",
			Name:        "Ocean Park",
			Description: "Marine-life theme park spread over a headland with a cable car.",
			Location:    domain.GeoLocation{Latitude: 22.2468, Longitude: 114.1757, Address: "Ocean Park Road, Aberdeen"},
			Categories:  []string{"theme-park", "family", "adventure"},
			AverageDuration: 300, EstimatedCost: 498, WeatherDependent: true,
			OpeningHours:  "10:00-19:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "moderate", Afternoon: "very_high", Evening: "moderate", PeakHours: []int{11, 12, 13, 14, 15}},
			PracticalTips: []string{"Weekday visits halve the queue times"},
			LocalInsights: []domain.LocalInsight{{Tip: "Ride the cable car early before the wind picks up", Rating: 4.1}},
		},
		{
			ID:          "art-museum",
			Name:        "Hong Kong Museum of Art",
			Description: "Chinese antiquities and contemporary Hong Kong art on the waterfront.",
			Location:    domain.GeoLocation{Latitude: 22.2934, Longitude: 114.1721, Address: "10 Salisbury Road, Tsim Sha Tsui"},
			Categories:  []string{"cultural", "museum", "gallery"},
			AverageDuration: 110, EstimatedCost: 10, WeatherDependent: false,
			OpeningHours:  "10:00-18:00",
			CrowdPattern:  domain.CrowdPattern{Morning: "low", Afternoon: "moderate", Evening: "low"},
			LocalInsights: []domain.LocalInsight{{Tip: "Harbour-facing galleries double as a typhoon-day view", Rating: 4.4}},
		},
	}
}
