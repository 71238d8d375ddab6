package domain

// LocalInsight is a rated tip attached to an attraction by the catalog.
type LocalInsight struct {
	Tip    string
	Rating float64 // 0..5
}

// CrowdPattern describes typical visitor load by day period.
type CrowdPattern struct {
	Morning   string
	Afternoon string
	Evening   string
	PeakHours []int
}

// AttractionCandidate is a catalog entry considered for scheduling.
// Produced by the attraction-catalog collaborator; read-only to the core.
type AttractionCandidate struct {
	ID               string
	Name             string
	Description      string
	Location         GeoLocation
	Categories       []string
	AverageDuration  int // minutes
	EstimatedCost    float64
	WeatherDependent bool
	OpeningHours     string
	CrowdPattern     CrowdPattern
	PracticalTips    []string
	LocalInsights    []LocalInsight
}

// AverageInsightRating returns the mean rating across local insights, or
// zero when the candidate has none.
func (a AttractionCandidate) AverageInsightRating() float64 {
	if len(a.LocalInsights) == 0 {
		return 0
	}
	var sum float64
	for _, ins := range a.LocalInsights {
		sum += ins.Rating
	}
	return sum / float64(len(a.LocalInsights))
}

// HasCategory reports whether the candidate carries the given category.
func (a AttractionCandidate) HasCategory(category string) bool {
	for _, c := range a.Categories {
		if c == category {
			return true
		}
	}
	return false
}
