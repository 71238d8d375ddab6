package domain

// ActivityLevel controls how packed a day may be.
type ActivityLevel string

const (
	ActivityLevelLow      ActivityLevel = "low"
	ActivityLevelModerate ActivityLevel = "moderate"
	ActivityLevelHigh     ActivityLevel = "high"
)

// MaxActivitiesPerDay maps an activity level to the daily activity cap.
// Unknown or empty levels fall back to a conservative default of 3.
func (l ActivityLevel) MaxActivitiesPerDay() int {
	switch l {
	case ActivityLevelLow:
		return 2
	case ActivityLevelModerate:
		return 4
	case ActivityLevelHigh:
		return 6
	default:
		return 3
	}
}

// BudgetRange for a whole trip, in the trip currency.
type BudgetRange struct {
	Min      float64
	Max      float64
	Currency string
}

// GroupType influences which attraction categories get a scoring bonus.
type GroupType string

const (
	GroupSolo    GroupType = "solo"
	GroupCouple  GroupType = "couple"
	GroupFamily  GroupType = "family"
	GroupFriends GroupType = "friends"
)

// UserPreferences describe the traveler profile driving selection and
// scheduling decisions.
type UserPreferences struct {
	Interests           []string
	BudgetRange         BudgetRange
	GroupType           GroupType
	DietaryRestrictions []string
	ActivityLevel       ActivityLevel
	AccessibilityNeeds  []string
	Language            string
}

// InterestSet returns the interests as a set for O(1) membership checks.
func (p UserPreferences) InterestSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Interests))
	for _, i := range p.Interests {
		set[i] = struct{}{}
	}
	return set
}
