package services

import (
	"slices"

	"trip-planner-service/internal/domain"
)

// SelectionConstraints narrow the candidate pool for one day.
type SelectionConstraints struct {
	// MustIncludeAttractions are appended after the daily cap when scoring
	// alone would leave them out.
	MustIncludeAttractions []string
	// ExcludeAttractions are removed before scoring.
	ExcludeAttractions []string
}

// AttractionSelector ranks catalog candidates against traveler preferences
// and returns the subset worth scheduling for one day.
type AttractionSelector struct{}

func NewAttractionSelector() *AttractionSelector {
	return &AttractionSelector{}
}

// Select scores, orders, and caps the candidates. Under adverse weather the
// ordering stably prefers indoor candidates without discarding outdoor ones.
// An empty scored pool falls back to a popularity ranking so a day is never
// left without options.
func (s *AttractionSelector) Select(
	candidates []domain.AttractionCandidate,
	prefs domain.UserPreferences,
	weather *domain.WeatherInfo,
	constraints *SelectionConstraints,
) []domain.AttractionCandidate {
	excluded := map[string]struct{}{}
	if constraints != nil {
		for _, id := range constraints.ExcludeAttractions {
			excluded[id] = struct{}{}
		}
	}

	pool := make([]domain.AttractionCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, skip := excluded[c.ID]; !skip {
			pool = append(pool, c)
		}
	}

	// The fallback keys on the pool being empty, not on how it got empty.
	// Today only the exclude filter can drain it, but any future pre-score
	// filtering (e.g. a minimum-score threshold) must keep landing here.
	if len(pool) == 0 {
		pool = popularRanking(candidates)
	} else {
		interests := prefs.InterestSet()
		slices.SortStableFunc(pool, func(a, b domain.AttractionCandidate) int {
			sa := scoreCandidate(a, interests, prefs)
			sb := scoreCandidate(b, interests, prefs)
			if sa > sb {
				return -1
			}
			if sa < sb {
				return 1
			}
			// Tie-breaker ensures deterministic ordering when scores are equal.
			if a.ID < b.ID {
				return -1
			}
			if a.ID > b.ID {
				return 1
			}
			return 0
		})
	}

	if weather != nil && weather.Adverse() {
		pool = indoorFirst(pool)
	}

	capacity := prefs.ActivityLevel.MaxActivitiesPerDay()
	if len(pool) > capacity {
		pool = pool[:capacity]
	}

	if constraints != nil && len(constraints.MustIncludeAttractions) > 0 {
		pool = forceInclude(pool, constraints.MustIncludeAttractions, candidates)
	}

	return pool
}

// scoreCandidate implements the multi-criteria score: interest overlap
// dominates, with smaller bonuses for budget fit, duration fit, local
// insight rating, and group-type category matches. Adding an interest match
// never lowers the score.
func scoreCandidate(
	c domain.AttractionCandidate,
	interests map[string]struct{},
	prefs domain.UserPreferences,
) float64 {
	score := 0.0

	for _, cat := range c.Categories {
		if _, ok := interests[cat]; ok {
			score += 10
		}
	}

	if prefs.BudgetRange.Max > 0 && c.EstimatedCost <= 0.2*prefs.BudgetRange.Max {
		score += 5
	}

	score += durationFitBonus(c.AverageDuration, prefs.ActivityLevel)
	score += c.AverageInsightRating()
	score += groupBonus(c, prefs.GroupType)

	return score
}

func durationFitBonus(minutes int, level domain.ActivityLevel) float64 {
	switch level {
	case domain.ActivityLevelLow:
		if minutes <= 120 {
			return 5
		}
	case domain.ActivityLevelHigh:
		if minutes >= 120 {
			return 5
		}
	default:
		// Moderate (and unspecified) travelers favor mid-length visits.
		if minutes >= 60 && minutes <= 240 {
			return 5
		}
	}
	return 0
}

var groupCategories = map[domain.GroupType][]string{
	domain.GroupFamily:  {"family", "theme-park", "zoo"},
	domain.GroupCouple:  {"romantic", "scenic", "dining"},
	domain.GroupFriends: {"nightlife", "adventure", "shopping"},
}

func groupBonus(c domain.AttractionCandidate, group domain.GroupType) float64 {
	for _, cat := range groupCategories[group] {
		if c.HasCategory(cat) {
			return 10
		}
	}
	return 0
}

// indoorFirst stably moves weather-independent candidates ahead of
// weather-dependent ones, preserving relative order within each group.
func indoorFirst(pool []domain.AttractionCandidate) []domain.AttractionCandidate {
	out := make([]domain.AttractionCandidate, 0, len(pool))
	for _, c := range pool {
		if !c.WeatherDependent {
			out = append(out, c)
		}
	}
	for _, c := range pool {
		if c.WeatherDependent {
			out = append(out, c)
		}
	}
	return out
}

// popularRanking orders candidates by average local-insight rating. Used as
// the fallback when filtering produced an empty pool.
func popularRanking(candidates []domain.AttractionCandidate) []domain.AttractionCandidate {
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, func(a, b domain.AttractionCandidate) int {
		ra, rb := a.AverageInsightRating(), b.AverageInsightRating()
		if ra > rb {
			return -1
		}
		if ra < rb {
			return 1
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

// forceInclude appends must-include candidates that the cap (or scoring)
// left out, resolving ids against the original candidate list.
func forceInclude(
	pool []domain.AttractionCandidate,
	mustInclude []string,
	candidates []domain.AttractionCandidate,
) []domain.AttractionCandidate {
	present := make(map[string]struct{}, len(pool))
	for _, c := range pool {
		present[c.ID] = struct{}{}
	}

	for _, id := range mustInclude {
		if _, ok := present[id]; ok {
			continue
		}
		for _, c := range candidates {
			if c.ID == id {
				pool = append(pool, c)
				present[id] = struct{}{}
				break
			}
		}
	}
	return pool
}
