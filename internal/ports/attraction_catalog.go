package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Port: a boundary for retrieving attraction candidates from a catalog.
type AttractionCatalog interface {
	// Recommended returns candidates matched to the traveler profile.
	Recommended(ctx context.Context, prefs domain.UserPreferences) ([]domain.AttractionCandidate, error)
	// ByCategory returns candidates carrying the given category.
	ByCategory(ctx context.Context, category string) ([]domain.AttractionCandidate, error)
}
