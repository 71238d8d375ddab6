package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Port: keyed persistence for itinerary snapshots. Single-key operations are
// atomic; nothing beyond that is assumed. Callers serialize concurrent
// writes to the same id.
type ItineraryStore interface {
	Get(ctx context.Context, id string) (domain.Itinerary, error)
	Put(ctx context.Context, id string, it domain.Itinerary) error
	Delete(ctx context.Context, id string) error
}
