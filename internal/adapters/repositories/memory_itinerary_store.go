package repositories

import (
	"context"
	"sync"

	"trip-planner-service/internal/domain"
)

// MemoryItineraryStore is a map-backed ItineraryStore for tests and local
// runs without a database. Safe for concurrent use; single-key operations
// are atomic under the store mutex.
type MemoryItineraryStore struct {
	mu    sync.RWMutex
	items map[string]domain.Itinerary
}

func NewMemoryItineraryStore() *MemoryItineraryStore {
	return &MemoryItineraryStore{items: map[string]domain.Itinerary{}}
}

func (s *MemoryItineraryStore) Get(ctx context.Context, id string) (domain.Itinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return domain.Itinerary{}, &domain.NotFoundError{Kind: "itinerary", ID: id}
	}
	return it, nil
}

func (s *MemoryItineraryStore) Put(ctx context.Context, id string, it domain.Itinerary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = it
	return nil
}

func (s *MemoryItineraryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}
