package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
)

// SQLite-backed implementation of the ItineraryStore port. Snapshots are
// stored as JSON documents; a Put replaces the previous snapshot for the id
// in a single statement, which gives the single-key atomicity the engine
// relies on.
type SqliteItineraryStore struct{ DB *sql.DB }

func NewSqliteItineraryStore(db *sql.DB) *SqliteItineraryStore {
	return &SqliteItineraryStore{DB: db}
}

func (s *SqliteItineraryStore) Get(ctx context.Context, id string) (domain.Itinerary, error) {
	if s.DB == nil {
		return domain.Itinerary{}, errors.New("itinerary store: DB is nil")
	}

	var doc string
	err := s.DB.QueryRowContext(ctx,
		`SELECT doc FROM itineraries WHERE itinerary_id = ?;`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Itinerary{}, &domain.NotFoundError{Kind: "itinerary", ID: id}
	}
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("get itinerary %q: %w", id, err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal([]byte(doc), &it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("get itinerary %q: parse document: %w", id, err)
	}
	return it, nil
}

func (s *SqliteItineraryStore) Put(ctx context.Context, id string, it domain.Itinerary) error {
	if s.DB == nil {
		return errors.New("itinerary store: DB is nil")
	}

	doc, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("put itinerary %q: encode document: %w", id, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO itineraries (
		itinerary_id,
		user_id,
		doc,
		updated_at
	)
	VALUES (?, ?, ?, ?);
	`, id, it.UserID, string(doc), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put itinerary %q: %w", id, err)
	}
	return nil
}

// Delete is idempotent: removing a missing id is not an error.
func (s *SqliteItineraryStore) Delete(ctx context.Context, id string) error {
	if s.DB == nil {
		return errors.New("itinerary store: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM itineraries WHERE itinerary_id = ?;`, id,
	); err != nil {
		return fmt.Errorf("delete itinerary %q: %w", id, err)
	}
	return nil
}
