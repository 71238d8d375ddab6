package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"trip-planner-service/internal/domain"
)

// Initialize the database schema. Statements are portable across SQLite and
// Postgres except for parameter placeholders, which only seeding uses.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAttractionsQuery := `
	CREATE TABLE IF NOT EXISTS attractions (
		attraction_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		address TEXT NOT NULL,
		categories TEXT NOT NULL,
		average_duration_min INTEGER NOT NULL,
		estimated_cost REAL NOT NULL,
		weather_dependent INTEGER NOT NULL,
		opening_hours TEXT NOT NULL,
		crowd_pattern TEXT NOT NULL,
		practical_tips TEXT NOT NULL,
		local_insights TEXT NOT NULL
	);
	`

	createItinerariesQuery := `
	CREATE TABLE IF NOT EXISTS itineraries (
		itinerary_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		doc TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	createUserIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_itineraries_user
	ON itineraries(user_id);
	`

	statements := []string{
		createAttractionsQuery,
		createItinerariesQuery,
		createUserIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}

// SeedAttractionsFromJSON loads attraction candidates from a JSON file into
// the attractions table, replacing rows that share an id.
func SeedAttractionsFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed attractions: read %q: %w", jsonPath, err)
	}

	var data []domain.AttractionCandidate
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed attractions: parse json: %w", err)
	}

	return SeedAttractions(db, data)
}

// SeedAttractions inserts the given candidates, validating ids and names
// before touching the database.
func SeedAttractions(db *sql.DB, candidates []domain.AttractionCandidate) error {
	for i, c := range candidates {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("seed attractions: item at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("seed attractions: item %q: name cannot be empty", c.ID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed attractions: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO attractions (
		attraction_id,
		name,
		description,
		lat,
		lon,
		address,
		categories,
		average_duration_min,
		estimated_cost,
		weather_dependent,
		opening_hours,
		crowd_pattern,
		practical_tips,
		local_insights
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed attractions: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candidates {
		categories, err := json.Marshal(c.Categories)
		if err != nil {
			return fmt.Errorf("seed attractions: encode categories for %q: %w", c.ID, err)
		}
		crowd, err := json.Marshal(c.CrowdPattern)
		if err != nil {
			return fmt.Errorf("seed attractions: encode crowd pattern for %q: %w", c.ID, err)
		}
		tips, err := json.Marshal(c.PracticalTips)
		if err != nil {
			return fmt.Errorf("seed attractions: encode tips for %q: %w", c.ID, err)
		}
		insights, err := json.Marshal(c.LocalInsights)
		if err != nil {
			return fmt.Errorf("seed attractions: encode insights for %q: %w", c.ID, err)
		}

		weatherDependent := 0
		if c.WeatherDependent {
			weatherDependent = 1
		}

		_, err = stmt.Exec(
			c.ID, c.Name, c.Description,
			c.Location.Latitude, c.Location.Longitude, c.Location.Address,
			string(categories), c.AverageDuration, c.EstimatedCost,
			weatherDependent, c.OpeningHours,
			string(crowd), string(tips), string(insights),
		)
		if err != nil {
			return fmt.Errorf("seed attractions: insert %q: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed attractions: commit tx: %w", err)
	}
	return nil
}
