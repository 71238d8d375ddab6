package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/phuslu/log"

	"trip-planner-service/internal/adapters/catalog"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
)

// dbtool initializes the schema on Postgres and seeds the attraction
// catalog, for deployments that outgrow the embedded SQLite database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect")
	}
	defer conn.Close()

	log.Info().Msg("Initializing database schema...")
	if err := initSchema(conn); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("Schema ready.")

	candidates := catalog.DefaultCandidates()
	if seedPath := config.Get("SEED_PATH", ""); seedPath != "" {
		candidates, err = loadSeed(seedPath)
		if err != nil {
			log.Fatal().Err(err).Msg("read seed file")
		}
	}

	log.Info().Int("attractions", len(candidates)).Msg("Seeding database...")
	if err := seedAttractions(conn, candidates); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("Seeding complete.")
}

func loadSeed(path string) ([]domain.AttractionCandidate, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var data []domain.AttractionCandidate
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return data, nil
}

// initSchema mirrors the SQLite schema in Postgres dialect.
func initSchema(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS attractions (
			attraction_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			address TEXT NOT NULL,
			categories TEXT NOT NULL,
			average_duration_min INTEGER NOT NULL,
			estimated_cost DOUBLE PRECISION NOT NULL,
			weather_dependent INTEGER NOT NULL,
			opening_hours TEXT NOT NULL,
			crowd_pattern TEXT NOT NULL,
			practical_tips TEXT NOT NULL,
			local_insights TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS itineraries (
			itinerary_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			doc TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_itineraries_user ON itineraries(user_id);`,
	}

	for i, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}
	return nil
}

func seedAttractions(conn *sql.DB, candidates []domain.AttractionCandidate) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed attractions: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO attractions (
		attraction_id, name, description, lat, lon, address,
		categories, average_duration_min, estimated_cost, weather_dependent,
		opening_hours, crowd_pattern, practical_tips, local_insights
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (attraction_id) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		address = EXCLUDED.address,
		categories = EXCLUDED.categories,
		average_duration_min = EXCLUDED.average_duration_min,
		estimated_cost = EXCLUDED.estimated_cost,
		weather_dependent = EXCLUDED.weather_dependent,
		opening_hours = EXCLUDED.opening_hours,
		crowd_pattern = EXCLUDED.crowd_pattern,
		practical_tips = EXCLUDED.practical_tips,
		local_insights = EXCLUDED.local_insights;
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
			string(categories), c.AverageDuration, c.EstimatedCost, weatherDependent,
			c.OpeningHours, string(crowd), string(tips), string(insights),
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
