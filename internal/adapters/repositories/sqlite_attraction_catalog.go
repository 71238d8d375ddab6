package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
)

// SQLite-backed implementation of the AttractionCatalog port.
type SqliteAttractionCatalog struct{ DB *sql.DB }

func NewSqliteAttractionCatalog(db *sql.DB) *SqliteAttractionCatalog {
	return &SqliteAttractionCatalog{DB: db}
}

// Recommended returns the full stored candidate pool in a stable order;
// preference-aware ranking is the selector's job, not the catalog's.
func (s *SqliteAttractionCatalog) Recommended(ctx context.Context, prefs domain.UserPreferences) ([]domain.AttractionCandidate, error) {
	return s.listAll(ctx)
}

func (s *SqliteAttractionCatalog) ByCategory(ctx context.Context, category string) ([]domain.AttractionCandidate, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	// Categories live in a JSON column, so membership is checked here rather
	// than in SQL.
	out := make([]domain.AttractionCandidate, 0, len(all))
	for _, c := range all {
		if c.HasCategory(category) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *SqliteAttractionCatalog) listAll(ctx context.Context) ([]domain.AttractionCandidate, error) {
	if s.DB == nil {
		return nil, errors.New("attraction catalog: DB is nil")
	}

	query := `
	SELECT
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
	FROM attractions
	ORDER BY attraction_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list attractions: query attractions table: %w", err)
	}
	defer rows.Close()

	candidates := make([]domain.AttractionCandidate, 0, 64)
	for rows.Next() {
		var (
			c                  domain.AttractionCandidate
			weatherDependent   int
			categoriesJSON     string
			crowdPatternJSON   string
			practicalTipsJSON  string
			localInsightsJSON  string
		)
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description,
			&c.Location.Latitude, &c.Location.Longitude, &c.Location.Address,
			&categoriesJSON, &c.AverageDuration, &c.EstimatedCost,
			&weatherDependent, &c.OpeningHours,
			&crowdPatternJSON, &practicalTipsJSON, &localInsightsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("list attractions: scan row: %w", err)
		}

		c.WeatherDependent = weatherDependent != 0
		if err := json.Unmarshal([]byte(categoriesJSON), &c.Categories); err != nil {
			return nil, fmt.Errorf("list attractions: parse categories for %q: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(crowdPatternJSON), &c.CrowdPattern); err != nil {
			return nil, fmt.Errorf("list attractions: parse crowd pattern for %q: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(practicalTipsJSON), &c.PracticalTips); err != nil {
			return nil, fmt.Errorf("list attractions: parse tips for %q: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(localInsightsJSON), &c.LocalInsights); err != nil {
			return nil, fmt.Errorf("list attractions: parse insights for %q: %w", c.ID, err)
		}

		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attractions: row iteration: %w", err)
	}
	return candidates, nil
}
