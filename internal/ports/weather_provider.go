package ports

import (
	"context"
	"time"

	"trip-planner-service/internal/domain"
)

// Contract for retrieving weather data. Implementations are expected to
// return a structurally valid best-effort result even when the upstream
// source fails; the core never handles weather outages itself.
type WeatherProvider interface {
	// Forecast returns one WeatherInfo per calendar date in [start, end].
	Forecast(ctx context.Context, start, end time.Time) ([]domain.WeatherInfo, error)
	// Current returns present conditions.
	Current(ctx context.Context) (domain.WeatherInfo, error)
}
