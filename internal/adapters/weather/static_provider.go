package weather

import (
	"context"
	"time"

	"trip-planner-service/internal/domain"
)

// StaticProvider returns a deterministic synthetic forecast. It backs tests
// and serves as the degradation target for the HTTP provider, so the core
// always sees structurally valid weather data.
type StaticProvider struct {
	// Fixed supplies the conditions for every date when non-nil.
	Fixed *domain.WeatherInfo
}

func NewStaticProvider() *StaticProvider { return &StaticProvider{} }

// NewFixedProvider reports the same conditions for every lookup.
func NewFixedProvider(w domain.WeatherInfo) *StaticProvider {
	return &StaticProvider{Fixed: &w}
}

func (p *StaticProvider) Forecast(ctx context.Context, start, end time.Time) ([]domain.WeatherInfo, error) {
	out := []domain.WeatherInfo{}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		out = append(out, p.forDate(date))
	}
	return out, nil
}

func (p *StaticProvider) Current(ctx context.Context) (domain.WeatherInfo, error) {
	return p.forDate(time.Now()), nil
}

func (p *StaticProvider) forDate(date time.Time) domain.WeatherInfo {
	if p.Fixed != nil {
		w := *p.Fixed
		w.Date = date
		return w
	}
	return domain.WeatherInfo{
		Date:          date,
		Temperature:   domain.TemperatureRange{Min: 19, Max: 26},
		Humidity:      72,
		Precipitation: 0,
		WindSpeed:     9,
		Condition:     "partly cloudy",
		Description:   "Mild with light winds",
	}
}
