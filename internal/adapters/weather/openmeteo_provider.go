package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/phuslu/log"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// OpenMeteoProvider implements the WeatherProvider port against the
// open-meteo.com daily forecast API.
//
// Lookups are bounded by the HTTP client timeout. On any upstream failure
// the provider degrades to its fallback provider, so callers always receive
// a structurally valid forecast and never see an UpstreamUnavailableError.
type OpenMeteoProvider struct {
	session  *http.Client
	baseURL  string
	lat, lon float64
	fallback ports.WeatherProvider
}

func NewOpenMeteoProvider(lat, lon float64, fallback ports.WeatherProvider) *OpenMeteoProvider {
	if fallback == nil {
		fallback = NewStaticProvider()
	}
	return &OpenMeteoProvider{
		session:  &http.Client{Timeout: 10 * time.Second},
		baseURL:  "https://api.open-meteo.com",
		lat:      lat,
		lon:      lon,
		fallback: fallback,
	}
}

type openMeteoResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
		HumidityMean     []float64 `json:"relative_humidity_2m_mean"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, start, end time.Time) ([]domain.WeatherInfo, error) {
	out, err := p.fetch(ctx, start, end)
	if err != nil {
		upstream := &domain.UpstreamUnavailableError{Upstream: "open-meteo", Err: err}
		log.Warn().Err(upstream).Msg("weather lookup degraded to synthetic forecast")
		return p.fallback.Forecast(ctx, start, end)
	}
	return out, nil
}

func (p *OpenMeteoProvider) Current(ctx context.Context) (domain.WeatherInfo, error) {
	today := time.Now()
	days, err := p.fetch(ctx, today, today)
	if err != nil || len(days) == 0 {
		upstream := &domain.UpstreamUnavailableError{Upstream: "open-meteo", Err: err}
		log.Warn().Err(upstream).Msg("current weather lookup degraded")
		return p.fallback.Current(ctx)
	}
	return days[0], nil
}

func (p *OpenMeteoProvider) fetch(ctx context.Context, start, end time.Time) ([]domain.WeatherInfo, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", p.lat))
	params.Set("longitude", fmt.Sprintf("%.4f", p.lon))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max,relative_humidity_2m_mean,weather_code")
	params.Set("timezone", "auto")
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))

	reqURL := p.baseURL + "/v1/forecast?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call open-meteo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo status %d", resp.StatusCode)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}

	out := make([]domain.WeatherInfo, 0, len(body.Daily.Time))
	for i, ts := range body.Daily.Time {
		date, err := time.Parse("2006-01-02", ts)
		if err != nil {
			return nil, fmt.Errorf("parse forecast date %q: %w", ts, err)
		}
		out = append(out, domain.WeatherInfo{
			Date:          date,
			Temperature:   domain.TemperatureRange{Min: at(body.Daily.TemperatureMin, i), Max: at(body.Daily.TemperatureMax, i)},
			Humidity:      at(body.Daily.HumidityMean, i),
			Precipitation: at(body.Daily.PrecipitationSum, i),
			WindSpeed:     at(body.Daily.WindSpeedMax, i),
			Condition:     conditionFromCode(atInt(body.Daily.WeatherCode, i)),
			Description:   describe(atInt(body.Daily.WeatherCode, i)),
		})
	}
	return out, nil
}

// at guards against ragged arrays in the upstream payload.
func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func atInt(xs []int, i int) int {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

// conditionFromCode collapses WMO weather codes into the coarse conditions
// the core reasons about.
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "showers"
	default:
		return "thunderstorm"
	}
}

func describe(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 3:
		return "Mainly clear to overcast"
	case code <= 48:
		return "Fog or depositing rime"
	case code <= 67:
		return "Rain, light to heavy"
	case code <= 77:
		return "Snowfall"
	case code <= 82:
		return "Rain showers"
	default:
		return "Thunderstorm activity"
	}
}
