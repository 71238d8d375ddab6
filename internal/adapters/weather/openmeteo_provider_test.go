package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
)

const openMeteoFixture = `{
	"daily": {
		"time": ["2026-03-10", "2026-03-11"],
		"temperature_2m_max": [26.1, 31.4],
		"temperature_2m_min": [19.0, 22.5],
		"precipitation_sum": [0.0, 12.6],
		"wind_speed_10m_max": [9.2, 28.0],
		"relative_humidity_2m_mean": [70, 88],
		"weather_code": [1, 63]
	}
}`

func TestOpenMeteoForecastParsesDailyPayload(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, "2026-03-10", r.URL.Query().Get("start_date"))
		require.Equal(t, "2026-03-11", r.URL.Query().Get("end_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openMeteoFixture))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(22.3193, 114.1694, nil)
	p.baseURL = srv.URL

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := p.Forecast(context.Background(), start, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, "/v1/forecast", gotPath)

	require.Len(t, got, 2)

	mild := got[0]
	require.True(t, mild.Date.Equal(start))
	require.Equal(t, 26.1, mild.Temperature.Max)
	require.Equal(t, 19.0, mild.Temperature.Min)
	require.Equal(t, "partly cloudy", mild.Condition)
	require.True(t, mild.OutdoorFriendly())

	wet := got[1]
	require.Equal(t, 12.6, wet.Precipitation)
	require.Equal(t, "rain", wet.Condition)
	require.False(t, wet.OutdoorFriendly())
	require.True(t, wet.Adverse())
}

func TestOpenMeteoDegradesToFallbackOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	fallback := NewFixedProvider(domain.WeatherInfo{Condition: "synthetic"})
	p := NewOpenMeteoProvider(22.3193, 114.1694, fallback)
	p.baseURL = srv.URL

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := p.Forecast(context.Background(), start, start)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "synthetic", got[0].Condition)

	current, err := p.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "synthetic", current.Condition)
}

func TestOpenMeteoDegradesOnUnreachableHost(t *testing.T) {
	fallback := NewFixedProvider(domain.WeatherInfo{Condition: "synthetic"})
	p := NewOpenMeteoProvider(22.3193, 114.1694, fallback)
	p.baseURL = "http://127.0.0.1:1"

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := p.Forecast(context.Background(), start, start)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "synthetic", got[0].Condition)
}
