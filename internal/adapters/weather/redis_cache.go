package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// CachedProvider decorates a WeatherProvider with a Redis cache. Forecast
// ranges are cached per (start, end) key; current conditions under a short
// TTL. Cache failures fall through to the inner provider, so a broken cache
// never breaks a lookup.
type CachedProvider struct {
	inner       ports.WeatherProvider
	client      *redis.Client
	forecastTTL time.Duration
	currentTTL  time.Duration
}

func NewCachedProvider(inner ports.WeatherProvider, client *redis.Client) *CachedProvider {
	return &CachedProvider{
		inner:       inner,
		client:      client,
		forecastTTL: 3 * time.Hour,
		currentTTL:  10 * time.Minute,
	}
}

func forecastKey(start, end time.Time) string {
	return fmt.Sprintf("weather:forecast:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}

const currentKey = "weather:current"

func (c *CachedProvider) Forecast(ctx context.Context, start, end time.Time) ([]domain.WeatherInfo, error) {
	key := forecastKey(start, end)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached []domain.WeatherInfo
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		// Unreadable entries are treated as misses and overwritten below.
	}

	out, err := c.inner.Forecast(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(out); err == nil {
		_ = c.client.Set(ctx, key, raw, c.forecastTTL).Err()
	}
	return out, nil
}

func (c *CachedProvider) Current(ctx context.Context) (domain.WeatherInfo, error) {
	if raw, err := c.client.Get(ctx, currentKey).Bytes(); err == nil {
		var cached domain.WeatherInfo
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
	}

	out, err := c.inner.Current(ctx)
	if err != nil {
		return domain.WeatherInfo{}, err
	}

	if raw, err := json.Marshal(out); err == nil {
		_ = c.client.Set(ctx, currentKey, raw, c.currentTTL).Err()
	}
	return out, nil
}
