// Package service orchestrates the request-scoped pipeline: Extract (client
// call) -> Transform (normalize) -> hand the typed record to the caller, with
// a cache-aside freshness window in front of the extract stage.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/cache"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/client"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/models"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/observability"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/transform"
)

// WeatherService serves current-weather readings using the cache-aside
// pattern with a single upstream call on miss.
type WeatherService struct {
	client client.WeatherClient
	cache  cache.Cache
	ttl    time.Duration
}

// NewWeatherService creates a WeatherService. ttl is the freshness window for
// cached readings.
func NewWeatherService(weatherClient client.WeatherClient, store cache.Cache, ttl time.Duration) *WeatherService {
	return &WeatherService{
		client: weatherClient,
		cache:  store,
		ttl:    ttl,
	}
}

// Mode reports whether the underlying client is live or demo.
func (s *WeatherService) Mode() client.Mode {
	return s.client.Mode()
}

// Get returns the weather reading for a location, from cache when a fresh
// entry exists, otherwise via one provider call.
func (s *WeatherService) Get(ctx context.Context, location string) (models.WeatherReading, error) {
	normalized := normalizeIdentifier(location)
	key := cache.Key("weather", normalized)
	start := time.Now()
	logger := loggerFromContext(ctx)

	reading, hit, err := cache.GetOrFetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.WeatherReading, error) {
		raw, err := s.client.CurrentWeather(ctx, location)
		if err != nil {
			return models.WeatherReading{}, fmt.Errorf("fetch weather for %s: %w", normalized, err)
		}
		reading, err := transform.NormalizeWeather(raw, location)
		if err != nil {
			return models.WeatherReading{}, err
		}
		reading.Demo = s.client.Mode() == client.ModeDemo
		return reading, nil
	})
	if err != nil {
		return models.WeatherReading{}, err
	}

	if hit {
		observability.CacheHitsTotal.WithLabelValues("weather").Inc()
	}
	if logger != nil {
		logger.Debug("weather served",
			zap.String("location", normalized),
			zap.Bool("cached", hit),
			zap.Duration("duration", time.Since(start)))
	}
	return reading, nil
}

// loggerFromContext extracts a zap.Logger from request context if present.
// Returns nil if logger is not found or context is invalid.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// normalizeIdentifier lowercases and trims an identifier so cache keys are
// consistent regardless of input format.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
