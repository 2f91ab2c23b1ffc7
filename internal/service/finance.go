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

// DefaultMAWindows are the moving-average windows charted when the request
// names none.
var DefaultMAWindows = []int{7, 20}

// FinanceService serves price series and their derived analysis using the
// cache-aside pattern with a single upstream call on miss.
type FinanceService struct {
	client client.FinanceClient
	cache  cache.Cache
	ttl    time.Duration
}

// NewFinanceService creates a FinanceService. ttl is the freshness window for
// cached series.
func NewFinanceService(financeClient client.FinanceClient, store cache.Cache, ttl time.Duration) *FinanceService {
	return &FinanceService{
		client: financeClient,
		cache:  store,
		ttl:    ttl,
	}
}

// Mode reports whether the underlying client is live or demo.
func (s *FinanceService) Mode() client.Mode {
	return s.client.Mode()
}

// History returns the price series for a symbol, from cache when a fresh
// entry exists, otherwise via one provider call. interval is "daily" or an
// intraday step; outputSize is "compact" or "full".
func (s *FinanceService) History(ctx context.Context, symbol, interval, outputSize string) (models.PriceSeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if interval == "" {
		interval = client.IntervalDaily
	}
	if outputSize == "" {
		outputSize = client.OutputCompact
	}

	key := cache.Key("prices", normalizeIdentifier(symbol), interval, outputSize)
	start := time.Now()
	logger := loggerFromContext(ctx)

	series, hit, err := cache.GetOrFetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.PriceSeries, error) {
		raw, err := s.client.PriceHistory(ctx, symbol, interval, outputSize)
		if err != nil {
			return models.PriceSeries{}, fmt.Errorf("fetch prices for %s: %w", symbol, err)
		}
		series, err := transform.NormalizePrices(raw, symbol, interval)
		if err != nil {
			return models.PriceSeries{}, err
		}
		series.Demo = s.client.Mode() == client.ModeDemo
		return series, nil
	})
	if err != nil {
		return models.PriceSeries{}, err
	}

	if hit {
		observability.CacheHitsTotal.WithLabelValues("prices").Inc()
	}
	if logger != nil {
		logger.Debug("prices served",
			zap.String("symbol", symbol),
			zap.String("interval", interval),
			zap.Int("bars", series.Len()),
			zap.Bool("cached", hit),
			zap.Duration("duration", time.Since(start)))
	}
	return series, nil
}

// Analysis returns the price series together with its moving averages,
// returns and summary statistics. windows defaults to DefaultMAWindows.
func (s *FinanceService) Analysis(ctx context.Context, symbol, interval, outputSize string, windows []int) (models.SeriesAnalysis, error) {
	series, err := s.History(ctx, symbol, interval, outputSize)
	if err != nil {
		return models.SeriesAnalysis{}, err
	}

	if len(windows) == 0 {
		windows = DefaultMAWindows
	}
	averages := make([]models.DerivedSeries, 0, len(windows))
	for _, window := range windows {
		averages = append(averages, transform.MovingAverage(series, window))
	}

	return models.SeriesAnalysis{
		Series:         series,
		MovingAverages: averages,
		Returns:        transform.Returns(series),
		Summary:        transform.Summarize(series),
	}, nil
}
