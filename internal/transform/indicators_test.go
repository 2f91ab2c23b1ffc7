package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/models"
)

func seriesFromCloses(closes ...float64) models.PriceSeries {
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = models.PriceBar{
			Date:  base.AddDate(0, 0, i),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return models.PriceSeries{Symbol: "AAPL", Interval: "daily", Bars: bars}
}

func TestMovingAverage_FiveOverTenBars(t *testing.T) {
	series := seriesFromCloses(10, 20, 30, 40, 50, 60, 70, 80, 90, 100)
	ma := MovingAverage(series, 5)

	require.Len(t, ma.Points, 10)
	assert.Equal(t, 5, ma.Window)

	defined := 0
	for i, p := range ma.Points {
		assert.Equal(t, series.Bars[i].Date, p.Date)
		if i < 4 {
			assert.False(t, p.Value.Valid, "index %d should be undefined", i)
			continue
		}
		defined++
	}
	assert.Equal(t, 6, defined)

	// Manually computed 5-day averages of 10..100.
	want := []float64{30, 40, 50, 60, 70, 80}
	for i := 4; i < 10; i++ {
		assert.InDelta(t, want[i-4], ma.Points[i].Value.Float64, 1e-9)
	}
}

func TestMovingAverage_WindowOne(t *testing.T) {
	series := seriesFromCloses(5, 6, 7)
	ma := MovingAverage(series, 1)
	require.Len(t, ma.Points, 3)
	for i, p := range ma.Points {
		require.True(t, p.Value.Valid)
		assert.Equal(t, series.Bars[i].Close, p.Value.Float64)
	}
}

func TestMovingAverage_WindowLargerThanSeries(t *testing.T) {
	series := seriesFromCloses(5, 6, 7)
	ma := MovingAverage(series, 10)
	require.Len(t, ma.Points, 3)
	for _, p := range ma.Points {
		assert.False(t, p.Value.Valid)
	}
}

func TestMovingAverage_EmptySeries(t *testing.T) {
	ma := MovingAverage(models.PriceSeries{}, 5)
	assert.Empty(t, ma.Points)
}

func TestReturns(t *testing.T) {
	series := seriesFromCloses(100, 110, 99)
	returns := Returns(series)

	require.Len(t, returns.Points, 3)
	assert.False(t, returns.Points[0].Value.Valid)
	assert.InDelta(t, 10.0, returns.Points[1].Value.Float64, 1e-9)
	assert.InDelta(t, -10.0, returns.Points[2].Value.Float64, 1e-9)
}

func TestSummarize(t *testing.T) {
	series := seriesFromCloses(100, 110, 99)
	summary := Summarize(series)

	assert.Equal(t, 3, summary.Bars)
	assert.Equal(t, 99.0, summary.LatestClose)
	assert.Equal(t, 111.0, summary.MaxHigh)
	assert.Equal(t, 98.0, summary.MinLow)
	assert.InDelta(t, 0.0, summary.MeanReturnPct, 1e-9)
	assert.InDelta(t, 10.0, summary.MaxReturnPct, 1e-9)
	assert.InDelta(t, -10.0, summary.MinReturnPct, 1e-9)
	// Sample standard deviation of {10, -10}.
	assert.InDelta(t, 14.1421356, summary.VolatilityPct, 1e-6)
}

func TestSummarize_DegenerateSeries(t *testing.T) {
	assert.Equal(t, models.SeriesSummary{}, Summarize(models.PriceSeries{}))

	one := Summarize(seriesFromCloses(42))
	assert.Equal(t, 1, one.Bars)
	assert.Equal(t, 42.0, one.LatestClose)
	assert.Zero(t, one.VolatilityPct)
}
