package transform

import (
	"math"

	"github.com/guregu/null/v5"
	"gonum.org/v1/gonum/stat"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/models"
)

// MovingAverage computes the trailing simple moving average of closes. The
// result is aligned 1:1 by date with the input: the first window-1 points are
// null, point i (i >= window-1) is the mean of closes [i-window+1, i].
func MovingAverage(series models.PriceSeries, window int) models.DerivedSeries {
	if window < 1 {
		window = 1
	}

	closes := make([]float64, len(series.Bars))
	for i, bar := range series.Bars {
		closes[i] = bar.Close
	}

	points := make([]models.DerivedPoint, len(series.Bars))
	for i, bar := range series.Bars {
		points[i].Date = bar.Date
		if i >= window-1 {
			points[i].Value = null.FloatFrom(stat.Mean(closes[i-window+1:i+1], nil))
		}
	}
	return models.DerivedSeries{Window: window, Points: points}
}

// Returns computes the period-over-period close percent change. The first
// point has no prior close and is null.
func Returns(series models.PriceSeries) models.ReturnSeries {
	points := make([]models.ReturnPoint, len(series.Bars))
	for i, bar := range series.Bars {
		points[i].Date = bar.Date
		if i == 0 {
			continue
		}
		prev := series.Bars[i-1].Close
		if prev == 0 {
			continue
		}
		points[i].Value = null.FloatFrom((bar.Close - prev) / prev * 100)
	}
	return models.ReturnSeries{Points: points}
}

// Summarize computes the headline statistics shown next to the charts: mean
// and standard deviation of returns, best and worst return, and the price
// extremes of the series.
func Summarize(series models.PriceSeries) models.SeriesSummary {
	summary := models.SeriesSummary{Bars: len(series.Bars)}
	if len(series.Bars) == 0 {
		return summary
	}

	summary.LatestClose = series.Bars[len(series.Bars)-1].Close
	summary.MaxHigh = series.Bars[0].High
	summary.MinLow = series.Bars[0].Low
	for _, bar := range series.Bars {
		if bar.High > summary.MaxHigh {
			summary.MaxHigh = bar.High
		}
		if bar.Low < summary.MinLow {
			summary.MinLow = bar.Low
		}
	}

	var returns []float64
	for _, p := range Returns(series).Points {
		if p.Value.Valid {
			returns = append(returns, p.Value.Float64)
		}
	}
	if len(returns) == 0 {
		return summary
	}

	summary.MeanReturnPct = stat.Mean(returns, nil)
	summary.MaxReturnPct = returns[0]
	summary.MinReturnPct = returns[0]
	for _, r := range returns {
		if r > summary.MaxReturnPct {
			summary.MaxReturnPct = r
		}
		if r < summary.MinReturnPct {
			summary.MinReturnPct = r
		}
	}
	if len(returns) > 1 {
		if sd := stat.StdDev(returns, nil); !math.IsNaN(sd) {
			summary.VolatilityPct = sd
		}
	}
	return summary
}
