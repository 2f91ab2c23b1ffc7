package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// PriceBar is one OHLCV bar for a single trading period.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is an ordered sequence of bars for one symbol, ascending by
// date with no duplicate dates.
type PriceSeries struct {
	Symbol    string     `json:"symbol"`
	Interval  string     `json:"interval"` // "daily" or an intraday step such as "60min"
	Bars      []PriceBar `json:"bars"`
	FetchedAt time.Time  `json:"fetchedAt"`
	Demo      bool       `json:"demo,omitempty"`
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int { return len(s.Bars) }

// DerivedPoint is one value of a series computed from a trailing window of
// closes. Value is null for indexes before the window is full.
type DerivedPoint struct {
	Date  time.Time  `json:"date"`
	Value null.Float `json:"value"`
}

// DerivedSeries is aligned 1:1 by date with the PriceSeries it was computed
// from. The first window-1 points carry a null value.
type DerivedSeries struct {
	Window int            `json:"window"`
	Points []DerivedPoint `json:"points"`
}

// ReturnPoint is the day-over-day close percent change at a date. The first
// bar of a series has no prior close, so its value is null.
type ReturnPoint struct {
	Date  time.Time  `json:"date"`
	Value null.Float `json:"value"` // percent
}

// ReturnSeries holds per-period percent returns aligned with a PriceSeries.
type ReturnSeries struct {
	Points []ReturnPoint `json:"points"`
}

// SeriesSummary holds the headline statistics of a price series, matching the
// stats panel of the dashboard.
type SeriesSummary struct {
	Bars          int     `json:"bars"`
	MeanReturnPct float64 `json:"meanReturnPct"`
	VolatilityPct float64 `json:"volatilityPct"` // standard deviation of returns
	MaxReturnPct  float64 `json:"maxReturnPct"`
	MinReturnPct  float64 `json:"minReturnPct"`
	MaxHigh       float64 `json:"maxHigh"`
	MinLow        float64 `json:"minLow"`
	LatestClose   float64 `json:"latestClose"`
}

// SeriesAnalysis bundles a price series with its derived data for the charts
// tab: one moving average per requested window, the return series, and the
// summary statistics.
type SeriesAnalysis struct {
	Series         PriceSeries     `json:"series"`
	MovingAverages []DerivedSeries `json:"movingAverages"`
	Returns        ReturnSeries    `json:"returns"`
	Summary        SeriesSummary   `json:"summary"`
}
