package transform

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/models"
)

// Alpha Vantage prefixes each OHLCV field with an ordinal.
const (
	fieldOpen   = "1. open"
	fieldHigh   = "2. high"
	fieldLow    = "3. low"
	fieldClose  = "4. close"
	fieldVolume = "5. volume"
)

// Date layouts seen in time-series keys: daily uses a bare date, intraday a
// full timestamp.
var priceDateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// NormalizePrices flattens a raw Alpha Vantage time-series body into a
// PriceSeries ordered by date ascending. The series key varies with the
// requested function ("Time Series (Daily)", "Time Series (60min)", ...), so
// it is located by prefix. interval is recorded on the series as-is.
func NormalizePrices(raw []byte, symbol, interval string) (models.PriceSeries, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return models.PriceSeries{}, badField("prices", "(body)", "not valid JSON")
	}

	var seriesRaw json.RawMessage
	for key, value := range envelope {
		if strings.Contains(key, "Time Series") {
			seriesRaw = value
			break
		}
	}
	if seriesRaw == nil {
		return models.PriceSeries{}, missingField("prices", "Time Series")
	}

	var entries map[string]map[string]string
	if err := json.Unmarshal(seriesRaw, &entries); err != nil {
		return models.PriceSeries{}, badField("prices", "Time Series", "unexpected shape")
	}

	bars := make([]models.PriceBar, 0, len(entries))
	for dateStr, fields := range entries {
		date, err := parsePriceDate(dateStr)
		if err != nil {
			return models.PriceSeries{}, badField("prices", "Time Series", "unparseable date "+strconv.Quote(dateStr))
		}
		bar := models.PriceBar{Date: date}
		if bar.Open, err = requireFloat(fields, fieldOpen); err != nil {
			return models.PriceSeries{}, err
		}
		if bar.High, err = requireFloat(fields, fieldHigh); err != nil {
			return models.PriceSeries{}, err
		}
		if bar.Low, err = requireFloat(fields, fieldLow); err != nil {
			return models.PriceSeries{}, err
		}
		if bar.Close, err = requireFloat(fields, fieldClose); err != nil {
			return models.PriceSeries{}, err
		}
		volume, err := requireFloat(fields, fieldVolume)
		if err != nil {
			return models.PriceSeries{}, err
		}
		bar.Volume = int64(volume)
		if bar.Volume < 0 {
			bar.Volume = 0
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	if interval == "" {
		interval = "daily"
	}
	return models.PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func parsePriceDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range priceDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func requireFloat(fields map[string]string, name string) (float64, error) {
	s, ok := fields[name]
	if !ok {
		return 0, missingField("prices", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, badField("prices", name, "not a number")
	}
	return v, nil
}
