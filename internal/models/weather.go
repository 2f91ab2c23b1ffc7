package models

import "time"

// Condition is a normalized weather condition bucket derived from the
// provider's condition list.
type Condition string

const (
	ConditionClear   Condition = "clear"
	ConditionClouds  Condition = "clouds"
	ConditionRain    Condition = "rain"
	ConditionDrizzle Condition = "drizzle"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
	ConditionUnknown Condition = "unknown"
)

// WeatherReading is one flattened current-weather observation for a location.
// Produced fresh per request and never mutated after creation.
type WeatherReading struct {
	Location     string    `json:"location"`
	Timestamp    time.Time `json:"timestamp"`
	TemperatureC float64   `json:"temperatureC"`
	FeelsLikeC   float64   `json:"feelsLikeC"`
	TempMinC     float64   `json:"tempMinC"`
	TempMaxC     float64   `json:"tempMaxC"`
	PressureHpa  int       `json:"pressureHpa"`
	HumidityPct  int       `json:"humidityPct"`
	WindSpeedMps float64   `json:"windSpeedMps"`
	Condition    Condition `json:"condition"`
	Description  string    `json:"description,omitempty"`
	Demo         bool      `json:"demo,omitempty"` // Served from the embedded sample payload (no API key configured)
}
