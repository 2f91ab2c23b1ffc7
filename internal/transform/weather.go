package transform

import (
	"encoding/json"
	"time"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/models"
)

const kelvinOffset = 273.15

// openWeatherPayload mirrors the nested OpenWeatherMap response. Pointer
// fields distinguish absent from zero so missing fields become SchemaErrors
// instead of silent defaults.
type openWeatherPayload struct {
	Name string `json:"name"`
	Dt   *int64 `json:"dt"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		Pressure  *int     `json:"pressure"`
		Humidity  *int     `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// NormalizeWeather flattens a raw OpenWeatherMap current-weather body into a
// WeatherReading. Temperatures arrive in Kelvin and are converted to Celsius.
// requested is used as the location name when the payload carries none.
func NormalizeWeather(raw []byte, requested string) (models.WeatherReading, error) {
	var payload openWeatherPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.WeatherReading{}, badField("weather", "(body)", "not valid JSON")
	}

	if payload.Main == nil {
		return models.WeatherReading{}, missingField("weather", "main")
	}
	if payload.Main.Temp == nil {
		return models.WeatherReading{}, missingField("weather", "main.temp")
	}
	if payload.Main.Humidity == nil {
		return models.WeatherReading{}, missingField("weather", "main.humidity")
	}
	if payload.Wind == nil || payload.Wind.Speed == nil {
		return models.WeatherReading{}, missingField("weather", "wind.speed")
	}
	if len(payload.Weather) == 0 {
		return models.WeatherReading{}, missingField("weather", "weather")
	}

	location := payload.Name
	if location == "" {
		location = requested
	}

	ts := time.Now().UTC()
	if payload.Dt != nil && *payload.Dt > 0 {
		ts = time.Unix(*payload.Dt, 0).UTC()
	}

	humidity := *payload.Main.Humidity
	if humidity < 0 {
		humidity = 0
	}
	if humidity > 100 {
		humidity = 100
	}

	reading := models.WeatherReading{
		Location:     location,
		Timestamp:    ts,
		TemperatureC: kelvinToCelsius(*payload.Main.Temp),
		HumidityPct:  humidity,
		WindSpeedMps: *payload.Wind.Speed,
		Condition:    mapCondition(payload.Weather[0].Main),
		Description:  payload.Weather[0].Description,
	}
	if payload.Main.FeelsLike != nil {
		reading.FeelsLikeC = kelvinToCelsius(*payload.Main.FeelsLike)
	} else {
		reading.FeelsLikeC = reading.TemperatureC
	}
	if payload.Main.TempMin != nil {
		reading.TempMinC = kelvinToCelsius(*payload.Main.TempMin)
	} else {
		reading.TempMinC = reading.TemperatureC
	}
	if payload.Main.TempMax != nil {
		reading.TempMaxC = kelvinToCelsius(*payload.Main.TempMax)
	} else {
		reading.TempMaxC = reading.TemperatureC
	}
	if payload.Main.Pressure != nil {
		reading.PressureHpa = *payload.Main.Pressure
	}
	return reading, nil
}

func kelvinToCelsius(k float64) float64 {
	return k - kelvinOffset
}

// mapCondition buckets the provider's condition group into the normalized
// enum. Unrecognized groups map to unknown rather than failing.
func mapCondition(main string) models.Condition {
	switch main {
	case "Clear":
		return models.ConditionClear
	case "Clouds":
		return models.ConditionClouds
	case "Rain":
		return models.ConditionRain
	case "Drizzle":
		return models.ConditionDrizzle
	case "Snow":
		return models.ConditionSnow
	case "Thunderstorm":
		return models.ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke":
		return models.ConditionMist
	default:
		return models.ConditionUnknown
	}
}
