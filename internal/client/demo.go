package client

import _ "embed"

// Fixed sample payloads served when a data source has no API key configured.
// They are real provider response shapes so the normal transform path is
// exercised end to end in demo mode.

//go:embed demo_weather.json
var demoWeather []byte

//go:embed demo_prices.json
var demoPrices []byte

// DemoWeatherPayload returns the embedded OpenWeatherMap sample response.
func DemoWeatherPayload() []byte {
	out := make([]byte, len(demoWeather))
	copy(out, demoWeather)
	return out
}

// DemoPricesPayload returns the embedded Alpha Vantage sample response.
func DemoPricesPayload() []byte {
	out := make([]byte, len(demoPrices))
	copy(out, demoPrices)
	return out
}
