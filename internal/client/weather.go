package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/observability"
)

// WeatherClient fetches the raw current-weather payload for a location.
// Implementations make at most one outbound HTTP call per invocation.
type WeatherClient interface {
	CurrentWeather(ctx context.Context, location string) ([]byte, error)
	Mode() Mode
}

// OpenWeatherClient calls the OpenWeatherMap current-weather endpoint. When
// constructed without an API key it runs in demo mode and serves the embedded
// sample payload.
type OpenWeatherClient struct {
	apiKey  string
	apiURL  string
	timeout time.Duration
	client  *http.Client
}

// NewOpenWeatherClient creates a weather client. An empty apiKey selects demo
// mode rather than failing; a missing key degrades the data source, it does
// not break the service.
func NewOpenWeatherClient(apiKey, apiURL string, timeout time.Duration) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:  apiKey,
		apiURL:  apiURL,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Mode reports live or demo depending on whether an API key is configured.
func (c *OpenWeatherClient) Mode() Mode {
	if c.apiKey == "" {
		return ModeDemo
	}
	return ModeLive
}

// CurrentWeather performs a single GET against the provider and returns the
// raw JSON body. No retries; any failure surfaces to the caller.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, location string) ([]byte, error) {
	if c.Mode() == ModeDemo {
		observability.WeatherAPICallsTotal.WithLabelValues("demo").Inc()
		return DemoWeatherPayload(), nil
	}

	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, location)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("build request: %w", err)
	}

	corrID := extractCorrelationID(ctx)
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIDuration.WithLabelValues("error").Observe(duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: request timeout: %v", ErrUpstream, err)
		}
		return nil, fmt.Errorf("%w: http request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(status).Observe(duration)

	if err := weatherStatusError(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrUpstream, err)
	}
	return body, nil
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, location string) (*http.Request, error) {
	baseURL, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	// Temperatures come back in Kelvin; the transform stage converts.
	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

// weatherStatusError maps an OpenWeatherMap HTTP status to the error taxonomy.
func weatherStatusError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: provider rejected key", ErrInvalidAPIKey)
	case http.StatusNotFound:
		return fmt.Errorf("%w: unknown location", ErrNotFound)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP 429", ErrRateLimited)
	}
	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d", ErrUpstream, statusCode)
	}
	return nil
}

func extractCorrelationID(ctx context.Context) string {
	if corrIDVal := ctx.Value("correlation_id"); corrIDVal != nil {
		if corrID, ok := corrIDVal.(string); ok {
			return corrID
		}
	}
	return ""
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
