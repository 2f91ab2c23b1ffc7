package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/observability"
)

// Alpha Vantage function names selected by the requested interval.
const (
	functionDaily    = "TIME_SERIES_DAILY"
	functionIntraday = "TIME_SERIES_INTRADAY"
)

// IntervalDaily requests one bar per trading day. Any other interval value
// ("1min".."60min") selects the intraday endpoint.
const IntervalDaily = "daily"

// Output sizes accepted by the provider.
const (
	OutputCompact = "compact" // latest ~100 bars
	OutputFull    = "full"
)

// FinanceClient fetches the raw time-series payload for a ticker symbol.
// Implementations make at most one outbound HTTP call per invocation.
type FinanceClient interface {
	PriceHistory(ctx context.Context, symbol, interval, outputSize string) ([]byte, error)
	Mode() Mode
}

// AlphaVantageClient calls the Alpha Vantage query endpoint. When constructed
// without an API key it runs in demo mode and serves the embedded sample
// payload.
type AlphaVantageClient struct {
	apiKey  string
	apiURL  string
	timeout time.Duration
	client  *http.Client
}

// NewAlphaVantageClient creates a finance client. An empty apiKey selects
// demo mode rather than failing.
func NewAlphaVantageClient(apiKey, apiURL string, timeout time.Duration) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:  apiKey,
		apiURL:  apiURL,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Mode reports live or demo depending on whether an API key is configured.
func (c *AlphaVantageClient) Mode() Mode {
	if c.apiKey == "" {
		return ModeDemo
	}
	return ModeLive
}

// PriceHistory performs a single GET against the provider and returns the raw
// JSON body. Alpha Vantage reports most failures in-band with HTTP 200, so
// the body is inspected for its error envelope before being returned.
func (c *AlphaVantageClient) PriceHistory(ctx context.Context, symbol, interval, outputSize string) ([]byte, error) {
	if c.Mode() == ModeDemo {
		observability.FinanceAPICallsTotal.WithLabelValues("demo").Inc()
		return DemoPricesPayload(), nil
	}

	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, symbol, interval, outputSize)
	if err != nil {
		observability.FinanceAPICallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("build request: %w", err)
	}

	corrID := extractCorrelationID(ctx)
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.FinanceAPICallsTotal.WithLabelValues("error").Inc()
		observability.FinanceAPIDuration.WithLabelValues("error").Observe(duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: request timeout: %v", ErrUpstream, err)
		}
		return nil, fmt.Errorf("%w: http request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)

	if resp.StatusCode == http.StatusTooManyRequests {
		observability.FinanceAPICallsTotal.WithLabelValues("rate_limited").Inc()
		observability.FinanceAPIDuration.WithLabelValues("rate_limited").Observe(duration)
		return nil, fmt.Errorf("%w: HTTP 429", ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.FinanceAPICallsTotal.WithLabelValues(status).Inc()
		observability.FinanceAPIDuration.WithLabelValues(status).Observe(duration)
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.FinanceAPICallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: read response body: %v", ErrUpstream, err)
	}

	if err := financePayloadError(body); err != nil {
		observability.FinanceAPICallsTotal.WithLabelValues("error").Inc()
		observability.FinanceAPIDuration.WithLabelValues("error").Observe(duration)
		return nil, err
	}

	observability.FinanceAPICallsTotal.WithLabelValues(status).Inc()
	observability.FinanceAPIDuration.WithLabelValues(status).Observe(duration)
	return body, nil
}

func (c *AlphaVantageClient) buildRequest(ctx context.Context, symbol, interval, outputSize string) (*http.Request, error) {
	baseURL, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	if interval == "" || interval == IntervalDaily {
		params.Set("function", functionDaily)
	} else {
		params.Set("function", functionIntraday)
		params.Set("interval", interval)
	}
	params.Set("symbol", symbol)
	if outputSize == "" {
		outputSize = OutputCompact
	}
	params.Set("outputsize", outputSize)
	params.Set("apikey", c.apiKey)
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

// financePayloadError detects the Alpha Vantage in-band error envelope.
// The provider answers HTTP 200 with {"Error Message": ...} for an unknown
// symbol and {"Note": ...} or {"Information": ...} when throttling.
func financePayloadError(body []byte) error {
	var envelope struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
		Information  string `json:"Information"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Not a JSON object at all; let the transform stage report the schema.
		return nil
	}
	if envelope.ErrorMessage != "" {
		return fmt.Errorf("%w: unknown symbol", ErrNotFound)
	}
	if envelope.Note != "" || envelope.Information != "" {
		return fmt.Errorf("%w: provider throttle notice", ErrRateLimited)
	}
	return nil
}
