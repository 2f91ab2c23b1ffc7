package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// OpenWeatherMap API call rate by outcome (success, error, rate_limited, demo).
	WeatherAPICallsTotal *prometheus.CounterVec

	// OpenWeatherMap API latency. Watch for: p95 > 2s (upstream degradation).
	WeatherAPIDuration *prometheus.HistogramVec

	// Alpha Vantage API call rate by outcome. The demo label counts canned responses.
	FinanceAPICallsTotal *prometheus.CounterVec

	// Alpha Vantage API latency.
	FinanceAPIDuration *prometheus.HistogramVec

	// Cache hits per source kind (weather, prices). Misses = source API calls.
	CacheHitsTotal *prometheus.CounterVec

	// Request-boundary errors by source and category (not_found, rate_limited, schema, ...).
	RequestErrorsTotal *prometheus.CounterVec

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of OpenWeatherMap API calls",
		},
		[]string{"status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "OpenWeatherMap API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	FinanceAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeApiCallsTotal",
			Help: "Total number of Alpha Vantage API calls",
		},
		[]string{"status"},
	)
	FinanceAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "financeApiDurationSeconds",
			Help:    "Alpha Vantage API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheHitsTotal",
			Help: "Total number of cache hits by source kind",
		},
		[]string{"kind"},
	)
	RequestErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requestErrorsTotal",
			Help: "Errors surfaced at the request boundary by source and category",
		},
		[]string{"source", "category"},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		WeatherAPICallsTotal, WeatherAPIDuration,
		FinanceAPICallsTotal, FinanceAPIDuration,
		CacheHitsTotal, RequestErrorsTotal,
		RateLimitDeniedTotal,
	)
}

// MetricsHandler returns the /metrics handler backed by the private registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
