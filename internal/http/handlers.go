package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/client"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/observability"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/service"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/transform"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/validation"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	weather *service.WeatherService
	finance *service.FinanceService
	logger  *zap.Logger
	// CachePing, when set, is called by the health handler to check cache
	// reachability. Used when the backend is memcached.
	cachePing func() error
	startTime time.Time
}

// NewHandler returns a new Handler. cachePing may be nil.
func NewHandler(weather *service.WeatherService, finance *service.FinanceService, logger *zap.Logger, cachePing func() error) *Handler {
	return &Handler{
		weather:   weather,
		finance:   finance,
		logger:    logger,
		cachePing: cachePing,
		startTime: time.Now(),
	}
}

// GetWeather handles GET /weather/{location}.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	location, err := validation.ValidateLocation(mux.Vars(r)["location"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATION", err.Error())
		return
	}

	result, err := h.weather.Get(r.Context(), location)
	if err != nil {
		writeSourceError(w, r, "weather", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPrices handles GET /prices/{symbol}.
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	symbol, interval, outputSize, ok := h.priceParams(w, r)
	if !ok {
		return
	}

	result, err := h.finance.History(r.Context(), symbol, interval, outputSize)
	if err != nil {
		writeSourceError(w, r, "prices", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPriceAnalysis handles GET /prices/{symbol}/analysis.
func (h *Handler) GetPriceAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol, interval, outputSize, ok := h.priceParams(w, r)
	if !ok {
		return
	}

	windows, err := parseWindows(r.URL.Query().Get("windows"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_WINDOWS", err.Error())
		return
	}

	result, err := h.finance.Analysis(r.Context(), symbol, interval, outputSize, windows)
	if err != nil {
		writeSourceError(w, r, "prices", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// priceParams validates the shared symbol/interval/range inputs of the price
// endpoints, writing the 400 response itself on failure.
func (h *Handler) priceParams(w http.ResponseWriter, r *http.Request) (symbol, interval, outputSize string, ok bool) {
	symbol, err := validation.ValidateSymbol(mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_SYMBOL", err.Error())
		return "", "", "", false
	}
	interval, err = validation.ValidateInterval(r.URL.Query().Get("interval"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_INTERVAL", err.Error())
		return "", "", "", false
	}
	outputSize, err = validation.ValidateRange(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_RANGE", err.Error())
		return "", "", "", false
	}
	return symbol, interval, outputSize, true
}

// parseWindows parses a comma-separated list of moving-average windows.
// Empty means "use the defaults".
func parseWindows(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var windows []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 500 {
			return nil, errors.New("windows must be a comma-separated list of integers in [1,500]")
		}
		windows = append(windows, n)
	}
	return windows, nil
}

// GetHealth handles GET /health. The service itself has no failure modes
// beyond an unreachable shared cache; data sources report live or demo.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK

	checks := map[string]string{
		"weatherSource": string(h.weather.Mode()),
		"financeSource": string(h.finance.Mode()),
	}
	if h.cachePing != nil {
		if h.cachePing() == nil {
			checks["cache"] = "healthy"
		} else {
			checks["cache"] = "unhealthy"
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}
	}

	resp := map[string]interface{}{
		"status":    status,
		"service":   "weather-finance-dashboard",
		"version":   "dev",
		"uptime":    time.Since(h.startTime).Truncate(time.Second).String(),
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, statusCode, resp)
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code,
// message, and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value("correlation_id"); v != nil {
		corrID = v.(string)
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": corrID,
		},
	})
}

// writeSourceError converts a pipeline error into the user-visible envelope.
// Every error is caught here; none are retried, none are fatal to the process.
func writeSourceError(w http.ResponseWriter, r *http.Request, source string, err error) {
	observability.RequestErrorsTotal.WithLabelValues(source, string(client.CategorizeError(err))).Inc()

	var schemaErr *transform.SchemaError
	switch {
	case errors.Is(err, client.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", source+" identifier not recognized by provider")
	case errors.Is(err, client.ErrRateLimited):
		writeError(w, r, http.StatusServiceUnavailable, "PROVIDER_RATE_LIMITED", "provider is throttling requests; try again shortly")
	case errors.As(err, &schemaErr):
		writeError(w, r, http.StatusBadGateway, "BAD_PROVIDER_RESPONSE", "provider response did not match the expected schema")
	default:
		writeError(w, r, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "unable to fetch "+source+" data")
	}

	if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
		logger.Debug("source error", zap.String("source", source), zap.Error(err))
	}
}
