package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/cache"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/client"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/config"
	httphandler "github.com/hammadAsher100/Weather-Finance-dashboard/internal/http"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/observability"
	"github.com/hammadAsher100/Weather-Finance-dashboard/internal/service"
	"github.com/hammadAsher100/Weather-Finance-dashboard/web"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	weatherClient := client.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	financeClient := client.NewAlphaVantageClient(cfg.FinanceAPIKey, cfg.FinanceAPIURL, cfg.FinanceAPITimeout)
	if weatherClient.Mode() == client.ModeDemo {
		logger.Warn("no weather API key configured; serving demo weather data")
	}
	if financeClient.Mode() == client.ModeDemo {
		logger.Warn("no finance API key configured; serving demo price data")
	}

	var store cache.Cache
	var cachePing func() error
	var memcached *cache.Memcached
	switch cfg.CacheBackend {
	case "memcached":
		mc, err := cache.NewMemcached(cfg.MemcachedAddrs, cfg.MemcachedTimeout, cfg.MemcachedMaxIdleConns)
		if err != nil {
			logger.Fatal("memcached cache", zap.Error(err))
		}
		memcached = mc
		store = mc
		cachePing = mc.Ping
		logger.Info("cache backend: memcached", zap.String("addrs", cfg.MemcachedAddrs))
	default:
		store = cache.NewMemory()
		logger.Info("cache backend: in_memory")
	}

	weatherService := service.NewWeatherService(weatherClient, store, cfg.WeatherCacheTTL)
	financeService := service.NewFinanceService(financeClient, store, cfg.PricesCacheTTL)
	handler := httphandler.NewHandler(weatherService, financeService, logger, cachePing)

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())

	dataRouter := router.PathPrefix("/").Subrouter()
	dataRouter.Use(httphandler.RateLimitMiddleware(limiter))
	dataRouter.Use(httphandler.TimeoutMiddleware(cfg.RequestTimeout))
	dataRouter.HandleFunc("/weather/{location}", handler.GetWeather).Methods("GET")
	dataRouter.HandleFunc("/prices/{symbol}", handler.GetPrices).Methods("GET")
	dataRouter.HandleFunc("/prices/{symbol}/analysis", handler.GetPriceAnalysis).Methods("GET")

	router.PathPrefix("/").Handler(web.Handler()).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if memcached != nil {
		if err := memcached.Close(); err != nil {
			logger.Error("memcached close", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
}
