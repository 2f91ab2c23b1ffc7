package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir replicates testing.T.Chdir (Go 1.24+) for older toolchains: it
// changes into dir and restores the original working directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("WEATHER_API_KEY", "")
	t.Setenv("FINANCE_API_KEY", "")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("MEMCACHED_ADDRS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.WeatherAPIKey != "" || cfg.FinanceAPIKey != "" {
		t.Error("API keys should be empty when unset (demo mode)")
	}
	if cfg.WeatherAPIURL != "https://api.openweathermap.org/data/2.5/weather" {
		t.Errorf("WeatherAPIURL = %q", cfg.WeatherAPIURL)
	}
	if cfg.FinanceAPIURL != "https://www.alphavantage.co/query" {
		t.Errorf("FinanceAPIURL = %q", cfg.FinanceAPIURL)
	}
	if cfg.WeatherCacheTTL != 10*time.Minute {
		t.Errorf("WeatherCacheTTL = %v, want 10m", cfg.WeatherCacheTTL)
	}
	if cfg.PricesCacheTTL != 5*time.Minute {
		t.Errorf("PricesCacheTTL = %v, want 5m", cfg.PricesCacheTTL)
	}
	if cfg.CacheBackend != "in_memory" {
		t.Errorf("CacheBackend = %q, want in_memory", cfg.CacheBackend)
	}
	if cfg.RateLimitRPS != 50 || cfg.RateLimitBurst != 100 {
		t.Errorf("rate limit = %d/%d, want 50/100", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.RequestTimeout <= cfg.FinanceAPITimeout {
		t.Errorf("RequestTimeout %v must exceed provider timeout %v", cfg.RequestTimeout, cfg.FinanceAPITimeout)
	}
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
server:
  port: "9090"
weather_api:
  timeout: 3s
finance_api:
  timeout: 4s
request:
  timeout: 2s
cache:
  backend: memcached
  weather_ttl: 1m
  prices_ttl: 30s
  memcached:
    addrs: "cache1:11211,cache2:11211"
reliability:
  rate_limit_rps: 5
  rate_limit_burst: 10
`
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("ENV_NAME", "test")
	t.Setenv("PORT", "")
	t.Setenv("WEATHER_API_KEY", "owm-key")
	t.Setenv("FINANCE_API_KEY", "av-key")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("MEMCACHED_ADDRS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.WeatherAPIKey != "owm-key" {
		t.Errorf("WeatherAPIKey = %q, want owm-key", cfg.WeatherAPIKey)
	}
	if cfg.FinanceAPIKey != "av-key" {
		t.Errorf("FinanceAPIKey = %q, want av-key", cfg.FinanceAPIKey)
	}
	if cfg.WeatherCacheTTL != time.Minute {
		t.Errorf("WeatherCacheTTL = %v, want 1m", cfg.WeatherCacheTTL)
	}
	if cfg.PricesCacheTTL != 30*time.Second {
		t.Errorf("PricesCacheTTL = %v, want 30s", cfg.PricesCacheTTL)
	}
	if cfg.CacheBackend != "memcached" {
		t.Errorf("CacheBackend = %q, want memcached", cfg.CacheBackend)
	}
	if cfg.MemcachedAddrs != "cache1:11211,cache2:11211" {
		t.Errorf("MemcachedAddrs = %q", cfg.MemcachedAddrs)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Errorf("rate limit = %d/%d, want 5/10", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	// 2s request timeout is below the 4s finance timeout; validation widens it.
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s (finance timeout + 1s)", cfg.RequestTimeout)
	}
}

func TestLoad_SecretsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	secrets := "weather_api_key: from-secrets\nfinance_api_key: also-from-secrets\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "secrets.yaml"), []byte(secrets), 0o600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("ENV_NAME", "")
	t.Setenv("WEATHER_API_KEY", "")
	t.Setenv("FINANCE_API_KEY", "env-wins")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("MEMCACHED_ADDRS", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.WeatherAPIKey != "from-secrets" {
		t.Errorf("WeatherAPIKey = %q, want from-secrets", cfg.WeatherAPIKey)
	}
	if cfg.FinanceAPIKey != "env-wins" {
		t.Errorf("FinanceAPIKey = %q, want env-wins (env overrides secrets)", cfg.FinanceAPIKey)
	}
}

func TestLoad_InvalidCacheBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV_NAME", "")
	t.Setenv("CACHE_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want invalid cache backend error")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"", time.Second},
		{"5s", 5 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"bogus", time.Second},
		{"-3s", time.Second},
	}
	for _, tt := range tests {
		if got := parseDuration(tt.input, time.Second); got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
