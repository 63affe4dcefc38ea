package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	envVars := []string{
		"OPTIONSCOPE_API_PORT", "OPTIONSCOPE_PROVIDER_NAME",
		"OPTIONSCOPE_OPTIONS_DEFAULT_TICKER",
	}
	for _, e := range envVars {
		os.Unsetenv(e)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// API defaults
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host: got %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port: got %d, want 8080", cfg.API.Port)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("API.CORSOrigins: got %v", cfg.API.CORSOrigins)
	}

	// Provider defaults
	if cfg.Provider.Name != "yfinance" {
		t.Errorf("Provider.Name: got %q, want %q", cfg.Provider.Name, "yfinance")
	}
	if cfg.Provider.CacheTTL != 300 {
		t.Errorf("Provider.CacheTTL: got %d, want 300", cfg.Provider.CacheTTL)
	}
	if cfg.Provider.RateLimit != 5 {
		t.Errorf("Provider.RateLimit: got %d, want 5", cfg.Provider.RateLimit)
	}

	// Options defaults
	if cfg.Options.DefaultTicker != "AAPL" {
		t.Errorf("Options.DefaultTicker: got %q, want %q", cfg.Options.DefaultTicker, "AAPL")
	}
	if cfg.Options.ScreenerMinVolume != 100 {
		t.Errorf("Options.ScreenerMinVolume: got %d, want 100", cfg.Options.ScreenerMinVolume)
	}
	if cfg.Options.ScreenerMinOpenInt != 50 {
		t.Errorf("Options.ScreenerMinOpenInt: got %d, want 50", cfg.Options.ScreenerMinOpenInt)
	}
	if cfg.Options.ScreenerMaxSpreadPct != 10.0 {
		t.Errorf("Options.ScreenerMaxSpreadPct: got %f, want 10.0", cfg.Options.ScreenerMaxSpreadPct)
	}
	if cfg.Options.ScreenerOptionType != "both" {
		t.Errorf("Options.ScreenerOptionType: got %q, want %q", cfg.Options.ScreenerOptionType, "both")
	}
	if cfg.Options.HistoricalBars != 30 {
		t.Errorf("Options.HistoricalBars: got %d, want 30", cfg.Options.HistoricalBars)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "text")
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
api:
  port: 9090
  cors_origins:
    - "https://screener.example.com"
provider:
  name: "yfinance"
  cache_ttl: 60
  rate_limit: 2
options:
  default_ticker: "SPY"
  screener_min_volume: 250
logging:
  level: "debug"
  format: "json"
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d, want 9090", cfg.API.Port)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "https://screener.example.com" {
		t.Errorf("API.CORSOrigins: got %v", cfg.API.CORSOrigins)
	}
	if cfg.Provider.CacheTTL != 60 {
		t.Errorf("Provider.CacheTTL: got %d, want 60", cfg.Provider.CacheTTL)
	}
	if cfg.Provider.RateLimit != 2 {
		t.Errorf("Provider.RateLimit: got %d, want 2", cfg.Provider.RateLimit)
	}
	if cfg.Options.DefaultTicker != "SPY" {
		t.Errorf("Options.DefaultTicker: got %q, want %q", cfg.Options.DefaultTicker, "SPY")
	}
	if cfg.Options.ScreenerMinVolume != 250 {
		t.Errorf("Options.ScreenerMinVolume: got %d, want 250", cfg.Options.ScreenerMinVolume)
	}
	// Values absent from the file keep their defaults.
	if cfg.Options.ScreenerMinOpenInt != 50 {
		t.Errorf("Options.ScreenerMinOpenInt: got %d, want default 50", cfg.Options.ScreenerMinOpenInt)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

// ── homeDir ──

func TestHomeDirReturnsNonEmpty(t *testing.T) {
	if homeDir() == "" {
		t.Error("homeDir() should not return empty string")
	}
}
