// Package config handles configuration loading for optionscope.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Options  OptionsConfig  `mapstructure:"options"  yaml:"options"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// ProviderConfig selects and tunes the market-data provider.
type ProviderConfig struct {
	Name      string `mapstructure:"name"       yaml:"name"`       // "yfinance"
	CacheTTL  int    `mapstructure:"cache_ttl"  yaml:"cache_ttl"`  // seconds
	RateLimit int    `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second
}

// OptionsConfig holds the default filters applied when a request omits them.
type OptionsConfig struct {
	DefaultTicker          string  `mapstructure:"default_ticker"            yaml:"default_ticker"`
	ScreenerMinVolume      int64   `mapstructure:"screener_min_volume"       yaml:"screener_min_volume"`
	ScreenerMinOpenInt     int64   `mapstructure:"screener_min_open_interest" yaml:"screener_min_open_interest"`
	ScreenerMaxSpreadPct   float64 `mapstructure:"screener_max_spread_pct"   yaml:"screener_max_spread_pct"`
	ScreenerOptionType     string  `mapstructure:"screener_option_type"      yaml:"screener_option_type"` // "calls", "puts", "both"
	HistoricalBars         int     `mapstructure:"historical_bars"           yaml:"historical_bars"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.optionscope/config.yaml (home directory)
//  3. /etc/optionscope/config.yaml (system)
//
// Environment variables override config file values.
// Format: OPTIONSCOPE_<SECTION>_<KEY>, e.g., OPTIONSCOPE_API_PORT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".optionscope"))
	v.AddConfigPath("/etc/optionscope")

	v.SetEnvPrefix("OPTIONSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not required to exist; defaults + env vars suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("OPTIONSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Provider defaults
	v.SetDefault("provider.name", "yfinance")
	v.SetDefault("provider.cache_ttl", 300) // 5 minutes
	v.SetDefault("provider.rate_limit", 5)

	// Options defaults
	v.SetDefault("options.default_ticker", "AAPL")
	v.SetDefault("options.screener_min_volume", 100)
	v.SetDefault("options.screener_min_open_interest", 50)
	v.SetDefault("options.screener_max_spread_pct", 10.0)
	v.SetDefault("options.screener_option_type", "both")
	v.SetDefault("options.historical_bars", 30)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
