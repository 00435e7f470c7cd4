// Package config loads the stratlab YAML configuration and applies
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stratlab/internal/backtest"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the stratlab platform.
type Config struct {
	Storage  Storage        `yaml:"storage"`
	Server   Server         `yaml:"server"`
	Alpaca   Alpaca         `yaml:"alpaca"`
	Logging  Logging        `yaml:"logging"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Backtest BacktestConfig `yaml:"backtest"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Server holds network listener configuration for the results API.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FetchConfig holds parameters for the daily-bar backfill job.
type FetchConfig struct {
	BatchSize       int `yaml:"batch_size"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
}

// BacktestConfig defines the default simulation inputs.
type BacktestConfig struct {
	InitialCapital float64         `yaml:"initial_capital"`
	Strategy       backtest.Params `yaml:"strategy"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, applies environment variable overrides, fills defaults, and
// validates the strategy parameters. Malformed strategy parameters are
// rejected here, before any simulation can run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Backtest.Strategy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strategy config: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills zero-valued fields with working defaults so a minimal
// config file is usable.
func applyDefaults(cfg *Config) {
	if cfg.Backtest.InitialCapital == 0 {
		cfg.Backtest.InitialCapital = 10000
	}
	if cfg.Backtest.Strategy == (backtest.Params{}) {
		cfg.Backtest.Strategy = backtest.DefaultParams()
	}
	if cfg.Fetch.BatchSize == 0 {
		cfg.Fetch.BatchSize = 200
	}
	if cfg.Fetch.RateLimitPerMin == 0 {
		cfg.Fetch.RateLimitPerMin = 200
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}

	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}

	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars (highest priority — canonical names used by SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
