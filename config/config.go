package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Tracker TrackerConfig `yaml:"tracker"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// TrackerConfig controls how the swap history is walked and matched.
type TrackerConfig struct {
	TraderAddress    string   `yaml:"trader_address"`
	PageSize         int      `yaml:"page_size"`
	MaxPages         int      `yaml:"max_pages"`
	ValueDiffDivider float64  `yaml:"value_diff_divider"` // leg matching tolerance scale
	IgnoredSymbols   []string `yaml:"ignored_symbols"`    // empty means built-in stables list
}

// APIConfig contains the external API settings.
type APIConfig struct {
	CovalentBase string `yaml:"covalent_base"`
	CovalentKey  string `yaml:"covalent_key"`
	BinanceBase  string `yaml:"binance_base"`
}

// StorageConfig controls where run results are persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls the logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config file and the .env file if present.
// Env vars override YAML values for the keys they cover.
func Load(path string) (*Config, error) {
	// Load .env if present (missing file is fine)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides replaces values with environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COVALENT_KEY"); v != "" {
		cfg.API.CovalentKey = v
	}
	if v := os.Getenv("TRADER_ADDRESS"); v != "" {
		cfg.Tracker.TraderAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults ensures required values fall back to something sensible.
func setDefaults(cfg *Config) {
	if cfg.Tracker.PageSize <= 0 {
		cfg.Tracker.PageSize = 100
	}
	if cfg.Tracker.MaxPages <= 0 {
		cfg.Tracker.MaxPages = 50
	}
	if cfg.API.CovalentBase == "" {
		cfg.API.CovalentBase = "https://api.covalenthq.com/v1/1"
	}
	if cfg.API.BinanceBase == "" {
		cfg.API.BinanceBase = "https://api.binance.com"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "profitcalc.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
