package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Watchlist string `yaml:"watchlist"`
	Output    struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"output"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Scan struct {
		Period              string  `yaml:"period"`
		RecentDays          int     `yaml:"recent_days"`
		ShortWindow         int     `yaml:"short_window"`
		LongWindow          int     `yaml:"long_window"`
		VolatilityWindow    int     `yaml:"volatility_window"`
		VolumeWindow        int     `yaml:"volume_window"`
		VolatilityThreshold float64 `yaml:"volatility_threshold"`
		VolumeThreshold     float64 `yaml:"volume_threshold"`
		Retries             int     `yaml:"retries"`
		RetryDelaySeconds   int     `yaml:"retry_delay_seconds"`
		Workers             int     `yaml:"workers"`
	} `yaml:"scan"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Addr            string `yaml:"addr"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"redis"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// RetryDelay returns the fixed delay between fetch attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Scan.RetryDelaySeconds) * time.Second
}

// CacheTTL returns how long fetched series stay cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTLMinutes) * time.Minute
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("WATCHLIST_PATH"); v != "" {
		cfg.Watchlist = v
	}
	if v := os.Getenv("OUTPUT_CSV"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_PERIOD"); v != "" {
		cfg.Scan.Period = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Workers = n
		}
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Watchlist == "" {
		cfg.Watchlist = "watchlist.txt"
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "vcp_results.csv"
	}
	if cfg.Scan.Period == "" {
		cfg.Scan.Period = "1y"
	}
	if cfg.Scan.RecentDays == 0 {
		cfg.Scan.RecentDays = 60
	}
	if cfg.Scan.ShortWindow == 0 {
		cfg.Scan.ShortWindow = 20
	}
	if cfg.Scan.LongWindow == 0 {
		cfg.Scan.LongWindow = 50
	}
	if cfg.Scan.VolatilityWindow == 0 {
		cfg.Scan.VolatilityWindow = 20
	}
	if cfg.Scan.VolumeWindow == 0 {
		cfg.Scan.VolumeWindow = 50
	}
	if cfg.Scan.VolatilityThreshold == 0 {
		cfg.Scan.VolatilityThreshold = 0.8
	}
	if cfg.Scan.VolumeThreshold == 0 {
		cfg.Scan.VolumeThreshold = 0.8
	}
	if cfg.Scan.Retries == 0 {
		cfg.Scan.Retries = 3
	}
	if cfg.Scan.RetryDelaySeconds == 0 {
		cfg.Scan.RetryDelaySeconds = 2
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 8
	}
	if cfg.Redis.CacheTTLMinutes == 0 {
		cfg.Redis.CacheTTLMinutes = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	return cfg, nil
}

// Validate checks that scan parameters are internally consistent.
func (c *Config) Validate() error {
	// The higher-lows check samples the recent window at fixed offsets
	// up to 40 bars back, so anything shorter cannot be evaluated.
	if c.Scan.RecentDays < 41 {
		return fmt.Errorf("scan.recent_days must be at least 41, got %d", c.Scan.RecentDays)
	}
	if c.Scan.ShortWindow <= 0 || c.Scan.LongWindow <= 0 {
		return fmt.Errorf("scan windows must be positive")
	}
	if c.Scan.LongWindow <= c.Scan.ShortWindow {
		return fmt.Errorf("scan.long_window (%d) must exceed scan.short_window (%d)",
			c.Scan.LongWindow, c.Scan.ShortWindow)
	}
	if c.Scan.VolatilityWindow <= 1 {
		return fmt.Errorf("scan.volatility_window must be at least 2, got %d", c.Scan.VolatilityWindow)
	}
	if c.Scan.VolumeWindow <= 0 {
		return fmt.Errorf("scan.volume_window must be positive, got %d", c.Scan.VolumeWindow)
	}
	if c.Scan.VolatilityThreshold <= 0 || c.Scan.VolumeThreshold <= 0 {
		return fmt.Errorf("scan thresholds must be positive")
	}
	if c.Scan.Retries < 1 {
		return fmt.Errorf("scan.retries must be at least 1, got %d", c.Scan.Retries)
	}
	if c.Scan.RetryDelaySeconds < 0 {
		return fmt.Errorf("scan.retry_delay_seconds must not be negative, got %d", c.Scan.RetryDelaySeconds)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be at least 1, got %d", c.Scan.Workers)
	}
	return nil
}
