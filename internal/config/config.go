package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/johnboisvert/tradingview-sub001/internal/infrastructure/db"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Sources struct {
		BinanceBaseURL string `yaml:"binance_base_url"`
		GeckoBaseURL   string `yaml:"gecko_base_url"`
		GeckoAPIKey    string `yaml:"gecko_api_key"`
	} `yaml:"sources"`
	Analysis struct {
		MaxEntities   int           `yaml:"max_entities"`
		CandleLimit   int           `yaml:"candle_limit"`
		ShortTF       string        `yaml:"short_timeframe"`
		MediumTF      string        `yaml:"medium_timeframe"`
		LongTF        string        `yaml:"long_timeframe"`
		BatchSize     int           `yaml:"batch_size"`
		BatchDelayMS  int           `yaml:"batch_delay_ms"`
		RefreshSpec   string        `yaml:"refresh_spec"`
		MinAlertScore float64       `yaml:"min_alert_score"`
		AlertCooldown time.Duration `yaml:"alert_cooldown"`
	} `yaml:"analysis"`
	Alerts struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"alerts"`
	Database struct {
		URL  string        `yaml:"url"`
		Pool db.PoolConfig `yaml:"pool"`
	} `yaml:"database"`
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
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.Sources.BinanceBaseURL = v
	}
	if v := os.Getenv("GECKO_BASE_URL"); v != "" {
		cfg.Sources.GeckoBaseURL = v
	}
	if v := os.Getenv("GECKO_API_KEY"); v != "" {
		cfg.Sources.GeckoAPIKey = v
	}
	if v := os.Getenv("MAX_ENTITIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MaxEntities = n
		}
	}
	if v := os.Getenv("REFRESH_SPEC"); v != "" {
		cfg.Analysis.RefreshSpec = v
	}
	if v := os.Getenv("MIN_ALERT_SCORE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.MinAlertScore = f
		}
	}
	if v := os.Getenv("ALERT_WEBHOOK_URL"); v != "" {
		cfg.Alerts.WebhookURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Analysis.MaxEntities == 0 {
		cfg.Analysis.MaxEntities = 50
	}
	if cfg.Analysis.CandleLimit == 0 {
		cfg.Analysis.CandleLimit = 300
	}
	if cfg.Analysis.ShortTF == "" {
		cfg.Analysis.ShortTF = "15m"
	}
	if cfg.Analysis.MediumTF == "" {
		cfg.Analysis.MediumTF = "1h"
	}
	if cfg.Analysis.LongTF == "" {
		cfg.Analysis.LongTF = "4h"
	}
	if cfg.Analysis.BatchSize == 0 {
		cfg.Analysis.BatchSize = 5
	}
	if cfg.Analysis.BatchDelayMS == 0 {
		cfg.Analysis.BatchDelayMS = 1500
	}
	if cfg.Analysis.RefreshSpec == "" {
		cfg.Analysis.RefreshSpec = "@every 3m"
	}
	if cfg.Analysis.MinAlertScore == 0 {
		cfg.Analysis.MinAlertScore = 75
	}
	if cfg.Analysis.AlertCooldown == 0 {
		cfg.Analysis.AlertCooldown = 30 * time.Minute
	}

	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Analysis.MaxEntities < 1 {
		return fmt.Errorf("analysis.max_entities must be positive")
	}
	if c.Analysis.CandleLimit < 1 {
		return fmt.Errorf("analysis.candle_limit must be positive")
	}
	if c.Analysis.BatchSize < 1 {
		return fmt.Errorf("analysis.batch_size must be positive")
	}
	if c.Analysis.ShortTF == "" || c.Analysis.MediumTF == "" || c.Analysis.LongTF == "" {
		return fmt.Errorf("all three analysis timeframes are required")
	}
	if c.Analysis.MinAlertScore < 0 || c.Analysis.MinAlertScore > 100 {
		return fmt.Errorf("analysis.min_alert_score must be within [0,100]")
	}
	return nil
}

// BatchDelay returns the inter-batch delay as a duration.
func (c *Config) BatchDelay() time.Duration {
	return time.Duration(c.Analysis.BatchDelayMS) * time.Millisecond
}
