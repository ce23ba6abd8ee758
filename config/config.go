package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yielddrive/fleetyield/core/market"
	"github.com/yielddrive/fleetyield/core/metrics"
	"github.com/yielddrive/fleetyield/core/predict"
	"github.com/yielddrive/fleetyield/core/schedule"
	"github.com/yielddrive/fleetyield/core/yield"
)

type Config struct {
	Market      market.Config     `json:"market"`
	Predict     predict.Config    `json:"predict"`
	Yield       yield.Config      `json:"yield"`
	Schedule    schedule.Config   `json:"schedule"`
	Fleet       FleetConfig       `json:"fleet"`
	Watch       WatchConfig       `json:"watch"`
	Metrics     metrics.Config    `json:"metrics"`
	DecisionLog DecisionLogConfig `json:"declog"`
}

// Load reads the file at path, applies FY_-prefixed environment overrides
// (FY_WATCH__INTERVAL_SECONDS=60 sets watch.interval_seconds), fills
// defaults and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("FY_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fy_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every section at its defaults. It is
// what one-shot CLI runs use when no config file is given.
func Default() *Config {
	cfg := &Config{}
	// Finalize cannot fail on a zero config: every section defaults clean.
	_ = cfg.Finalize()
	return cfg
}

// Finalize fills defaults and validates every section.
func (c *Config) Finalize() error {
	c.Market.SetDefaults()
	c.Predict.SetDefaults()
	c.Yield.SetDefaults()
	c.Schedule.SetDefaults()
	c.Watch.SetDefaults()
	c.DecisionLog.SetDefaults()

	if err := c.Market.Validate(); err != nil {
		return fmt.Errorf("market: %w", err)
	}
	if err := c.Predict.Validate(); err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	if err := c.Yield.Validate(); err != nil {
		return fmt.Errorf("yield: %w", err)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := c.DecisionLog.Validate(); err != nil {
		return fmt.Errorf("declog: %w", err)
	}
	return nil
}
