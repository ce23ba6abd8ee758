package config

import (
	"fmt"

	"github.com/yielddrive/fleetyield/core/yield/logging"
)

// DecisionLogConfig defines settings for evaluation log storage and rotation.
type DecisionLogConfig struct {
	// Backend selects the log store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the log store.
	Path string `json:"path"`
	// MaxSizeMB switches the jsonl backend to a size-rotated store; the file
	// rotates when it exceeds this many megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *DecisionLogConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "yield_decisions.log"
	}
}

// Validate checks mandatory fields.
func (c DecisionLogConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("rotation settings must be non-negative")
	}
	return nil
}

// Build opens the configured log store.
func (c DecisionLogConfig) Build() (logging.LogStore, error) {
	switch c.Backend {
	case "sqlite":
		return logging.NewSQLiteStore(c.Path)
	case "jsonl":
		if c.MaxSizeMB > 0 {
			return logging.NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
		}
		return logging.NewJSONLStore(c.Path)
	default:
		return nil, fmt.Errorf("unknown backend %s", c.Backend)
	}
}
