package config

import (
	"fmt"
	"time"
)

// WatchConfig drives the periodic fleet evaluation loop.
type WatchConfig struct {
	// IntervalSeconds is the cadence of evaluation sweeps.
	IntervalSeconds int `json:"interval_seconds"`
	// HorizonHours is the projection horizon used by sweeps.
	HorizonHours int `json:"horizon_hours"`
}

// SetDefaults applies sane defaults.
func (c *WatchConfig) SetDefaults() {
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = 300
	}
	if c.HorizonHours <= 0 {
		c.HorizonHours = 4
	}
}

// Validate checks field ranges.
func (c WatchConfig) Validate() error {
	if c.IntervalSeconds < 1 {
		return fmt.Errorf("interval_seconds %d must be positive", c.IntervalSeconds)
	}
	if c.HorizonHours < 1 {
		return fmt.Errorf("horizon_hours %d must be positive", c.HorizonHours)
	}
	return nil
}

// Interval returns the sweep cadence as a duration.
func (c WatchConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
