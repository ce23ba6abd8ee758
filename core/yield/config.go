package yield

import "fmt"

// Config carries the optimizer tunables. The interior change table and the
// hysteresis margin live here, not in ambient globals, so tests can
// substitute deterministic values.
type Config struct {
	// HysteresisMargin is the minimum net-benefit improvement, in currency
	// per hour, a switch must clear before it is recommended. It absorbs
	// real-world switching friction the transition-cost formula does not
	// capture.
	HysteresisMargin float64 `json:"hysteresis_margin"`

	// Transitions overrides the built-in interior change table when set.
	Transitions []Transition `json:"transitions"`

	// TransitionDefaultMinutes covers interior pairs the table cannot
	// resolve, directly or through the standard waypoint.
	TransitionDefaultMinutes float64 `json:"transition_default_minutes"`
}

// SetDefaults fills unset fields with the tuned defaults.
func (c *Config) SetDefaults() {
	if c.HysteresisMargin <= 0 {
		c.HysteresisMargin = 200
	}
	if c.TransitionDefaultMinutes <= 0 {
		c.TransitionDefaultMinutes = 30
	}
	if len(c.Transitions) == 0 {
		c.Transitions = DefaultTransitions()
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	seen := map[interiorPair]bool{}
	for _, e := range c.Transitions {
		if !e.From.Valid() {
			return fmt.Errorf("yield: transition has unknown interior %q", e.From)
		}
		if !e.To.Valid() {
			return fmt.Errorf("yield: transition has unknown interior %q", e.To)
		}
		if e.From == e.To {
			return fmt.Errorf("yield: transition %s->%s is a no-op", e.From, e.To)
		}
		if e.Minutes <= 0 {
			return fmt.Errorf("yield: transition %s->%s minutes %v must be positive", e.From, e.To, e.Minutes)
		}
		k := pairKey(e.From, e.To)
		if seen[k] {
			return fmt.Errorf("yield: duplicate transition entry for %s/%s", e.From, e.To)
		}
		seen[k] = true
	}
	return nil
}
