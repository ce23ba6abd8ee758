package schedule

import (
	"fmt"
	"time"

	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/core/yield"
)

// Config defines planning parameters loaded from configuration.
type Config struct {
	SlotMinutes  int `json:"slot_minutes" yaml:"slot_minutes"`
	HorizonHours int `json:"horizon_hours" yaml:"horizon_hours"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.SlotMinutes <= 0 {
		c.SlotMinutes = 60
	}
	if c.HorizonHours <= 0 {
		c.HorizonHours = 1
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.SlotMinutes > 24*60 {
		return fmt.Errorf("slot_minutes %d longer than a day", c.SlotMinutes)
	}
	return nil
}

// PlanEntry is the planned mode for one timeslot.
type PlanEntry struct {
	VehicleID  string            `json:"vehicle_id"`
	TimeSlot   time.Time         `json:"timeslot"`
	Mode       model.VehicleMode `json:"mode"`
	HourlyRate float64           `json:"hourly_rate"`
	NetBenefit float64           `json:"net_benefit"`

	// Switch marks slots where the plan changes mode relative to the
	// previous slot's outcome.
	Switch bool `json:"switch"`
}

// Planner builds day-ahead mode plans by replaying the optimizer slot by
// slot over a day.
type Planner struct {
	cfg Config
	opt *yield.Optimizer
}

func NewPlanner(opt *yield.Optimizer, cfg Config) (*Planner, error) {
	if opt == nil {
		return nil, fmt.Errorf("optimizer is required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Planner{cfg: cfg, opt: opt}, nil
}

// DayPlan returns one entry per timeslot of the given day. Each slot sees
// the vehicle as the previous slot's pick left it, so planned mode changes
// carry their interior and rate forward.
func (p *Planner) DayPlan(v model.VehicleSnapshot, windows []Window, date time.Time) ([]PlanEntry, error) {
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%w: window: %v", model.ErrInvalidInput, err)
		}
	}
	slotDur := time.Duration(p.cfg.SlotMinutes) * time.Minute
	totalSlots := int((24 * time.Hour) / slotDur)
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	running := v
	var entries []PlanEntry
	for i := 0; i < totalSlots; i++ {
		ts := startOfDay.Add(time.Duration(i) * slotDur)
		slot := running
		slot.AllowedModes = EffectiveModes(running, windows, ts)
		pred, err := p.opt.Recommend(slot, ts, p.cfg.HorizonHours)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", ts.Format("15:04"), err)
		}
		entry := PlanEntry{VehicleID: v.ID, TimeSlot: ts, Mode: pred.CurrentMode}
		if cur := pred.Recommendation(pred.CurrentMode); cur != nil {
			entry.HourlyRate = cur.HourlyRate
			entry.NetBenefit = cur.NetBenefit
		}
		if pred.Best != nil {
			entry.Mode = pred.Best.Mode
			entry.HourlyRate = pred.Best.HourlyRate
			entry.NetBenefit = pred.Best.NetBenefit
			entry.Switch = true
			running.Mode = pred.Best.Mode
			running.Interior = pred.Best.Mode.RequiredInterior()
		}
		running.HourlyRate = entry.HourlyRate
		entries = append(entries, entry)
	}
	return entries, nil
}
