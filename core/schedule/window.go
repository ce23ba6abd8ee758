package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

// Window is one recurring operating period during which a mode is allowed.
// Day follows Go's time.Weekday numbering (0 = Sunday).
type Window struct {
	Day      time.Weekday      `json:"day_of_week" yaml:"day_of_week"`
	Start    string            `json:"start_time" yaml:"start_time"` // "09:00"
	End      string            `json:"end_time" yaml:"end_time"`     // "18:00"
	Mode     model.VehicleMode `json:"allowed_mode" yaml:"allowed_mode"`
	Priority int               `json:"priority,omitempty" yaml:"priority,omitempty"`
	Disabled bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Validate checks day range, clock formats and mode.
func (w Window) Validate() error {
	if w.Day < time.Sunday || w.Day > time.Saturday {
		return fmt.Errorf("day_of_week %d outside [0,6]", w.Day)
	}
	start, err := clockMinutes(w.Start)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := clockMinutes(w.End)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("window %s-%s is empty", w.Start, w.End)
	}
	if !w.Mode.Valid() {
		return fmt.Errorf("unknown mode %q", w.Mode)
	}
	return nil
}

// ActiveAt reports whether t falls inside the window. The end bound is
// exclusive so back-to-back windows do not overlap.
func (w Window) ActiveAt(t time.Time) bool {
	if w.Disabled || t.Weekday() != w.Day {
		return false
	}
	start, err := clockMinutes(w.Start)
	if err != nil {
		return false
	}
	end, err := clockMinutes(w.End)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= start && minute < end
}

// EffectiveModes intersects a vehicle's allowed modes with the windows
// active at t. With no windows configured the allowed set passes through
// unchanged. The result is ordered by descending window priority, then by
// mode priority, so callers can feed it straight into the optimizer.
func EffectiveModes(v model.VehicleSnapshot, windows []Window, t time.Time) []model.VehicleMode {
	if len(windows) == 0 {
		return v.AllowedModes
	}
	prio := map[model.VehicleMode]int{}
	for _, w := range windows {
		if !w.ActiveAt(t) {
			continue
		}
		if p, ok := prio[w.Mode]; !ok || w.Priority > p {
			prio[w.Mode] = w.Priority
		}
	}
	var res []model.VehicleMode
	for _, m := range v.AllowedModes {
		if _, ok := prio[m]; ok {
			res = append(res, m)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if prio[res[i]] != prio[res[j]] {
			return prio[res[i]] > prio[res[j]]
		}
		return model.PriorityRank(res[i]) < model.PriorityRank(res[j])
	})
	return res
}

func clockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("clock %q must be HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
