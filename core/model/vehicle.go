package model

import (
	"fmt"
	"math"
	"time"
)

// VehicleSnapshot captures the state of one vehicle at evaluation time.
// A snapshot is immutable for the duration of an optimization call: the
// caller must not feed the optimizer a second, different snapshot of the
// same vehicle mid-computation.
type VehicleSnapshot struct {
	ID       string       `json:"id"`
	Name     string       `json:"name,omitempty"`
	Mode     VehicleMode  `json:"current_mode"`
	Interior InteriorMode `json:"current_interior_mode"`

	// AllowedModes is the set of modes the vehicle may switch into. The
	// current mode is always evaluated even when absent from this set.
	AllowedModes []VehicleMode `json:"allowed_modes"`

	// HourlyRate is what the vehicle earns right now. It prices the
	// opportunity cost of the downtime spent reconfiguring the interior.
	HourlyRate float64 `json:"current_hourly_rate"`

	// BatteryLevel is the charge percentage in [0,100]. Low charge caps
	// utilization for energy-hungry modes.
	BatteryLevel float64 `json:"battery_level"`

	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Validate checks that the snapshot is internally sound. All failures wrap
// ErrInvalidInput.
func (v VehicleSnapshot) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: vehicle id is empty", ErrInvalidInput)
	}
	if !v.Mode.Valid() {
		return fmt.Errorf("%w: unknown vehicle mode %q", ErrInvalidInput, v.Mode)
	}
	if !v.Interior.Valid() {
		return fmt.Errorf("%w: unknown interior mode %q", ErrInvalidInput, v.Interior)
	}
	for _, m := range v.AllowedModes {
		if !m.Valid() {
			return fmt.Errorf("%w: unknown allowed mode %q", ErrInvalidInput, m)
		}
	}
	if v.HourlyRate < 0 || math.IsNaN(v.HourlyRate) || math.IsInf(v.HourlyRate, 0) {
		return fmt.Errorf("%w: hourly rate %v must be finite and non-negative", ErrInvalidInput, v.HourlyRate)
	}
	if v.BatteryLevel < 0 || v.BatteryLevel > 100 {
		return fmt.Errorf("%w: battery level %v outside [0,100]", ErrInvalidInput, v.BatteryLevel)
	}
	return ValidateCoordinates(v.Latitude, v.Longitude)
}

// Allows reports whether the vehicle may switch into mode m, either because
// m is in the allowed set or because it is the current mode.
func (v VehicleSnapshot) Allows(m VehicleMode) bool {
	if m == v.Mode {
		return true
	}
	for _, a := range v.AllowedModes {
		if a == m {
			return true
		}
	}
	return false
}

// ValidateCoordinates rejects non-finite or out-of-range geographic
// coordinates, wrapping ErrInvalidInput.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90,90]", ErrInvalidInput, lat)
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180,180]", ErrInvalidInput, lng)
	}
	return nil
}
