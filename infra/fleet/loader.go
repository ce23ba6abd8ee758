package fleet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/core/schedule"
)

// VehicleDef is one vehicle entry of a fleet file.
type VehicleDef struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name,omitempty"`
	Mode         string   `yaml:"current_mode"`
	Interior     string   `yaml:"current_interior_mode,omitempty"`
	AllowedModes []string `yaml:"allowed_modes"`
	HourlyRate   float64  `yaml:"current_hourly_rate"`

	// BatteryLevel defaults to a full charge when omitted; zero is a
	// meaningful value, hence the pointer.
	BatteryLevel *float64 `yaml:"battery_level,omitempty"`

	Latitude  float64           `yaml:"latitude"`
	Longitude float64           `yaml:"longitude"`
	Schedule  []schedule.Window `yaml:"schedule,omitempty"`
}

// ToModel converts the definition into a validated snapshot. An omitted
// interior defaults to the one the current mode requires.
func (d VehicleDef) ToModel() (model.VehicleSnapshot, error) {
	mode, err := model.ParseVehicleMode(d.Mode)
	if err != nil {
		return model.VehicleSnapshot{}, err
	}
	interior := mode.RequiredInterior()
	if d.Interior != "" {
		interior, err = model.ParseInteriorMode(d.Interior)
		if err != nil {
			return model.VehicleSnapshot{}, err
		}
	}
	allowed := make([]model.VehicleMode, 0, len(d.AllowedModes))
	for _, s := range d.AllowedModes {
		m, err := model.ParseVehicleMode(s)
		if err != nil {
			return model.VehicleSnapshot{}, err
		}
		allowed = append(allowed, m)
	}
	battery := 100.0
	if d.BatteryLevel != nil {
		battery = *d.BatteryLevel
	}
	v := model.VehicleSnapshot{
		ID:           d.ID,
		Name:         d.Name,
		Mode:         mode,
		Interior:     interior,
		AllowedModes: allowed,
		HourlyRate:   d.HourlyRate,
		BatteryLevel: battery,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
	}
	if err := v.Validate(); err != nil {
		return model.VehicleSnapshot{}, err
	}
	return v, nil
}

// File is a parsed fleet file.
type File struct {
	Vehicles []VehicleDef `yaml:"vehicles"`
}

// Load reads and validates a fleet file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fleet file %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("fleet file %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks every definition, including its operating windows.
func (f *File) Validate() error {
	seen := make(map[string]struct{}, len(f.Vehicles))
	for i, def := range f.Vehicles {
		v, err := def.ToModel()
		if err != nil {
			return fmt.Errorf("vehicle %d (%s): %w", i, def.ID, err)
		}
		if _, dup := seen[v.ID]; dup {
			return fmt.Errorf("%w: duplicate vehicle id %q", model.ErrInvalidInput, v.ID)
		}
		seen[v.ID] = struct{}{}
		for j, w := range def.Schedule {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("vehicle %s window %d: %w", def.ID, j, err)
			}
		}
	}
	return nil
}

// Snapshots converts every definition.
func (f *File) Snapshots() ([]model.VehicleSnapshot, error) {
	out := make([]model.VehicleSnapshot, 0, len(f.Vehicles))
	for i, def := range f.Vehicles {
		v, err := def.ToModel()
		if err != nil {
			return nil, fmt.Errorf("vehicle %d (%s): %w", i, def.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Windows returns the operating windows declared per vehicle. Vehicles
// without a schedule are absent from the map.
func (f *File) Windows() map[string][]schedule.Window {
	out := make(map[string][]schedule.Window)
	for _, def := range f.Vehicles {
		if len(def.Schedule) > 0 {
			out[def.ID] = def.Schedule
		}
	}
	return out
}
