package model

import "fmt"

// VehicleMode is the operating mode of a multi-purpose vehicle.
type VehicleMode string

const (
	ModeIdle          VehicleMode = "idle"
	ModeAccommodation VehicleMode = "accommodation"
	ModeDelivery      VehicleMode = "delivery"
	ModeRideshare     VehicleMode = "rideshare"
	ModeMaintenance   VehicleMode = "maintenance"
	ModeCharging      VehicleMode = "charging"
	ModeTransit       VehicleMode = "transit"
)

// ModePriority is the fixed order used to break ranking ties once net
// benefit and confidence are equal. Earning modes come first so a dead tie
// resolves toward revenue.
var ModePriority = []VehicleMode{
	ModeAccommodation,
	ModeDelivery,
	ModeRideshare,
	ModeTransit,
	ModeIdle,
	ModeMaintenance,
	ModeCharging,
}

var modeRank = func() map[VehicleMode]int {
	r := make(map[VehicleMode]int, len(ModePriority))
	for i, m := range ModePriority {
		r[m] = i
	}
	return r
}()

// PriorityRank returns the position of m in ModePriority. Unknown modes
// rank after every known one.
func PriorityRank(m VehicleMode) int {
	if r, ok := modeRank[m]; ok {
		return r
	}
	return len(ModePriority)
}

// ParseVehicleMode converts a raw string into a VehicleMode, rejecting
// values outside the closed set.
func ParseVehicleMode(s string) (VehicleMode, error) {
	m := VehicleMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown vehicle mode %q", ErrInvalidInput, s)
	}
	return m, nil
}

// Valid reports whether the mode belongs to the closed set.
func (m VehicleMode) Valid() bool {
	_, ok := modeRank[m]
	return ok
}

// Selectable reports whether the optimizer may propose the mode.
// Maintenance and charging are never profit-seeking, though a vehicle may
// currently be in either.
func (m VehicleMode) Selectable() bool {
	return m != ModeMaintenance && m != ModeCharging
}

// Earning reports whether the mode generates market revenue.
func (m VehicleMode) Earning() bool {
	switch m {
	case ModeAccommodation, ModeDelivery, ModeRideshare:
		return true
	}
	return false
}

// requiredInterior pairs each equipment-bound mode with the cabin
// configuration it needs. Modes absent here run on the standard interior.
var requiredInterior = map[VehicleMode]InteriorMode{
	ModeAccommodation: InteriorBed,
	ModeDelivery:      InteriorCargo,
	ModeRideshare:     InteriorPassenger,
}

// RequiredInterior returns the cabin configuration a vehicle must hold to
// operate the mode.
func (m VehicleMode) RequiredInterior() InteriorMode {
	if im, ok := requiredInterior[m]; ok {
		return im
	}
	return InteriorStandard
}

// InteriorMode is the physical cabin configuration of a vehicle.
type InteriorMode string

const (
	InteriorStandard  InteriorMode = "standard"
	InteriorBed       InteriorMode = "bed"
	InteriorCargo     InteriorMode = "cargo"
	InteriorOffice    InteriorMode = "office"
	InteriorPassenger InteriorMode = "passenger"
)

// Interiors lists every cabin configuration.
var Interiors = []InteriorMode{
	InteriorStandard,
	InteriorBed,
	InteriorCargo,
	InteriorOffice,
	InteriorPassenger,
}

// ParseInteriorMode converts a raw string into an InteriorMode, rejecting
// values outside the closed set.
func ParseInteriorMode(s string) (InteriorMode, error) {
	im := InteriorMode(s)
	if !im.Valid() {
		return "", fmt.Errorf("%w: unknown interior mode %q", ErrInvalidInput, s)
	}
	return im, nil
}

// Valid reports whether the interior belongs to the closed set.
func (im InteriorMode) Valid() bool {
	switch im {
	case InteriorStandard, InteriorBed, InteriorCargo, InteriorOffice, InteriorPassenger:
		return true
	}
	return false
}
