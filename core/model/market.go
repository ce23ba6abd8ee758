package model

import (
	"fmt"
	"math"
	"time"
)

// Surge multiplier bounds. Producers clamp into this range; values at or
// below zero are malformed.
const (
	SurgeMin = 0.5
	SurgeMax = 5.0
)

// MarketCondition is an immutable market snapshot for one location and
// sampling bucket. Demand and occupancy signals are normalized to [0,1];
// prices are currency per hour of service.
type MarketCondition struct {
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`

	AccommodationDemand   float64 `json:"accommodation_demand"`
	AccommodationAvgPrice float64 `json:"accommodation_avg_price"`
	NearbyOccupancy       float64 `json:"nearby_occupancy"`

	DeliveryDemand      float64 `json:"delivery_demand"`
	DeliveryAvgPrice    float64 `json:"delivery_avg_price"`
	PendingDeliveryJobs int     `json:"pending_delivery_jobs"`

	RideshareDemand   float64 `json:"rideshare_demand"`
	RideshareSurge    float64 `json:"rideshare_surge"`
	RideshareAvgPrice float64 `json:"rideshare_avg_price"`

	// DemandVolatility is the standard deviation of the demand profiles
	// over the upcoming statistics window. Confidence decays with it.
	DemandVolatility float64 `json:"demand_volatility"`

	// DataDistanceKm is the distance to the nearest sampled market point.
	// Confidence decays with it as well.
	DataDistanceKm float64 `json:"data_distance_km"`

	// Fallback marks the neutral snapshot served when the requested
	// location falls outside the covered area.
	Fallback bool `json:"fallback,omitempty"`
}

// Validate checks the snapshot invariants. All failures wrap
// ErrInvalidInput.
func (m MarketCondition) Validate() error {
	if m.Timestamp.IsZero() {
		return fmt.Errorf("%w: market snapshot has no timestamp", ErrInvalidInput)
	}
	if err := ValidateCoordinates(m.Latitude, m.Longitude); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"accommodation_demand": m.AccommodationDemand,
		"delivery_demand":      m.DeliveryDemand,
		"rideshare_demand":     m.RideshareDemand,
		"nearby_occupancy":     m.NearbyOccupancy,
	} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidInput, name, v)
		}
	}
	for name, v := range map[string]float64{
		"accommodation_avg_price": m.AccommodationAvgPrice,
		"delivery_avg_price":      m.DeliveryAvgPrice,
		"rideshare_avg_price":     m.RideshareAvgPrice,
		"demand_volatility":       m.DemandVolatility,
		"data_distance_km":        m.DataDistanceKm,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %v must be finite and non-negative", ErrInvalidInput, name, v)
		}
	}
	if m.PendingDeliveryJobs < 0 {
		return fmt.Errorf("%w: pending_delivery_jobs %d is negative", ErrInvalidInput, m.PendingDeliveryJobs)
	}
	if m.RideshareSurge <= 0 || math.IsNaN(m.RideshareSurge) || math.IsInf(m.RideshareSurge, 0) {
		return fmt.Errorf("%w: rideshare_surge %v must be positive", ErrInvalidInput, m.RideshareSurge)
	}
	return nil
}

// Demand returns the demand signal for an earning mode, zero otherwise.
func (m MarketCondition) Demand(mode VehicleMode) float64 {
	switch mode {
	case ModeAccommodation:
		return m.AccommodationDemand
	case ModeDelivery:
		return m.DeliveryDemand
	case ModeRideshare:
		return m.RideshareDemand
	}
	return 0
}
