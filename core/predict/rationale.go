package predict

import (
	"fmt"

	"github.com/yielddrive/fleetyield/core/model"
)

// Classify names the dominant market driver behind a prediction for the
// given mode. Ranking never depends on the result; it exists so the
// rationale rendering stays a pure formatting concern.
func (p *Predictor) Classify(mode model.VehicleMode, m model.MarketCondition) model.DominantSignal {
	if !mode.Earning() {
		return model.SignalFlat
	}
	if m.Fallback {
		return model.SignalDegradedData
	}
	switch mode {
	case model.ModeRideshare:
		if m.RideshareSurge > p.cfg.Rideshare.ConfidenceSurgeGate {
			return model.SignalSurgeElevated
		}
		if m.RideshareDemand > p.cfg.DemandHighGate {
			return model.SignalDemandHigh
		}
	case model.ModeDelivery:
		if m.PendingDeliveryJobs > p.cfg.Delivery.ConfidenceJobsGate {
			return model.SignalJobsQueued
		}
		if m.DeliveryDemand > p.cfg.DemandHighGate {
			return model.SignalDemandHigh
		}
	case model.ModeAccommodation:
		if m.NearbyOccupancy > p.cfg.Accommodation.OccupancyScarceGate {
			return model.SignalOccupancyScarce
		}
		if m.AccommodationDemand > p.cfg.DemandHighGate {
			return model.SignalDemandHigh
		}
	}
	return model.SignalFlat
}

// Rationale renders a dominant signal into the short human-readable string
// carried by predictions. Pure formatting: same inputs, same string.
func Rationale(sig model.DominantSignal, mode model.VehicleMode, m model.MarketCondition) string {
	switch sig {
	case model.SignalSurgeElevated:
		return fmt.Sprintf("rideshare surge %.1fx, demand %.0f%%", m.RideshareSurge, m.RideshareDemand*100)
	case model.SignalJobsQueued:
		return fmt.Sprintf("%d delivery jobs queued, demand %.0f%%", m.PendingDeliveryJobs, m.DeliveryDemand*100)
	case model.SignalOccupancyScarce:
		return fmt.Sprintf("nearby occupancy %.0f%%, demand %.0f%%", m.NearbyOccupancy*100, m.AccommodationDemand*100)
	case model.SignalDemandHigh:
		return fmt.Sprintf("%s demand %.0f%%", mode, m.Demand(mode)*100)
	case model.SignalDegradedData:
		return "no market coverage here, using neutral estimates"
	default:
		if mode.Earning() {
			return fmt.Sprintf("%s demand flat at %.0f%%", mode, m.Demand(mode)*100)
		}
		return fmt.Sprintf("%s has no market exposure", mode)
	}
}
