package predict

import "fmt"

// Config groups the product-tuned prediction coefficients per mode, plus the
// confidence degradation schedule. Everything is overridable so tests can
// pin deterministic values.
type Config struct {
	Accommodation AccommodationParams `json:"accommodation"`
	Delivery      DeliveryParams      `json:"delivery"`
	Rideshare     RideshareParams     `json:"rideshare"`
	Confidence    ConfidenceParams    `json:"confidence"`

	// IdleHourlyRate is the fixed subsidy credited to an idle vehicle,
	// zero unless a fleet contract pays for standby.
	IdleHourlyRate float64 `json:"idle_hourly_rate"`

	// DemandHighGate is the demand level above which a mode's demand is
	// reported as the dominant signal.
	DemandHighGate float64 `json:"demand_high_gate"`
}

// AccommodationParams tunes the stationary-use prediction.
type AccommodationParams struct {
	// ScarcityWeight scales how far nearby occupancy above 50% lifts the
	// achievable price.
	ScarcityWeight        float64 `json:"scarcity_weight"`
	DemandWeight          float64 `json:"demand_weight"`
	UtilizationSlope      float64 `json:"utilization_slope"`
	UtilizationCap        float64 `json:"utilization_cap"`
	LowBatteryLevel       float64 `json:"low_battery_level"`
	LowBatteryUtilization float64 `json:"low_battery_utilization"`
	ConfidenceHigh        float64 `json:"confidence_high"`
	ConfidenceLow         float64 `json:"confidence_low"`
	ConfidenceDemandGate  float64 `json:"confidence_demand_gate"`
	OccupancyScarceGate   float64 `json:"occupancy_scarce_gate"`
}

// DeliveryParams tunes the delivery prediction.
type DeliveryParams struct {
	// JobSaturation is the queue depth treated as fully loaded;
	// JobFactorCap bounds the rate lift a deep queue can produce.
	JobSaturation         float64 `json:"job_saturation"`
	JobFactorCap          float64 `json:"job_factor_cap"`
	DemandWeight          float64 `json:"demand_weight"`
	UtilizationJobDivisor float64 `json:"utilization_job_divisor"`
	UtilizationSlope      float64 `json:"utilization_slope"`
	UtilizationCap        float64 `json:"utilization_cap"`
	LowBatteryLevel       float64 `json:"low_battery_level"`
	LowBatteryUtilization float64 `json:"low_battery_utilization"`
	LowBatteryRate        float64 `json:"low_battery_rate"`
	ConfidenceHigh        float64 `json:"confidence_high"`
	ConfidenceLow         float64 `json:"confidence_low"`
	ConfidenceJobsGate    int     `json:"confidence_jobs_gate"`
}

// RideshareParams tunes the rideshare prediction.
type RideshareParams struct {
	UtilizationSlope      float64 `json:"utilization_slope"`
	UtilizationCap        float64 `json:"utilization_cap"`
	LowBatteryLevel       float64 `json:"low_battery_level"`
	LowBatteryUtilization float64 `json:"low_battery_utilization"`
	LowBatteryRate        float64 `json:"low_battery_rate"`
	ConfidenceHigh        float64 `json:"confidence_high"`
	ConfidenceLow         float64 `json:"confidence_low"`
	ConfidenceSurgeGate   float64 `json:"confidence_surge_gate"`
}

// ConfidenceParams controls how confidence decays from its per-mode base.
// The floor keeps confidence away from zero so downstream scoring never
// divides by it.
type ConfidenceParams struct {
	Floor                 float64 `json:"floor"`
	DistancePenaltyPerKm  float64 `json:"distance_penalty_per_km"`
	HorizonPenaltyPerHour float64 `json:"horizon_penalty_per_hour"`
	VolatilityPenalty     float64 `json:"volatility_penalty"`
	FallbackPenalty       float64 `json:"fallback_penalty"`
}

// SetDefaults fills unset fields with the tuned defaults.
func (c *Config) SetDefaults() {
	a := &c.Accommodation
	if a.ScarcityWeight <= 0 {
		a.ScarcityWeight = 0.5
	}
	if a.DemandWeight <= 0 {
		a.DemandWeight = 0.3
	}
	if a.UtilizationSlope <= 0 {
		a.UtilizationSlope = 1.1
	}
	if a.UtilizationCap <= 0 {
		a.UtilizationCap = 0.95
	}
	if a.LowBatteryLevel <= 0 {
		a.LowBatteryLevel = 20
	}
	if a.LowBatteryUtilization <= 0 {
		a.LowBatteryUtilization = 0.8
	}
	if a.ConfidenceHigh <= 0 {
		a.ConfidenceHigh = 0.85
	}
	if a.ConfidenceLow <= 0 {
		a.ConfidenceLow = 0.65
	}
	if a.ConfidenceDemandGate <= 0 {
		a.ConfidenceDemandGate = 0.5
	}
	if a.OccupancyScarceGate <= 0 {
		a.OccupancyScarceGate = 0.8
	}

	d := &c.Delivery
	if d.JobSaturation <= 0 {
		d.JobSaturation = 50
	}
	if d.JobFactorCap <= 0 {
		d.JobFactorCap = 0.5
	}
	if d.DemandWeight <= 0 {
		d.DemandWeight = 0.4
	}
	if d.UtilizationJobDivisor <= 0 {
		d.UtilizationJobDivisor = 100
	}
	if d.UtilizationSlope <= 0 {
		d.UtilizationSlope = 0.7
	}
	if d.UtilizationCap <= 0 {
		d.UtilizationCap = 0.9
	}
	if d.LowBatteryLevel <= 0 {
		d.LowBatteryLevel = 30
	}
	if d.LowBatteryUtilization <= 0 {
		d.LowBatteryUtilization = 0.6
	}
	if d.LowBatteryRate <= 0 {
		d.LowBatteryRate = 0.8
	}
	if d.ConfidenceHigh <= 0 {
		d.ConfidenceHigh = 0.8
	}
	if d.ConfidenceLow <= 0 {
		d.ConfidenceLow = 0.6
	}
	if d.ConfidenceJobsGate <= 0 {
		d.ConfidenceJobsGate = 20
	}

	r := &c.Rideshare
	if r.UtilizationSlope <= 0 {
		r.UtilizationSlope = 0.9
	}
	if r.UtilizationCap <= 0 {
		r.UtilizationCap = 0.85
	}
	if r.LowBatteryLevel <= 0 {
		r.LowBatteryLevel = 40
	}
	if r.LowBatteryUtilization <= 0 {
		r.LowBatteryUtilization = 0.5
	}
	if r.LowBatteryRate <= 0 {
		r.LowBatteryRate = 0.7
	}
	if r.ConfidenceHigh <= 0 {
		r.ConfidenceHigh = 0.75
	}
	if r.ConfidenceLow <= 0 {
		r.ConfidenceLow = 0.65
	}
	if r.ConfidenceSurgeGate <= 0 {
		r.ConfidenceSurgeGate = 1.2
	}

	cf := &c.Confidence
	if cf.Floor <= 0 {
		cf.Floor = 0.1
	}
	if cf.DistancePenaltyPerKm <= 0 {
		cf.DistancePenaltyPerKm = 0.002
	}
	if cf.HorizonPenaltyPerHour <= 0 {
		cf.HorizonPenaltyPerHour = 0.02
	}
	if cf.VolatilityPenalty <= 0 {
		cf.VolatilityPenalty = 0.2
	}
	if cf.FallbackPenalty <= 0 {
		cf.FallbackPenalty = 0.25
	}

	if c.DemandHighGate <= 0 {
		c.DemandHighGate = 0.7
	}
}

// Validate checks the coefficient invariants.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"accommodation.utilization_cap": c.Accommodation.UtilizationCap,
		"delivery.utilization_cap":      c.Delivery.UtilizationCap,
		"rideshare.utilization_cap":     c.Rideshare.UtilizationCap,
	} {
		if v > 1 {
			return fmt.Errorf("predict: %s %v above 1", name, v)
		}
	}
	for name, v := range map[string]float64{
		"accommodation.confidence_high": c.Accommodation.ConfidenceHigh,
		"accommodation.confidence_low":  c.Accommodation.ConfidenceLow,
		"delivery.confidence_high":      c.Delivery.ConfidenceHigh,
		"delivery.confidence_low":       c.Delivery.ConfidenceLow,
		"rideshare.confidence_high":     c.Rideshare.ConfidenceHigh,
		"rideshare.confidence_low":      c.Rideshare.ConfidenceLow,
	} {
		if v > 1 {
			return fmt.Errorf("predict: %s %v above 1", name, v)
		}
	}
	for name, v := range map[string]float64{
		"accommodation.low_battery_utilization": c.Accommodation.LowBatteryUtilization,
		"delivery.low_battery_utilization":      c.Delivery.LowBatteryUtilization,
		"delivery.low_battery_rate":             c.Delivery.LowBatteryRate,
		"rideshare.low_battery_utilization":     c.Rideshare.LowBatteryUtilization,
		"rideshare.low_battery_rate":            c.Rideshare.LowBatteryRate,
	} {
		if v > 1 {
			return fmt.Errorf("predict: %s %v must not amplify", name, v)
		}
	}
	if c.Confidence.Floor >= 1 {
		return fmt.Errorf("predict: confidence floor %v must stay below 1", c.Confidence.Floor)
	}
	if c.IdleHourlyRate < 0 {
		return fmt.Errorf("predict: idle_hourly_rate %v is negative", c.IdleHourlyRate)
	}
	if c.DemandHighGate > 1 {
		return fmt.Errorf("predict: demand_high_gate %v above 1", c.DemandHighGate)
	}
	return nil
}
