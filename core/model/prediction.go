package model

// DominantSignal classifies the market driver behind a prediction. The
// classification is what ranking-adjacent code may branch on; the rationale
// string rendered from it is cosmetic.
type DominantSignal string

const (
	SignalFlat            DominantSignal = "flat"
	SignalSurgeElevated   DominantSignal = "surge_elevated"
	SignalDemandHigh      DominantSignal = "demand_high"
	SignalJobsQueued      DominantSignal = "jobs_queued"
	SignalOccupancyScarce DominantSignal = "occupancy_scarce"
	SignalDegradedData    DominantSignal = "degraded_data"
)

// ModePrediction is the predictor output for one candidate mode: an
// expected hourly rate, the share of the horizon spent actively earning,
// and a confidence grade for both.
type ModePrediction struct {
	Mode        VehicleMode `json:"mode"`
	HourlyRate  float64     `json:"hourly_rate"`
	Utilization float64     `json:"utilization"`

	// TotalRevenue = HourlyRate x Utilization x horizon hours.
	TotalRevenue float64 `json:"total_revenue"`

	Confidence float64        `json:"confidence"`
	Signal     DominantSignal `json:"signal"`
	Rationale  string         `json:"rationale"`
}

// ModeRecommendation is one ranked entry of a YieldPrediction.
type ModeRecommendation struct {
	Mode       VehicleMode `json:"mode"`
	HourlyRate float64     `json:"hourly_rate"`
	Confidence float64     `json:"confidence"`
	Rationale  string      `json:"rationale"`

	// TransitionCost is the earnings foregone while the vehicle is offline
	// reconfiguring its interior for the mode. Zero for the current mode.
	TransitionCost float64 `json:"transition_cost"`

	// NetBenefit = HourlyRate - TransitionCost.
	NetBenefit float64 `json:"net_benefit"`

	// Recommended is true on at most one entry per prediction.
	Recommended bool `json:"is_recommended"`
}

// YieldPrediction is the optimizer output for one vehicle: every candidate
// mode ranked by net benefit, plus the single switch worth making, if any.
type YieldPrediction struct {
	VehicleID         string      `json:"vehicle_id"`
	CurrentMode       VehicleMode `json:"current_mode"`
	CurrentHourlyRate float64     `json:"current_hourly_rate"`

	// Recommendations always includes the current mode, even when the
	// vehicle is not allowed to re-select it.
	Recommendations []ModeRecommendation `json:"recommendations"`

	// Best is nil unless switching clears the hysteresis margin over
	// staying in the current mode.
	Best *ModeRecommendation `json:"best_recommendation"`

	// PotentialGain = max(0, Best.NetBenefit - current.NetBenefit).
	// Zero whenever Best is nil.
	PotentialGain float64 `json:"potential_gain"`
}

// Recommendation returns the entry for the given mode, or nil when absent.
func (y YieldPrediction) Recommendation(mode VehicleMode) *ModeRecommendation {
	for i := range y.Recommendations {
		if y.Recommendations[i].Mode == mode {
			return &y.Recommendations[i]
		}
	}
	return nil
}

// ModeComparison projects total revenue per candidate mode over a horizon.
type ModeComparison struct {
	VehicleID    string           `json:"vehicle_id"`
	HorizonHours int              `json:"horizon_hours"`
	Modes        []ModePrediction `json:"modes"`
	CurrentMode  VehicleMode      `json:"current_mode"`

	// OptimalMode is the candidate with the highest TotalRevenue.
	OptimalMode VehicleMode `json:"optimal_mode"`

	// PotentialRevenueIncrease = max(0, optimal total - current total).
	PotentialRevenueIncrease float64 `json:"potential_revenue_increase"`
}

// Prediction returns the projection for the given mode, or nil when absent.
func (c ModeComparison) Prediction(mode VehicleMode) *ModePrediction {
	for i := range c.Modes {
		if c.Modes[i].Mode == mode {
			return &c.Modes[i]
		}
	}
	return nil
}
