package predict

import (
	"fmt"
	"math"

	"github.com/yielddrive/fleetyield/core/model"
)

// Input carries the per-call facts a prediction depends on beyond the
// market snapshot.
type Input struct {
	// HorizonHours is the projection window; must be positive.
	HorizonHours int
	// BatteryLevel is the vehicle's charge percentage in [0,100]. Low
	// charge penalizes utilization for energy-hungry modes.
	BatteryLevel float64
}

// Predictor maps a candidate mode and a market snapshot to an expected
// hourly rate, utilization and confidence. It is pure: no I/O, no logging,
// no shared mutable state, so one instance serves concurrent callers.
type Predictor struct {
	cfg Config
}

// NewPredictor fills config defaults, validates them and builds a
// Predictor.
func NewPredictor(cfg Config) (*Predictor, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Predictor{cfg: cfg}, nil
}

// Config returns the effective configuration after defaulting.
func (p *Predictor) Config() Config {
	return p.cfg
}

// Predict produces the ModePrediction for one candidate mode. Inputs are
// validated up front; no partial prediction is ever returned.
func (p *Predictor) Predict(mode model.VehicleMode, m model.MarketCondition, in Input) (model.ModePrediction, error) {
	if !mode.Valid() {
		return model.ModePrediction{}, fmt.Errorf("%w: unknown vehicle mode %q", model.ErrInvalidInput, mode)
	}
	if in.HorizonHours <= 0 {
		return model.ModePrediction{}, fmt.Errorf("%w: horizon %d must be positive", model.ErrInvalidInput, in.HorizonHours)
	}
	if in.BatteryLevel < 0 || in.BatteryLevel > 100 {
		return model.ModePrediction{}, fmt.Errorf("%w: battery level %v outside [0,100]", model.ErrInvalidInput, in.BatteryLevel)
	}
	if err := m.Validate(); err != nil {
		return model.ModePrediction{}, err
	}

	switch mode {
	case model.ModeAccommodation:
		return p.accommodation(m, in), nil
	case model.ModeDelivery:
		return p.delivery(m, in), nil
	case model.ModeRideshare:
		return p.rideshare(m, in), nil
	default:
		return p.flat(mode, m), nil
	}
}

// flat covers the modes with no market exposure. Idle may carry a standby
// subsidy; maintenance, charging and transit earn nothing. Confidence is
// 1.0 because nothing here depends on market data.
func (p *Predictor) flat(mode model.VehicleMode, m model.MarketCondition) model.ModePrediction {
	rate := 0.0
	if mode == model.ModeIdle {
		rate = p.cfg.IdleHourlyRate
	}
	sig := p.Classify(mode, m)
	return model.ModePrediction{
		Mode:       mode,
		HourlyRate: round0(rate),
		Confidence: 1.0,
		Signal:     sig,
		Rationale:  Rationale(sig, mode, m),
	}
}

func (p *Predictor) accommodation(m model.MarketCondition, in Input) model.ModePrediction {
	par := p.cfg.Accommodation
	scarcity := 1 + (m.NearbyOccupancy-0.5)*par.ScarcityWeight
	demandF := 1 + (m.AccommodationDemand-0.5)*par.DemandWeight
	rate := m.AccommodationAvgPrice * scarcity * demandF

	util := math.Min(par.UtilizationCap, m.AccommodationDemand*par.UtilizationSlope)
	if in.BatteryLevel < par.LowBatteryLevel {
		util *= par.LowBatteryUtilization
	}

	conf := par.ConfidenceLow
	if m.AccommodationDemand > par.ConfidenceDemandGate {
		conf = par.ConfidenceHigh
	}
	return p.finish(model.ModeAccommodation, m, in, rate, util, conf)
}

func (p *Predictor) delivery(m model.MarketCondition, in Input) model.ModePrediction {
	par := p.cfg.Delivery
	jobs := float64(m.PendingDeliveryJobs)
	jobF := 1 + math.Min(jobs/par.JobSaturation, par.JobFactorCap)
	demandF := 1 + (m.DeliveryDemand-0.5)*par.DemandWeight
	rate := m.DeliveryAvgPrice * jobF * demandF

	util := math.Min(par.UtilizationCap, (m.DeliveryDemand+jobs/par.UtilizationJobDivisor)*par.UtilizationSlope)
	if in.BatteryLevel < par.LowBatteryLevel {
		util *= par.LowBatteryUtilization
		rate *= par.LowBatteryRate
	}

	conf := par.ConfidenceLow
	if m.PendingDeliveryJobs > par.ConfidenceJobsGate {
		conf = par.ConfidenceHigh
	}
	return p.finish(model.ModeDelivery, m, in, rate, util, conf)
}

func (p *Predictor) rideshare(m model.MarketCondition, in Input) model.ModePrediction {
	par := p.cfg.Rideshare
	rate := m.RideshareAvgPrice * m.RideshareSurge

	util := math.Min(par.UtilizationCap, m.RideshareDemand*par.UtilizationSlope)
	if in.BatteryLevel < par.LowBatteryLevel {
		util *= par.LowBatteryUtilization
		rate *= par.LowBatteryRate
	}

	conf := par.ConfidenceLow
	if m.RideshareSurge > par.ConfidenceSurgeGate {
		conf = par.ConfidenceHigh
	}
	return p.finish(model.ModeRideshare, m, in, rate, util, conf)
}

// finish applies the confidence degradation schedule, clamps everything
// into its documented range and renders the rationale.
func (p *Predictor) finish(mode model.VehicleMode, m model.MarketCondition, in Input, rate, util, conf float64) model.ModePrediction {
	cp := p.cfg.Confidence
	conf -= cp.DistancePenaltyPerKm * m.DataDistanceKm
	conf -= cp.HorizonPenaltyPerHour * float64(in.HorizonHours-1)
	conf -= cp.VolatilityPenalty * m.DemandVolatility
	if m.Fallback {
		conf -= cp.FallbackPenalty
	}
	conf = math.Min(1, math.Max(cp.Floor, conf))

	rate = math.Max(0, rate)
	util = math.Min(1, math.Max(0, util))
	total := rate * util * float64(in.HorizonHours)

	sig := p.Classify(mode, m)
	return model.ModePrediction{
		Mode:         mode,
		HourlyRate:   round0(rate),
		Utilization:  round2(util),
		TotalRevenue: round0(total),
		Confidence:   round2(conf),
		Signal:       sig,
		Rationale:    Rationale(sig, mode, m),
	}
}

func round0(v float64) float64 { return math.Round(v) }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
