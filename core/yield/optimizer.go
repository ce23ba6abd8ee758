package yield

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yielddrive/fleetyield/core/market"
	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/core/predict"
)

// Optimizer ranks the modes a vehicle may run by net benefit and decides
// whether switching is worth the reconfiguration downtime. Every call is a
// pure synchronous computation over the inputs it is handed: no shared
// mutable state, no I/O, no logging, so concurrent calls for different
// vehicles need no locking.
type Optimizer struct {
	source    market.Source
	predictor *predict.Predictor
	cfg       Config
	table     TransitionTable
}

// NewOptimizer wires the optimizer. The source may be nil when callers only
// use the *With variants that take a prefetched snapshot.
func NewOptimizer(source market.Source, predictor *predict.Predictor, cfg Config) (*Optimizer, error) {
	if predictor == nil {
		return nil, fmt.Errorf("yield: predictor is required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{
		source:    source,
		predictor: predictor,
		cfg:       cfg,
		table:     NewTransitionTable(cfg.Transitions, cfg.TransitionDefaultMinutes),
	}, nil
}

// Config returns the effective configuration after defaulting.
func (o *Optimizer) Config() Config {
	return o.cfg
}

// Recommend fetches the market snapshot for the vehicle's location and
// ranks its candidate modes. A source failure aborts the whole call wrapped
// in ErrUpstreamUnavailable; there are no partial rankings.
func (o *Optimizer) Recommend(v model.VehicleSnapshot, at time.Time, horizonHours int) (model.YieldPrediction, error) {
	if err := o.preflight(v, horizonHours); err != nil {
		return model.YieldPrediction{}, err
	}
	m, err := o.fetch(v, at)
	if err != nil {
		return model.YieldPrediction{}, err
	}
	return o.RecommendWith(v, m, horizonHours)
}

// RecommendWith ranks the vehicle's candidate modes against a prefetched
// market snapshot.
//
// Candidates are the allowed modes minus maintenance and charging, plus the
// current mode, which is always evaluated so the vehicle can stay put. Net
// benefit is the predicted hourly rate minus the transition cost out of the
// current interior. Best is set only when the top candidate is a different
// mode clearing the hysteresis margin over staying.
func (o *Optimizer) RecommendWith(v model.VehicleSnapshot, m model.MarketCondition, horizonHours int) (model.YieldPrediction, error) {
	if err := o.preflight(v, horizonHours); err != nil {
		return model.YieldPrediction{}, err
	}
	if err := m.Validate(); err != nil {
		return model.YieldPrediction{}, err
	}

	in := predict.Input{HorizonHours: horizonHours, BatteryLevel: v.BatteryLevel}
	cands := o.candidates(v)
	recs := make([]model.ModeRecommendation, 0, len(cands))
	for _, mode := range cands {
		pred, err := o.predictor.Predict(mode, m, in)
		if err != nil {
			return model.YieldPrediction{}, fmt.Errorf("predicting %s for vehicle %s: %w", mode, v.ID, err)
		}
		cost := 0.0
		if mode != v.Mode {
			cost = o.TransitionCost(v.Interior, mode, v.HourlyRate)
		}
		recs = append(recs, model.ModeRecommendation{
			Mode:           mode,
			HourlyRate:     pred.HourlyRate,
			Confidence:     pred.Confidence,
			Rationale:      pred.Rationale,
			TransitionCost: cost,
			NetBenefit:     pred.HourlyRate - cost,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].NetBenefit != recs[j].NetBenefit {
			return recs[i].NetBenefit > recs[j].NetBenefit
		}
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return model.PriorityRank(recs[i].Mode) < model.PriorityRank(recs[j].Mode)
	})

	var current model.ModeRecommendation
	for _, r := range recs {
		if r.Mode == v.Mode {
			current = r
			break
		}
	}

	out := model.YieldPrediction{
		VehicleID:         v.ID,
		CurrentMode:       v.Mode,
		CurrentHourlyRate: current.HourlyRate,
		Recommendations:   recs,
	}
	top := recs[0]
	if top.Mode != v.Mode && top.NetBenefit >= current.NetBenefit+o.cfg.HysteresisMargin {
		recs[0].Recommended = true
		best := recs[0]
		out.Best = &best
		out.PotentialGain = math.Max(0, best.NetBenefit-current.NetBenefit)
	}
	return out, nil
}

// Compare fetches the market snapshot for the vehicle's location and
// projects total revenue per candidate mode over the horizon.
func (o *Optimizer) Compare(v model.VehicleSnapshot, at time.Time, horizonHours int) (model.ModeComparison, error) {
	if err := o.preflight(v, horizonHours); err != nil {
		return model.ModeComparison{}, err
	}
	m, err := o.fetch(v, at)
	if err != nil {
		return model.ModeComparison{}, err
	}
	return o.CompareWith(v, m, horizonHours)
}

// CompareWith projects total revenue per candidate mode against a
// prefetched market snapshot. Optimal is the candidate with the highest
// total projected revenue, ties broken exactly as in RecommendWith.
func (o *Optimizer) CompareWith(v model.VehicleSnapshot, m model.MarketCondition, horizonHours int) (model.ModeComparison, error) {
	if err := o.preflight(v, horizonHours); err != nil {
		return model.ModeComparison{}, err
	}
	if err := m.Validate(); err != nil {
		return model.ModeComparison{}, err
	}

	in := predict.Input{HorizonHours: horizonHours, BatteryLevel: v.BatteryLevel}
	cands := o.candidates(v)
	preds := make([]model.ModePrediction, 0, len(cands))
	for _, mode := range cands {
		pred, err := o.predictor.Predict(mode, m, in)
		if err != nil {
			return model.ModeComparison{}, fmt.Errorf("predicting %s for vehicle %s: %w", mode, v.ID, err)
		}
		preds = append(preds, pred)
	}

	sort.Slice(preds, func(i, j int) bool {
		if preds[i].TotalRevenue != preds[j].TotalRevenue {
			return preds[i].TotalRevenue > preds[j].TotalRevenue
		}
		if preds[i].Confidence != preds[j].Confidence {
			return preds[i].Confidence > preds[j].Confidence
		}
		return model.PriorityRank(preds[i].Mode) < model.PriorityRank(preds[j].Mode)
	})

	var currentTotal float64
	for _, p := range preds {
		if p.Mode == v.Mode {
			currentTotal = p.TotalRevenue
			break
		}
	}
	return model.ModeComparison{
		VehicleID:                v.ID,
		HorizonHours:             horizonHours,
		Modes:                    preds,
		CurrentMode:              v.Mode,
		OptimalMode:              preds[0].Mode,
		PotentialRevenueIncrease: math.Max(0, preds[0].TotalRevenue-currentTotal),
	}, nil
}

// TransitionCost prices the downtime of reconfiguring from an interior to
// what the mode requires, at the vehicle's present earning rate. Zero
// exactly when the interior already matches.
func (o *Optimizer) TransitionCost(current model.InteriorMode, mode model.VehicleMode, hourlyRate float64) float64 {
	required := mode.RequiredInterior()
	if current == required {
		return 0
	}
	return o.table.Minutes(current, required) / 60 * hourlyRate
}

// preflight rejects malformed inputs before any prediction work starts.
func (o *Optimizer) preflight(v model.VehicleSnapshot, horizonHours int) error {
	if horizonHours <= 0 {
		return fmt.Errorf("%w: horizon %d must be positive", model.ErrInvalidInput, horizonHours)
	}
	if len(v.AllowedModes) == 0 && v.Mode == "" {
		return fmt.Errorf("%w: vehicle %q has no allowed modes and no current mode", ErrNoCandidates, v.ID)
	}
	return v.Validate()
}

func (o *Optimizer) fetch(v model.VehicleSnapshot, at time.Time) (model.MarketCondition, error) {
	if o.source == nil {
		return model.MarketCondition{}, fmt.Errorf("%w: no market source configured", ErrUpstreamUnavailable)
	}
	m, err := o.source.Snapshot(v.Latitude, v.Longitude, at)
	if err != nil {
		return model.MarketCondition{}, fmt.Errorf("%w: snapshot for vehicle %s: %w", ErrUpstreamUnavailable, v.ID, err)
	}
	return m, nil
}

// candidates enumerates the modes to evaluate in fixed priority order: the
// allowed set minus the never-profit-seeking service modes, plus the
// current mode.
func (o *Optimizer) candidates(v model.VehicleSnapshot) []model.VehicleMode {
	allowed := make(map[model.VehicleMode]bool, len(v.AllowedModes))
	for _, m := range v.AllowedModes {
		allowed[m] = true
	}
	out := make([]model.VehicleMode, 0, len(v.AllowedModes)+1)
	for _, m := range model.ModePriority {
		if m == v.Mode || (allowed[m] && m.Selectable()) {
			out = append(out, m)
		}
	}
	return out
}
