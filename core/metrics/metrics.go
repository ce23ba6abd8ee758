package metrics

import (
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

// RecommendationEvent represents one vehicle evaluation to be recorded.
type RecommendationEvent struct {
	RequestID   string
	VehicleID   string
	CurrentMode model.VehicleMode

	// BestMode is empty when the optimizer held the current mode.
	BestMode      model.VehicleMode
	PotentialGain float64

	// Confidence of the recommended entry, or of the current-mode entry
	// when no switch cleared hysteresis.
	Confidence float64
	Switched   bool
	Time       time.Time
}

// NewRecommendationEvent flattens a prediction into a recordable event.
// When no switch cleared hysteresis the event carries the confidence of the
// current-mode entry instead.
func NewRecommendationEvent(requestID string, p model.YieldPrediction, at time.Time) RecommendationEvent {
	ev := RecommendationEvent{
		RequestID:     requestID,
		VehicleID:     p.VehicleID,
		CurrentMode:   p.CurrentMode,
		PotentialGain: p.PotentialGain,
		Time:          at,
	}
	if p.Best != nil {
		ev.BestMode = p.Best.Mode
		ev.Confidence = p.Best.Confidence
		ev.Switched = true
	} else if cur := p.Recommendation(p.CurrentMode); cur != nil {
		ev.Confidence = cur.Confidence
	}
	return ev
}

// MetricsSink records recommendation outcomes for observability purposes.
type MetricsSink interface {
	RecordRecommendations(evs []RecommendationEvent) error
}

// MarketEvent captures one market snapshot served to the optimizer.
type MarketEvent struct {
	Latitude            float64
	Longitude           float64
	AccommodationDemand float64
	DeliveryDemand      float64
	RideshareDemand     float64
	RideshareSurge      float64
	DataDistanceKm      float64
	Fallback            bool
	Time                time.Time
}

// MarketRecorder records market snapshots.
type MarketRecorder interface {
	RecordMarket(ev MarketEvent) error
}

// EvaluationLatency represents the time spent evaluating one vehicle.
type EvaluationLatency struct {
	VehicleID string
	Duration  time.Duration
	Failed    bool
	Time      time.Time
}

// LatencyRecorder is implemented by sinks able to record evaluation latency.
type LatencyRecorder interface {
	RecordEvaluationLatency(lat []EvaluationLatency) error
}

// FleetSizeRecorder records the number of vehicles under evaluation.
type FleetSizeRecorder interface {
	RecordFleetSize(size int) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRecommendations([]RecommendationEvent) error { return nil }
func (NopSink) RecordMarket(MarketEvent) error                    { return nil }
func (NopSink) RecordEvaluationLatency([]EvaluationLatency) error { return nil }
func (NopSink) RecordFleetSize(int) error                         { return nil }
