package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yielddrive/fleetyield/config"
	"github.com/yielddrive/fleetyield/core/events"
	corefleet "github.com/yielddrive/fleetyield/core/fleet"
	"github.com/yielddrive/fleetyield/core/market"
	coremetrics "github.com/yielddrive/fleetyield/core/metrics"
	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/core/predict"
	"github.com/yielddrive/fleetyield/core/schedule"
	"github.com/yielddrive/fleetyield/core/yield"
	"github.com/yielddrive/fleetyield/core/yield/logging"
	infrafleet "github.com/yielddrive/fleetyield/infra/fleet"
	"github.com/yielddrive/fleetyield/infra/logger"
	"github.com/yielddrive/fleetyield/infra/metrics"
	"github.com/yielddrive/fleetyield/internal/eventbus"
)

// Service wires the analyzer, predictor, optimizer, fleet registry,
// metrics sinks and decision log behind the four yield operations and the
// fleet watch loop.
type Service struct {
	cfg     *config.Config
	reg     corefleet.Registry
	windows map[string][]schedule.Window

	source  market.Source
	opt     *yield.Optimizer
	planner *schedule.Planner

	sink  coremetrics.MetricsSink
	store logging.LogStore
	bus   eventbus.EventBus
	log   logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	analyzer, err := market.NewAnalyzer(cfg.Market)
	if err != nil {
		return nil, fmt.Errorf("market analyzer: %w", err)
	}
	predictor, err := predict.NewPredictor(cfg.Predict)
	if err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	opt, err := yield.NewOptimizer(analyzer, predictor, cfg.Yield)
	if err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}
	planner, err := schedule.NewPlanner(opt, cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := cfg.DecisionLog.Build()
	if err != nil {
		return nil, fmt.Errorf("decision log: %w", err)
	}

	reg := corefleet.NewMemoryRegistry()
	windows := map[string][]schedule.Window{}
	if cfg.Fleet.Path != "" {
		f, err := infrafleet.Load(cfg.Fleet.Path)
		if err != nil {
			return nil, err
		}
		snaps, err := f.Snapshots()
		if err != nil {
			return nil, err
		}
		for _, v := range snaps {
			if err := reg.Put(v); err != nil {
				return nil, fmt.Errorf("register %s: %w", v.ID, err)
			}
		}
		windows = f.Windows()
	}

	return &Service{
		cfg:     cfg,
		reg:     reg,
		windows: windows,
		source:  analyzer,
		opt:     opt,
		planner: planner,
		sink:    sink,
		store:   store,
		bus:     eventbus.New(),
		log:     logg,
	}, nil
}

// Bus exposes the event bus so harnesses can subscribe or bridge it into
// additional sinks.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// Registry exposes the fleet registry.
func (s *Service) Registry() corefleet.Registry { return s.reg }

// YieldPrediction ranks every candidate mode for the vehicle over the given
// horizon. The evaluation is recorded in the metrics sink and appended to
// the decision log.
func (s *Service) YieldPrediction(ctx context.Context, vehicleID string, horizonHours int) (model.YieldPrediction, error) {
	requestID := uuid.NewString()
	start := time.Now()
	v, err := s.reg.Get(vehicleID)
	if err != nil {
		return model.YieldPrediction{}, err
	}
	pred, mkt, err := s.evaluate(ctx, requestID, v, horizonHours, start)
	took := time.Since(start)
	lats := []coremetrics.EvaluationLatency{{VehicleID: vehicleID, Duration: took, Failed: err != nil, Time: time.Now()}}
	if err != nil {
		s.recordBatch(nil, lats)
		return model.YieldPrediction{}, err
	}
	s.recordBatch([]coremetrics.RecommendationEvent{coremetrics.NewRecommendationEvent(requestID, pred, time.Now())}, lats)
	s.appendLog(ctx, requestID, mkt, pred, horizonHours)
	return pred, nil
}

// BestRecommendation returns the switch worth making right now, or nil when
// the vehicle should stay in its current mode. The horizon is the watch
// section's.
func (s *Service) BestRecommendation(ctx context.Context, vehicleID string) (*model.ModeRecommendation, error) {
	pred, err := s.YieldPrediction(ctx, vehicleID, s.cfg.Watch.HorizonHours)
	if err != nil {
		return nil, err
	}
	return pred.Best, nil
}

// MarketData returns the market snapshot for a location at the current
// sampling bucket.
func (s *Service) MarketData(ctx context.Context, lat, lng float64) (model.MarketCondition, error) {
	return s.fetchMarket(lat, lng, time.Now())
}

// CompareModes projects total revenue per candidate mode over the horizon.
func (s *Service) CompareModes(ctx context.Context, vehicleID string, horizonHours int) (model.ModeComparison, error) {
	v, err := s.reg.Get(vehicleID)
	if err != nil {
		return model.ModeComparison{}, err
	}
	now := time.Now()
	v.AllowedModes = schedule.EffectiveModes(v, s.windows[v.ID], now)
	m, err := s.fetchMarket(v.Latitude, v.Longitude, now)
	if err != nil {
		return model.ModeComparison{}, err
	}
	return s.opt.CompareWith(v, m, horizonHours)
}

// DayPlan builds tomorrow-style slot plans for one vehicle.
func (s *Service) DayPlan(ctx context.Context, vehicleID string, date time.Time) ([]schedule.PlanEntry, error) {
	v, err := s.reg.Get(vehicleID)
	if err != nil {
		return nil, err
	}
	return s.planner.DayPlan(v, s.windows[v.ID], date)
}

// QueryLogs reads back decision log records.
func (s *Service) QueryLogs(ctx context.Context, q logging.LogQuery) ([]logging.LogRecord, error) {
	return s.store.Query(ctx, q)
}

// Watch evaluates the whole fleet on the configured cadence until the
// context is canceled. The first sweep runs immediately.
func (s *Service) Watch(ctx context.Context) error {
	if port := s.cfg.Metrics.PrometheusPort; port != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, port); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	ticker := time.NewTicker(s.cfg.Watch.Interval())
	defer ticker.Stop()
	s.EvaluateFleet(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.EvaluateFleet(ctx)
		}
	}
}

// EvaluateFleet runs one sweep over every registered vehicle and returns
// the sweep summary. Per-vehicle failures are logged and counted, never
// fatal to the sweep.
func (s *Service) EvaluateFleet(ctx context.Context) events.EvaluationEvent {
	requestID := uuid.NewString()
	start := time.Now()
	vehicles := s.reg.List(corefleet.Filter{})
	sum := events.EvaluationEvent{RequestID: requestID, Vehicles: len(vehicles)}

	evs := make([]coremetrics.RecommendationEvent, 0, len(vehicles))
	lats := make([]coremetrics.EvaluationLatency, 0, len(vehicles))
	for _, v := range vehicles {
		t0 := time.Now()
		pred, mkt, err := s.evaluate(ctx, requestID, v, s.cfg.Watch.HorizonHours, t0)
		took := time.Since(t0)
		lats = append(lats, coremetrics.EvaluationLatency{VehicleID: v.ID, Duration: took, Failed: err != nil, Time: time.Now()})
		if err != nil {
			sum.Failures++
			s.log.Warnf("evaluate %s: %v", v.ID, err)
			continue
		}
		if pred.Best != nil {
			sum.Switches++
		}
		evs = append(evs, coremetrics.NewRecommendationEvent(requestID, pred, time.Now()))
		s.appendLog(ctx, requestID, mkt, pred, s.cfg.Watch.HorizonHours)
	}
	sum.Duration = time.Since(start)

	s.recordBatch(evs, lats)
	if r, ok := s.sink.(coremetrics.FleetSizeRecorder); ok {
		if err := r.RecordFleetSize(len(vehicles)); err != nil {
			s.log.Warnf("fleet size record: %v", err)
		}
	}
	s.bus.Publish(sum)
	s.log.Infow("fleet sweep done", map[string]any{
		"request_id": requestID,
		"vehicles":   sum.Vehicles,
		"switches":   sum.Switches,
		"failures":   sum.Failures,
		"took":       sum.Duration.String(),
	})
	return sum
}

// Close releases the decision log and the event bus.
func (s *Service) Close() error {
	s.bus.Close()
	return s.store.Close()
}

// evaluate runs one vehicle through windows, market fetch and the optimizer
// and publishes the recommendation event. Metrics sink recording is left to
// the caller so sweeps can batch it.
func (s *Service) evaluate(ctx context.Context, requestID string, v model.VehicleSnapshot, horizonHours int, at time.Time) (model.YieldPrediction, model.MarketCondition, error) {
	v.AllowedModes = schedule.EffectiveModes(v, s.windows[v.ID], at)
	m, err := s.fetchMarket(v.Latitude, v.Longitude, at)
	if err != nil {
		return model.YieldPrediction{}, model.MarketCondition{}, err
	}
	pred, err := s.opt.RecommendWith(v, m, horizonHours)
	if err != nil {
		return model.YieldPrediction{}, model.MarketCondition{}, err
	}
	s.bus.Publish(events.RecommendationEvent{
		RequestID:  requestID,
		VehicleID:  v.ID,
		Prediction: pred,
		Duration:   time.Since(at),
	})
	return pred, m, nil
}

// fetchMarket serves a snapshot, publishing a fallback event and recording
// the snapshot when a sink cares about market data.
func (s *Service) fetchMarket(lat, lng float64, at time.Time) (model.MarketCondition, error) {
	m, err := s.source.Snapshot(lat, lng, at)
	if err != nil {
		return model.MarketCondition{}, err
	}
	if m.Fallback {
		s.bus.Publish(events.MarketFallbackEvent{Latitude: lat, Longitude: lng, DistanceKm: m.DataDistanceKm})
	}
	if r, ok := s.sink.(coremetrics.MarketRecorder); ok {
		ev := coremetrics.MarketEvent{
			Latitude:            m.Latitude,
			Longitude:           m.Longitude,
			AccommodationDemand: m.AccommodationDemand,
			DeliveryDemand:      m.DeliveryDemand,
			RideshareDemand:     m.RideshareDemand,
			RideshareSurge:      m.RideshareSurge,
			DataDistanceKm:      m.DataDistanceKm,
			Fallback:            m.Fallback,
			Time:                m.Timestamp,
		}
		if err := r.RecordMarket(ev); err != nil {
			s.log.Warnf("market record: %v", err)
		}
	}
	return m, nil
}

func (s *Service) recordBatch(evs []coremetrics.RecommendationEvent, lats []coremetrics.EvaluationLatency) {
	if len(evs) > 0 {
		if err := s.sink.RecordRecommendations(evs); err != nil {
			s.log.Warnf("metrics sink: %v", err)
		}
	}
	if len(lats) > 0 {
		if r, ok := s.sink.(coremetrics.LatencyRecorder); ok {
			if err := r.RecordEvaluationLatency(lats); err != nil {
				s.log.Warnf("latency record: %v", err)
			}
		}
	}
}

func (s *Service) appendLog(ctx context.Context, requestID string, m model.MarketCondition, pred model.YieldPrediction, horizonHours int) {
	if err := s.store.Append(ctx, logging.NewRecord(requestID, m, pred, horizonHours)); err != nil {
		s.log.Warnf("decision log: %v", err)
	}
}
