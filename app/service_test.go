package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yielddrive/fleetyield/config"
	"github.com/yielddrive/fleetyield/core/events"
	corefleet "github.com/yielddrive/fleetyield/core/fleet"
	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/core/yield/logging"
)

const testFleet = `
vehicles:
  - id: veh-001
    current_mode: idle
    allowed_modes: [accommodation, delivery, rideshare]
    battery_level: 80
    latitude: 35.6762
    longitude: 139.6503
  - id: veh-002
    current_mode: delivery
    current_interior_mode: cargo
    allowed_modes: [delivery, idle]
    current_hourly_rate: 900
    battery_level: 55
    latitude: 35.70
    longitude: 139.70
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	fleetPath := filepath.Join(dir, "fleet.yaml")
	if err := os.WriteFile(fleetPath, []byte(testFleet), 0o644); err != nil {
		t.Fatalf("write fleet: %v", err)
	}
	cfg := config.Default()
	cfg.Fleet.Path = fleetPath
	cfg.DecisionLog.Path = filepath.Join(dir, "decisions.log")
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return svc
}

func TestYieldPredictionAppendsLog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pred, err := svc.YieldPrediction(ctx, "veh-001", 4)
	if err != nil {
		t.Fatalf("prediction: %v", err)
	}
	if pred.VehicleID != "veh-001" || len(pred.Recommendations) == 0 {
		t.Fatalf("unexpected prediction: %+v", pred)
	}

	recs, err := svc.QueryLogs(ctx, logging.LogQuery{VehicleID: "veh-001"})
	if err != nil {
		t.Fatalf("query logs: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 log record got %d", len(recs))
	}
	if recs[0].RequestID == "" || recs[0].HorizonHours != 4 {
		t.Errorf("log record not filled: %+v", recs[0])
	}
}

func TestYieldPredictionUnknownVehicle(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.YieldPrediction(context.Background(), "ghost", 4)
	if !errors.Is(err, corefleet.ErrUnknownVehicle) {
		t.Fatalf("expected unknown vehicle error, got %v", err)
	}
}

func TestYieldPredictionRejectsBadHorizon(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.YieldPrediction(context.Background(), "veh-001", 0)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestBestRecommendation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	best, err := svc.BestRecommendation(ctx, "veh-001")
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	pred, err := svc.YieldPrediction(ctx, "veh-001", svc.cfg.Watch.HorizonHours)
	if err != nil {
		t.Fatalf("prediction: %v", err)
	}
	if (best == nil) != (pred.Best == nil) {
		t.Errorf("best mismatch: %v vs %v", best, pred.Best)
	}
	if best != nil && best.Mode != pred.Best.Mode {
		t.Errorf("best mode mismatch: %v vs %v", best.Mode, pred.Best.Mode)
	}
}

func TestMarketDataFallbackOutsideCoverage(t *testing.T) {
	svc := newTestService(t)
	sub := svc.Bus().Subscribe()
	defer svc.Bus().Unsubscribe(sub)

	m, err := svc.MarketData(context.Background(), 0, -30)
	if err != nil {
		t.Fatalf("market data: %v", err)
	}
	if !m.Fallback {
		t.Fatalf("expected fallback snapshot, got %+v", m)
	}

	select {
	case ev := <-sub:
		fb, ok := ev.(events.MarketFallbackEvent)
		if !ok {
			t.Fatalf("expected fallback event got %T", ev)
		}
		if fb.DistanceKm <= 0 {
			t.Errorf("fallback distance: %v", fb.DistanceKm)
		}
	case <-time.After(time.Second):
		t.Fatalf("no fallback event published")
	}
}

func TestMarketDataRejectsBadCoordinates(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.MarketData(context.Background(), 91, 0)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCompareModes(t *testing.T) {
	svc := newTestService(t)
	cmp, err := svc.CompareModes(context.Background(), "veh-001", 6)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if cmp.HorizonHours != 6 || len(cmp.Modes) == 0 {
		t.Fatalf("unexpected comparison: %+v", cmp)
	}
	if cmp.OptimalMode == "" {
		t.Errorf("optimal mode unset")
	}
}

func TestEvaluateFleetSweep(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sum := svc.EvaluateFleet(ctx)
	if sum.Vehicles != 2 {
		t.Fatalf("expected 2 vehicles got %d", sum.Vehicles)
	}
	if sum.Failures != 0 {
		t.Fatalf("unexpected failures: %d", sum.Failures)
	}
	if sum.RequestID == "" {
		t.Errorf("sweep request id missing")
	}

	recs, err := svc.QueryLogs(ctx, logging.LogQuery{})
	if err != nil {
		t.Fatalf("query logs: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("expected 2 log records got %d", len(recs))
	}
	// both log records share the sweep's request id
	if recs[0].RequestID != sum.RequestID || recs[1].RequestID != sum.RequestID {
		t.Errorf("sweep id not propagated: %+v", recs)
	}
}

func TestDayPlanSlots(t *testing.T) {
	svc := newTestService(t)
	entries, err := svc.DayPlan(context.Background(), "veh-002", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(entries) != 24 {
		t.Fatalf("expected 24 slots got %d", len(entries))
	}
	if entries[0].VehicleID != "veh-002" {
		t.Errorf("plan vehicle: %+v", entries[0])
	}
}
