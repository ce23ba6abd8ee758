package scenarios

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yielddrive/fleetyield/core/events"
	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/core/predict"
	"github.com/yielddrive/fleetyield/core/schedule"
	"github.com/yielddrive/fleetyield/core/yield"
	"github.com/yielddrive/fleetyield/infra/metrics"
	"github.com/yielddrive/fleetyield/internal/eventbus"
)

// RunScenario evaluates every vehicle of a scenario against its pinned
// market snapshot and checks the expected outcomes. Each evaluation is also
// published on an event bus feeding a Prometheus sink, so the collector
// bridge runs under every scenario.
func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := eventbus.New()
	defer bus.Close()
	metrics.StartEventCollector(ctx, bus, sink)

	predictor, err := predict.NewPredictor(predict.Config{})
	if err != nil {
		t.Fatalf("predictor: %v", err)
	}
	opt, err := yield.NewOptimizer(nil, predictor, yield.Config{})
	if err != nil {
		t.Fatalf("optimizer: %v", err)
	}

	switched := 0
	for _, def := range sc.Vehicles {
		v, err := def.ToModel()
		if err != nil {
			t.Fatalf("vehicle %s: %v", def.ID, err)
		}
		v.AllowedModes = schedule.EffectiveModes(v, def.Schedule, sc.At)
		m := sc.Market.ToModel(v.Latitude, v.Longitude, sc.At)

		pred, err := opt.RecommendWith(v, m, sc.HorizonHours)
		if err != nil {
			t.Fatalf("recommend %s: %v", v.ID, err)
		}
		bus.Publish(events.RecommendationEvent{RequestID: sc.Name, VehicleID: v.ID, Prediction: pred})
		checkBounds(t, pred, opt.Config().HysteresisMargin)

		if pred.Best != nil {
			switched++
		}
		if want, ok := sc.Expected.BestModes[v.ID]; ok {
			got := ""
			if pred.Best != nil {
				got = string(pred.Best.Mode)
			}
			if got != want {
				t.Errorf("vehicle %s expected best mode %q, got %q", v.ID, want, got)
			}
		}
		if want, ok := sc.Expected.Recommendations[v.ID]; ok && len(pred.Recommendations) != want {
			t.Errorf("vehicle %s expected %d recommendations, got %d", v.ID, want, len(pred.Recommendations))
		}
		if want, ok := sc.Expected.OptimalModes[v.ID]; ok {
			cmp, err := opt.CompareWith(v, m, sc.HorizonHours)
			if err != nil {
				t.Fatalf("compare %s: %v", v.ID, err)
			}
			if string(cmp.OptimalMode) != want {
				t.Errorf("vehicle %s expected optimal mode %q, got %q", v.ID, want, cmp.OptimalMode)
			}
		}
	}

	if switched != sc.Expected.Switched {
		t.Errorf("scenario %s expected %d switches, got %d", sc.Name, sc.Expected.Switched, switched)
	}

	waitForSeries(t, reg, "yield_recommendations_total", len(sc.Vehicles))
}

// checkBounds enforces the invariants every prediction must satisfy, no
// matter what the scenario file asserts.
func checkBounds(t *testing.T, pred model.YieldPrediction, margin float64) {
	t.Helper()
	for _, r := range pred.Recommendations {
		if r.HourlyRate < 0 {
			t.Errorf("vehicle %s mode %s rate %v is negative", pred.VehicleID, r.Mode, r.HourlyRate)
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("vehicle %s mode %s confidence %v outside [0,1]", pred.VehicleID, r.Mode, r.Confidence)
		}
	}
	if pred.PotentialGain < 0 {
		t.Errorf("vehicle %s potential gain %v is negative", pred.VehicleID, pred.PotentialGain)
	}
	if pred.Best == nil && pred.PotentialGain != 0 {
		t.Errorf("vehicle %s holds yet reports gain %v", pred.VehicleID, pred.PotentialGain)
	}
	if pred.Best != nil {
		cur := currentNet(pred)
		if pred.Best.NetBenefit < cur+margin {
			t.Errorf("vehicle %s switch to %s clears only %v over %v, margin %v",
				pred.VehicleID, pred.Best.Mode, pred.Best.NetBenefit, cur, margin)
		}
	}
}

func currentNet(pred model.YieldPrediction) float64 {
	for _, r := range pred.Recommendations {
		if r.Mode == pred.CurrentMode {
			return r.NetBenefit
		}
	}
	return 0
}

// waitForSeries polls the registry until the metric family carries the
// expected number of series. Event delivery is asynchronous.
func waitForSeries(t *testing.T, reg prometheus.Gatherer, name string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := testutil.GatherAndCount(reg, name)
		if err != nil {
			t.Fatalf("gather %s: %v", name, err)
		}
		if got == want {
			return
		}
		if time.Now().After(deadline) {
			t.Errorf("expected %d %s series, got %d", want, name, got)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}
