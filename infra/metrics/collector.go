package metrics

import (
	"context"
	"time"

	"github.com/yielddrive/fleetyield/core/events"
	coremetrics "github.com/yielddrive/fleetyield/core/metrics"
	"github.com/yielddrive/fleetyield/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// events. It stops when the context is canceled.
//
// The watch service records into its sink directly; the collector exists so
// that simulations and external consumers can mirror a bus onto a second
// sink without touching the evaluation path.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.RecommendationEvent:
					_ = sink.RecordRecommendations([]coremetrics.RecommendationEvent{
						coremetrics.NewRecommendationEvent(e.RequestID, e.Prediction, time.Now()),
					})
					if r, ok := sink.(coremetrics.LatencyRecorder); ok {
						_ = r.RecordEvaluationLatency([]coremetrics.EvaluationLatency{{
							VehicleID: e.VehicleID,
							Duration:  e.Duration,
							Time:      time.Now(),
						}})
					}
				case events.EvaluationEvent:
					if r, ok := sink.(coremetrics.FleetSizeRecorder); ok {
						_ = r.RecordFleetSize(e.Vehicles)
					}
				case events.MarketFallbackEvent:
					if r, ok := sink.(coremetrics.MarketRecorder); ok {
						_ = r.RecordMarket(coremetrics.MarketEvent{
							Latitude:       e.Latitude,
							Longitude:      e.Longitude,
							DataDistanceKm: e.DistanceKm,
							Fallback:       true,
							Time:           time.Now(),
						})
					}
				}
			}
		}
	}()
}
