package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/yielddrive/fleetyield/core/metrics"
	"github.com/yielddrive/fleetyield/infra/logger"
)

// InfluxSink writes evaluation events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRecommendations writes one point per evaluated vehicle.
func (s *InfluxSink) RecordRecommendations(evs []coremetrics.RecommendationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, ev := range evs {
		p := write.NewPointWithMeasurement("yield_recommendation").
			AddTag("vehicle_id", ev.VehicleID).
			AddTag("request_id", ev.RequestID).
			AddTag("current_mode", string(ev.CurrentMode)).
			AddTag("switched", strconv.FormatBool(ev.Switched))
		if ev.BestMode != "" {
			p = p.AddTag("best_mode", string(ev.BestMode))
		}
		p = p.AddField("potential_gain", round3(ev.PotentialGain)).
			AddField("confidence", round3(ev.Confidence)).
			SetTime(ev.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordMarket writes a market snapshot point.
func (s *InfluxSink) RecordMarket(ev coremetrics.MarketEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("market_snapshot").
		AddTag("fallback", strconv.FormatBool(ev.Fallback)).
		AddField("latitude", round3(ev.Latitude)).
		AddField("longitude", round3(ev.Longitude)).
		AddField("accommodation_demand", round3(ev.AccommodationDemand)).
		AddField("delivery_demand", round3(ev.DeliveryDemand)).
		AddField("rideshare_demand", round3(ev.RideshareDemand)).
		AddField("rideshare_surge", round3(ev.RideshareSurge)).
		AddField("data_distance_km", round3(ev.DataDistanceKm)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordEvaluationLatency writes per-vehicle evaluation durations.
func (s *InfluxSink) RecordEvaluationLatency(lat []coremetrics.EvaluationLatency) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, l := range lat {
		p := write.NewPointWithMeasurement("evaluation_latency").
			AddTag("vehicle_id", l.VehicleID).
			AddTag("failed", strconv.FormatBool(l.Failed)).
			AddField("duration_ms", round3(l.Duration.Seconds()*1000)).
			SetTime(l.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordFleetSize writes the fleet size as a single gauge-like point.
func (s *InfluxSink) RecordFleetSize(size int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("fleet_size").
		AddField("vehicles", size).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
