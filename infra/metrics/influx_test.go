package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/yielddrive/fleetyield/core/metrics"
	"github.com/yielddrive/fleetyield/core/model"
)

func TestInfluxSink_RecordRecommendations(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.RecommendationEvent{
		RequestID:     "req-1",
		VehicleID:     "veh-001",
		CurrentMode:   model.ModeIdle,
		BestMode:      model.ModeRideshare,
		PotentialGain: 2290,
		Confidence:    0.75,
		Switched:      true,
		Time:          now,
	}

	if err := sink.RecordRecommendations([]coremetrics.RecommendationEvent{ev}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("yield_recommendation").
		AddTag("vehicle_id", "veh-001").
		AddTag("request_id", "req-1").
		AddTag("current_mode", "idle").
		AddTag("switched", "true").
		AddTag("best_mode", "rideshare").
		AddField("potential_gain", 2290.0).
		AddField("confidence", 0.75).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_RecordRecommendations_HoldOmitsBestMode(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.RecommendationEvent{
		RequestID:   "req-2",
		VehicleID:   "veh-002",
		CurrentMode: model.ModeDelivery,
		Confidence:  0.6,
		Time:        now,
	}
	if err := sink.RecordRecommendations([]coremetrics.RecommendationEvent{ev}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if strings.Contains(body, "best_mode") {
		t.Errorf("held recommendation should not carry best_mode tag: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}

func TestInfluxSink_RecordMarket(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.MarketEvent{
		Latitude:            35.68,
		Longitude:           139.65,
		AccommodationDemand: 0.72,
		DeliveryDemand:      0.4,
		RideshareDemand:     0.8,
		RideshareSurge:      1.4,
		DataDistanceKm:      2.5,
		Time:                now,
	}
	if err := sink.RecordMarket(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("market_snapshot").
		AddTag("fallback", "false").
		AddField("latitude", 35.68).
		AddField("longitude", 139.65).
		AddField("accommodation_demand", 0.72).
		AddField("delivery_demand", 0.4).
		AddField("rideshare_demand", 0.8).
		AddField("rideshare_surge", 1.4).
		AddField("data_distance_km", 2.5).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_RecordEvaluationLatency(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, strings.TrimSpace(string(b)))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	lat := []coremetrics.EvaluationLatency{{
		VehicleID: "veh-001",
		Duration:  150 * time.Millisecond,
		Time:      now,
	}}
	if err := sink.RecordEvaluationLatency(lat); err != nil {
		t.Fatalf("record: %v", err)
	}
	p := write.NewPointWithMeasurement("evaluation_latency").
		AddTag("vehicle_id", "veh-001").
		AddTag("failed", "false").
		AddField("duration_ms", 150.0).
		SetTime(now)
	exp := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(bodies) != 1 || bodies[0] != exp {
		t.Errorf("bodies: %#v", bodies)
	}
}
