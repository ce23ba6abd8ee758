package logging

import (
	"context"
	"testing"
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

func TestSQLiteStore_PersistQuery(t *testing.T) {
	store, err := NewSQLiteStore("file:test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	rec := NewRecord("req-1", sampleMarket(), samplePrediction(true), 4)
	if err := store.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	out, err := store.Query(context.Background(), LogQuery{VehicleID: "veh-001"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].BestMode != model.ModeRideshare {
		t.Fatalf("expected rideshare pick, got %s", out[0].BestMode)
	}
}

func TestSQLiteStore_FiltersByModeAndWindow(t *testing.T) {
	store, err := NewSQLiteStore("file:test_filters.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		m := sampleMarket()
		m.Timestamp = base.Add(time.Duration(i) * time.Hour)
		rec := NewRecord("req", m, samplePrediction(i != 2), 1)
		if err := store.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	out, err := store.Query(context.Background(), LogQuery{BestMode: model.ModeRideshare})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rideshare picks, got %d", len(out))
	}
	out, err = store.Query(context.Background(), LogQuery{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record in window, got %d", len(out))
	}
}
