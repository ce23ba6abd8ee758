package schedule

import (
	"testing"
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

func TestWindowValidate(t *testing.T) {
	good := Window{Day: time.Monday, Start: "09:00", End: "18:00", Mode: model.ModeRideshare}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	cases := map[string]Window{
		"bad day":    {Day: 7, Start: "09:00", End: "18:00", Mode: model.ModeRideshare},
		"bad clock":  {Day: time.Monday, Start: "9am", End: "18:00", Mode: model.ModeRideshare},
		"empty span": {Day: time.Monday, Start: "18:00", End: "09:00", Mode: model.ModeRideshare},
		"bad mode":   {Day: time.Monday, Start: "09:00", End: "18:00", Mode: "taxi"},
	}
	for name, w := range cases {
		if err := w.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestWindowActiveAt(t *testing.T) {
	w := Window{Day: time.Monday, Start: "09:00", End: "17:00", Mode: model.ModeRideshare}
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if !w.ActiveAt(monday.Add(9 * time.Hour)) {
		t.Errorf("start should be inclusive")
	}
	if w.ActiveAt(monday.Add(17 * time.Hour)) {
		t.Errorf("end should be exclusive")
	}
	if w.ActiveAt(monday.Add(8*time.Hour + 59*time.Minute)) {
		t.Errorf("before start should be inactive")
	}
	if w.ActiveAt(monday.Add(24*time.Hour + 12*time.Hour)) {
		t.Errorf("wrong weekday should be inactive")
	}
	w.Disabled = true
	if w.ActiveAt(monday.Add(12 * time.Hour)) {
		t.Errorf("disabled window should be inactive")
	}
}

func TestEffectiveModesPassthroughWithoutWindows(t *testing.T) {
	v := model.VehicleSnapshot{AllowedModes: []model.VehicleMode{model.ModeDelivery, model.ModeRideshare}}
	out := EffectiveModes(v, nil, time.Now())
	if len(out) != 2 {
		t.Fatalf("expected passthrough, got %v", out)
	}
}

func TestEffectiveModesRestricts(t *testing.T) {
	v := model.VehicleSnapshot{AllowedModes: []model.VehicleMode{model.ModeDelivery, model.ModeRideshare, model.ModeAccommodation}}
	windows := []Window{
		{Day: time.Monday, Start: "09:00", End: "17:00", Mode: model.ModeRideshare},
		{Day: time.Monday, Start: "09:00", End: "12:00", Mode: model.ModeDelivery},
	}
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	out := EffectiveModes(v, windows, monday.Add(10*time.Hour))
	if len(out) != 2 {
		t.Fatalf("expected rideshare+delivery at 10:00, got %v", out)
	}
	out = EffectiveModes(v, windows, monday.Add(14*time.Hour))
	if len(out) != 1 || out[0] != model.ModeRideshare {
		t.Fatalf("expected only rideshare at 14:00, got %v", out)
	}
	out = EffectiveModes(v, windows, monday.Add(20*time.Hour))
	if len(out) != 0 {
		t.Fatalf("expected nothing active at 20:00, got %v", out)
	}
}

func TestEffectiveModesPriorityOrder(t *testing.T) {
	v := model.VehicleSnapshot{AllowedModes: []model.VehicleMode{model.ModeAccommodation, model.ModeRideshare}}
	windows := []Window{
		{Day: time.Monday, Start: "00:00", End: "23:59", Mode: model.ModeAccommodation, Priority: 1},
		{Day: time.Monday, Start: "00:00", End: "23:59", Mode: model.ModeRideshare, Priority: 5},
	}
	monday := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	out := EffectiveModes(v, windows, monday)
	if len(out) != 2 || out[0] != model.ModeRideshare {
		t.Fatalf("expected rideshare first by window priority, got %v", out)
	}
}
