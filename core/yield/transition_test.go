package yield

import (
	"testing"

	"github.com/yielddrive/fleetyield/core/model"
)

func defaultTable() TransitionTable {
	return NewTransitionTable(DefaultTransitions(), 30)
}

func TestTransitionMinutesSymmetric(t *testing.T) {
	tab := defaultTable()
	if got := tab.Minutes(model.InteriorBed, model.InteriorCargo); got != 45 {
		t.Fatalf("expected 45 got %v", got)
	}
	if got := tab.Minutes(model.InteriorCargo, model.InteriorBed); got != 45 {
		t.Fatalf("expected symmetric 45 got %v", got)
	}
}

func TestTransitionMinutesSameInterior(t *testing.T) {
	if got := defaultTable().Minutes(model.InteriorBed, model.InteriorBed); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
}

func TestTransitionMinutesStandardWaypoint(t *testing.T) {
	// bed<->office has no direct entry: bed->standard (30) + standard->office (25).
	if got := defaultTable().Minutes(model.InteriorBed, model.InteriorOffice); got != 55 {
		t.Fatalf("expected 55 got %v", got)
	}
	if got := defaultTable().Minutes(model.InteriorOffice, model.InteriorBed); got != 55 {
		t.Fatalf("expected symmetric 55 got %v", got)
	}
}

func TestTransitionMinutesDefault(t *testing.T) {
	tab := NewTransitionTable([]Transition{
		{From: model.InteriorBed, To: model.InteriorCargo, Minutes: 45},
	}, 30)
	if got := tab.Minutes(model.InteriorPassenger, model.InteriorOffice); got != 30 {
		t.Fatalf("expected default 30 got %v", got)
	}
}

func TestConfigValidateRejectsBadTable(t *testing.T) {
	cfg := Config{Transitions: []Transition{
		{From: model.InteriorBed, To: model.InteriorBed, Minutes: 10},
	}}
	cfg.SetDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected no-op transition to be rejected")
	}

	cfg = Config{Transitions: []Transition{
		{From: model.InteriorBed, To: model.InteriorCargo, Minutes: 45},
		{From: model.InteriorCargo, To: model.InteriorBed, Minutes: 40},
	}}
	cfg.SetDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected duplicate pair to be rejected")
	}

	cfg = Config{Transitions: []Transition{
		{From: model.InteriorBed, To: model.InteriorCargo, Minutes: -5},
	}}
	cfg.SetDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative minutes to be rejected")
	}
}
