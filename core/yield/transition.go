package yield

import "github.com/yielddrive/fleetyield/core/model"

// Transition is one undirected interior change entry: reconfiguring between
// From and To keeps the vehicle offline for Minutes, in either direction.
type Transition struct {
	From    model.InteriorMode `json:"from"`
	To      model.InteriorMode `json:"to"`
	Minutes float64            `json:"minutes"`
}

// DefaultTransitions is the tuned interior change table.
func DefaultTransitions() []Transition {
	return []Transition{
		{From: model.InteriorStandard, To: model.InteriorBed, Minutes: 30},
		{From: model.InteriorStandard, To: model.InteriorCargo, Minutes: 20},
		{From: model.InteriorStandard, To: model.InteriorPassenger, Minutes: 15},
		{From: model.InteriorStandard, To: model.InteriorOffice, Minutes: 25},
		{From: model.InteriorBed, To: model.InteriorCargo, Minutes: 45},
		{From: model.InteriorBed, To: model.InteriorPassenger, Minutes: 40},
		{From: model.InteriorCargo, To: model.InteriorPassenger, Minutes: 25},
	}
}

type interiorPair struct {
	a, b model.InteriorMode
}

func pairKey(x, y model.InteriorMode) interiorPair {
	if x > y {
		x, y = y, x
	}
	return interiorPair{a: x, b: y}
}

// TransitionTable resolves interior reconfiguration downtime. Lookups are
// symmetric. A pair without a direct entry routes through standard as a
// waypoint, summing both legs; defaultMinutes covers pairs with no route.
type TransitionTable struct {
	minutes        map[interiorPair]float64
	defaultMinutes float64
}

// NewTransitionTable indexes the entries for symmetric lookup.
func NewTransitionTable(entries []Transition, defaultMinutes float64) TransitionTable {
	m := make(map[interiorPair]float64, len(entries))
	for _, e := range entries {
		m[pairKey(e.From, e.To)] = e.Minutes
	}
	return TransitionTable{minutes: m, defaultMinutes: defaultMinutes}
}

// Minutes returns the downtime to change between two interiors. Zero when
// they are identical.
func (t TransitionTable) Minutes(from, to model.InteriorMode) float64 {
	if from == to {
		return 0
	}
	if v, ok := t.minutes[pairKey(from, to)]; ok {
		return v
	}
	leg1, ok1 := t.minutes[pairKey(from, model.InteriorStandard)]
	leg2, ok2 := t.minutes[pairKey(model.InteriorStandard, to)]
	if ok1 && ok2 {
		return leg1 + leg2
	}
	return t.defaultMinutes
}
