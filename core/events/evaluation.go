package events

import "time"

// EvaluationEvent summarizes one sweep over the fleet.
type EvaluationEvent struct {
	RequestID string
	Vehicles  int
	Switches  int
	Failures  int
	Duration  time.Duration
}
