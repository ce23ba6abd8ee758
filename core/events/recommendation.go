package events

import (
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

// RecommendationEvent is published after each vehicle evaluation.
type RecommendationEvent struct {
	RequestID  string
	VehicleID  string
	Prediction model.YieldPrediction
	Duration   time.Duration
}
