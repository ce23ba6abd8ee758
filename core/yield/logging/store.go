package logging

import (
	"context"
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

// LogRecord captures one yield evaluation and its outcome.
type LogRecord struct {
	Timestamp     time.Time             `json:"timestamp"`
	RequestID     string                `json:"request_id"`
	VehicleID     string                `json:"vehicle_id"`
	HorizonHours  int                   `json:"horizon_hours"`
	CurrentMode   model.VehicleMode     `json:"current_mode"`
	BestMode      model.VehicleMode     `json:"best_mode,omitempty"`
	PotentialGain float64               `json:"potential_gain"`
	Market        model.MarketCondition `json:"market"`
	Prediction    model.YieldPrediction `json:"prediction"`
}

// NewRecord flattens a prediction into a LogRecord. BestMode stays empty
// when the optimizer held the current mode.
func NewRecord(requestID string, m model.MarketCondition, p model.YieldPrediction, horizonHours int) LogRecord {
	rec := LogRecord{
		Timestamp:     m.Timestamp,
		RequestID:     requestID,
		VehicleID:     p.VehicleID,
		HorizonHours:  horizonHours,
		CurrentMode:   p.CurrentMode,
		PotentialGain: p.PotentialGain,
		Market:        m,
		Prediction:    p,
	}
	if p.Best != nil {
		rec.BestMode = p.Best.Mode
	}
	return rec
}

// LogQuery defines filters for retrieving records.
type LogQuery struct {
	Start     time.Time
	End       time.Time
	VehicleID string
	BestMode  model.VehicleMode
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}
