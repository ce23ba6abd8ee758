package market

import (
	"time"

	"github.com/yielddrive/fleetyield/core/model"
)

// Source produces a market snapshot for a location and time. The optimizer
// consumes this interface so tests and replays can substitute recorded
// snapshots for the live analyzer. Implementations must be safe for
// concurrent use.
type Source interface {
	Snapshot(lat, lng float64, at time.Time) (model.MarketCondition, error)
}
