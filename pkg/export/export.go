package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/yielddrive/fleetyield/core/schedule"
)

// WriteJSON writes the day plan to w in JSON format.
func WriteJSON(w io.Writer, entries []schedule.PlanEntry) error {
	enc := json.NewEncoder(w)
	return enc.Encode(entries)
}

// WriteCSV writes the day plan to w in CSV format.
func WriteCSV(w io.Writer, entries []schedule.PlanEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"vehicle_id", "timeslot", "mode", "hourly_rate", "net_benefit", "switch"}); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.VehicleID,
			e.TimeSlot.Format(time.RFC3339),
			string(e.Mode),
			strconv.FormatFloat(e.HourlyRate, 'f', -1, 64),
			strconv.FormatFloat(e.NetBenefit, 'f', -1, 64),
			strconv.FormatBool(e.Switch),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
