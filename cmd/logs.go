package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yielddrive/fleetyield/core/model"
	"github.com/yielddrive/fleetyield/core/yield/logging"
)

var (
	logsVehicle  string
	logsSince    time.Duration
	logsBestMode string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Query past yield decisions",
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().StringVar(&logsVehicle, "vehicle", "", "only decisions for this vehicle id")
	logsCmd.Flags().DurationVar(&logsSince, "since", 24*time.Hour, "how far back to search")
	logsCmd.Flags().StringVar(&logsBestMode, "best-mode", "", "only decisions recommending this mode")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, _ []string) error {
	q := logging.LogQuery{
		Start:     time.Now().Add(-logsSince),
		VehicleID: logsVehicle,
	}
	if logsBestMode != "" {
		m, err := model.ParseVehicleMode(logsBestMode)
		if err != nil {
			return err
		}
		q.BestMode = m
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	recs, err := svc.QueryLogs(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("query logs: %w", err)
	}
	return printJSON(cmd, recs)
}
