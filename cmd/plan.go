package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yielddrive/fleetyield/pkg/export"
)

var (
	planVehicle string
	planDate    string
	planFormat  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a slot-by-slot mode plan for one day",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planVehicle, "vehicle", "", "vehicle id to plan for")
	planCmd.Flags().StringVar(&planDate, "date", "", "day to plan, YYYY-MM-DD (default tomorrow UTC)")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format: json or csv")
	if err := planCmd.MarkFlagRequired("vehicle"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	date := time.Now().UTC().AddDate(0, 0, 1)
	if planDate != "" {
		var err error
		date, err = time.Parse("2006-01-02", planDate)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", planDate, err)
		}
	}

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	entries, err := svc.DayPlan(cmd.Context(), planVehicle, date)
	if err != nil {
		return fmt.Errorf("plan %s: %w", planVehicle, err)
	}

	switch planFormat {
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), entries)
	case "csv":
		return export.WriteCSV(cmd.OutOrStdout(), entries)
	default:
		return fmt.Errorf("unknown format %q", planFormat)
	}
}
