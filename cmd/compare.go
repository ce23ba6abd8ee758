package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	compareVehicle string
	compareHorizon int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare projected earnings across every permitted mode",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareVehicle, "vehicle", "", "vehicle id to evaluate")
	compareCmd.Flags().IntVar(&compareHorizon, "horizon", 24, "projection horizon in hours")
	if err := compareCmd.MarkFlagRequired("vehicle"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	cmp, err := svc.CompareModes(cmd.Context(), compareVehicle, compareHorizon)
	if err != nil {
		return fmt.Errorf("compare %s: %w", compareVehicle, err)
	}
	return printJSON(cmd, cmp)
}
