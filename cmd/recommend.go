package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recommendVehicle string
	recommendHorizon int
	recommendBest    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank candidate modes for one vehicle",
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendVehicle, "vehicle", "", "vehicle id")
	recommendCmd.Flags().IntVar(&recommendHorizon, "horizon", 4, "projection horizon in hours")
	recommendCmd.Flags().BoolVar(&recommendBest, "best", false, "print only the recommended switch (null when holding)")
	if err := recommendCmd.MarkFlagRequired("vehicle"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	pred, err := svc.YieldPrediction(cmd.Context(), recommendVehicle, recommendHorizon)
	if err != nil {
		return fmt.Errorf("recommend %s: %w", recommendVehicle, err)
	}
	if recommendBest {
		return printJSON(cmd, pred.Best)
	}
	return printJSON(cmd, pred)
}
