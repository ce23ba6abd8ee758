package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yielddrive/fleetyield/core/fleet"
	"github.com/yielddrive/fleetyield/core/model"
)

var fleetMode string

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Inspect the registered fleet",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered vehicles",
	RunE:  runFleetLs,
}

func init() {
	fleetLsCmd.Flags().StringVar(&fleetMode, "mode", "", "only vehicles currently in this mode")
	fleetCmd.AddCommand(fleetLsCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetLs(cmd *cobra.Command, _ []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	var f fleet.Filter
	if fleetMode != "" {
		m, err := model.ParseVehicleMode(fleetMode)
		if err != nil {
			return err
		}
		f.Mode = m
	}
	return printJSON(cmd, svc.Registry().List(f))
}
