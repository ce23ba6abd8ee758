package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	marketLat float64
	marketLng float64
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show current market conditions at a position",
	RunE:  runMarket,
}

func init() {
	marketCmd.Flags().Float64Var(&marketLat, "lat", 0, "latitude in decimal degrees")
	marketCmd.Flags().Float64Var(&marketLng, "lng", 0, "longitude in decimal degrees")
	if err := marketCmd.MarkFlagRequired("lat"); err != nil {
		panic(err)
	}
	if err := marketCmd.MarkFlagRequired("lng"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, _ []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	m, err := svc.MarketData(cmd.Context(), marketLat, marketLng)
	if err != nil {
		return fmt.Errorf("market at (%.4f, %.4f): %w", marketLat, marketLng, err)
	}
	return printJSON(cmd, m)
}
