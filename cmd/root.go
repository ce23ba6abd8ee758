package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yielddrive/fleetyield/app"
	"github.com/yielddrive/fleetyield/config"
	"github.com/yielddrive/fleetyield/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fleetyield",
	Short: "Fleet yield optimization service",
	Long:  "fleetyield recommends the operating mode that maximizes expected net revenue per vehicle and, when run without a subcommand, evaluates the whole fleet on a fixed cadence.",
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)
	return svc.Watch(ctx)
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}

// loadConfig reads the configured file. When the default file name is absent
// and the flag was not set explicitly, built-in defaults apply so one-shot
// commands work without a config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) && !cmd.Flag("config").Changed {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newService(cmd *cobra.Command) (*app.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
