package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"SwingSignal/internal/di"
	"SwingSignal/pkg/config"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "swingsignal",
		Short: "Swing trading signal engine for daily US equity bars",
		Long: `swingsignal computes technical indicators over daily bars, scores them into a
buy/sell recommendation with targets and stops, sizes positions, and replays
the same pipeline over history as a backtest.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config/config.yaml", "path to the YAML config file")

	cmd.AddCommand(
		newServeCmd(opts),
		newAnalyzeCmd(opts),
		newBacktestCmd(opts),
		newScreenCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// withServices builds the use cases, runs fn and releases the connections.
func (o *rootOptions) withServices(ctx context.Context, fn func(context.Context, *config.Config, *di.Services) error) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	svc, cleanup, err := di.InitializeServices(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer cleanup()
	return fn(ctx, cfg, svc)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
