package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"SwingSignal/internal/di"
	"SwingSignal/internal/usecase"
	"SwingSignal/pkg/config"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var p usecase.AnalyzeParams
	cmd := &cobra.Command{
		Use:     "analyze",
		Short:   "Analyze one symbol as of its latest daily bar",
		Example: "  swingsignal analyze --symbol AAPL --mode balanced --timeframe short",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p.Symbol == "" {
				return errors.New("--symbol is required")
			}
			return opts.withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, svc *di.Services) error {
				res, err := svc.Analyze.Analyze(ctx, p)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Symbol, "symbol", "", "ticker to analyze")
	f.StringVar(&p.Mode, "mode", "balanced", "risk mode: conservative, balanced or aggressive")
	f.StringVar(&p.Timeframe, "timeframe", "short", "timeframe: short or medium")
	f.IntVar(&p.Horizon, "horizon", usecase.DefaultHorizonDays, "calendar days of history to load")
	f.Float64Var(&p.Capital, "capital", 0, "size a position for this capital")
	return cmd
}
