package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"SwingSignal/internal/di"
	"SwingSignal/internal/usecase"
	"SwingSignal/pkg/config"
	"SwingSignal/pkg/util"
)

func newScreenCmd(opts *rootOptions) *cobra.Command {
	var (
		p       usecase.ScreenParams
		symbols string
	)
	cmd := &cobra.Command{
		Use:     "screen",
		Short:   "Analyze several symbols and allocate capital across the buys",
		Example: "  swingsignal screen --symbols AAPL,MSFT,NVDA --capital 50000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p.Symbols = util.ParseSymbols(symbols)
			if len(p.Symbols) == 0 {
				return errors.New("--symbols is required")
			}
			return opts.withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, svc *di.Services) error {
				res, err := svc.Screen.Screen(ctx, p)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&symbols, "symbols", "", "comma separated tickers")
	f.StringVar(&p.Mode, "mode", "balanced", "risk mode")
	f.StringVar(&p.Timeframe, "timeframe", "short", "timeframe")
	f.IntVar(&p.Horizon, "horizon", usecase.DefaultHorizonDays, "calendar days of history to load")
	f.Float64Var(&p.Capital, "capital", 100000, "capital to allocate")
	return cmd
}
