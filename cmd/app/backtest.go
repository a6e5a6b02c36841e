package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"SwingSignal/internal/di"
	"SwingSignal/internal/usecase"
	"SwingSignal/pkg/config"
	"SwingSignal/pkg/util"
)

func newBacktestCmd(opts *rootOptions) *cobra.Command {
	var (
		p        usecase.BacktestParams
		from, to string
		lookback int
		summary  bool
	)
	cmd := &cobra.Command{
		Use:     "backtest",
		Short:   "Replay the analysis over history and report trades and statistics",
		Example: "  swingsignal backtest --symbol AAPL --from 2023-01-01 --to 2024-01-01 --capital 100000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p.Symbol == "" {
				return errors.New("--symbol is required")
			}
			return opts.withServices(cmd.Context(), func(ctx context.Context, cfg *config.Config, svc *di.Services) error {
				if lookback <= 0 {
					lookback = cfg.Backtest.DefaultLookback
				}
				var err error
				p.From, p.To, err = util.DateRange(from, to, lookback, time.Now())
				if err != nil {
					return err
				}
				res, err := svc.Backtest.Run(ctx, p)
				if err != nil {
					return err
				}
				if summary {
					return printJSON(cmd.OutOrStdout(), res.Metrics)
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Symbol, "symbol", "", "ticker to backtest")
	f.StringVar(&p.Mode, "mode", "balanced", "risk mode")
	f.StringVar(&p.Timeframe, "timeframe", "short", "timeframe")
	f.Float64Var(&p.Capital, "capital", 100000, "starting capital")
	f.StringVar(&from, "from", "", "first simulated day, YYYY-MM-DD")
	f.StringVar(&to, "to", "", "last simulated day, YYYY-MM-DD (default today)")
	f.IntVar(&lookback, "lookback", 0, "days before --to when --from is omitted (default from config)")
	f.BoolVar(&summary, "summary", false, "print only the statistics")
	return cmd
}
