package main

import (
	"github.com/spf13/cobra"

	"SwingSignal/internal/di"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the scan consumer and the backtest workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			app, cleanup, err := di.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Run(cmd.Context())
		},
	}
}
