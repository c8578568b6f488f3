package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/solarinrs/solaroi/internal/log"
	"github.com/solarinrs/solaroi/internal/pvgis"
	"github.com/solarinrs/solaroi/internal/server"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		cfg     server.Config
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON API",
		Long: `Run the HTTP API until interrupted.

Routes:
  POST /api/simulate   simulate explicit inputs
  POST /api/proposal   simulate a proposal document
  POST /api/size       recommend a system size
  POST /api/co2        estimate emission savings
  POST /api/usage      spread annual usage over the months
  POST /api/pvgis      look up production for a site
  GET  /api/cities     list city presets
  GET  /healthz        liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := opts.engine(ctx)
			if err != nil {
				return err
			}

			var client *pvgis.Client
			if !offline {
				client = pvgis.NewClient(opts.pvgisURL, nil)
				if err := client.Validate(); err != nil {
					return err
				}
			}

			// the API logs JSON regardless of the terminal logger set up for commands
			ctx = log.With(ctx, slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel(opts)})))
			return server.New(cfg, engine, client).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.ListenAddr, "listen", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&cfg.ServerName, "name", "solaroi", "Server name reported in response headers")
	cmd.Flags().BoolVar(&offline, "offline", false, "Disable PVGIS lookups")
	return cmd
}

func logLevel(opts *globalOptions) slog.Level {
	if opts.debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
