package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/declarative/pkg/playground"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live playground",
		Long: `Start the playground server.

The page re-renders on every signal change and connected browsers
receive the new HTML over a WebSocket.

Examples:
  declarative serve
  declarative serve --port=8080 --metrics
  curl -X POST -d value=true localhost:3000/signals/loggedIn`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if metrics {
				cfg.Metrics.Enabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := playground.New(playground.Options{Config: cfg, Logger: logger})
			success(cmd.OutOrStdout(), "Playground running at %s", cfg.URL())
			if cfg.Metrics.Enabled {
				info(cmd.OutOrStdout(), "Metrics at %s%s", cfg.URL(), cfg.Metrics.Path)
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from declarative.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from declarative.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Serve Prometheus metrics")

	return cmd
}
