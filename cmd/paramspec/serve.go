package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/paramspec"
	"github.com/aretw0/paramspec/internal/cli"
	"github.com/aretw0/paramspec/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation server",
	Long: `Serves the built-in schemas over HTTP:

  POST /validate/{name}          validate a JSON body
  GET  /schemas                  list schemas
  GET  /schemas/{name}           show parameter rules
  GET  /schemas/{name}/failures  recent rejected payloads
  GET  /metrics                  Prometheus metrics (when enabled)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		logger := newLogger()

		ctx := lifecycle.NewSignalContext(context.Background())
		defer ctx.Stop()

		svc, err := cli.NewService(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("initializing service: %w", err)
		}
		defer func() {
			if err := svc.Close(context.Background()); err != nil {
				logger.Error("service shutdown failed", "error", err)
			}
		}()

		tui.PrintBanner(cmd.ErrOrStderr(), strings.TrimSpace(paramspec.Version))
		if err := cli.Serve(ctx, svc, cmd.ErrOrStderr()); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			logger.Info("stopped by signal", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
