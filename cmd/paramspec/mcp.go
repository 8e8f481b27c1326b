package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/paramspec/internal/cli"
	"github.com/aretw0/paramspec/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the built-in schemas as MCP tools (list_schemas, validate_payload)
so AI agents can check payloads before sending them.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		if sse, _ := cmd.Flags().GetBool("sse"); sse {
			transport = "sse"
		}
		port, _ := cmd.Flags().GetInt("port")

		logger := newLogger()
		ctx := lifecycle.NewSignalContext(context.Background())
		defer ctx.Stop()

		svc, err := cli.NewService(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("initializing service: %w", err)
		}
		defer svc.Close(context.Background())

		srv := mcp.NewServer(svc.Catalog, logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(cmd.ErrOrStderr())
			logger.Info("Starting paramspec MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting paramspec MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Bool("sse", false, "Shorthand for --transport sse")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
