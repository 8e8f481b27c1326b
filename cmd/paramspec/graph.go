package main

import (
	"context"
	"fmt"

	"github.com/aretw0/paramspec/internal/builtin"
	"github.com/aretw0/paramspec/internal/cli"
	"github.com/aretw0/paramspec/internal/presentation/graph"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <schema> [payload]",
	Short: "Print a Mermaid diagram of a schema",
	Long: `Prints the parameters of a built-in schema as a Mermaid flowchart.
When a payload file is given, it is validated first and the parameters named
by the failure are highlighted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		c := catalog.New()
		if err := builtin.Register(c, cfg.Validation); err != nil {
			return err
		}
		s, err := c.Lookup(name)
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if len(args) == 2 {
			p, err := cli.LoadPayload(args[1], cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("graph %s: %w", name, err)
			}
			res, err := c.Validate(context.Background(), name, p)
			if err != nil {
				return fmt.Errorf("graph %s: %w", name, err)
			}
			if f, failed := res.Failure(); failed {
				overlay = &graph.Overlay{Code: string(f.Code), FailedKeys: f.Keys}
				if f.Key != "" {
					overlay.FailedKeys = append(overlay.FailedKeys, f.Key)
				}
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(name, s, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
