package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/paramspec/internal/builtin"
	"github.com/aretw0/paramspec/internal/cli"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <schema> [file]",
	Short: "Validate a JSON or YAML payload file against a built-in schema",
	Long: `Validates one payload and prints the verdict. The file defaults to "-"
(stdin). Files ending in .yaml or .yml are read as YAML.

Exits 0 when the payload is accepted and 1 otherwise.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		path := "-"
		if len(args) == 2 {
			path = args[1]
		}

		c := catalog.New()
		if err := builtin.Register(c, cfg.Validation); err != nil {
			return err
		}

		opts := cli.CheckOptions{
			Mode:    cli.ResolveOutputMode(jsonOutput, os.Stdout),
			Profile: termenv.ColorProfile(),
			Stdin:   cmd.InOrStdin(),
		}
		if cmd.OutOrStdout() != os.Stdout && !jsonOutput {
			opts.Mode = cli.OutputPlain
			opts.Profile = termenv.Ascii
		}

		rep, err := cli.RunCheck(context.Background(), c, args[0], path, cmd.OutOrStdout(), opts)
		if err != nil {
			return fmt.Errorf("check %s: %w", args[0], err)
		}
		if !rep.OK() {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Print the verdict as JSON")
}
