package main

import (
	"fmt"

	"github.com/aretw0/paramspec/internal/builtin"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the built-in schemas and their parameter rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := catalog.New()
		if err := builtin.Register(c, cfg.Validation); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range c.Names() {
			s, err := c.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, name)
			for _, constraint := range s.Constraints() {
				fmt.Fprintf(out, "  %s\n", constraint)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}
