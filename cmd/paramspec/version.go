package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/paramspec"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of paramspec",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "paramspec version %s\n", strings.TrimSpace(paramspec.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
