package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/paramspec/internal/config"
	"github.com/aretw0/paramspec/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      config.Config
)

// errRejected makes the process exit 1 without printing anything more.
var errRejected = errors.New("payload rejected")

var rootCmd = &cobra.Command{
	Use:   "paramspec",
	Short: "paramspec validates JSON payloads against declared parameter rules",
	Long: `paramspec checks loosely typed payloads against per-key rules: type,
element type, requiredness, numeric bounds and allow-lists. It runs as an
HTTP service, an MCP server or a one-shot file checker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./paramspec.yaml or ~/.config/paramspec/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

// newLogger builds the logger described by the loaded config.
func newLogger() *slog.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.NewWithWriter(os.Stderr, level, cfg.Log.Format)
}
