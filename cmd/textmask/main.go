package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-textmask/pkg/field/terminal"
)

// app carries the state shared by every subcommand.
type app struct {
	cfg     config
	debug   bool
	presets string
	logger  *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, terminal.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "textmask:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "textmask",
		Short: "Conform text to input masks",
		Long: `textmask applies input masks such as 99/99/9999 or (999) 999-9999 to text.

It conforms values from the command line, runs interactive masked fields in
the terminal, and serves the conform engine over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if !cmd.Flags().Changed("presets") {
				a.presets = cfg.Presets
			}
			a.debug = a.debug || cfg.Debug

			logCfg := zap.NewProductionConfig()
			if a.debug {
				logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := logCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.presets, "presets", "", "preset file or directory merged over the built-in presets")

	root.AddCommand(
		a.conformCmd(),
		a.presetsCmd(),
		a.lintCmd(),
		a.editCmd(),
		a.tuiCmd(),
		a.promptCmd(),
		a.serveCmd(),
	)
	return root
}
