// momorun is an isometric endless runner for the terminal, steered by a
// wrist-worn motion controller or the keyboard.
//
// Usage:
//
//	momorun play                 - Run in the terminal (optionally accept a controller)
//	momorun controller           - Replay a motion trace as a controller
//	momorun classify             - Print the gestures a motion trace produces
//	momorun serve                - Start SSH server for remote play
//	momorun scores               - Show run history
//	momorun calories             - Show or change the calorie ledger
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible obstacles
//	--db <path>         - Set database path (default: ~/.momorun/momorun.db)
//	--config <path>     - Use a custom YAML config
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "momorun",
	Short: "MomoRun - an isometric endless runner in your terminal",
	Long: `MomoRun scrolls a three-lane isometric floor towards you. Dodge rocks,
jump over felled trees and crouch under log clusters, with the keyboard or
with gestures from a motion controller.

Available commands:
  play        - Run in the terminal
  controller  - Replay a motion trace and send its gestures to a runner
  classify    - Print the gestures a motion trace produces
  serve       - Start SSH server for remote play
  scores      - View run history
  calories    - Show or change the daily calorie ledger

Examples:
  momorun play
  momorun play --listen :8765 --difficulty hard
  momorun controller --trace walk.jsonl.zst --connect ws://localhost:8765/ws
  momorun classify --trace walk.jsonl.zst
  momorun serve --ssh :2222
  momorun calories --target 600`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := (core.RuntimeConfig{TickRate: flagFPS}).Validate(); err != nil {
			return fmt.Errorf("invalid --fps: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(controllerCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(caloriesCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fileLogger logs to ~/.momorun/<name>.log so the alt screen stays clean.
func fileLogger(name string) (*log.Logger, io.Closer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, err
	}
	dir := filepath.Join(home, ".momorun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, name+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(f, name)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// loadConfig loads the YAML config and applies a difficulty preset.
func loadConfig(preset string) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, p)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
