//go:build windows

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     config
)

var rootCmd = &cobra.Command{
	Use:   "winproc",
	Short: "Inspect and control Windows processes and threads",
	Long: `winproc enumerates, inspects, and controls live processes and threads
through guarded handles and typed errors.

Examples:
  winproc list
  winproc info 4212
  winproc threads 4212
  winproc kill 4212
  winproc top`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cfgPath)
		if err != nil {
			return err
		}
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("config: bad log level %q: %w", cfg.LogLevel, err)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to winproc.yaml (default: alongside the binary)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "winproc:", err)
		os.Exit(1)
	}
}
