package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pytradelib",
	Short: "A price-bar data toolkit for trading research",
	Long: `Pytradelib manages OHLCV bar data for trading research.

It provides tools for:
  - Ingesting Yahoo-style historical CSV files into a SQLite bar store
  - Validating every bar against the OHLC ordering invariants
  - Annotating trading-session boundaries
  - Inspecting stored series, symbols and ingest runs`,
}

var logLevel string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cobra.OnInitialize(setupLogging)
}

func setupLogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	})))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
