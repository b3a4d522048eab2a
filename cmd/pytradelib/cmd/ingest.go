package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/funningboy/PyTradeLib/bar"
	"github.com/funningboy/PyTradeLib/csvbar"
	"github.com/funningboy/PyTradeLib/session"
	"github.com/funningboy/PyTradeLib/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <csv-file> [csv-file...]",
	Short: "Ingest CSV files into the bar store",
	Long: `Parse Yahoo-style historical CSV files, validate every bar and save
the series to the SQLite bar store. The symbol defaults to the file name.

Example:
  pytradelib ingest -d bars.db -f day data/AAPL.csv data/MSFT.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var (
	ingestDBPath   string
	ingestFreqName string
	ingestSymbol   string
	ingestAnnotate bool
)

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestDBPath, "db", "d", "./bars.db", "path to SQLite bar store")
	ingestCmd.Flags().StringVarP(&ingestFreqName, "frequency", "f", "day", "bar frequency name")
	ingestCmd.Flags().StringVarP(&ingestSymbol, "symbol", "s", "", "symbol override (single file only)")
	ingestCmd.Flags().BoolVar(&ingestAnnotate, "annotate-sessions", true, "annotate session boundaries before saving")
}

func runIngest(cmd *cobra.Command, args []string) error {
	freq, err := bar.ParseFrequency(ingestFreqName)
	if err != nil {
		return err
	}
	if ingestSymbol != "" && len(args) > 1 {
		return fmt.Errorf("--symbol only applies to a single file")
	}

	st, err := store.Open(ingestDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	for _, path := range args {
		s, err := csvbar.ReadFile(path, ingestSymbol, freq)
		if err != nil {
			return err
		}
		if s.BadRows > 0 || s.Duplicates > 0 {
			slog.Warn("ingest warnings",
				"file", filepath.Base(path),
				"bad_rows", s.BadRows,
				"duplicates", s.Duplicates)
		}

		if ingestAnnotate {
			session.Annotate(s.Bars)
		}

		runID, err := st.SaveSeries(ctx, s.Symbol, freq, s.Bars)
		if err != nil {
			return err
		}
		slog.Info("ingested series",
			"symbol", s.Symbol,
			"frequency", freq.String(),
			"bars", len(s.Bars),
			"run_id", runID)
	}
	return nil
}
