package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funningboy/PyTradeLib/bar"
	"github.com/funningboy/PyTradeLib/store"
)

var showCmd = &cobra.Command{
	Use:   "show <symbol>",
	Short: "Print a stored bar series",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List symbols in the bar store",
	Args:  cobra.NoArgs,
	RunE:  runSymbols,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List ingest runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var (
	showDBPath   string
	showFreqName string
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(runsCmd)

	for _, c := range []*cobra.Command{showCmd, symbolsCmd, runsCmd} {
		c.Flags().StringVarP(&showDBPath, "db", "d", "./bars.db", "path to SQLite bar store")
	}
	showCmd.Flags().StringVarP(&showFreqName, "frequency", "f", "day", "bar frequency name")
}

func runShow(cmd *cobra.Command, args []string) error {
	freq, err := bar.ParseFrequency(showFreqName)
	if err != nil {
		return err
	}

	st, err := store.Open(showDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	bars, err := st.LoadSeries(context.Background(), args[0], freq)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		return fmt.Errorf("no %s bars stored for %s", freq, args[0])
	}

	for _, b := range bars {
		fmt.Println(b)
	}
	return nil
}

func runSymbols(cmd *cobra.Command, args []string) error {
	st, err := store.Open(showDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	symbols, err := st.Symbols(context.Background())
	if err != nil {
		return err
	}
	for _, s := range symbols {
		fmt.Println(s)
	}
	return nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := store.Open(showDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs(context.Background())
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %-8s %-14s %6d bars  %s\n",
			r.RunID, r.Symbol, r.Frequency, r.BarCount,
			r.IngestedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
