// Package csvbar reads and writes Yahoo-style historical price CSV
// (Date,Open,High,Low,Close,Volume,Adj Close) as validated bar series.
package csvbar

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/funningboy/PyTradeLib/bar"
)

const (
	dailyLayout    = "2006-01-02"
	intradayLayout = "2006-01-02 15:04"
)

var header = []string{"Date", "Open", "High", "Low", "Close", "Volume", "Adj Close"}

// Series is one symbol's chronological bar sequence plus ingest counters.
type Series struct {
	Symbol    string
	Frequency bar.Frequency
	Bars      []*bar.Bar

	BadRows    int // malformed or invariant-violating rows, skipped
	Duplicates int // repeated timestamps, keep-first policy
}

// ReadFile reads a CSV file. An empty symbol defaults to the file name
// without its extension, upper-cased.
func ReadFile(path, symbol string, freq bar.Frequency) (*Series, error) {
	if symbol == "" {
		base := filepath.Base(path)
		symbol = strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := Read(file, symbol, freq)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}

// Read parses rows into bars, skipping malformed and invariant-violating
// rows, dropping duplicate timestamps (first occurrence wins) and sorting
// the result chronologically. A reader yielding no valid rows is an error.
func Read(r io.Reader, symbol string, freq bar.Frequency) (*Series, error) {
	if !freq.Valid() {
		return nil, fmt.Errorf("invalid frequency %s", freq)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	s := &Series{Symbol: symbol, Frequency: freq}
	seen := make(map[int64]bool)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > 0 && strings.EqualFold(record[0], "date") {
			continue
		}

		b, err := parseRow(record, freq)
		if err != nil {
			s.BadRows++
			continue
		}
		ts := b.DateTime().Unix()
		if seen[ts] {
			s.Duplicates++
			continue
		}
		seen[ts] = true
		s.Bars = append(s.Bars, b)
	}

	if len(s.Bars) == 0 {
		return nil, fmt.Errorf("no valid rows for %s", symbol)
	}

	sort.Slice(s.Bars, func(i, j int) bool {
		return s.Bars[i].DateTime().Before(s.Bars[j].DateTime())
	})
	return s, nil
}

func parseRow(record []string, freq bar.Frequency) (*bar.Bar, error) {
	if len(record) < 7 {
		return nil, fmt.Errorf("short row: %d fields", len(record))
	}

	layout := intradayLayout
	if freq == bar.Day || freq == bar.Week || freq == bar.Month {
		layout = dailyLayout
	}
	dt, err := time.Parse(layout, strings.TrimSpace(record[0]))
	if err != nil {
		return nil, err
	}

	var prices [6]float64
	for i := 0; i < 6; i++ {
		prices[i], err = strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return nil, err
		}
	}

	return bar.New(dt, prices[0], prices[1], prices[2], prices[3], prices[4], prices[5])
}

// Write emits the series in the same CSV format, header included.
func (s *Series) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	layout := intradayLayout
	if s.Frequency == bar.Day || s.Frequency == bar.Week || s.Frequency == bar.Month {
		layout = dailyLayout
	}
	for _, b := range s.Bars {
		record := []string{
			b.DateTime().Format(layout),
			f(b.Open()), f(b.High()), f(b.Low()), f(b.Close()),
			strconv.FormatInt(int64(b.Volume()), 10),
			f(b.AdjClose()),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the series to path, creating or truncating it.
func (s *Series) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
