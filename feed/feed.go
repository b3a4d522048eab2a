// Package feed walks per-symbol chronological bar series in lockstep and
// emits synchronized cross-sections.
package feed

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/funningboy/PyTradeLib/bar"
)

// Feed merges several chronological series by timestamp. Each call to Next
// yields the earliest pending instant as a *bar.Bars holding every symbol
// that has a bar at that instant.
type Feed struct {
	symbols []string
	series  map[string][]*bar.Bar
	pos     map[string]int
}

// New validates that every series is non-empty and chronological.
func New(seriesBySymbol map[string][]*bar.Bar) (*Feed, error) {
	if len(seriesBySymbol) == 0 {
		return nil, fmt.Errorf("no series supplied")
	}

	f := &Feed{
		series: make(map[string][]*bar.Bar, len(seriesBySymbol)),
		pos:    make(map[string]int, len(seriesBySymbol)),
	}
	for symbol, bars := range seriesBySymbol {
		if len(bars) == 0 {
			return nil, fmt.Errorf("empty series for %s", symbol)
		}
		for i := 1; i < len(bars); i++ {
			if !bars[i-1].DateTime().Before(bars[i].DateTime()) {
				return nil, fmt.Errorf("series for %s not chronological at index %d", symbol, i)
			}
		}
		f.symbols = append(f.symbols, symbol)
		f.series[symbol] = bars
	}
	sort.Strings(f.symbols)

	return f, nil
}

// Next returns the next cross-section, or io.EOF once every series is
// exhausted.
func (f *Feed) Next() (*bar.Bars, error) {
	var next time.Time
	found := false
	for _, symbol := range f.symbols {
		i := f.pos[symbol]
		if i >= len(f.series[symbol]) {
			continue
		}
		dt := f.series[symbol][i].DateTime()
		if !found || dt.Before(next) {
			next = dt
			found = true
		}
	}
	if !found {
		return nil, io.EOF
	}

	group := make(map[string]*bar.Bar)
	for _, symbol := range f.symbols {
		i := f.pos[symbol]
		if i >= len(f.series[symbol]) {
			continue
		}
		if b := f.series[symbol][i]; b.DateTime().Equal(next) {
			group[symbol] = b
			f.pos[symbol] = i + 1
		}
	}

	return bar.NewBars(group)
}
