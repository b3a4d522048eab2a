package bar

import (
	"sort"
	"time"
)

// Bars is a cross-sectional snapshot: one Bar per symbol, all sharing the
// same timestamp. The mapping is immutable after construction; the *Bar
// values themselves stay shared with the caller, so session annotations made
// later remain visible here.
type Bars struct {
	bars     map[string]*Bar
	dateTime time.Time
}

// NewBars validates that every bar in the map carries the same timestamp.
// The map contents are copied; the bars are not.
func NewBars(barsBySymbol map[string]*Bar) (*Bars, error) {
	if len(barsBySymbol) == 0 {
		return nil, ErrNoBars
	}

	var first string
	var dateTime time.Time
	bars := make(map[string]*Bar, len(barsBySymbol))
	for symbol, b := range barsBySymbol {
		if len(bars) == 0 {
			first = symbol
			dateTime = b.DateTime()
		} else if !b.DateTime().Equal(dateTime) {
			return nil, &SyncError{
				Symbol:        symbol,
				DateTime:      b.DateTime(),
				FirstSymbol:   first,
				FirstDateTime: dateTime,
			}
		}
		bars[symbol] = b
	}

	return &Bars{bars: bars, dateTime: dateTime}, nil
}

// Bar returns the bar for symbol, or a *MissingSymbolError when absent.
func (bs *Bars) Bar(symbol string) (*Bar, error) {
	b, ok := bs.bars[symbol]
	if !ok {
		return nil, &MissingSymbolError{Symbol: symbol}
	}
	return b, nil
}

// GetBar is the non-failing lookup: nil when the symbol is absent.
func (bs *Bars) GetBar(symbol string) *Bar {
	return bs.bars[symbol]
}

// Contains reports whether a bar for symbol is present.
func (bs *Bars) Contains(symbol string) bool {
	_, ok := bs.bars[symbol]
	return ok
}

// Symbols returns all symbols present, sorted for stable output.
func (bs *Bars) Symbols() []string {
	symbols := make([]string, 0, len(bs.bars))
	for symbol := range bs.bars {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// DateTime returns the timestamp shared by every bar in the group.
func (bs *Bars) DateTime() time.Time { return bs.dateTime }

// Len returns the number of symbols.
func (bs *Bars) Len() int { return len(bs.bars) }
