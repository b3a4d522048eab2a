package bar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoBars is returned by NewBars when the symbol map is empty.
	ErrNoBars = errors.New("no bars supplied")

	// ErrUndefinedAdjustment is returned by the adjusted-price methods when
	// the raw close is zero and the adjustment ratio is undefined.
	ErrUndefinedAdjustment = errors.New("close is zero, adjustment ratio undefined")
)

// InvariantError reports every OHLC ordering rule a candidate bar broke.
type InvariantError struct {
	Violations []string // in checking order, e.g. "(H)igh !>= (O)pen."
	Bar        string   // rendering of the offending bar
}

func (e *InvariantError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = fmt.Sprintf("%s (%s)", v, e.Bar)
	}
	return strings.Join(msgs, "\n")
}

// SyncError reports two bars in a Bars group that disagree on timestamp.
type SyncError struct {
	Symbol        string
	DateTime      time.Time
	FirstSymbol   string
	FirstDateTime time.Time
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("bar date times are not in sync: %s %s != %s %s",
		e.Symbol, e.DateTime, e.FirstSymbol, e.FirstDateTime)
}

// MissingSymbolError is returned by the failing lookup path on Bars.
type MissingSymbolError struct {
	Symbol string
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("no bar for symbol %s", e.Symbol)
}
