package bar

import (
	"fmt"
	"time"
)

// Bar is a single OHLCV observation for one instrument at one instant.
// Price and volume fields are fixed at construction; only the two session
// fields may change afterwards.
type Bar struct {
	dateTime time.Time
	open     float64
	high     float64
	low      float64
	close    float64
	volume   float64
	adjClose float64

	sessionClose          bool
	barsUntilSessionClose int // -1 while unset
}

// New validates the six OHLC ordering rules and returns the bar. All broken
// rules are reported together in one *InvariantError, not just the first.
func New(dateTime time.Time, open, high, low, close, volume, adjClose float64) (*Bar, error) {
	b := &Bar{
		dateTime:              dateTime,
		open:                  open,
		high:                  high,
		low:                   low,
		close:                 close,
		volume:                volume,
		adjClose:              adjClose,
		barsUntilSessionClose: -1,
	}

	var violations []string
	check := func(ok bool, msg string) {
		if !ok {
			violations = append(violations, msg)
		}
	}
	check(high >= open, "(H)igh !>= (O)pen.")
	check(high >= low, "(H)igh !>= (L)ow.")
	check(high >= close, "(H)igh !>= (C)lose.")
	check(low <= open, "(L)ow !<= (O)pen.")
	check(low <= high, "(L)ow !<= (H)igh.")
	check(low <= close, "(L)ow !<= (C)lose.")
	if violations != nil {
		return nil, &InvariantError{Violations: violations, Bar: b.String()}
	}

	return b, nil
}

func (b *Bar) DateTime() time.Time { return b.dateTime }
func (b *Bar) Open() float64       { return b.open }
func (b *Bar) High() float64       { return b.high }
func (b *Bar) Low() float64        { return b.low }
func (b *Bar) Close() float64      { return b.close }
func (b *Bar) Volume() float64     { return b.volume }
func (b *Bar) AdjClose() float64   { return b.adjClose }

// adjusted scales a raw price by the adjClose/close ratio. The ratio is
// undefined for a zero close.
func (b *Bar) adjusted(raw float64) (float64, error) {
	if b.close == 0 {
		return 0, ErrUndefinedAdjustment
	}
	return b.adjClose * raw / b.close, nil
}

func (b *Bar) AdjOpen() (float64, error) { return b.adjusted(b.open) }
func (b *Bar) AdjHigh() (float64, error) { return b.adjusted(b.high) }
func (b *Bar) AdjLow() (float64, error)  { return b.adjusted(b.low) }

// SessionClose reports whether this is the last bar of its trading session.
func (b *Bar) SessionClose() bool { return b.sessionClose }

// SetSessionClose marks the bar as the session's last. Marking true also
// zeroes the countdown, whatever it held before.
func (b *Bar) SetSessionClose(sessionClose bool) {
	b.sessionClose = sessionClose
	if sessionClose {
		b.barsUntilSessionClose = 0
	}
}

// BarsUntilSessionClose returns the countdown to session end; ok is false
// while no countdown has been set.
func (b *Bar) BarsUntilSessionClose() (int, bool) {
	if b.barsUntilSessionClose < 0 {
		return 0, false
	}
	return b.barsUntilSessionClose, true
}

// SetBarsUntilSessionClose sets the countdown without touching the session
// flag. A negative n clears it back to unset.
func (b *Bar) SetBarsUntilSessionClose(n int) {
	if n < 0 {
		n = -1
	}
	b.barsUntilSessionClose = n
}

// Equal compares the seven price/time fields; the session fields do not
// participate.
func (b *Bar) Equal(other *Bar) bool {
	if other == nil {
		return false
	}
	return b.dateTime.Equal(other.dateTime) &&
		b.open == other.open &&
		b.high == other.high &&
		b.low == other.low &&
		b.close == other.close &&
		b.volume == other.volume &&
		b.adjClose == other.adjClose
}

func (b *Bar) String() string {
	return fmt.Sprintf("DT: %s, O: %.2f, H: %.2f, L: %.2f, C: %.2f, V: %d",
		b.dateTime.Format("2006.01.02 15:04"),
		b.open, b.high, b.low, b.close, int64(b.volume))
}
