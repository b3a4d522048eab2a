// Package session annotates chronological bar sequences with trading-session
// boundaries. A session is one calendar day of the bars' own timestamps.
package session

import "github.com/funningboy/PyTradeLib/bar"

// Annotate marks the last bar of each calendar day as the session close and
// fills the countdown on every earlier bar of the same day. The input must be
// in chronological order.
func Annotate(bars []*bar.Bar) {
	if len(bars) == 0 {
		return
	}

	start := 0
	for i := 1; i <= len(bars); i++ {
		if i < len(bars) && sameDay(bars[i-1], bars[i]) {
			continue
		}
		last := i - 1
		for j := start; j < last; j++ {
			bars[j].SetBarsUntilSessionClose(last - j)
		}
		bars[last].SetSessionClose(true)
		start = i
	}
}

func sameDay(a, b *bar.Bar) bool {
	ay, am, ad := a.DateTime().Date()
	by, bm, bd := b.DateTime().Date()
	return ay == by && am == bm && ad == bd
}
