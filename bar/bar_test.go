package bar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

func mustBar(t *testing.T, open, high, low, close float64) *Bar {
	t.Helper()
	b, err := New(testTime, open, high, low, close, 1000, close)
	require.NoError(t, err)
	return b
}

func TestNewValidBar(t *testing.T) {
	b, err := New(testTime, 10, 12, 9, 11, 25000, 10.5)
	require.NoError(t, err)

	assert.True(t, b.DateTime().Equal(testTime))
	assert.Equal(t, 10.0, b.Open())
	assert.Equal(t, 12.0, b.High())
	assert.Equal(t, 9.0, b.Low())
	assert.Equal(t, 11.0, b.Close())
	assert.Equal(t, 25000.0, b.Volume())
	assert.Equal(t, 10.5, b.AdjClose())

	assert.False(t, b.SessionClose())
	_, ok := b.BarsUntilSessionClose()
	assert.False(t, ok)
}

func TestNewFlatBar(t *testing.T) {
	// all four prices equal is legal
	_, err := New(testTime, 5, 5, 5, 5, 0, 5)
	assert.NoError(t, err)
}

func TestNewSingleViolation(t *testing.T) {
	// high below open only
	_, err := New(testTime, 10, 5, 1, 5, 100, 5)
	require.Error(t, err)

	var ie *InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"(H)igh !>= (O)pen."}, ie.Violations)
	assert.Contains(t, err.Error(), "O: 10.00")
}

func TestNewReportsAllViolationsJointly(t *testing.T) {
	// high below everything, low above everything
	_, err := New(testTime, 10, 1, 20, 10, 100, 10)
	require.Error(t, err)

	var ie *InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{
		"(H)igh !>= (O)pen.",
		"(H)igh !>= (L)ow.",
		"(H)igh !>= (C)lose.",
		"(L)ow !<= (O)pen.",
		"(L)ow !<= (H)igh.",
		"(L)ow !<= (C)lose.",
	}, ie.Violations)
}

func TestAdjustedPrices(t *testing.T) {
	b, err := New(testTime, 10, 12, 9, 10, 100, 5)
	require.NoError(t, err)

	adjOpen, err := b.AdjOpen()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, adjOpen, 1e-9)

	adjHigh, err := b.AdjHigh()
	require.NoError(t, err)
	assert.InDelta(t, 6.0, adjHigh, 1e-9)

	adjLow, err := b.AdjLow()
	require.NoError(t, err)
	assert.InDelta(t, 4.5, adjLow, 1e-9)
}

func TestAdjustedPricesZeroClose(t *testing.T) {
	b, err := New(testTime, 0, 0, -1, 0, 100, 0)
	require.NoError(t, err)

	_, err = b.AdjOpen()
	assert.True(t, errors.Is(err, ErrUndefinedAdjustment))
	_, err = b.AdjHigh()
	assert.True(t, errors.Is(err, ErrUndefinedAdjustment))
	_, err = b.AdjLow()
	assert.True(t, errors.Is(err, ErrUndefinedAdjustment))
}

func TestSessionClose(t *testing.T) {
	b := mustBar(t, 10, 12, 9, 11)

	b.SetBarsUntilSessionClose(7)
	n, ok := b.BarsUntilSessionClose()
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	// true forces the countdown to zero
	b.SetSessionClose(true)
	assert.True(t, b.SessionClose())
	n, ok = b.BarsUntilSessionClose()
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	// false leaves the countdown alone
	b.SetBarsUntilSessionClose(3)
	b.SetSessionClose(false)
	assert.False(t, b.SessionClose())
	n, ok = b.BarsUntilSessionClose()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestEqualIgnoresSessionFields(t *testing.T) {
	a := mustBar(t, 10, 12, 9, 11)
	b := mustBar(t, 10, 12, 9, 11)

	b.SetSessionClose(true)
	b.SetBarsUntilSessionClose(0)
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestEqualPriceFields(t *testing.T) {
	a := mustBar(t, 10, 12, 9, 11)

	cases := map[string]*Bar{
		"open":   mustBar(t, 10.5, 12, 9, 11),
		"high":   mustBar(t, 10, 12.5, 9, 11),
		"low":    mustBar(t, 10, 12, 8.5, 11),
		"close":  mustBar(t, 10, 12, 9, 11.5),
		"volume": func() *Bar { b, _ := New(testTime, 10, 12, 9, 11, 2000, 11); return b }(),
		"time":   func() *Bar { b, _ := New(testTime.Add(time.Minute), 10, 12, 9, 11, 1000, 11); return b }(),
	}
	for field, other := range cases {
		assert.False(t, a.Equal(other), "differing %s must compare unequal", field)
	}

	assert.False(t, a.Equal(nil))
}

func TestString(t *testing.T) {
	b, err := New(testTime, 10, 12.5, 9, 11.1, 25000.9, 11)
	require.NoError(t, err)
	assert.Equal(t, "DT: 2026.03.02 14:30, O: 10.00, H: 12.50, L: 9.00, C: 11.10, V: 25000", b.String())
}
