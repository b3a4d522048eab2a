package bar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarsEmpty(t *testing.T) {
	_, err := NewBars(map[string]*Bar{})
	assert.True(t, errors.Is(err, ErrNoBars))

	_, err = NewBars(nil)
	assert.True(t, errors.Is(err, ErrNoBars))
}

func TestNewBarsDesynchronized(t *testing.T) {
	a := mustBar(t, 10, 12, 9, 11)
	b, err := New(testTime.Add(time.Minute), 20, 22, 19, 21, 500, 21)
	require.NoError(t, err)

	_, err = NewBars(map[string]*Bar{"AAPL": a, "MSFT": b})
	require.Error(t, err)

	var se *SyncError
	require.ErrorAs(t, err, &se)
	names := []string{se.Symbol, se.FirstSymbol}
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, names)
	assert.False(t, se.DateTime.Equal(se.FirstDateTime))
}

func TestNewBarsLookup(t *testing.T) {
	a := mustBar(t, 10, 12, 9, 11)
	m := mustBar(t, 20, 22, 19, 21)

	bs, err := NewBars(map[string]*Bar{"AAPL": a, "MSFT": m})
	require.NoError(t, err)

	got, err := bs.Bar("AAPL")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = bs.Bar("GOOG")
	var me *MissingSymbolError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "GOOG", me.Symbol)

	assert.Same(t, m, bs.GetBar("MSFT"))
	assert.Nil(t, bs.GetBar("GOOG"))

	assert.True(t, bs.Contains("AAPL"))
	assert.False(t, bs.Contains("GOOG"))

	assert.Equal(t, []string{"AAPL", "MSFT"}, bs.Symbols())
	assert.True(t, bs.DateTime().Equal(a.DateTime()))
	assert.Equal(t, 2, bs.Len())
}

func TestNewBarsSharesBarValues(t *testing.T) {
	a := mustBar(t, 10, 12, 9, 11)
	bs, err := NewBars(map[string]*Bar{"AAPL": a})
	require.NoError(t, err)

	// session annotation after construction stays visible through the group
	a.SetSessionClose(true)
	got, err := bs.Bar("AAPL")
	require.NoError(t, err)
	assert.True(t, got.SessionClose())
}

func TestNewBarsCopiesMapping(t *testing.T) {
	a := mustBar(t, 10, 12, 9, 11)
	input := map[string]*Bar{"AAPL": a}

	bs, err := NewBars(input)
	require.NoError(t, err)

	delete(input, "AAPL")
	assert.True(t, bs.Contains("AAPL"))
}
