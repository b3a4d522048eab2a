package csvbar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funningboy/PyTradeLib/bar"
)

const dailyCSV = `Date,Open,High,Low,Close,Volume,Adj Close
2026-03-03,11.00,12.50,10.80,12.00,31000,12.00
2026-03-02,10.00,12.00,9.50,11.00,25000,11.00
2026-03-02,99.00,99.00,99.00,99.00,1,99.00
2026-03-04,garbage,12,9,11,100,11
2026-03-05,10,5,9,11,100,11
`

func TestReadDaily(t *testing.T) {
	s, err := Read(strings.NewReader(dailyCSV), "AAPL", bar.Day)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", s.Symbol)
	assert.Equal(t, bar.Day, s.Frequency)
	// one malformed row, one invariant violation (high < open)
	assert.Equal(t, 2, s.BadRows)
	assert.Equal(t, 1, s.Duplicates)
	require.Len(t, s.Bars, 2)

	// sorted chronologically, file order was reversed
	first := s.Bars[0]
	assert.True(t, first.DateTime().Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 10.0, first.Open())
	assert.Equal(t, 25000.0, first.Volume())

	// keep-first policy: the duplicate 2026-03-02 row was dropped
	assert.Equal(t, 11.0, first.Close())
}

func TestReadIntraday(t *testing.T) {
	csv := "2026-03-02 14:30,10,12,9,11,100,11\n2026-03-02 14:31,11,13,10,12,200,12\n"
	s, err := Read(strings.NewReader(csv), "EURUSD", bar.Minute)
	require.NoError(t, err)
	require.Len(t, s.Bars, 2)
	assert.Equal(t, 14, s.Bars[0].DateTime().Hour())
	assert.Equal(t, 31, s.Bars[1].DateTime().Minute())
}

func TestReadNoValidRows(t *testing.T) {
	_, err := Read(strings.NewReader("Date,Open,High,Low,Close,Volume,Adj Close\n"), "AAPL", bar.Day)
	assert.Error(t, err)
}

func TestReadInvalidFrequency(t *testing.T) {
	_, err := Read(strings.NewReader(dailyCSV), "AAPL", bar.Frequency(42))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	s, err := Read(strings.NewReader(dailyCSV), "AAPL", bar.Day)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))

	back, err := Read(&buf, "AAPL", bar.Day)
	require.NoError(t, err)
	require.Len(t, back.Bars, len(s.Bars))
	for i := range s.Bars {
		assert.True(t, s.Bars[i].Equal(back.Bars[i]))
	}
	assert.Zero(t, back.BadRows)
}
