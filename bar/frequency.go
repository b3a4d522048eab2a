package bar

import "fmt"

// Frequency is the sampling interval of a bar series. Sub-day values are
// minute counts; Day, Week and Month are symbolic tags outside the minute
// range.
type Frequency int

const (
	Minute        Frequency = 1
	FiveMinute    Frequency = 5
	TenMinute     Frequency = 10
	FifteenMinute Frequency = 15
	ThirtyMinute  Frequency = 30
	Hour          Frequency = 60

	Day   Frequency = 'd'
	Week  Frequency = 'w'
	Month Frequency = 'm'
)

// frequencyNames is the single source of truth; the inverse table is derived
// from it at init so the two directions cannot drift.
var frequencyNames = map[Frequency]string{
	Minute:        "minute",
	FiveMinute:    "five-minute",
	TenMinute:     "ten-minute",
	FifteenMinute: "fifteen-minute",
	ThirtyMinute:  "thirty-minute",
	Hour:          "hour",
	Day:           "day",
	Week:          "week",
	Month:         "month",
}

var namedFrequencies = make(map[string]Frequency, len(frequencyNames))

func init() {
	for f, name := range frequencyNames {
		namedFrequencies[name] = f
	}
}

// Valid reports whether f is one of the nine defined frequencies.
func (f Frequency) Valid() bool {
	_, ok := frequencyNames[f]
	return ok
}

// String returns the canonical lowercase name, e.g. "five-minute".
func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("frequency(%d)", int(f))
}

// ParseFrequency is the inverse of String for the defined frequencies.
func ParseFrequency(name string) (Frequency, error) {
	f, ok := namedFrequencies[name]
	if !ok {
		return 0, fmt.Errorf("unknown frequency %q", name)
	}
	return f, nil
}
