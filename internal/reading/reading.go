// Package reading classifies raw sensor input into numbers, interval
// midpoints and timestamps.
package reading

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ethpandaops/sensor-round/internal/datetime"
)

// Kind is the classification of a raw input.
type Kind int

const (
	// KindUnparseable inputs are passed through unchanged.
	KindUnparseable Kind = iota
	// KindNumber is a number with an optional unit.
	KindNumber
	// KindInterval is a textual range "a-b" reduced to its midpoint.
	KindInterval
	// KindTimestamp is a fixed-offset date-time.
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInterval:
		return "interval"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unparseable"
	}
}

// zeroPrecision is reported for inputs without a nonzero digit ("0", "0.00").
const zeroPrecision = 0.5

const numberExpr = `[+-]?(?:\d+\.?\d*|\.\d+)`

var (
	// The unit must not start with a digit or sign so "1 - 2" stays an interval.
	numberPattern   = regexp.MustCompile(`^(` + numberExpr + `)((?:[eE][+-]?\d+)?)(?:\s+([^\s\d+\-.].*))?$`)
	intervalPattern = regexp.MustCompile(`^(` + numberExpr + `)\s*-\s*(` + numberExpr + `)$`)
)

// Measurement is a parsed numeric reading. Conversion steps return a new
// Measurement rather than editing one in place.
type Measurement struct {
	Raw            string
	Value          float64
	Unit           string
	OriginalUnit   string
	PrecisionFound float64
}

// WithValue returns a copy carrying v.
func (m Measurement) WithValue(v float64) Measurement {
	m.Value = v
	return m
}

// WithUnit returns a copy carrying unit. OriginalUnit is preserved.
func (m Measurement) WithUnit(unit string) Measurement {
	m.Unit = unit
	return m
}

// Parsed is the result of classifying one input.
type Parsed struct {
	Kind        Kind
	Measurement Measurement
	Timestamp   datetime.Timestamp
}

// Parse classifies s, which should already be trimmed.
func Parse(s string) Parsed {
	if m, ok := parseNumber(s); ok {
		return Parsed{Kind: KindNumber, Measurement: m}
	}

	if m, ok := parseInterval(s); ok {
		return Parsed{Kind: KindInterval, Measurement: m}
	}

	if ts, ok := datetime.Parse(s); ok {
		return Parsed{Kind: KindTimestamp, Timestamp: ts}
	}

	return Parsed{Kind: KindUnparseable, Measurement: Measurement{Raw: s}}
}

func parseNumber(s string) (Measurement, bool) {
	match := numberPattern.FindStringSubmatch(s)
	if match == nil {
		return Measurement{}, false
	}

	value, err := strconv.ParseFloat(match[1]+match[2], 64)
	if err != nil {
		return Measurement{}, false
	}

	unit := strings.TrimSpace(match[3])

	return Measurement{
		Raw:            s,
		Value:          value,
		Unit:           unit,
		OriginalUnit:   unit,
		PrecisionFound: CountSignificant(match[1]),
	}, true
}

func parseInterval(s string) (Measurement, bool) {
	match := intervalPattern.FindStringSubmatch(s)
	if match == nil {
		return Measurement{}, false
	}

	a, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Measurement{}, false
	}

	b, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return Measurement{}, false
	}

	mid := (a + b) / 2

	return Measurement{
		Raw:            s,
		Value:          mid,
		PrecisionFound: CountSignificant(strconv.FormatFloat(mid, 'f', -1, 64)),
	}, true
}

// CountSignificant counts the digits of a mantissa before and after the
// decimal point with leading zeros stripped. Mantissas without a nonzero
// digit report 0.5.
func CountSignificant(mantissa string) float64 {
	digits := strings.TrimLeft(mantissa, "+-")
	digits = strings.Replace(digits, ".", "", 1)
	digits = strings.TrimLeft(digits, "0")

	if digits == "" {
		return zeroPrecision
	}

	return float64(len(digits))
}
