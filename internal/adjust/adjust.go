// Package adjust applies caller overrides to a measurement before rounding:
// unit forcing, skew, divisor and multiplier, in that order.
package adjust

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidDivisor is returned when the numeric amount of a divisor is malformed.
	ErrInvalidDivisor = errors.New("invalid divisor amount")
	// ErrZeroDivisor is returned for divisors that evaluate to zero.
	ErrZeroDivisor = errors.New("divisor is zero")
	// ErrUnknownSuffix is returned alongside the bare amount when the suffix is not recognised.
	ErrUnknownSuffix = errors.New("unknown divisor suffix")
)

var divisorPattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*([A-Za-z]*)$`)

var divisorSuffixes = map[string]float64{
	"k":  1e3,
	"K":  1 << 10,
	"M":  1e6,
	"Mi": 1 << 20,
	"G":  1e9,
	"Gi": 1 << 30,
	"T":  1e12,
	"Ti": 1 << 40,
	"P":  1e15,
	"Pi": 1 << 50,
}

// iecUnits are the binary byte prefixes expanded when a unit is stripped.
var iecUnits = map[string]float64{
	"KiB": 1 << 10,
	"MiB": 1 << 20,
	"GiB": 1 << 30,
	"TiB": 1 << 40,
	"PiB": 1 << 50,
}

// Overrides are the caller-supplied adjustments.
type Overrides struct {
	// Unit replaces the unit when UnitSet; "" or "." strips it.
	Unit    string
	UnitSet bool
	Skew    float64
	// Divisor is parsed with ParseDivisor.
	Divisor string
	// Multiplier of 0 means none.
	Multiplier float64
}

// ParseDivisor parses "<number><suffix>" such as "1000", "1k" or "1Mi".
// K is already binary (1024); there is no Ki suffix.
// An unknown suffix returns the bare amount together with ErrUnknownSuffix.
func ParseDivisor(s string) (float64, error) {
	match := divisorPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDivisor, s)
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDivisor, s)
	}

	if amount == 0 {
		return 0, ErrZeroDivisor
	}

	suffix := match[2]
	if suffix == "" {
		return amount, nil
	}

	factor, ok := divisorSuffixes[suffix]
	if !ok {
		return amount, fmt.Errorf("%w: %q", ErrUnknownSuffix, suffix)
	}

	return amount * factor, nil
}

// Apply runs the overrides against m and returns the adjusted measurement.
// Malformed overrides are logged and skipped.
func Apply(log logrus.FieldLogger, m reading.Measurement, o Overrides) reading.Measurement {
	if o.UnitSet {
		m = forceUnit(log, m, o.Unit)
	}

	if o.Skew != 0 {
		m = m.WithValue(m.Value + o.Skew)
		log.WithField("skew", o.Skew).Debug("applied skew")
	}

	if o.Divisor != "" {
		div, err := ParseDivisor(o.Divisor)
		switch {
		case errors.Is(err, ErrUnknownSuffix):
			log.WithError(err).WithField("divisor", o.Divisor).Warn("unknown divisor suffix, using bare amount")
			m = m.WithValue(m.Value / div)
		case err != nil:
			log.WithError(err).WithField("divisor", o.Divisor).Warn("ignoring divisor")
		default:
			m = m.WithValue(m.Value / div)
			log.WithField("divisor", div).Debug("applied divisor")
		}
	}

	if o.Multiplier != 0 {
		m = m.WithValue(m.Value * o.Multiplier)
		log.WithField("multiplier", o.Multiplier).Debug("applied multiplier")
	}

	return m
}

func forceUnit(log logrus.FieldLogger, m reading.Measurement, unit string) reading.Measurement {
	if unit != "" && unit != "." {
		log.WithFields(logrus.Fields{"from": m.Unit, "to": unit}).Debug("forcing unit")
		return m.WithUnit(unit)
	}

	if factor, ok := iecUnits[m.Unit]; ok {
		log.WithFields(logrus.Fields{"unit": m.Unit, "factor": factor}).Debug("expanding binary prefix")
		m = m.WithValue(m.Value * factor)
	}

	return m.WithUnit("")
}
