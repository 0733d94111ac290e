package units

import (
	"math"

	"github.com/ethpandaops/sensor-round/internal/sigfig"
)

// Directive tells the rounder how to treat one measurement.
type Directive struct {
	// SignificantFigures may be fractional; see sigfig.Round.
	SignificantFigures float64
	// FixedScale, when set, rounds to that many decimal places instead.
	FixedScale *int
	// Family, when set, lets the normalizer pick a display prefix.
	Family *Family
	// Angle selects sector rounding.
	Angle bool
}

// Bump raises the precision by Add while the value lies in [Min, Max]
// (Closed) or [Min, Max).
type Bump struct {
	Min    float64
	Max    float64
	Closed bool
	Add    float64
}

// Within builds a centered, closed bump: |v - center| <= half.
func Within(center, half, add float64) Bump {
	return Bump{Min: center - half, Max: center + half, Closed: true, Add: add}
}

// Between builds a half-open bump over [lo, hi).
func Between(lo, hi, add float64) Bump {
	return Bump{Min: lo, Max: hi, Add: add}
}

// Applies reports whether v is inside the bump's interval.
func (b Bump) Applies(v float64) bool {
	if v < b.Min {
		return false
	}
	if b.Closed {
		return v <= b.Max
	}
	return v < b.Max
}

// PrecisionFunc derives a base precision from the (converted) value.
type PrecisionFunc func(v float64) float64

// Fixed returns a precision that ignores the value.
func Fixed(p float64) PrecisionFunc {
	return func(float64) float64 { return p }
}

// Decimals returns a precision holding an absolute resolution: the value's
// integer digits plus d. d = 0 keeps whole units, d = 0.5 half units,
// d = 1 one decimal.
func Decimals(d float64) PrecisionFunc {
	return func(v float64) float64 {
		return float64(sigfig.Magnitude(v)) + 1 + d
	}
}

// Policy is the rounding rule for one unit symbol.
type Policy struct {
	Unit string
	// Label is a short description shown by the units listing.
	Label     string
	Precision PrecisionFunc
	Bumps     []Bump
	Scale     *int
	Family    *Family
	Angle     bool
}

// Directive evaluates the policy for a value already expressed in p.Unit.
// All matching bumps add up.
func (p Policy) Directive(v float64) Directive {
	precision := 0.0
	if p.Precision != nil {
		precision = p.Precision(v)
	}

	for _, b := range p.Bumps {
		if b.Applies(v) {
			precision += b.Add
		}
	}

	return Directive{
		SignificantFigures: math.Max(precision, 0),
		FixedScale:         p.Scale,
		Family:             p.Family,
		Angle:              p.Angle,
	}
}
