// Package sigfig rounds values to integer or fractional significant-figure counts.
//
// A fractional count p = n + f rounds to n figures, but lets the value step onto
// a coarse grid inside its least significant band: f = .5 gives .0/.5 steps,
// f = .3 or .7 gives quarters, f = .2 or .8 gives fifths, and so on. The grids
// come from curated tables rather than arithmetic so the thresholds stay "nice".
// Below one figure (n = 0) the leading digit itself steps onto a 1/5/10-style
// grid of its decade.
package sigfig

import (
	"math"
)

// epsilon absorbs binary noise when scaling decimal values by powers of ten.
const epsilon = 1e-9

// Magnitude returns floor(log10(|x|)), and 0 for x == 0.
func Magnitude(x float64) int {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	ax := math.Abs(x)
	m := int(math.Floor(math.Log10(ax)))

	// Log10 can land a hair below an exact power of ten (Log10(1000) < 3).
	if ax >= math.Pow10(m+1) {
		m++
	} else if ax < math.Pow10(m) {
		m--
	}

	return m
}

// Shift multiplies x by 10^k. Negative k divides by an exact power of ten so
// the result is the nearest double to the decimal value.
func Shift(x float64, k int) float64 {
	if k >= 0 {
		return x * math.Pow10(k)
	}
	return x / math.Pow10(-k)
}

// ToPrec rounds x to n significant figures:
// round(x * 10^(n-mag-1)) / 10^(n-mag-1).
// n may be zero, which rounds to the decade above the leading digit.
func ToPrec(x float64, n int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	k := n - Magnitude(x) - 1

	return Shift(math.Round(Shift(x, k)), -k)
}

// RoundScale rounds x to a fixed number of decimal places. Negative scales
// round to tens, hundreds, and so on.
func RoundScale(x float64, scale int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return Shift(math.Round(Shift(x, scale)), -scale)
}

// Round rounds x to the possibly fractional precision p. found is the number of
// significant digits present in the input; rounding never steps onto a finer
// grid than the input carried and falls back to ToPrec(x, floor(p)) instead.
func Round(x, p, found float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	if p < 0 {
		p = 0
	}

	whole := math.Floor(p)
	n := int(whole)
	f := p - whole

	if f < epsilon || found <= whole {
		return ToPrec(x, n)
	}

	sign := 1.0
	if x < 0 {
		sign = -1.0
	}

	ax := math.Abs(x)
	k := n - Magnitude(ax) - 1
	scaled := Shift(ax, k)

	kept := math.Floor(scaled + epsilon)
	remainder := (scaled - kept) * 10
	if remainder < 0 {
		remainder = 0
	}

	// kept is zero only when n is zero; the remainder is then the leading digit.
	step := Classify(remainder, StepCount(f), kept == 0)

	return sign * Shift(kept*10+step, -(k + 1))
}
