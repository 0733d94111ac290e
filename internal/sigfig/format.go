package sigfig

import (
	"strconv"
	"strings"
)

// Format renders x in plain decimal notation with the fewest digits that
// round-trip. Negative zero renders as "0".
func Format(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Decimals returns the number of digits after the decimal point in Format(x).
func Decimals(x float64) int {
	s := Format(x)

	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}

	return len(s) - dot - 1
}

// Sci renders x in scientific notation with frac fractional mantissa digits,
// then strips trailing mantissa zeros and a bare "e+0" exponent.
//
//	Sci(1500, 2) == "1.5e+3"
//	Sci(1.5, 2)  == "1.5"
func Sci(x float64, frac int) string {
	if frac < 0 {
		frac = 0
	}

	s := strconv.FormatFloat(x, 'e', frac, 64)

	mantissa, exponent, _ := strings.Cut(s, "e")
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}

	exp, err := strconv.Atoi(exponent)
	if err != nil || exp == 0 {
		return mantissa
	}

	if exp > 0 {
		return mantissa + "e+" + strconv.Itoa(exp)
	}

	return mantissa + "e" + strconv.Itoa(exp)
}
