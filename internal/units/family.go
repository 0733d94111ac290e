package units

import (
	"math"
	"strconv"

	"github.com/ethpandaops/sensor-round/internal/sigfig"
)

// Prefix lists shared by the built-in families.
var (
	siPrefixes     = []string{"µ", "m", "", "k", "M", "G", "T", "P"}
	largePrefixes  = []string{"", "k", "M", "G", "T", "P"}
	lengthPrefixes = []string{"µ", "m", "", "k"}
	smallPrefixes  = []string{"µ", "m", ""}
)

// Family is the ordered set of prefixes a base unit may be displayed with.
// Neighbouring prefixes are a factor of 1000 apart.
type Family struct {
	Base     string
	Prefixes []string
}

// Unprefixed returns the index of the empty prefix, or -1.
func (f Family) Unprefixed() int {
	for i, p := range f.Prefixes {
		if p == "" {
			return i
		}
	}
	return -1
}

// Unit returns the display unit at index i.
func (f Family) Unit(i int) string {
	return f.Prefixes[i] + f.Base
}

// Exponent returns the power of ten a prefixed unit of this family stands for,
// e.g. 3 for "kW" in the W family.
func (f Family) Exponent(unit string) (int, bool) {
	exp, ok := f.Prefixed()[unit]
	return exp, ok
}

// Prefixed maps every prefixed unit of the family to its power of ten. "u"
// is accepted for "µ".
func (f Family) Prefixed() map[string]int {
	base := f.Unprefixed()
	if base < 0 {
		return nil
	}

	out := make(map[string]int, len(f.Prefixes))
	for i, p := range f.Prefixes {
		if p == "" {
			continue
		}
		out[p+f.Base] = 3 * (i - base)
		if p == "µ" {
			out["u"+f.Base] = 3 * (i - base)
		}
	}

	return out
}

// Normalize moves a rounded base-unit value onto the family member whose
// prefix keeps the displayed magnitude in [1, 1000). When the shift would
// leave the family the value stays in the base unit. A shifted value is
// re-derived through scientific notation with min(found, ceil(p))-1 fractional
// digits so the prefix change cannot add digits the reading did not carry.
func Normalize(v float64, f Family, p, found float64) (float64, string) {
	base := f.Unprefixed()
	if base < 0 || v == 0 {
		return v, f.Base
	}

	shift := floorDiv(sigfig.Magnitude(v), 3)
	if shift == 0 {
		return v, f.Base
	}

	idx := base + shift
	if idx < 0 || idx >= len(f.Prefixes) {
		return v, f.Base
	}

	scaled := sigfig.Shift(v, -3*shift)

	digits := int(math.Ceil(math.Min(found, math.Ceil(p)))) - 1
	clean, err := strconv.ParseFloat(sigfig.Sci(scaled, digits), 64)
	if err != nil {
		clean = scaled
	}

	return clean, f.Unit(idx)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
