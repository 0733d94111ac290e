package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	assert.Equal(t, 10.0, NormalizeAngle(370))
	assert.Equal(t, 270.0, NormalizeAngle(-90))
	assert.Equal(t, 0.0, NormalizeAngle(720))
	assert.Equal(t, 359.5, NormalizeAngle(359.5))
}

func TestRoundAngle(t *testing.T) {
	tests := []struct {
		name      string
		degrees   float64
		precision float64
		expected  float64
	}{
		{name: "wraps before rounding", degrees: 370, precision: 2, expected: 0},
		{name: "eight sectors", degrees: 100, precision: 2, expected: 90},
		{name: "eight sectors upper", degrees: 120, precision: 2, expected: 135},
		{name: "four sectors", degrees: 100, precision: 1, expected: 90},
		{name: "wraps to north", degrees: 350, precision: 2, expected: 0},
		{name: "mid sector", degrees: 100, precision: 3, expected: 105},
		{name: "mid sector sixteenths", degrees: 10, precision: 4, expected: 11.25},
		{name: "fractional precision floors", degrees: 100, precision: 2.7, expected: 90},
		{name: "below one figure", degrees: 100, precision: 0.5, expected: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundAngle(tt.degrees, tt.precision))
		})
	}
}

func TestCompass(t *testing.T) {
	assert.Equal(t, "N", Compass(0))
	assert.Equal(t, "NE", Compass(45))
	assert.Equal(t, "N", Compass(350))
	assert.Equal(t, "SSW", Compass(200))
	assert.Equal(t, "W", Compass(-90))
}
