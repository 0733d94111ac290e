package units

import "math"

var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// NormalizeAngle maps degrees onto [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// RoundAngle snaps an angle onto 90/floor(p) degree sectors. With one or two
// figures it rounds to the nearest sector edge so results land on N, E, S, W
// (and NE, SE, … with two). From three figures up it returns sector centers.
func RoundAngle(deg, p float64) float64 {
	deg = NormalizeAngle(deg)

	n := math.Floor(p)
	if n < 1 {
		n = 1
	}

	width := 90 / n

	if n <= 2 {
		return NormalizeAngle(math.Floor(deg/width+0.5) * width)
	}

	return NormalizeAngle(math.Floor(deg/width)*width + width/2)
}

// Compass names the 16-point compass sector an angle falls into.
func Compass(deg float64) string {
	idx := int(math.Floor(NormalizeAngle(deg)/22.5+0.5)) % len(compassPoints)
	return compassPoints[idx]
}
