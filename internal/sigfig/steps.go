package sigfig

import "math"

const (
	minSteps = 2
	maxSteps = 5
)

// Nice-step tables, indexed by stepCount-2. A remainder r in 0..10 (the cut-off
// digits rescaled to one band) falls into the first bucket whose border is >= r
// and is replaced by that bucket's middle. Each middle lies inside its own
// bucket so rounding an already rounded value is a no-op, and every middle is a
// whole digit so a step adds at most one figure.
//
// The 1-tables apply when a nonzero kept digit anchors the band. The 0-tables
// apply below one figure, where the remainder is the leading digit itself
// (1..10). Their first middle is 1, not 0: a reading never collapses to zero,
// and a carry into the next decade (10) lands on that decade's 1.
var (
	borders1 = [maxSteps - minSteps + 1][]float64{
		{2.5, 7.5, 10},
		{1.5, 5, 8.5, 10},
		{1.25, 3.75, 6.25, 8.75, 10},
		{1, 3, 5, 7, 9, 10},
	}
	middles1 = [maxSteps - minSteps + 1][]float64{
		{0, 5, 10},
		{0, 3, 7, 10},
		{0, 3, 5, 7, 10},
		{0, 2, 4, 6, 8, 10},
	}

	borders0 = [maxSteps - minSteps + 1][]float64{
		{2, 7, 10},
		{1, 5, 8.5, 10},
		{1, 3.75, 6.25, 8.75, 10},
		{1, 3, 5, 7, 9, 10},
	}
	middles0 = [maxSteps - minSteps + 1][]float64{
		{1, 5, 10},
		{1, 3, 7, 10},
		{1, 3, 5, 7, 10},
		{1, 2, 4, 6, 8, 10},
	}
)

// StepCount maps the fractional part of a precision onto the number of grid
// steps per band: clamp(ceil(1/f'), 2, 5) with f' = min(f, 1-f).
func StepCount(f float64) int {
	if f > 0.5 {
		f = 1 - f
	}
	if f <= 0 {
		return maxSteps
	}

	steps := int(math.Ceil(1/f - epsilon))
	if steps < minSteps {
		return minSteps
	}
	if steps > maxSteps {
		return maxSteps
	}

	return steps
}

// Classify returns the grid middle (0..10) for a remainder in 0..10.
func Classify(remainder float64, steps int, unanchored bool) float64 {
	if steps < minSteps {
		steps = minSteps
	}
	if steps > maxSteps {
		steps = maxSteps
	}

	borders, middles := borders1[steps-minSteps], middles1[steps-minSteps]
	if unanchored {
		borders, middles = borders0[steps-minSteps], middles0[steps-minSteps]
	}

	for i, border := range borders {
		if remainder <= border+epsilon {
			return middles[i]
		}
	}

	return middles[len(middles)-1]
}
