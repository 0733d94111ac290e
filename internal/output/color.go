package output

import (
	"fmt"

	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/fatih/color"
)

// ColorHelper colors terminal output. Colors are off when fatih/color
// detects a non-terminal or NO_COLOR.
type ColorHelper struct {
	enabled bool
}

// NewColorHelper creates a new color helper
func NewColorHelper() *ColorHelper {
	return &ColorHelper{
		enabled: !color.NoColor,
	}
}

func (c *ColorHelper) paint(text string, attrs ...color.Attribute) string {
	if !c.enabled {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// Success returns green colored text
func (c *ColorHelper) Success(text string) string { return c.paint(text, color.FgGreen) }

// Failure returns red colored text
func (c *ColorHelper) Failure(text string) string { return c.paint(text, color.FgRed) }

// Warning returns yellow colored text
func (c *ColorHelper) Warning(text string) string { return c.paint(text, color.FgYellow) }

// Muted returns gray colored text
func (c *ColorHelper) Muted(text string) string { return c.paint(text, color.FgHiBlack) }

// Bold returns bold text
func (c *ColorHelper) Bold(text string) string { return c.paint(text, color.Bold) }

// Header returns bold cyan text for section headers
func (c *ColorHelper) Header(text string) string { return c.paint(text, color.FgCyan, color.Bold) }

// FormatStatus marks a fixture case as passing or failing.
func (c *ColorHelper) FormatStatus(passed bool) string {
	if passed {
		return c.Success("✓ PASS")
	}
	return c.Failure("✗ FAIL")
}

// FormatCount renders a suite's passed/total.
func (c *ColorHelper) FormatCount(passed, total int) string {
	return c.paint(fmt.Sprintf("%d/%d", passed, total), rateColor(passed, total))
}

// FormatPassRate renders the passed count with its share of total.
func (c *ColorHelper) FormatPassRate(passed, total int) string {
	rate := 0.0
	if total > 0 {
		rate = float64(passed) / float64(total) * 100
	}

	return c.paint(fmt.Sprintf("%d (%.1f%%)", passed, rate), rateColor(passed, total))
}

// rateColor is green when everything passed, red when nothing did.
func rateColor(passed, total int) color.Attribute {
	switch {
	case passed == total:
		return color.FgGreen
	case passed == 0:
		return color.FgRed
	default:
		return color.FgYellow
	}
}

// FormatKind dims readings that passed through unparsed.
func (c *ColorHelper) FormatKind(kind reading.Kind) string {
	switch kind {
	case reading.KindUnparseable:
		return c.Muted(kind.String())
	case reading.KindTimestamp:
		return c.paint(kind.String(), color.FgCyan)
	default:
		return kind.String()
	}
}

// FormatChanged highlights outputs that differ from their input.
func (c *ColorHelper) FormatChanged(input, output string) string {
	if input == output {
		return c.Muted(output)
	}
	return output
}
