package output

import (
	"testing"

	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestColorHelper_FormatStatus(t *testing.T) {
	// Disable colors for consistent testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()

	assert.Equal(t, "✓ PASS", helper.FormatStatus(true))
	assert.Equal(t, "✗ FAIL", helper.FormatStatus(false))
}

func TestColorHelper_FormatCount(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()

	tests := []struct {
		name     string
		passed   int
		total    int
		expected string
	}{
		{name: "all passed", passed: 5, total: 5, expected: "5/5"},
		{name: "partial pass", passed: 3, total: 5, expected: "3/5"},
		{name: "all failed", passed: 0, total: 5, expected: "0/5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, helper.FormatCount(tt.passed, tt.total))
		})
	}
}

func TestColorHelper_FormatPassRate(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()

	tests := []struct {
		passed   int
		total    int
		expected string
	}{
		{passed: 4, total: 4, expected: "4 (100.0%)"},
		{passed: 9, total: 10, expected: "9 (90.0%)"},
		{passed: 1, total: 2, expected: "1 (50.0%)"},
		{passed: 0, total: 3, expected: "0 (0.0%)"},
		{passed: 0, total: 0, expected: "0 (0.0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, helper.FormatPassRate(tt.passed, tt.total))
		})
	}
}

func TestColorHelper_FormatKind(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()

	assert.Equal(t, "number", helper.FormatKind(reading.KindNumber))
	assert.Equal(t, "timestamp", helper.FormatKind(reading.KindTimestamp))
	assert.Equal(t, "unparseable", helper.FormatKind(reading.KindUnparseable))
}

func TestRateColor(t *testing.T) {
	assert.Equal(t, color.FgGreen, rateColor(3, 3))
	assert.Equal(t, color.FgYellow, rateColor(2, 3))
	assert.Equal(t, color.FgRed, rateColor(0, 3))
}

func TestColorHelper_ColorsDisabledWhenNoColor(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()
	assert.False(t, helper.enabled)

	assert.Equal(t, "test", helper.Success("test"))
	assert.Equal(t, "test", helper.Failure("test"))
	assert.Equal(t, "test", helper.Warning("test"))
	assert.Equal(t, "same", helper.FormatChanged("same", "same"))
}
