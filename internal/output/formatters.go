package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/ethpandaops/sensor-round/internal/fixtures"
	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/ethpandaops/sensor-round/internal/units"
	"github.com/sirupsen/logrus"
)

// maxCellWidth truncates long inputs in result tables.
const maxCellWidth = 50

// samplePoints are the values the units listing evaluates each policy at.
var samplePoints = []float64{1, 10, 100, 1000}

// Duration formats a duration for human-readable output.
func Duration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.0fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Milliseconds()))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	return fmt.Sprintf("%.1fm", d.Minutes())
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-3]) + "..."
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ResultsFormatter formats batch results as a table.
type ResultsFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewResultsFormatter creates a new results table formatter.
func NewResultsFormatter(log logrus.FieldLogger, renderer Renderer) *ResultsFormatter {
	return &ResultsFormatter{
		log:      log.WithField("component", "output.results_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format renders one row per result, in input order.
func (f *ResultsFormatter) Format(results []engine.Result) string {
	if len(results) == 0 {
		return "No readings processed"
	}

	var (
		headers = []string{"#", "Input", "Output", "Kind", "Precision"}
		rows    = make([][]string, 0, len(results))
	)

	for i, res := range results {
		precision := ""
		if res.Directive.FixedScale != nil {
			precision = fmt.Sprintf("scale %d", *res.Directive.FixedScale)
		} else if res.Output != res.Input && res.Kind != reading.KindTimestamp {
			precision = formatFloat(res.Directive.SignificantFigures)
		}

		if precision != "" && !res.KnownUnit && res.Unit != "" {
			precision += " " + f.colors.Muted("(default)")
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(res.Input),
			f.colors.FormatChanged(res.Input, res.Output),
			f.colors.FormatKind(res.Kind),
			precision,
		})
	}

	return f.renderer.RenderToString(headers, rows)
}

// CheckFormatter formats fixture runs.
type CheckFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewCheckFormatter creates a new fixture run formatter.
func NewCheckFormatter(log logrus.FieldLogger, renderer Renderer) *CheckFormatter {
	return &CheckFormatter{
		log:      log.WithField("component", "output.check_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format renders the per-suite table, failure details and a summary. When
// verbose is false only failing cases are listed.
func (f *CheckFormatter) Format(result *fixtures.RunResult, verbose bool) string {
	if result == nil || result.Total == 0 {
		return "No fixture cases executed"
	}

	var sb strings.Builder

	listed := result.Failures()
	if verbose {
		listed = result.Results
	}

	if len(listed) > 0 {
		var (
			headers = []string{"Suite", "Case", "Status", "Expected", "Actual"}
			rows    = make([][]string, 0, len(listed))
		)

		for _, res := range listed {
			actual := res.Actual
			if !res.Passed {
				actual = f.colors.Failure(actual)
			}

			rows = append(rows, []string{
				res.Suite,
				truncate(res.Name),
				f.colors.FormatStatus(res.Passed),
				res.Expected,
				actual,
			})
		}

		sb.WriteString("\n" + f.colors.Header("▸ Cases") + "\n\n")
		sb.WriteString(f.renderer.RenderToString(headers, rows))
	}

	sb.WriteString(f.suites(result))
	sb.WriteString(f.summary(result))

	return sb.String()
}

// suites renders one row per suite, in the order suites first appear.
func (f *CheckFormatter) suites(result *fixtures.RunResult) string {
	type tally struct {
		passed, total int
		duration      time.Duration
	}

	var (
		order   []string
		tallies = make(map[string]*tally)
	)

	for _, res := range result.Results {
		t, ok := tallies[res.Suite]
		if !ok {
			t = &tally{}
			tallies[res.Suite] = t
			order = append(order, res.Suite)
		}

		t.total++
		t.duration += res.Duration
		if res.Passed {
			t.passed++
		}
	}

	var (
		headers = []string{"Suite", "Passed", "Duration"}
		rows    = make([][]string, 0, len(order))
	)

	for _, name := range order {
		t := tallies[name]
		rows = append(rows, []string{name, f.colors.FormatCount(t.passed, t.total), Duration(t.duration)})
	}

	return "\n" + f.colors.Header("▸ Suites") + "\n\n" + f.renderer.RenderToString(headers, rows)
}

func (f *CheckFormatter) summary(result *fixtures.RunResult) string {
	failedValue := f.colors.Success("0")
	if result.Failed > 0 {
		failedValue = f.colors.Failure(strconv.Itoa(result.Failed))
	}

	var (
		headers = []string{"Metric", "Value"}
		rows    = [][]string{
			{"Total Cases", f.colors.Bold(strconv.Itoa(result.Total))},
			{"Passed", f.colors.FormatPassRate(result.Passed, result.Total)},
			{"Failed", failedValue},
			{"Total Duration", Duration(result.Duration)},
		}
	)

	return "\n" + f.colors.Header("▸ Summary") + "\n\n" + f.renderer.RenderToString(headers, rows)
}

// UnitsFormatter lists the policy table.
type UnitsFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewUnitsFormatter creates a new policy table formatter.
func NewUnitsFormatter(log logrus.FieldLogger, renderer Renderer) *UnitsFormatter {
	return &UnitsFormatter{
		log:      log.WithField("component", "output.units_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format renders one row per policy: the SI target, the precision it yields
// at a few sample magnitudes, the prefix family and the bumps.
func (f *UnitsFormatter) Format(table *units.Table) string {
	policies := table.Policies()

	samples := make([]string, 0, len(samplePoints))
	for _, v := range samplePoints {
		samples = append(samples, formatFloat(v))
	}

	var (
		headers = []string{"Unit", "Label", "SI", "Precision @ " + strings.Join(samples, "/"), "Prefixes", "Bumps"}
		rows    = make([][]string, 0, len(policies))
	)

	for _, p := range policies {
		si := table.Target(p.Unit)
		if si == p.Unit {
			si = f.colors.Muted("-")
		}

		rows = append(rows, []string{
			p.Unit,
			p.Label,
			si,
			describePrecision(p),
			describeFamily(p.Family),
			describeBumps(p.Bumps),
		})
	}

	return f.renderer.RenderToString(headers, rows)
}

func describePrecision(p units.Policy) string {
	if p.Scale != nil {
		return fmt.Sprintf("scale %d", *p.Scale)
	}

	parts := make([]string, 0, len(samplePoints))
	for _, v := range samplePoints {
		parts = append(parts, formatFloat(p.Directive(v).SignificantFigures))
	}

	desc := strings.Join(parts, "/")
	if p.Angle {
		desc += " (sectors)"
	}

	return desc
}

func describeFamily(f *units.Family) string {
	if f == nil {
		return ""
	}

	names := make([]string, 0, len(f.Prefixes))
	for i := range f.Prefixes {
		names = append(names, f.Unit(i))
	}

	return strings.Join(names, " ")
}

func describeBumps(bumps []units.Bump) string {
	parts := make([]string, 0, len(bumps))

	for _, b := range bumps {
		closing := ")"
		if b.Closed {
			closing = "]"
		}
		parts = append(parts, fmt.Sprintf("[%s, %s%s +%s", formatFloat(b.Min), formatFloat(b.Max), closing, formatFloat(b.Add)))
	}

	return strings.Join(parts, ", ")
}
