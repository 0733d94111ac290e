// Package engine turns one raw reading into its human-friendly form:
// parse, adjust, resolve the unit policy, round, normalize and format.
package engine

import (
	"math"
	"strings"
	"time"

	"github.com/ethpandaops/sensor-round/internal/adjust"
	"github.com/ethpandaops/sensor-round/internal/datetime"
	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/ethpandaops/sensor-round/internal/sigfig"
	"github.com/ethpandaops/sensor-round/internal/units"
	"github.com/sirupsen/logrus"
)

// flickerDigits is how far below the last displayed digit flicker perturbs.
const flickerDigits = 3

// Config holds engine-wide settings that do not vary per call.
type Config struct {
	// DateTimeLevel is the timestamp rounding level used when a call does
	// not set a precision.
	DateTimeLevel datetime.Level
	// Clock drives flicker. Nil means time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the settings used by the CLI when nothing is configured.
func DefaultConfig() Config {
	return Config{DateTimeLevel: datetime.DefaultLevel}
}

// Result describes one evaluation.
type Result struct {
	Input  string
	Output string
	Kind   reading.Kind
	// Measurement is the reading after adjustment and unit resolution.
	Measurement reading.Measurement
	Directive   units.Directive
	KnownUnit   bool
	// Value and Unit are what Output displays.
	Value float64
	Unit  string
}

// Engine is safe for concurrent use; all per-call state lives in Options.
type Engine struct {
	log   logrus.FieldLogger
	table *units.Table
	cfg   Config
}

// New creates an engine over the given policy table.
func New(log logrus.FieldLogger, table *units.Table, cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Engine{
		log:   log.WithField("component", "engine"),
		table: table,
		cfg:   cfg,
	}
}

// Table returns the policy table the engine resolves units against.
func (e *Engine) Table() *units.Table {
	return e.table
}

// Transform returns the formatted output for input. It never fails:
// unparseable input comes back unchanged.
func (e *Engine) Transform(input string, opts Options) string {
	return e.Evaluate(input, opts).Output
}

// Evaluate runs the pipeline and returns the output with its intermediate state.
func (e *Engine) Evaluate(input string, opts Options) Result {
	trimmed := strings.TrimSpace(input)
	parsed := reading.Parse(trimmed)

	tr := trace{
		log:  e.log.WithField("input", trimmed),
		loud: opts.Diagnostics(),
	}

	res := Result{Input: input, Kind: parsed.Kind}

	switch parsed.Kind {
	case reading.KindUnparseable:
		tr.step("passing through unparseable input", nil)
		res.Output = input
		return res

	case reading.KindTimestamp:
		level := e.cfg.DateTimeLevel
		if opts.PrecisionSet {
			level = datetime.ClampLevel(int(opts.Precision))
		}

		res.Output = datetime.Round(parsed.Timestamp, level).String()
		tr.step("rounded timestamp", logrus.Fields{"level": level.String(), "output": res.Output})

		return res

	default:
		return e.evaluateMeasurement(tr, res, parsed.Measurement, opts)
	}
}

func (e *Engine) evaluateMeasurement(tr trace, res Result, m reading.Measurement, opts Options) Result {
	m = adjust.Apply(tr.log, m, adjust.Overrides{
		Unit:       opts.Unit,
		UnitSet:    opts.UnitSet,
		Skew:       opts.Skew,
		Divisor:    opts.Divisor,
		Multiplier: opts.Multiplier,
	})

	m, dir, known := e.table.Resolve(m, opts.SI)
	if !known && m.Unit != "" && opts.Diagnostics() {
		tr.log.WithField("unit", m.Unit).Warn("unknown unit, using default precision")
	}

	dir = applyOverrides(tr, dir, opts)

	tr.step("resolved policy", logrus.Fields{
		"value":     m.Value,
		"unit":      m.Unit,
		"precision": dir.SignificantFigures,
		"found":     m.PrecisionFound,
	})

	value, unit := m.Value, m.Unit

	switch {
	case value == 0:
		tr.step("zero value, rounding skipped", nil)
	case dir.FixedScale != nil:
		value = sigfig.RoundScale(value, *dir.FixedScale)
	case dir.Angle:
		value = units.RoundAngle(value, dir.SignificantFigures)
	default:
		value = sigfig.Round(value, dir.SignificantFigures, m.PrecisionFound)
		if dir.Family != nil {
			value, unit = units.Normalize(value, *dir.Family, dir.SignificantFigures, m.PrecisionFound)
		}
	}

	if opts.Flicker && e.cfg.Clock().Unix()%2 != 0 {
		value = flicker(value)
		tr.step("flicker applied", logrus.Fields{"value": value})
	}

	res.Measurement = m
	res.Directive = dir
	res.KnownUnit = known
	res.Value = value
	res.Unit = unit
	res.Output = format(value, unit, dir.Angle && opts.Compass)

	tr.step("formatted", logrus.Fields{"output": res.Output})

	return res
}

// applyOverrides lets explicit precision or scale replace the unit-derived
// directive. A precision of 0 is a caller error and is ignored.
func applyOverrides(tr trace, dir units.Directive, opts Options) units.Directive {
	if opts.PrecisionSet {
		if opts.Precision <= 0 {
			tr.log.WithField("precision", opts.Precision).Warn("ignoring non-positive precision override")
		} else {
			dir.SignificantFigures = opts.Precision
			dir.FixedScale = nil
		}
	}

	if opts.Scale != nil {
		scale := *opts.Scale
		dir.FixedScale = &scale
	}

	return dir
}

// flicker nudges |v| up by one unit flickerDigits places below its last
// displayed digit.
func flicker(v float64) float64 {
	k := sigfig.Decimals(v) + flickerDigits

	step := 1.0
	if v < 0 {
		step = -1.0
	}

	return sigfig.Shift(math.Round(sigfig.Shift(v, k))+step, -k)
}

func format(v float64, unit string, compass bool) string {
	if compass {
		return units.Compass(v)
	}

	s := sigfig.Format(v)
	if unit == "" {
		return s
	}

	return s + " " + unit
}

// trace logs pipeline steps at debug level, or info when the call asked for
// diagnostics.
type trace struct {
	log  logrus.FieldLogger
	loud bool
}

func (t trace) step(msg string, fields logrus.Fields) {
	entry := t.log.WithFields(fields)
	if t.loud {
		entry.Info(msg)
		return
	}
	entry.Debug(msg)
}
