package engine

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options are the per-call overrides. The value is copied into each call, so
// concurrent calls never see each other's flags.
type Options struct {
	// Precision overrides the unit's significant figures when PrecisionSet
	// and nonzero. For timestamps it selects the rounding level.
	Precision    float64
	PrecisionSet bool
	// Scale, when set, rounds to a fixed number of decimals.
	Scale      *int
	Divisor    string
	Multiplier float64
	Skew       float64
	// Unit replaces the unit when UnitSet; "" or "." strips it.
	Unit    string
	UnitSet bool
	SI      bool
	Flicker bool
	Verbose bool
	Testing bool
	// Compass renders angles as compass point names.
	Compass bool
}

// DefaultOptions returns the options used when the caller passes none.
func DefaultOptions() Options {
	return Options{SI: true}
}

// Diagnostics reports whether verbose or testing output was requested.
func (o Options) Diagnostics() bool {
	return o.Verbose || o.Testing
}

// ParseBool accepts t, true, 1, yes, y and on (any case) as true.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "1", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// ParseOptions builds Options from key/value parameters on top of defaults.
// Malformed numbers are logged and ignored.
func ParseOptions(log logrus.FieldLogger, values map[string]string, defaults Options) Options {
	opts := defaults
	log = log.WithField("component", "engine.options")

	float := func(key string) (float64, bool) {
		raw, ok := values[key]
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("ignoring malformed option")
			return 0, false
		}
		return v, true
	}

	for _, key := range []string{"precision", "prec"} {
		if v, ok := float(key); ok {
			opts.Precision = v
			opts.PrecisionSet = true
			break
		}
	}

	if raw, ok := values["scale"]; ok {
		s, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			log.WithError(err).WithField("key", "scale").Warn("ignoring malformed option")
		} else {
			opts.Scale = &s
		}
	}

	if v, ok := float("mult"); ok {
		opts.Multiplier = v
	}
	if v, ok := float("skew"); ok {
		opts.Skew = v
	}

	if raw, ok := values["div"]; ok {
		opts.Divisor = strings.TrimSpace(raw)
	}

	if raw, ok := values["unit"]; ok {
		opts.Unit = strings.TrimSpace(raw)
		opts.UnitSet = true
	}

	bools := map[string]*bool{
		"si":      &opts.SI,
		"flicker": &opts.Flicker,
		"verbose": &opts.Verbose,
		"testing": &opts.Testing,
		"compass": &opts.Compass,
	}
	for key, dst := range bools {
		if raw, ok := values[key]; ok {
			*dst = ParseBool(raw)
		}
	}

	return opts
}

// ParseQuery parses a URL query string ("prec=2.5&unit=.") into Options.
// Repeated keys use the first value.
func ParseQuery(log logrus.FieldLogger, raw string, defaults Options) (Options, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return defaults, fmt.Errorf("parsing query: %w", err)
	}

	values := make(map[string]string, len(q))
	for k := range q {
		values[k] = q.Get(k)
	}

	return ParseOptions(log, values, defaults), nil
}
