package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ethpandaops/sensor-round/internal/datetime"
	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/ethpandaops/sensor-round/internal/units"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evenSecond = time.Date(2025, 9, 27, 14, 16, 28, 0, time.UTC)

func newTestEngine(t *testing.T, clock time.Time) (*Engine, *test.Hook) {
	t.Helper()

	log, hook := test.NewNullLogger()
	table := units.NewTable(log, 0)

	return New(log, table, Config{
		DateTimeLevel: datetime.DefaultLevel,
		Clock:         func() time.Time { return clock },
	}), hook
}

func intPtr(v int) *int { return &v }

func TestEngine_Transform(t *testing.T) {
	eng, _ := newTestEngine(t, evenSecond)

	withDefaults := func(mod func(*Options)) *Options {
		opts := DefaultOptions()
		mod(&opts)
		return &opts
	}

	tests := []struct {
		name     string
		input    string
		opts     *Options
		expected string
	}{
		{name: "temperature half steps", input: "21.43 °C", expected: "21.5 °C"},
		{name: "negative temperature", input: "-3.66 °C", expected: "-3.5 °C"},
		{name: "near freezing gets finer steps", input: "0.43 °C", expected: "0.42 °C"},
		{name: "fahrenheit freezing", input: "32 °F", expected: "0 °C"},
		{name: "fahrenheit converted", input: "70.3 °F", expected: "21.5 °C"},
		{name: "fahrenheit lacks digits", input: "70 °F", expected: "21 °C"},
		{
			name:     "fahrenheit without si",
			input:    "70.3 °F",
			opts:     withDefaults(func(o *Options) { o.SI = false }),
			expected: "70 °F",
		},
		{
			name:     "mph without si",
			input:    "10 mph",
			opts:     withDefaults(func(o *Options) { o.SI = false }),
			expected: "10 mph",
		},
		{
			name:     "psi without si keeps quarter steps",
			input:    "14.73 psi",
			opts:     withDefaults(func(o *Options) { o.SI = false }),
			expected: "14.73 psi",
		},
		{name: "power normalized to kilo", input: "1234 W", expected: "1.23 kW"},
		{name: "prefixed input keeps its digits", input: "1.5 kW", expected: "1.5 kW"},
		{name: "current normalized to milli", input: "0.0123 A", expected: "12.3 mA"},
		{name: "atmospheric pressure", input: "1013.4 hPa", expected: "1013.5 hPa"},
		{name: "psi to hPa", input: "14.7 psi", expected: "1014 hPa"},
		{name: "mains frequency", input: "50.03 Hz", expected: "50.02 Hz"},
		{name: "mains voltage keeps its digits", input: "230.7 V", expected: "230.7 V"},
		{name: "mains voltage quarter step", input: "230.2 V", expected: "230.3 V"},
		{name: "mains voltage steps up", input: "230.9 V", expected: "231 V"},
		{name: "mph to km/h", input: "10 mph", expected: "16 km/h"},
		{name: "interval", input: "1-2", expected: "1.5"},
		{name: "interval upper", input: "2-3", expected: "2.5"},
		{name: "unknown unit default precision", input: "12.345 furlongs", expected: "12.3 furlongs"},
		{name: "unparseable passes through", input: "  on ", expected: "  on "},
		{name: "angle wraps", input: "370 °", expected: "0 °"},
		{name: "angle sectors", input: "100 °", expected: "90 °"},
		{
			name:     "compass names",
			input:    "100 °",
			opts:     withDefaults(func(o *Options) { o.Compass = true }),
			expected: "E",
		},
		{
			name:     "precision override",
			input:    "21.43 °C",
			opts:     withDefaults(func(o *Options) { o.Precision, o.PrecisionSet = 3, true }),
			expected: "21.4 °C",
		},
		{
			name:     "precision override below one figure",
			input:    "21.43 °C",
			opts:     withDefaults(func(o *Options) { o.Precision, o.PrecisionSet = 0.5, true }),
			expected: "50 °C",
		},
		{
			name:     "precision below one figure carries a decade",
			input:    "98.76",
			opts:     withDefaults(func(o *Options) { o.Precision, o.PrecisionSet = 0.5, true }),
			expected: "100",
		},
		{
			name:     "precision below one figure keeps leading one",
			input:    "150",
			opts:     withDefaults(func(o *Options) { o.Precision, o.PrecisionSet = 0.5, true }),
			expected: "100",
		},
		{
			name:     "zero precision ignored",
			input:    "21.43 °C",
			opts:     withDefaults(func(o *Options) { o.PrecisionSet = true }),
			expected: "21.5 °C",
		},
		{
			name:     "scale override",
			input:    "21.4321 °C",
			opts:     withDefaults(func(o *Options) { o.Scale = intPtr(2) }),
			expected: "21.43 °C",
		},
		{
			name:     "strip binary unit then divide",
			input:    "3 MiB",
			opts:     withDefaults(func(o *Options) { o.Unit, o.UnitSet, o.Divisor = ".", true, "1K" }),
			expected: "3070",
		},
		{
			name:     "strip binary unit",
			input:    "2 KiB",
			opts:     withDefaults(func(o *Options) { o.UnitSet = true }),
			expected: "2050",
		},
		{
			name:     "force unit",
			input:    "21.43",
			opts:     withDefaults(func(o *Options) { o.Unit, o.UnitSet = "°C", true }),
			expected: "21.5 °C",
		},
		{
			name:     "multiplier",
			input:    "0.5",
			opts:     withDefaults(func(o *Options) { o.Multiplier = 100 }),
			expected: "50",
		},
		{
			name:     "timestamp level from precision",
			input:    "2025-09-27T14:16:28.000+0200",
			opts:     withDefaults(func(o *Options) { o.Precision, o.PrecisionSet = 2, true }),
			expected: "2025-09-27T14:16:00.000+0200",
		},
		{name: "timestamp default level", input: "2025-09-27 14:16:28.600+0200", expected: "2025-09-27 14:16:29.000+0200"},
		{
			name:     "flicker on even second is silent",
			input:    "21.43 °C",
			opts:     withDefaults(func(o *Options) { o.Flicker = true }),
			expected: "21.5 °C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				opts = *tt.opts
			}

			assert.Equal(t, tt.expected, eng.Transform(tt.input, opts))
		})
	}
}

func TestEngine_Flicker(t *testing.T) {
	eng, _ := newTestEngine(t, evenSecond.Add(time.Second))

	opts := DefaultOptions()
	opts.Flicker = true

	assert.Equal(t, "21.5001 °C", eng.Transform("21.43 °C", opts))
	assert.Equal(t, "-3.5001 °C", eng.Transform("-3.66 °C", opts))
}

func TestEngine_Evaluate(t *testing.T) {
	eng, _ := newTestEngine(t, evenSecond)

	res := eng.Evaluate("1234 W", DefaultOptions())

	assert.Equal(t, reading.KindNumber, res.Kind)
	assert.True(t, res.KnownUnit)
	assert.Equal(t, 3.0, res.Directive.SignificantFigures)
	assert.Equal(t, 4.0, res.Measurement.PrecisionFound)
	assert.Equal(t, 1.23, res.Value)
	assert.Equal(t, "kW", res.Unit)

	res = eng.Evaluate("2025-09-27T14:16:28.000+0200", DefaultOptions())
	assert.Equal(t, reading.KindTimestamp, res.Kind)

	res = eng.Evaluate("n/a", DefaultOptions())
	assert.Equal(t, reading.KindUnparseable, res.Kind)
	assert.Equal(t, "n/a", res.Output)
}

func TestEngine_Diagnostics(t *testing.T) {
	t.Run("unknown unit is quiet by default", func(t *testing.T) {
		eng, hook := newTestEngine(t, evenSecond)

		eng.Transform("12.345 furlongs", DefaultOptions())
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("unknown unit warns in verbose mode", func(t *testing.T) {
		eng, hook := newTestEngine(t, evenSecond)

		opts := DefaultOptions()
		opts.Verbose = true
		eng.Transform("12.345 furlongs", opts)

		var warned bool
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel && entry.Data["unit"] == "furlongs" {
				warned = true
			}
		}
		assert.True(t, warned)
	})

	t.Run("zero precision is a caller error", func(t *testing.T) {
		eng, hook := newTestEngine(t, evenSecond)

		opts := DefaultOptions()
		opts.PrecisionSet = true
		eng.Transform("21.43 °C", opts)

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("diagnostics do not change the result", func(t *testing.T) {
		eng, _ := newTestEngine(t, evenSecond)

		quiet := DefaultOptions()
		loud := DefaultOptions()
		loud.Testing = true

		for _, input := range []string{"21.43 °C", "1234 W", "1-2", "12.345 furlongs"} {
			assert.Equal(t, eng.Transform(input, quiet), eng.Transform(input, loud), input)
		}
	})
}

func TestEngine_ConcurrentCallsDoNotShareOptions(t *testing.T) {
	eng, _ := newTestEngine(t, evenSecond)

	si := DefaultOptions()
	imperial := DefaultOptions()
	imperial.SI = false

	var wg sync.WaitGroup
	errs := make(chan string, 200)

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if out := eng.Transform("70.3 °F", si); out != "21.5 °C" {
				errs <- out
			}
		}()
		go func() {
			defer wg.Done()
			if out := eng.Transform("70.3 °F", imperial); out != "70 °F" {
				errs <- out
			}
		}()
	}

	wg.Wait()
	close(errs)

	for out := range errs {
		t.Errorf("unexpected output %q", out)
	}
}

func TestEngine_TransformAll(t *testing.T) {
	eng, _ := newTestEngine(t, evenSecond)

	inputs := []string{"21.43 °C", "1234 W", "1-2", "on", "32 °F"}

	results, err := eng.TransformAll(context.Background(), inputs, DefaultOptions(), 2)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	outputs := make([]string, 0, len(results))
	for _, r := range results {
		outputs = append(outputs, r.Output)
	}

	assert.Equal(t, []string{"21.5 °C", "1.23 kW", "1.5", "on", "0 °C"}, outputs)
}

func TestEngine_TransformAllCanceled(t *testing.T) {
	eng, _ := newTestEngine(t, evenSecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.TransformAll(ctx, []string{"1", "2"}, DefaultOptions(), 1)
	require.ErrorIs(t, err, context.Canceled)
}
