package actions

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethpandaops/sensor-round/internal/config"
	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/ethpandaops/sensor-round/internal/fixtures"
	"github.com/ethpandaops/sensor-round/internal/output"
	"github.com/ethpandaops/sensor-round/internal/units"
	"github.com/sirupsen/logrus"
)

// ErrChecksFailed is returned by Check when at least one case did not match.
var ErrChecksFailed = errors.New("fixture checks failed")

// maxLineSize bounds a single batch input line.
const maxLineSize = 1 << 20

// NewEngine builds the policy table (built-ins plus the configured policy
// file) and an engine over it.
func NewEngine(log logrus.FieldLogger, cfg *config.AppConfig) (*engine.Engine, error) {
	table := units.NewTable(log, cfg.DefaultPrecision)

	if cfg.PolicyFile != "" {
		if err := table.LoadPolicyFile(cfg.PolicyFile); err != nil {
			return nil, fmt.Errorf("loading policies: %w", err)
		}
	}

	return engine.New(log, table, cfg.EngineConfig()), nil
}

// BatchOptions configures Batch.
type BatchOptions struct {
	Options engine.Options
	Workers int
	// Table renders a table with the resolved precision instead of one
	// output per line.
	Table bool
}

// Batch transforms every line of in and writes the outputs to w in order.
// Blank and unparseable lines come back unchanged, keeping lines aligned.
func Batch(ctx context.Context, log logrus.FieldLogger, eng *engine.Engine, in io.Reader, w io.Writer, opts BatchOptions) error {
	inputs, err := readLines(in)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"lines":   len(inputs),
		"workers": opts.Workers,
	}).Debug("transforming batch")

	results, err := eng.TransformAll(ctx, inputs, opts.Options, opts.Workers)
	if err != nil {
		return fmt.Errorf("transforming batch: %w", err)
	}

	if opts.Table {
		formatter := output.NewResultsFormatter(log, output.NewRenderer(log))
		_, err = fmt.Fprint(w, formatter.Format(results))
		return err
	}

	bw := bufio.NewWriter(w)
	for _, res := range results {
		if _, err := fmt.Fprintln(bw, res.Output); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return bw.Flush()
}

func readLines(in io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := make([]string, 0, 64)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return lines, nil
}

// CheckOptions configures Check.
type CheckOptions struct {
	// Dir is scanned for fixture files when Paths is empty.
	Dir     string
	Paths   []string
	Options engine.Options
	Workers int
	Verbose bool
}

// Check runs fixture files against eng and prints the report to w. It
// returns ErrChecksFailed when any case fails.
func Check(ctx context.Context, log logrus.FieldLogger, eng *engine.Engine, w io.Writer, opts CheckOptions) (*fixtures.RunResult, error) {
	loader := fixtures.NewLoader(log, opts.Dir)

	var (
		suites []*fixtures.Suite
		err    error
	)

	if len(opts.Paths) > 0 {
		suites, err = loader.Load(opts.Paths)
	} else {
		suites, err = loader.LoadAll()
	}

	if err != nil {
		return nil, fmt.Errorf("loading fixtures: %w", err)
	}

	result, err := fixtures.NewRunner(log, eng, opts.Options, opts.Workers).Run(ctx, suites)
	if err != nil {
		return nil, fmt.Errorf("running fixtures: %w", err)
	}

	formatter := output.NewCheckFormatter(log, output.NewRenderer(log))
	if _, err := fmt.Fprintln(w, formatter.Format(result, opts.Verbose)); err != nil {
		return result, fmt.Errorf("writing report: %w", err)
	}

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrChecksFailed, result.Failed, result.Total)
	}

	return result, nil
}

// ListUnits prints the policy table.
func ListUnits(log logrus.FieldLogger, table *units.Table, w io.Writer) error {
	formatter := output.NewUnitsFormatter(log, output.NewRenderer(log))

	_, err := fmt.Fprint(w, formatter.Format(table))

	return err
}
