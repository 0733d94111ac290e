package fixtures

import (
	"context"
	"time"

	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 5

// Runner evaluates fixture suites against an engine.
type Runner interface {
	Run(ctx context.Context, suites []*Suite) (*RunResult, error)
}

// RunResult contains the outcome of every case, in file then case order.
type RunResult struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
	Results  []*Result
}

// Result represents a single case outcome.
type Result struct {
	Suite    string
	Name     string
	Input    string
	Expected string
	Actual   string
	Passed   bool
	Duration time.Duration
}

// Failures returns the failed results.
func (r *RunResult) Failures() []*Result {
	failed := make([]*Result, 0, r.Failed)
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

type runner struct {
	eng      *engine.Engine
	defaults engine.Options
	workers  int
	log      logrus.FieldLogger
}

var _ Runner = (*runner)(nil)

// NewRunner creates a fixture runner. defaults seed every case's options
// before suite and case options are layered on top.
func NewRunner(log logrus.FieldLogger, eng *engine.Engine, defaults engine.Options, workers int) Runner {
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &runner{
		eng:      eng,
		defaults: defaults,
		workers:  workers,
		log:      log.WithField("component", "fixtures_runner"),
	}
}

type job struct {
	suite *Suite
	c     *Case
}

// Run executes all cases in parallel with a bounded worker pool.
func (r *runner) Run(ctx context.Context, suites []*Suite) (*RunResult, error) {
	start := time.Now()

	jobs := make([]job, 0)
	for _, suite := range suites {
		for _, c := range suite.Cases {
			jobs = append(jobs, job{suite: suite, c: c})
		}
	}

	results := make([]*Result, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, j := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			results[i] = r.runCase(j.suite, j.c)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &RunResult{
		Total:    len(results),
		Duration: time.Since(start),
		Results:  results,
	}

	for _, res := range results {
		if res.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	r.log.WithFields(logrus.Fields{
		"suites":   len(suites),
		"total":    result.Total,
		"passed":   result.Passed,
		"failed":   result.Failed,
		"duration": result.Duration,
	}).Info("fixtures complete")

	return result, nil
}

func (r *runner) runCase(suite *Suite, c *Case) *Result {
	start := time.Now()

	log := r.log.WithFields(logrus.Fields{
		"suite": suite.Name,
		"case":  c.Label(),
	})

	opts := engine.ParseOptions(log, suite.Options, r.defaults)
	opts = engine.ParseOptions(log, c.Options, opts)

	actual := r.eng.Transform(c.Input, opts)

	res := &Result{
		Suite:    suite.Name,
		Name:     c.Label(),
		Input:    c.Input,
		Expected: c.Expected,
		Actual:   actual,
		Passed:   actual == c.Expected,
		Duration: time.Since(start),
	}

	if !res.Passed {
		log.WithFields(logrus.Fields{
			"expected": c.Expected,
			"actual":   actual,
		}).Debug("case failed")
	}

	return res
}
