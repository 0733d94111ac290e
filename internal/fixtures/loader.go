// Package fixtures loads and runs expected-output fixture files.
// A fixture file lists raw readings, optional per-case options and the exact
// text the engine must produce for them.
package fixtures

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	errCasesRequired       = errors.New("fixture has no cases")
	errCaseMissingInput    = errors.New("case missing input")
	errCaseMissingExpected = errors.New("case missing expected output")
	errNotDirectory        = errors.New("not a directory")
)

// Suite is one fixture file.
type Suite struct {
	Name string `yaml:"name"`
	// Options apply to every case and use the same keys as engine.ParseOptions.
	Options map[string]string `yaml:"options"`
	Cases   []*Case           `yaml:"cases"`

	Path string `yaml:"-"`
}

// Case is a single input/expected pair.
type Case struct {
	Name     string            `yaml:"name"`
	Input    string            `yaml:"input"`
	Options  map[string]string `yaml:"options,omitempty"`
	Expected string            `yaml:"expected"`
}

// Label returns the case name, falling back to the input.
func (c *Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Input
}

// Loader loads fixture files.
type Loader interface {
	Files() ([]string, error)
	LoadFile(path string) (*Suite, error)
	LoadAll() ([]*Suite, error)
	Load(paths []string) ([]*Suite, error)
}

type loader struct {
	baseDir string
	log     logrus.FieldLogger
}

var _ Loader = (*loader)(nil)

// NewLoader creates a fixture loader rooted at baseDir.
func NewLoader(log logrus.FieldLogger, baseDir string) Loader {
	return &loader{
		baseDir: baseDir,
		log:     log.WithField("component", "fixtures_loader"),
	}
}

// LoadFile loads and validates a single fixture file.
func (l *loader) LoadFile(path string) (*Suite, error) {
	l.log.WithField("path", path).Debug("loading fixture file")

	suite, err := l.loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading fixture from %s: %w", path, err)
	}

	if err := validateSuite(suite); err != nil {
		return nil, fmt.Errorf("validating fixture %s: %w", path, err)
	}

	return suite, nil
}

// Files lists the .yaml/.yml files in the base directory, sorted by path.
func (l *loader) Files() ([]string, error) {
	info, err := os.Stat(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", l.baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", errNotDirectory, l.baseDir)
	}

	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", l.baseDir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isFixtureFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(l.baseDir, entry.Name()))
	}

	sort.Strings(paths)

	return paths, nil
}

// LoadAll loads every fixture file in the base directory, skipping files
// that fail to parse or validate.
func (l *loader) LoadAll() ([]*Suite, error) {
	paths, err := l.Files()
	if err != nil {
		return nil, err
	}

	suites := make([]*Suite, 0, len(paths))

	for _, path := range paths {
		suite, err := l.LoadFile(path)
		if err != nil {
			l.log.WithError(err).WithField("file", filepath.Base(path)).Warn("failed to load fixture, skipping")
			continue
		}

		suites = append(suites, suite)
	}

	return suites, nil
}

// Load loads the named files; any failure aborts.
func (l *loader) Load(paths []string) ([]*Suite, error) {
	suites := make([]*Suite, 0, len(paths))

	for _, path := range paths {
		suite, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}

	return suites, nil
}

func (l *loader) loadFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: fixture paths come from the operator
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	suite.Path = path
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &suite, nil
}

func validateSuite(suite *Suite) error {
	if len(suite.Cases) == 0 {
		return errCasesRequired
	}

	for i, c := range suite.Cases {
		if c == nil || c.Input == "" {
			return fmt.Errorf("%w at index %d", errCaseMissingInput, i)
		}

		if c.Expected == "" {
			return fmt.Errorf("%w: %s", errCaseMissingExpected, c.Label())
		}
	}

	return nil
}

func isFixtureFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
