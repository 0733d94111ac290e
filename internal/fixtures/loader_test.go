package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const climateFixture = `name: climate
options:
  si: true
cases:
  - input: "21.43 °C"
    expected: "21.5 °C"
  - name: fahrenheit
    input: "70.3 °F"
    expected: "21.5 °C"
  - input: "21.43"
    options:
      unit: "°C"
      prec: 3
    expected: 21.4 °C
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "climate.yaml", climateFixture)

	log, _ := test.NewNullLogger()
	suite, err := NewLoader(log, dir).LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "climate", suite.Name)
	assert.Equal(t, path, suite.Path)
	assert.Equal(t, "true", suite.Options["si"])
	require.Len(t, suite.Cases, 3)

	assert.Equal(t, "21.43 °C", suite.Cases[0].Label())
	assert.Equal(t, "fahrenheit", suite.Cases[1].Label())
	assert.Equal(t, "3", suite.Cases[2].Options["prec"])
	assert.Equal(t, "21.4 °C", suite.Cases[2].Expected)
}

func TestLoader_NameDefaultsToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "power.yml", "cases:\n  - input: 1234 W\n    expected: 1.23 kW\n")

	log, _ := test.NewNullLogger()
	suite, err := NewLoader(log, dir).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "power", suite.Name)
}

func TestLoader_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{name: "no cases", content: "name: empty\n", err: errCasesRequired},
		{name: "missing input", content: "cases:\n  - expected: \"1\"\n", err: errCaseMissingInput},
		{name: "missing expected", content: "cases:\n  - input: \"1\"\n", err: errCaseMissingExpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFixture(t, dir, "bad.yaml", tt.content)

			log, _ := test.NewNullLogger()
			_, err := NewLoader(log, dir).LoadFile(path)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "broken.yaml", "cases: [\n")

	log, _ := test.NewNullLogger()
	_, err := NewLoader(log, dir).LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing yaml")
}

func TestLoader_LoadAllSkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "b.yaml", climateFixture)
	writeFixture(t, dir, "a.yml", "cases:\n  - input: 1-2\n    expected: \"1.5\"\n")
	writeFixture(t, dir, "broken.yaml", "name: broken\n")
	writeFixture(t, dir, "notes.txt", "ignored")

	log, hook := test.NewNullLogger()
	suites, err := NewLoader(log, dir).LoadAll()
	require.NoError(t, err)

	require.Len(t, suites, 2)
	assert.Equal(t, "a", suites[0].Name)
	assert.Equal(t, "climate", suites[1].Name)
	require.Len(t, hook.Entries, 1)
}

func TestLoader_Files(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "b.yaml", climateFixture)
	writeFixture(t, dir, "a.yml", climateFixture)
	writeFixture(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	log, _ := test.NewNullLogger()
	files, err := NewLoader(log, dir).Files()
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, files)
}

func TestLoader_LoadAllMissingDir(t *testing.T) {
	log, _ := test.NewNullLogger()

	_, err := NewLoader(log, filepath.Join(t.TempDir(), "nope")).LoadAll()
	require.Error(t, err)
}

func TestLoader_LoadAllNotDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "one.yaml", climateFixture)

	log, _ := test.NewNullLogger()
	_, err := NewLoader(log, path).LoadAll()
	require.ErrorIs(t, err, errNotDirectory)
}

func TestLoader_LoadAbortsOnFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.yaml", climateFixture)

	log, _ := test.NewNullLogger()
	loader := NewLoader(log, dir)

	suites, err := loader.Load([]string{good})
	require.NoError(t, err)
	require.Len(t, suites, 1)

	_, err = loader.Load([]string{good, filepath.Join(dir, "missing.yaml")})
	require.Error(t, err)
}
