package actions

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethpandaops/sensor-round/internal/config"
	"github.com/ethpandaops/sensor-round/internal/datetime"
	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		SI:               true,
		DefaultPrecision: 3,
		DateTimeLevel:    datetime.DefaultLevel,
		Workers:          2,
		LogLevel:         "info",
	}
}

func TestNewEngine_PolicyFile(t *testing.T) {
	log, _ := test.NewNullLogger()

	path := filepath.Join(t.TempDir(), "policies.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units:\n  furlong:\n    precision: 2\n"), 0o600))

	cfg := testConfig()
	cfg.PolicyFile = path

	eng, err := NewEngine(log, cfg)
	require.NoError(t, err)

	assert.Equal(t, "12 furlong", eng.Transform("12.345 furlong", engine.DefaultOptions()))
}

func TestNewEngine_MissingPolicyFile(t *testing.T) {
	log, _ := test.NewNullLogger()

	cfg := testConfig()
	cfg.PolicyFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewEngine(log, cfg)
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	log, _ := test.NewNullLogger()

	eng, err := NewEngine(log, testConfig())
	require.NoError(t, err)

	in := strings.NewReader("21.43 °C\r\n\n1234 W\non\n1-2\n")
	var out bytes.Buffer

	err = Batch(context.Background(), log, eng, in, &out, BatchOptions{Options: engine.DefaultOptions(), Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, "21.5 °C\n\n1.23 kW\non\n1.5\n", out.String())
}

func TestBatch_Table(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log, _ := test.NewNullLogger()

	eng, err := NewEngine(log, testConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	err = Batch(context.Background(), log, eng, strings.NewReader("70.3 °F\n"), &out, BatchOptions{
		Options: engine.DefaultOptions(),
		Table:   true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "21.5 °C")
	assert.Contains(t, out.String(), "2.5")
}

func TestCheck(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log, _ := test.NewNullLogger()

	eng, err := NewEngine(log, testConfig())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.yaml"), []byte(`cases:
  - input: "21.43 °C"
    expected: "21.5 °C"
`), 0o600))

	var out bytes.Buffer
	result, err := Check(context.Background(), log, eng, &out, CheckOptions{Dir: dir, Options: engine.DefaultOptions()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passed)
	assert.Contains(t, out.String(), "Summary")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`cases:
  - input: "1234 W"
    expected: "1234 W"
`), 0o600))

	out.Reset()
	result, err = Check(context.Background(), log, eng, &out, CheckOptions{Paths: []string{bad}, Options: engine.DefaultOptions()})
	require.ErrorIs(t, err, ErrChecksFailed)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, out.String(), "1.23 kW")
}

func TestListUnits(t *testing.T) {
	log, _ := test.NewNullLogger()

	eng, err := NewEngine(log, testConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ListUnits(log, eng.Table(), &out))
	assert.Contains(t, out.String(), "hPa")
}

func TestShowConfig(t *testing.T) {
	for _, key := range []string{config.EnvSI, config.EnvDefaultPrecision, config.EnvDateTimeLevel, config.EnvPolicyFile, config.EnvWorkers} {
		t.Setenv(key, "")
	}

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(""), 0o600))

	var out bytes.Buffer
	require.NoError(t, ShowConfig(&out, envFile))
	assert.Contains(t, out.String(), "Current Configuration:")
}
