// Package config handles configuration loading and management
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ethpandaops/sensor-round/internal/datetime"
	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/ethpandaops/sensor-round/internal/units"
	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed.
var ErrInvalidValue = errors.New("invalid configuration value")

// AppConfig holds the application configuration loaded from environment variables.
type AppConfig struct {
	SI               bool
	DefaultPrecision float64
	DateTimeLevel    datetime.Level
	PolicyFile       string
	Workers          int
	LogLevel         string
}

// Load reads configuration from environment variables and the given env file.
// An empty file name means .env, which may be absent.
func Load(envFile string) (*AppConfig, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	return FromEnv()
}

// LoadEnvFile loads file into the process environment without overriding
// variables that are already set.
func LoadEnvFile(file string) error {
	if file == "" {
		file = DefaultEnvFile
	}

	if err := godotenv.Load(file); err != nil {
		// It's okay if the default file doesn't exist
		if file == DefaultEnvFile && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load env file '%s': %w", file, err)
	}

	return nil
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		SI:               engine.ParseBool(getEnv(EnvSI, "true")),
		DefaultPrecision: units.DefaultPrecision,
		DateTimeLevel:    datetime.DefaultLevel,
		PolicyFile:       getEnv(EnvPolicyFile, ""),
		Workers:          DefaultWorkers,
		LogLevel:         getEnv(EnvLogLevel, DefaultLogLevel),
	}

	if raw := getEnv(EnvDefaultPrecision, ""); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("%w: %s=%q must be a positive number", ErrInvalidValue, EnvDefaultPrecision, raw)
		}
		cfg.DefaultPrecision = p
	}

	if raw := getEnv(EnvDateTimeLevel, ""); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, EnvDateTimeLevel, raw, err)
		}
		cfg.DateTimeLevel = datetime.ClampLevel(level)
	}

	if raw := getEnv(EnvWorkers, ""); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers <= 0 {
			return nil, fmt.Errorf("%w: %s=%q must be a positive integer", ErrInvalidValue, EnvWorkers, raw)
		}
		cfg.Workers = workers
	}

	return cfg, nil
}

// Options returns the per-call defaults derived from the configuration.
func (c *AppConfig) Options() engine.Options {
	opts := engine.DefaultOptions()
	opts.SI = c.SI

	return opts
}

// EngineConfig returns the engine-wide settings.
func (c *AppConfig) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.DateTimeLevel = c.DateTimeLevel

	return cfg
}

func (c *AppConfig) String() string {
	policyDisplay := c.PolicyFile
	if policyDisplay == "" {
		policyDisplay = "(built-in only)"
	}

	return fmt.Sprintf(`Current Configuration:
======================
SI Conversion:      %t
Default Precision:  %s
DateTime Level:     %d (%s)
Policy File:        %s
Workers:            %d
Log Level:          %s`,
		c.SI,
		strconv.FormatFloat(c.DefaultPrecision, 'f', -1, 64),
		int(c.DateTimeLevel),
		c.DateTimeLevel.String(),
		policyDisplay,
		c.Workers,
		strings.ToLower(c.LogLevel),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
