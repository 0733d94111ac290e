package cmd

import (
	"fmt"

	"github.com/ethpandaops/sensor-round/internal/actions"
	"github.com/ethpandaops/sensor-round/internal/config"
	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/spf13/cobra"
)

// optionFlagNames match the engine.ParseOptions keys one to one.
var optionFlagNames = []string{
	"precision", "scale", "div", "mult", "skew", "unit",
	"si", "flicker", "testing", "compass",
}

func addOptionFlags(c *cobra.Command) {
	f := c.Flags()
	f.Float64("precision", 0, "Significant figures, may be fractional (2.5 = half steps); timestamp level 0-4")
	f.Int("scale", 0, "Round to a fixed number of decimal places instead")
	f.String("div", "", "Divide by this amount; suffixes k=1e3, K=1024, M, G, T, P and Mi, Gi, Ti, Pi")
	f.Float64("mult", 0, "Multiply by this factor")
	f.Float64("skew", 0, "Add this offset before dividing")
	f.String("unit", "", `Replace the unit; "." or "" strips it`)
	f.Bool("si", true, "Convert to SI units (default from SENSOR_ROUND_SI)")
	f.Bool("flicker", false, "Perturb the value on odd seconds so displays register a change")
	f.Bool("testing", false, "Per-reading diagnostics without debug logging")
	f.Bool("compass", false, "Render angles as compass points")
	f.String("query", "", `Options as a query string, e.g. "prec=2.5&unit=."; flags win`)
}

// resolveOptions layers the query string and then any explicitly set flags
// on top of the configured defaults.
func resolveOptions(c *cobra.Command, cfg *config.AppConfig) (engine.Options, error) {
	opts := cfg.Options()

	if query, _ := c.Flags().GetString("query"); query != "" {
		parsed, err := engine.ParseQuery(Logger, query, opts)
		if err != nil {
			return opts, fmt.Errorf("invalid --query: %w", err)
		}
		opts = parsed
	}

	values := make(map[string]string, len(optionFlagNames))
	for _, name := range optionFlagNames {
		if c.Flags().Changed(name) {
			values[name] = c.Flags().Lookup(name).Value.String()
		}
	}

	if verbose {
		values["verbose"] = "true"
	}

	return engine.ParseOptions(Logger, values, opts), nil
}

// setup loads the configuration and builds the engine.
func setup() (*config.AppConfig, *engine.Engine, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	eng, err := actions.NewEngine(Logger, cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, eng, nil
}

func workersFlag(c *cobra.Command, cfg *config.AppConfig) int {
	if c.Flags().Changed("workers") {
		if w, err := c.Flags().GetInt("workers"); err == nil && w > 0 {
			return w
		}
	}
	return cfg.Workers
}
