package cmd

import (
	"context"
	"os"

	"github.com/ethpandaops/sensor-round/internal/actions"
	"github.com/ethpandaops/sensor-round/internal/config"
	"github.com/spf13/cobra"
)

var checkDir string

var checkCmd = &cobra.Command{
	Use:   "check [fixture.yaml...]",
	Short: "Verify fixture files of readings and expected outputs",
	Long: `Run fixture files and report every case whose output differs from the
expected text. Without arguments all .yaml/.yml files in --dir are used.

Fixture format:
  name: climate
  options:          # optional, same keys as --query
    si: true
  cases:
    - input: "21.43 °C"
      expected: "21.5 °C"
    - input: "21.43"
      options: {unit: "°C", prec: 3}
      expected: "21.4 °C"`,
	RunE: func(c *cobra.Command, args []string) error {
		cfg, eng, err := setup()
		if err != nil {
			return err
		}

		opts, err := resolveOptions(c, cfg)
		if err != nil {
			return err
		}

		_, err = actions.Check(context.Background(), Logger, eng, os.Stdout, actions.CheckOptions{
			Dir:     checkDir,
			Paths:   args,
			Options: opts,
			Workers: workersFlag(c, cfg),
			Verbose: verbose,
		})

		return err
	},
}

func init() {
	addOptionFlags(checkCmd)
	checkCmd.Flags().StringVar(&checkDir, "dir", config.FixturesDir, "Directory scanned for fixture files")
	checkCmd.Flags().Int("workers", 0, "Parallel workers (default SENSOR_ROUND_WORKERS)")
	rootCmd.AddCommand(checkCmd)
}
