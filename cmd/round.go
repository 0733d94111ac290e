package cmd

import (
	"fmt"
	"os"

	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/ethpandaops/sensor-round/internal/output"
	"github.com/spf13/cobra"
)

var roundTable bool

var roundCmd = &cobra.Command{
	Use:   "round [reading...]",
	Short: "Round one or more readings",
	Long: `Round each reading and print the result on its own line.

Readings that start with "-" must follow "--" so they are not taken as flags.

Examples:
  sensor-round round "21.43 °C"              # 21.5 °C
  sensor-round round "70.3 °F"               # 21.5 °C
  sensor-round round --si=false "70.3 °F"    # 70 °F
  sensor-round round "1234 W"                # 1.23 kW
  sensor-round round --precision 2 "2025-09-27T14:16:28.000+0200"
  sensor-round round --unit . --div 1Mi "3 MiB"
  sensor-round round -- "-3.66 °C"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, eng, err := setup()
		if err != nil {
			return err
		}

		opts, err := resolveOptions(c, cfg)
		if err != nil {
			return err
		}

		if roundTable {
			results := make([]engine.Result, 0, len(args))
			for _, arg := range args {
				results = append(results, eng.Evaluate(arg, opts))
			}

			formatter := output.NewResultsFormatter(Logger, output.NewRenderer(Logger))
			fmt.Print(formatter.Format(results))

			return nil
		}

		for _, arg := range args {
			if _, err := fmt.Fprintln(os.Stdout, eng.Transform(arg, opts)); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	addOptionFlags(roundCmd)
	roundCmd.Flags().BoolVar(&roundTable, "table", false, "Show a table with the applied precision")
	rootCmd.AddCommand(roundCmd)
}
