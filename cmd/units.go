package cmd

import (
	"os"

	"github.com/ethpandaops/sensor-round/internal/actions"
	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the unit policies",
	Long: `Lists every unit with a policy: its SI conversion target, the precision it
yields at 1, 10, 100 and 1000, the display prefixes and the precision bumps.
Includes policies from SENSOR_ROUND_POLICY_FILE.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, eng, err := setup()
		if err != nil {
			return err
		}

		return actions.ListUnits(Logger, eng.Table(), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)
}
