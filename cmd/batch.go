package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ethpandaops/sensor-round/internal/actions"
	"github.com/spf13/cobra"
)

var batchTable bool

var batchCmd = &cobra.Command{
	Use:   "batch [file...]",
	Short: "Round every line of files or stdin",
	Long: `Round one reading per line, in parallel, writing results in input order.
Lines that cannot be parsed are echoed unchanged. Reads stdin when no file is given.

Examples:
  cat readings.txt | sensor-round batch
  sensor-round batch --si=false --workers 4 readings.txt`,
	RunE: func(c *cobra.Command, args []string) error {
		cfg, eng, err := setup()
		if err != nil {
			return err
		}

		opts, err := resolveOptions(c, cfg)
		if err != nil {
			return err
		}

		in := io.Reader(os.Stdin)

		if len(args) > 0 {
			readers := make([]io.Reader, 0, len(args))
			for _, path := range args {
				f, err := os.Open(path) //nolint:gosec // G304: operator-supplied input files
				if err != nil {
					return fmt.Errorf("opening %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()

				readers = append(readers, f)
			}
			in = io.MultiReader(readers...)
		}

		return actions.Batch(context.Background(), Logger, eng, in, os.Stdout, actions.BatchOptions{
			Options: opts,
			Workers: workersFlag(c, cfg),
			Table:   batchTable,
		})
	},
}

func init() {
	addOptionFlags(batchCmd)
	batchCmd.Flags().Int("workers", 0, "Parallel workers (default SENSOR_ROUND_WORKERS)")
	batchCmd.Flags().BoolVar(&batchTable, "table", false, "Show a table with the applied precision")
	rootCmd.AddCommand(batchCmd)
}
