package cmd

import (
	"fmt"
	"os"

	"github.com/ethpandaops/sensor-round/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Logger is the shared logger instance for all commands
	Logger *logrus.Logger

	envFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "sensor-round",
		Short: "Sensor Round - human-friendly sensor readings",
		Long: `Sensor Round turns raw sensor readings ("21.43 °C", "1234 W", "70.3 °F",
"2025-09-27T14:16:28.000+0200") into values rounded to a precision that suits
their unit, converted to SI and normalized to a sensible prefix.

Run without arguments to launch interactive mode, or use subcommands for direct operations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}

			InitLogger()

			if verbose {
				Logger.SetLevel(logrus.DebugLevel)
			}

			return nil
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	Logger = newLogger(os.Getenv(config.EnvLogLevel))

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Environment file to load (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and per-reading diagnostics")
}
