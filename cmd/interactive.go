// Package cmd contains CLI command definitions
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ethpandaops/sensor-round/internal/actions"
	"github.com/ethpandaops/sensor-round/internal/config"
	"github.com/ethpandaops/sensor-round/internal/engine"
	"github.com/ethpandaops/sensor-round/internal/fixtures"
	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/ethpandaops/sensor-round/pkg/interactive"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive TUI mode",
	Long:  `Launches the interactive Terminal User Interface for Sensor Round.`,
	Run: func(_ *cobra.Command, _ []string) {
		RunInteractive(envFile)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// RunInteractive shows the main menu until the user exits. env is the file
// the environment was loaded from, shown by Show Config.
func RunInteractive(env string) {
	envFile = env

	fmt.Println("Sensor Round - Interactive Mode")
	fmt.Println("===============================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "🌡️  Round Readings",
				Description: "Type readings and see them rounded",
				Action:      roundInteractive,
			},
			{
				Name:        "📐 Unit Policies",
				Description: "List units, conversions and precision bumps",
				Action: func() error {
					_, eng, err := setup()
					if err == nil {
						err = actions.ListUnits(Logger, eng.Table(), os.Stdout)
					}
					if err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "🧪 Run Fixtures",
				Description: "Check fixture files against the current policies",
				Action:      checkInteractive,
			},
			{
				Name:        "📋 Show Config",
				Description: "Display current environment configuration",
				Action: func() error {
					if err := actions.ShowConfig(os.Stdout, envFile); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

func roundInteractive() error {
	cfg, eng, err := setup()
	if err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}

	query, err := interactive.Input("Options (query string, empty for defaults):", `e.g. "prec=2.5&unit=." or "si=false"`, false)
	if err != nil {
		return nil
	}

	opts, err := engine.ParseQuery(Logger, query, cfg.Options())
	if err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}

	fmt.Println("\nEnter readings, empty line to return.")

	for {
		input, err := interactive.Input("Reading:", "", false)
		if err != nil || strings.TrimSpace(input) == "" {
			return nil
		}

		res := eng.Evaluate(input, opts)
		switch res.Kind {
		case reading.KindNumber, reading.KindInterval:
			fmt.Printf("  → %s  (%s, precision %g)\n", res.Output, res.Kind, res.Directive.SignificantFigures)
		default:
			fmt.Printf("  → %s  (%s)\n", res.Output, res.Kind)
		}
	}
}

const allFixtures = "All files"

func checkInteractive() error {
	cfg, eng, err := setup()
	if err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}

	dir, err := interactive.Input("Fixture directory:", "", false)
	if err != nil {
		return nil
	}
	if strings.TrimSpace(dir) == "" {
		dir = config.FixturesDir
	}

	files, err := fixtures.NewLoader(Logger, dir).Files()
	if err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}
	if len(files) == 0 {
		fmt.Printf("\nNo fixture files in %s\n", dir)
		interactive.PauseForEnter()
		return nil
	}

	choice, err := interactive.SelectFromList("Fixture file:", append([]string{allFixtures}, files...))
	if err != nil {
		return nil
	}

	var paths []string
	if choice != allFixtures {
		paths = []string{choice}
	}

	showAll := interactive.Confirm("Show passing cases too?")

	_, err = actions.Check(context.Background(), Logger, eng, os.Stdout, actions.CheckOptions{
		Dir:     dir,
		Paths:   paths,
		Options: cfg.Options(),
		Workers: cfg.Workers,
		Verbose: showAll,
	})
	if err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
	}

	interactive.PauseForEnter()

	return nil
}
