// Package main is the entry point for the sensor-round application
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethpandaops/sensor-round/cmd"
	"github.com/ethpandaops/sensor-round/internal/config"
)

const (
	envFlag      = "--env"
	envFlagEqual = "--env="
)

func main() {
	envFile, runTUI := parseArgs(os.Args)

	if !runTUI {
		// Arguments provided - run cobra CLI (it will handle --env flag itself)
		cmd.Execute()
		return
	}

	if err := config.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
		os.Exit(1)
	}

	// Initialize cmd.Logger after loading env file
	cmd.InitLogger()
	cmd.RunInteractive(envFile)
}

// parseArgs extracts the env file and decides whether to run the TUI: only
// when nothing but an --env flag was given.
func parseArgs(args []string) (envFile string, runTUI bool) {
	for i, arg := range args {
		if arg == envFlag && i+1 < len(args) {
			envFile = args[i+1]
			break
		}
		if strings.HasPrefix(arg, envFlagEqual) {
			envFile = arg[len(envFlagEqual):]
			break
		}
	}

	switch len(args) {
	case 1:
		return envFile, true
	case 2:
		if args[1] == envFlag {
			fmt.Fprintln(os.Stderr, "Error: --env flag requires a value")
			os.Exit(1)
		}
		return envFile, strings.HasPrefix(args[1], envFlagEqual)
	case 3:
		return envFile, args[1] == envFlag
	default:
		return envFile, false
	}
}
