// Package actions implements the operations shared by the CLI commands and
// the interactive menu.
package actions

import (
	"fmt"
	"io"

	"github.com/ethpandaops/sensor-round/internal/config"
)

// ShowConfig displays the current configuration
func ShowConfig(w io.Writer, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = fmt.Fprintln(w, cfg.String())

	return err
}
