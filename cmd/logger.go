package cmd

import (
	"fmt"
	"os"

	"github.com/ethpandaops/sensor-round/internal/config"
	"github.com/sirupsen/logrus"
)

// InitLogger (re)configures the shared logger from LOG_LEVEL. Call it after
// an env file has been loaded.
func InitLogger() {
	level := newLogger(os.Getenv(config.EnvLogLevel)).GetLevel()
	Logger.SetLevel(level)
}

// newLogger creates a logger at the named level, falling back to info.
func newLogger(levelName string) *logrus.Logger {
	log := logrus.New()

	if levelName == "" {
		levelName = config.DefaultLogLevel
	}

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		// Can't use the logger here since it isn't set up yet
		fmt.Fprintf(os.Stderr, "Invalid %s '%s', defaulting to 'info'\n", config.EnvLogLevel, levelName)
		level = logrus.InfoLevel
	}

	log.SetLevel(level)

	return log
}
