package internal

import (
	"os"

	"github.com/rs/zerolog"
)

// Diagnostics go to stderr so recovered artifacts can own stdout.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

// SetVerbose lowers the log threshold to debug.
func SetVerbose(verbose bool) {
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
}

// Log returns the package logger.
func Log() *zerolog.Logger {
	return &logger
}
