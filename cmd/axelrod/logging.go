package main

import (
	"os"

	"github.com/rs/zerolog"
)

// setupLogger configures the engine's structured logger with pretty console
// output on stderr.
func setupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
