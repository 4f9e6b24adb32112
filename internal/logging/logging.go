package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the console logger. Verbose lowers the level to debug.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
