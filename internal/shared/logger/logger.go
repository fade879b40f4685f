package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New initializes the base zerolog.Logger every component derives from.
// 'devMode' enables human-readable console logging. Logs always go to
// stderr so they never interleave with the interactive menu on stdout.
func New(devMode bool) zerolog.Logger {
	if devMode {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		return zerolog.New(consoleWriter).With().Timestamp().Logger()
	}

	// Efficient JSON output for production
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
