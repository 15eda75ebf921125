package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing to path. The TUI owns the terminal, so logs
// never go to stdout/stderr; with an empty path everything is discarded.
func New(path string) zerolog.Logger {
	if path == "" {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}
