package lolcat

import "io"

var (
	// LogOutput is where diagnostics go. Never stdout: stdout carries
	// the colorized data stream.
	LogOutput io.Writer

	// Log is the active diagnostic logger. The backend is selected with
	// build tags; the default is slog on stderr.
	Log Logger
)

type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
