//go:build !lognone

package lolcat

import (
	"log/slog"
	"os"
)

var logLevel = &slog.LevelVar{}

func init() {
	LogOutput = os.Stderr
	logLevel.Set(slog.LevelWarn)
	Log = slog.New(slog.NewTextHandler(LogOutput, &slog.HandlerOptions{Level: logLevel}))
}

// SetDebug raises the diagnostic level so Debug traces are emitted.
func SetDebug(on bool) {
	if on {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelWarn)
	}
}
