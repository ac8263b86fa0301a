package lolcat

import (
	"errors"
	"io"
	"syscall"
)

// ErrBrokenPipe reports that the downstream consumer stopped reading.
// Piping into something like `head` makes this the expected way for a
// run to end, so callers treat it as a clean early stop, not a failure.
var ErrBrokenPipe = errors.New("broken pipe")

// pipeErr normalizes any broken-pipe condition to ErrBrokenPipe and
// leaves every other error untouched, so callers can tell "stop quietly"
// from "something is actually wrong" with errors.Is.
func pipeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, ErrBrokenPipe) {
		return ErrBrokenPipe
	}
	return err
}
