//go:build lognone

package lolcat

import "io"

func init() {
	LogOutput = io.Discard
	Log = nilLog{}
}

func SetDebug(bool) {}

type nilLog struct{}

func (nilLog) Debug(string, ...any) {}
func (nilLog) Warn(string, ...any)  {}
func (nilLog) Error(string, ...any) {}
