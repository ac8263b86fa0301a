package lolcat

import (
	"errors"
	"strings"
	"time"
)

// ColorMode selects the escape format used for color output.
type ColorMode int

const (
	// Ansi256 emits xterm 256-color palette escapes (ESC[38;5;Nm).
	Ansi256 ColorMode = iota
	// TrueColor emits 24-bit color escapes (ESC[38;2;R;G;Bm).
	TrueColor
)

func (m ColorMode) String() string {
	if m == TrueColor {
		return "truecolor"
	}
	return "ansi256"
}

// Config defines one run of the colorizer. It is immutable once
// validated; the Printer holds it for the life of the run.
type Config struct {
	Spread    float64 // distance in runes between adjacent hues
	Freq      float64 // hue cycle rate
	Seed      uint64  // phase origin; 0 picks a random one
	Animate   bool    // re-render each line at shifting offsets
	Duration  int     // animation frames per line
	Speed     float64 // animation frames per second
	Invert    bool    // colorize the background instead of the foreground
	TrueColor bool    // force 24-bit output regardless of COLORTERM
	Force     bool    // color even when stdout is not a tty
	Debug     bool    // emit internal diagnostics on stderr
}

// ConfigDefault provides the default configuration values.
var ConfigDefault = Config{
	Spread:   3.0,
	Freq:     0.1,
	Duration: 12,
	Speed:    20.0,
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Spread < 0.1:
		return errors.New("--spread must be >= 0.1")
	case c.Speed < 0.1:
		return errors.New("--speed must be >= 0.1")
	case c.Duration < 1:
		return errors.New("--duration must be >= 1")
	}
	return nil
}

// Mode returns the color depth for this run. colorterm is the value of
// $COLORTERM; the flag wins over the environment.
func (c Config) Mode(colorterm string) ColorMode {
	if c.TrueColor || detectsTrueColor(colorterm) {
		return TrueColor
	}
	return Ansi256
}

func detectsTrueColor(colorterm string) bool {
	s := strings.ToLower(colorterm)
	return strings.Contains(s, "truecolor") || strings.Contains(s, "24bit")
}

// InitialOffset derives the rainbow's phase origin from the seed. Seed 0
// picks a random origin so repeated runs look different.
func (c Config) InitialOffset() float64 {
	if c.Seed == 0 {
		return RandomOffset(256)
	}
	return float64(c.Seed % 256)
}

// RandomOffset returns a phase origin in [0, limit) from the wall clock.
func RandomOffset(limit int64) float64 {
	return float64(time.Now().UnixNano() % limit)
}
