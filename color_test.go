package lolcat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRainbowChannelSeparation(t *testing.T) {
	// At angle 0 the red channel sits at the midpoint and green/blue
	// mirror each other around it.
	c := Rainbow(0.1, 0)
	assert.Equal(t, RGB{R: 128, G: 238, B: 18}, c)

	// At angle π/2 red peaks and green/blue are equal.
	c = Rainbow(1, math.Pi/2)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, c.G, c.B)
}

func TestAnsi256FixedPoints(t *testing.T) {
	assert.Equal(t, uint8(196), RGB{255, 0, 0}.Ansi256())
	assert.Equal(t, uint8(46), RGB{0, 255, 0}.Ansi256())
	assert.Equal(t, uint8(21), RGB{0, 0, 255}.Ansi256())
	assert.Equal(t, uint8(243), RGB{128, 128, 128}.Ansi256())

	// Grayscale ramp endpoints fold into the color cube's black/white.
	assert.Equal(t, uint8(16), RGB{0, 0, 0}.Ansi256())
	assert.Equal(t, uint8(16), RGB{7, 7, 7}.Ansi256())
	assert.Equal(t, uint8(232), RGB{8, 8, 8}.Ansi256())
	assert.Equal(t, uint8(231), RGB{255, 255, 255}.Ansi256())
	assert.Equal(t, uint8(231), RGB{249, 249, 249}.Ansi256())
}

func TestPhaseRotationMatchesDirect(t *testing.T) {
	const (
		start = 0.7
		step  = 0.1 / 3.0
	)
	delta := phaseAt(step)
	p := phaseAt(start)
	for i := 1; i <= 1000; i++ {
		p = p.rotate(delta)
		want := math.Sin(start + float64(i)*step)
		require.InDelta(t, want, p.sin, 1e-9, "after %d rotations", i)
	}
	// Unit magnitude survives the walk up to floating-point drift; it is
	// never renormalized.
	assert.InDelta(t, 1.0, p.sin*p.sin+p.cos*p.cos, 1e-9)
}

func TestPhaseRGBMatchesRainbow(t *testing.T) {
	const freq = 0.3
	for pos := 0.0; pos < 100; pos += 0.7 {
		direct := Rainbow(freq, pos)
		derived := phaseAt(freq * pos).rgb()
		assert.InDelta(t, int(direct.R), int(derived.R), 1, "pos %v", pos)
		assert.InDelta(t, int(direct.G), int(derived.G), 1, "pos %v", pos)
		assert.InDelta(t, int(direct.B), int(derived.B), 1, "pos %v", pos)
	}
}
