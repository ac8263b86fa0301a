package lolcat

import (
	"math"

	"golang.org/x/exp/constraints"
)

// RGB is a 24-bit color triple.
type RGB struct {
	R, G, B uint8
}

// thirdTurn is the 120° channel separation of the rainbow.
const thirdTurn = 2 * math.Pi / 3

func bound[N constraints.Integer | constraints.Float](x, minimum, maximum N) N {
	return min(max(x, minimum), maximum)
}

// channel maps the sine of a phase angle to a single channel value.
func channel(sin float64) uint8 {
	return uint8(bound(math.Round(sin*127+128), 0, 255))
}

// Rainbow maps a position on the stream to a color. The angle is
// freq*pos; the three channels ride sine waves 120° apart.
func Rainbow(freq, pos float64) RGB {
	angle := freq * pos
	return RGB{
		R: channel(math.Sin(angle)),
		G: channel(math.Sin(angle + thirdTurn)),
		B: channel(math.Sin(angle + 2*thirdTurn)),
	}
}

// phase is a point on the unit circle holding the current hue angle as a
// (sin, cos) pair. Advancing by a fixed angle is a rotation, so the hot
// path never recomputes transcendentals. Magnitude drift from repeated
// rotation is tolerated, never renormalized.
type phase struct {
	sin, cos float64
}

func phaseAt(angle float64) phase {
	s, c := math.Sincos(angle)
	return phase{sin: s, cos: c}
}

// rotate advances p by the angle held in delta.
func (p phase) rotate(delta phase) phase {
	return phase{
		sin: p.sin*delta.cos + p.cos*delta.sin,
		cos: p.cos*delta.cos - p.sin*delta.sin,
	}
}

// rgb derives the three channels from the current angle using the
// angle-addition identities: sin(θ+k) = sinθ·cos k + cosθ·sin k.
func (p phase) rgb() RGB {
	const (
		sinThird = 0.8660254037844386 // sin(2π/3)
		cosThird = -0.5               // cos(2π/3)
	)
	g := p.sin*cosThird + p.cos*sinThird
	b := p.sin*cosThird - p.cos*sinThird
	return RGB{R: channel(p.sin), G: channel(g), B: channel(b)}
}

// Ansi256 quantizes c to the xterm 256-color palette. Achromatic values
// map onto the 24-step grayscale ramp (232-255, with pure black and near
// white folded to the cube's 16 and 231); everything else lands in the
// 6x6x6 color cube.
func (c RGB) Ansi256() uint8 {
	if c.R == c.G && c.G == c.B {
		switch {
		case c.R < 8:
			return 16
		case c.R > 248:
			return 231
		default:
			return uint8((int(c.R)-8)*24/247) + 232
		}
	}
	r := int(c.R) * 5 / 255
	g := int(c.G) * 5 / 255
	b := int(c.B) * 5 / 255
	return uint8(16 + 36*r + 6*g + b)
}
