package lolcat

// escape.go recognizes the boundaries of terminal escape sequences so
// their bytes can pass through verbatim. Sequences are never interpreted
// or rewritten; injecting a color code inside one would corrupt whatever
// formatting the input already carries (ls --color, another colorizer...).

type scanState uint8

const (
	scanIdle scanState = iota
	// scanStart: saw ESC, the next rune picks the sequence family.
	scanStart
	// scanCSI: ESC [ ... terminated by a final byte in @-~.
	scanCSI
	// scanOSC: ESC ] ... terminated by BEL or ST (ESC \).
	scanOSC
	scanOSCEsc // scanOSC, previous rune was ESC
	// scanString: ESC P/X/^/_ (DCS, SOS, PM, APC), terminated like OSC.
	scanString
	scanStringEsc // scanString, previous rune was ESC
	// scanFe: ESC followed by an intermediate byte (0x20-0x2F) takes
	// exactly one more rune.
	scanFe
)

// Scanner tracks escape sequence state across arbitrarily split input.
// The zero value is ready to use; Idle is both the initial state and the
// terminal state of every sequence.
type Scanner struct {
	state scanState
}

// Step feeds the next rune and reports whether it belongs to an escape
// sequence and must be copied through unmodified instead of colorized.
func (s *Scanner) Step(r rune) bool {
	switch s.state {
	case scanStart:
		switch {
		case r == esc:
			// ESC ESC: pass the second ESC through verbatim too and let
			// the rune after it pick the family. Treating it as ordinary
			// text would wrap a raw ESC byte in color codes and hand the
			// terminal a mangled sequence.
		case r == '[':
			s.state = scanCSI
		case r == ']':
			s.state = scanOSC
		case r == 'P' || r == 'X' || r == '^' || r == '_':
			s.state = scanString
		case r >= 0x20 && r <= 0x2f:
			s.state = scanFe
		default:
			// Bare one-rune escape; r itself is ordinary text.
			s.state = scanIdle
			return false
		}
		return true
	case scanCSI:
		if r >= '@' && r <= '~' {
			s.state = scanIdle
		}
		return true
	case scanOSC:
		switch r {
		case '\a':
			s.state = scanIdle
		case esc:
			s.state = scanOSCEsc
		}
		return true
	case scanOSCEsc:
		switch r {
		case '\\', '\a':
			s.state = scanIdle
		case esc:
			// still one ESC away from a possible ST
		default:
			s.state = scanOSC
		}
		return true
	case scanString:
		switch r {
		case '\a':
			s.state = scanIdle
		case esc:
			s.state = scanStringEsc
		}
		return true
	case scanStringEsc:
		switch r {
		case '\\', '\a':
			s.state = scanIdle
		case esc:
		default:
			s.state = scanString
		}
		return true
	case scanFe:
		s.state = scanIdle
		return true
	}
	// scanIdle
	if r == esc {
		s.state = scanStart
		return true
	}
	return false
}
