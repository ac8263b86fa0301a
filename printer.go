package lolcat

import (
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

/*
printer.go is the composition root. A Printer owns every piece of
rendering state for one process run: the cumulative offset, the color
phase, the escape scanner, the UTF-8 carry-over, and the terminal cursor
bookkeeping. Sources are rendered strictly in sequence through the same
Printer so the rainbow flows continuously across them.
*/

const esc = 0x1b

// Terminal control sequences emitted by the printer.
const (
	sgrReset      = "\x1b[0m"
	resetFg       = "\x1b[39m"
	resetBg       = "\x1b[49m"
	saveCursor    = "\x1b7"
	restoreCursor = "\x1b8"
	hideCursor    = "\x1b[?25l"
	showCursor    = "\x1b[?25h"
)

// readChunk is how many bytes are pulled from a source per read.
const readChunk = 8192

// Printer renders byte sources to a sink. Not safe for concurrent use;
// the whole pipeline is single-threaded and blocking.
type Printer struct {
	cfg      Config
	mode     ColorMode
	useColor bool

	// os is the cumulative offset. It advances by 1/spread per visible
	// rune and by exactly 1 per newline, and seeds the hue of each new
	// line; this is what makes the gradient continue vertically across
	// lines instead of resetting.
	os float64
	// cur is the current hue phase, delta the per-rune rotation
	// (freq/spread radians).
	cur, delta phase
	// lineActive is whether cur is live. When false the next visible
	// rune re-derives cur from freq*os; within a line cur advances by
	// rotation only.
	lineActive bool

	scan Scanner
	dec  Decoder
	out  *writeBuffer

	cursorHidden bool

	line    []byte // pending bytes of the current unterminated line
	decoded []byte // decoder output scratch
	scratch []byte // escape assembly scratch
	runeBuf [utf8.UTFMax]byte

	// now and sleep pace the animation loop; tests swap them out.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewPrinter returns a Printer writing to w. offset is the phase origin,
// normally Config.InitialOffset(). With useColor false every source is
// copied through byte for byte.
func NewPrinter(cfg Config, useColor bool, mode ColorMode, offset float64, w io.Writer) *Printer {
	Log.Debug("printer",
		"color", useColor, "mode", mode, "animate", cfg.Animate,
		"spread", cfg.Spread, "freq", cfg.Freq, "offset", offset)
	return &Printer{
		cfg:      cfg,
		mode:     mode,
		useColor: useColor,
		os:       offset,
		delta:    phaseAt(cfg.Freq / cfg.Spread),
		out:      newWriteBuffer(w),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Render colorizes one source. Reads may split lines and multi-byte
// runes anywhere; both are reassembled across chunks. An ErrBrokenPipe
// return means the consumer went away and the caller should stop
// quietly; any other error aborts the run.
func (p *Printer) Render(r io.Reader) error {
	if !p.useColor {
		// Plain mode is a pure copy: output bytes equal input bytes.
		if err := p.out.Flush(); err != nil {
			return err
		}
		_, err := io.Copy(p.out.w, r)
		return pipeErr(err)
	}

	var chunk [readChunk]byte
	for {
		n, rerr := r.Read(chunk[:])
		if n > 0 {
			p.decoded = p.dec.Decode(p.decoded[:0], chunk[:n])
			if err := p.consume(p.decoded); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return pipeErr(rerr)
		}
	}

	// Source exhausted: condemn any half-received code point rather
	// than wait for bytes that will never arrive, then flush the
	// unterminated last line.
	p.decoded = p.dec.Flush(p.decoded[:0])
	if len(p.decoded) > 0 {
		if err := p.consume(p.decoded); err != nil {
			return err
		}
	}
	if len(p.line) > 0 {
		if err := p.printLine(string(p.line), false); err != nil {
			return err
		}
		p.line = p.line[:0]
	}
	return p.out.Flush()
}

// consume splits decoded text into lines, buffering the unterminated
// tail for the next chunk.
func (p *Printer) consume(text []byte) error {
	start := 0
	for i, b := range text {
		if b != '\n' {
			continue
		}
		p.line = append(p.line, text[start:i]...)
		if err := p.printLine(string(p.line), true); err != nil {
			return err
		}
		p.line = p.line[:0]
		start = i + 1
	}
	p.line = append(p.line, text[start:]...)
	return nil
}

// PrintText renders an in-memory string as if it were a source. Used for
// the colorized help text.
func (p *Printer) PrintText(text string) error {
	if !p.useColor {
		_, err := io.WriteString(p.out.w, text)
		return pipeErr(err)
	}
	for len(text) > 0 {
		line := text
		newline := false
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text, newline = text[:i], text[i+1:], true
		} else {
			text = ""
		}
		if err := p.printLine(line, newline); err != nil {
			return err
		}
	}
	return p.out.Flush()
}

func (p *Printer) printLine(text string, newline bool) error {
	if p.cfg.Animate && text != "" {
		return p.animateLine(text, newline)
	}
	return p.renderLine(text, newline)
}

// renderLine walks one line, colorizing visible runes and passing escape
// sequences through untouched.
func (p *Printer) renderLine(text string, newline bool) error {
	for _, r := range text {
		if p.scan.Step(r) {
			// Inside an escape sequence: copy the byte verbatim; the
			// phase and offset do not advance.
			n := utf8.EncodeRune(p.runeBuf[:], r)
			if _, err := p.out.Write(p.runeBuf[:n]); err != nil {
				return err
			}
			continue
		}
		if r == '\t' {
			// Fixed-width tab expansion: eight spaces, each advancing
			// the hue as if it were a printed character.
			for i := 0; i < 8; i++ {
				if err := p.writeVisible(' '); err != nil {
					return err
				}
			}
			continue
		}
		if err := p.writeVisible(r); err != nil {
			return err
		}
	}
	if newline {
		if err := p.out.WriteByte('\n'); err != nil {
			return err
		}
		p.os++
		p.lineActive = false
	}
	return nil
}

// writeVisible emits one colorized rune: color escape, glyph, then the
// matching fg/bg reset (not a full SGR reset, so unrelated attributes in
// the stream survive).
func (p *Printer) writeVisible(r rune) error {
	if !p.lineActive {
		p.cur = phaseAt(p.cfg.Freq * p.os)
		p.lineActive = true
	}
	rgb := p.cur.rgb()

	b := p.scratch[:0]
	if p.cfg.Invert {
		b = append(b, "\x1b[48;"...)
	} else {
		b = append(b, "\x1b[38;"...)
	}
	if p.mode == TrueColor {
		b = append(b, "2;"...)
		b = strconv.AppendUint(b, uint64(rgb.R), 10)
		b = append(b, ';')
		b = strconv.AppendUint(b, uint64(rgb.G), 10)
		b = append(b, ';')
		b = strconv.AppendUint(b, uint64(rgb.B), 10)
	} else {
		b = append(b, "5;"...)
		b = strconv.AppendUint(b, uint64(rgb.Ansi256()), 10)
	}
	b = append(b, 'm')
	b = utf8.AppendRune(b, r)
	if p.cfg.Invert {
		b = append(b, resetBg...)
	} else {
		b = append(b, resetFg...)
	}
	p.scratch = b

	if _, err := p.out.Write(b); err != nil {
		return err
	}
	p.cur = p.cur.rotate(p.delta)
	p.os += 1 / p.cfg.Spread
	return nil
}

// Finalize restores the terminal: shows the cursor if a render hid it
// and resets any dangling color attribute. Call it exactly once at the
// end of a run, on success or failure.
func (p *Printer) Finalize() error {
	if p.cursorHidden {
		if _, err := p.out.WriteString(showCursor); err != nil {
			return err
		}
		p.cursorHidden = false
	}
	if p.useColor {
		if _, err := p.out.WriteString(sgrReset); err != nil {
			return err
		}
	}
	return p.out.Flush()
}
