package lolcat

import "io"

// outBufSize is the coalescing buffer capacity. A colorized glyph costs
// roughly a dozen bytes of escapes, so this batches a few hundred glyphs
// per write on the sink.
const outBufSize = 4096

// writeBuffer coalesces the many tiny writes of the renderer (escape
// code, glyph, reset, over and over) into few writes on the sink. It is
// a fixed array with an explicit length; it never grows and never drops
// bytes. The first write error sticks, normalized through pipeErr, and
// is returned by every later call.
type writeBuffer struct {
	w   io.Writer
	buf [outBufSize]byte
	n   int
	err error
}

func newWriteBuffer(w io.Writer) *writeBuffer {
	return &writeBuffer{w: w}
}

func (b *writeBuffer) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(p) > outBufSize-b.n {
		if err := b.Flush(); err != nil {
			return 0, err
		}
	}
	if len(p) > outBufSize {
		// Oversized chunk: pending bytes are already out, so writing
		// directly keeps byte order intact.
		n, err := b.w.Write(p)
		b.err = pipeErr(err)
		return n, b.err
	}
	b.n += copy(b.buf[b.n:], p)
	return len(p), nil
}

func (b *writeBuffer) WriteString(s string) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(s) > outBufSize-b.n {
		if err := b.Flush(); err != nil {
			return 0, err
		}
	}
	if len(s) > outBufSize {
		n, err := io.WriteString(b.w, s)
		b.err = pipeErr(err)
		return n, b.err
	}
	b.n += copy(b.buf[b.n:], s)
	return len(s), nil
}

func (b *writeBuffer) WriteByte(c byte) error {
	if b.err != nil {
		return b.err
	}
	if b.n == outBufSize {
		if err := b.Flush(); err != nil {
			return err
		}
	}
	b.buf[b.n] = c
	b.n++
	return nil
}

// Flush writes out pending bytes and, if the sink itself buffers,
// flushes it too.
func (b *writeBuffer) Flush() error {
	if b.err != nil {
		return b.err
	}
	if b.n > 0 {
		_, err := b.w.Write(b.buf[:b.n])
		b.n = 0
		if err != nil {
			b.err = pipeErr(err)
			return b.err
		}
	}
	if f, ok := b.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			b.err = pipeErr(err)
		}
	}
	return b.err
}
