package lolcat

import "unicode/utf8"

// decode.go validates a byte stream as UTF-8 across arbitrary chunk
// boundaries. Reads can split a code point anywhere; the truncated tail
// is carried over and completed by the next chunk. Bytes that can never
// become valid are replaced by U+FFFD, one marker per maximal invalid
// subsequence, and decoding resumes right after them.

// replacement is the UTF-8 encoding of U+FFFD.
const replacement = "�"

// Decoder holds the carry-over state between chunks. The carry is an
// explicit fixed-size array so tests can drive any chunking; the zero
// value is ready to use.
type Decoder struct {
	pend  [utf8.UTFMax]byte
	npend int
}

// acceptRange bounds the second byte of a multi-byte sequence. Later
// continuation bytes always accept 0x80-0xBF.
type acceptRange struct {
	lo, hi byte
}

// seqBounds returns the encoded length implied by a lead byte and the
// accept range of its first continuation byte. size 0 means the lead
// byte can never start a valid sequence.
func seqBounds(b0 byte) (size int, ar acceptRange) {
	switch {
	case b0 >= 0xc2 && b0 <= 0xdf:
		return 2, acceptRange{0x80, 0xbf}
	case b0 == 0xe0:
		return 3, acceptRange{0xa0, 0xbf}
	case b0 == 0xed:
		return 3, acceptRange{0x80, 0x9f}
	case b0 >= 0xe1 && b0 <= 0xef:
		return 3, acceptRange{0x80, 0xbf}
	case b0 == 0xf0:
		return 4, acceptRange{0x90, 0xbf}
	case b0 >= 0xf1 && b0 <= 0xf3:
		return 4, acceptRange{0x80, 0xbf}
	case b0 == 0xf4:
		return 4, acceptRange{0x80, 0x8f}
	}
	return 0, acceptRange{}
}

// Decode appends the decoded form of p to dst and returns it. A trailing
// sequence that is incomplete but could still become valid is held back
// for the next call; call Flush at end of stream to resolve it.
func (d *Decoder) Decode(dst, p []byte) []byte {
	// First complete (or condemn) any carried bytes.
	for d.npend > 0 && len(p) > 0 {
		size, ar := seqBounds(d.pend[0])
		lo, hi := byte(0x80), byte(0xbf)
		if d.npend == 1 {
			lo, hi = ar.lo, ar.hi
		}
		b := p[0]
		if b < lo || b > hi {
			// The carry is a maximal invalid subsequence; b restarts
			// the scan below.
			dst = append(dst, replacement...)
			d.npend = 0
			break
		}
		d.pend[d.npend] = b
		d.npend++
		p = p[1:]
		if d.npend == size {
			dst = append(dst, d.pend[:size]...)
			d.npend = 0
		}
	}

	for i := 0; i < len(p); {
		if p[i] < utf8.RuneSelf {
			// Run of ASCII, copied in one go.
			j := i + 1
			for j < len(p) && p[j] < utf8.RuneSelf {
				j++
			}
			dst = append(dst, p[i:j]...)
			i = j
			continue
		}
		if r, size := utf8.DecodeRune(p[i:]); r != utf8.RuneError || size > 1 {
			dst = append(dst, p[i:i+size]...)
			i += size
			continue
		}
		size, ar := seqBounds(p[i])
		if size == 0 {
			// Stray continuation byte or out-of-range lead.
			dst = append(dst, replacement...)
			i++
			continue
		}
		j := 1
		for ; j < size; j++ {
			if i+j == len(p) {
				// Possibly valid, truncated by the chunk boundary.
				d.npend = copy(d.pend[:], p[i:])
				return dst
			}
			lo, hi := byte(0x80), byte(0xbf)
			if j == 1 {
				lo, hi = ar.lo, ar.hi
			}
			if b := p[i+j]; b < lo || b > hi {
				break
			}
		}
		// Maximal invalid subsequence of j bytes, one marker.
		dst = append(dst, replacement...)
		i += j
	}
	return dst
}

// Flush resolves carry-over at end of stream: a truncated code point
// that will never complete becomes a single U+FFFD. Never blocks.
func (d *Decoder) Flush(dst []byte) []byte {
	if d.npend > 0 {
		dst = append(dst, replacement...)
		d.npend = 0
	}
	return dst
}
