package lolcat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeChunks runs the input through a fresh decoder in the given
// pieces and returns the concatenated output, including the end-of-
// stream flush.
func decodeChunks(chunks ...[]byte) string {
	var d Decoder
	var out []byte
	for _, c := range chunks {
		out = d.Decode(out, c)
	}
	return string(d.Flush(out))
}

func TestDecodeChunkBoundaryInvariance(t *testing.T) {
	const input = "héllo wörld ✓ 你好 🎉 end"
	whole := decodeChunks([]byte(input))
	require.Equal(t, input, whole)

	b := []byte(input)
	for cut := 0; cut <= len(b); cut++ {
		got := decodeChunks(b[:cut], b[cut:])
		assert.Equal(t, input, got, "split at byte %d", cut)
	}
	// Byte-at-a-time is the degenerate chunking.
	chunks := make([][]byte, len(b))
	for i := range b {
		chunks[i] = b[i : i+1]
	}
	assert.Equal(t, input, decodeChunks(chunks...))
}

func TestDecodeSingleInvalidByte(t *testing.T) {
	for _, bad := range []byte{0x80, 0xbf, 0xc0, 0xc1, 0xf5, 0xff} {
		got := decodeChunks([]byte{'a', 'b', bad, 'c', 'd'})
		assert.Equal(t, "ab�cd", got, "byte 0x%02x", bad)
	}
}

func TestDecodeMaximalSubpart(t *testing.T) {
	// A truncated three-byte sequence interrupted by ASCII is one
	// marker, not one per byte.
	assert.Equal(t, "a�b", decodeChunks([]byte("a\xe2\x82b")))

	// An overlong encoding is rejected byte by byte per the maximal
	// subpart rule: the bad lead, then two stray continuations.
	assert.Equal(t, "���", decodeChunks([]byte("\xe0\x80\xaf")))

	// A surrogate half: ED followed by an out-of-range continuation.
	assert.Equal(t, "���", decodeChunks([]byte("\xed\xa0\x80")))
}

func TestDecodeCarryOverCompletes(t *testing.T) {
	// Four-byte rune split in every position across two reads.
	emoji := []byte("🎉")
	require.Len(t, emoji, 4)
	for cut := 1; cut < 4; cut++ {
		assert.Equal(t, "🎉", decodeChunks(emoji[:cut], emoji[cut:]), "cut %d", cut)
	}
}

func TestDecodeCarryOverCondemnedByNextChunk(t *testing.T) {
	// The carried prefix can never complete once an invalid
	// continuation arrives; it becomes one marker and scanning resumes.
	assert.Equal(t, "�xy", decodeChunks([]byte{0xe2, 0x82}, []byte("xy")))
}

func TestDecodeFlushAtEOF(t *testing.T) {
	// A truncated rune at end of stream becomes a single marker; the
	// decoder never waits for bytes that will not arrive.
	assert.Equal(t, "ab�", decodeChunks([]byte("ab\xe2\x82")))
	assert.Equal(t, "ab�", decodeChunks([]byte("ab\xf0\x9f\x8e")))

	// Flush resets the carry for the next use.
	var d Decoder
	_ = d.Decode(nil, []byte{0xe2})
	_ = d.Flush(nil)
	assert.Equal(t, "ok", string(d.Decode(nil, []byte("ok"))))
}

func TestDecodeReplacementPassesThrough(t *testing.T) {
	// A literal U+FFFD in the input is valid UTF-8 and survives intact.
	assert.Equal(t, "a�b", decodeChunks([]byte("a�b")))
}
