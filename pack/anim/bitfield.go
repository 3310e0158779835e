package anim

import "encoding/binary"

const (
	BITFIELD_WORD_SIZE      = 4
	BITFIELD_CODES_PER_WORD = 16
)

// bitfieldReader walks 2-bit codes packed in little-endian 32-bit words,
// least significant pair first.
// It is unrelated to bitstreamReader: codes never straddle a word.
type bitfieldReader struct {
	words []byte
	index int
}

func newBitfieldReader(words []byte) *bitfieldReader {
	return &bitfieldReader{words: words}
}

func (r *bitfieldReader) Len() int {
	return len(r.words) / BITFIELD_WORD_SIZE * BITFIELD_CODES_PER_WORD
}

func (r *bitfieldReader) Next() uint8 {
	word := binary.LittleEndian.Uint32(r.words[(r.index/BITFIELD_CODES_PER_WORD)*BITFIELD_WORD_SIZE:])
	shift := uint(r.index%BITFIELD_CODES_PER_WORD) * 2
	r.index++
	return uint8(word>>shift) & 3
}
