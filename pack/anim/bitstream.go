package anim

import "fmt"

const BITSTREAM_MAX_WIDTH = 32

// bitstreamReader reads unsigned values of 0..32 bits, least significant bit first,
// with no padding between values. Bits past the end of data read as zero,
// callers bound the stream themselves.
type bitstreamReader struct {
	data []byte
	pos  uint64 // in bits
}

func newBitstreamReader(data []byte) *bitstreamReader {
	return &bitstreamReader{data: data}
}

func (r *bitstreamReader) BitPos() uint64 { return r.pos }

func (r *bitstreamReader) Read(n uint8) uint32 {
	if n > BITSTREAM_MAX_WIDTH {
		panic(fmt.Sprintf("bitstream read of %d bits", n))
	}

	var v uint64
	for got := uint(0); got < uint(n); {
		byteIndex := r.pos / 8
		bitIndex := uint(r.pos % 8)
		take := 8 - bitIndex
		if left := uint(n) - got; take > left {
			take = left
		}

		if byteIndex < uint64(len(r.data)) {
			chunk := uint64(r.data[byteIndex]>>bitIndex) & (1<<take - 1)
			v |= chunk << got
		}
		got += take
		r.pos += uint64(take)
	}
	return uint32(v)
}
