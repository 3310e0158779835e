package anim

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// cursor is a bounds-checked little-endian reader over an immutable buffer.
// Every failed read reports the absolute offset it was attempted at.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte, pos int) *cursor {
	return &cursor{buf: buf, pos: pos}
}

func (c *cursor) Pos() int       { return c.pos }
func (c *cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return formatErrorf(KIND_OUT_OF_BOUNDS, pos, "seek outside of buffer (len 0x%x)", len(c.buf))
	}
	c.pos = pos
	return nil
}

func (c *cursor) need(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return formatErrorf(KIND_OUT_OF_BOUNDS, c.pos, "read of %d bytes past end of buffer (len 0x%x)", n, len(c.buf))
	}
	return nil
}

// Bytes returns a sub-slice of the buffer, not a copy.
func (c *cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) Vec3() (v mgl32.Vec3, err error) {
	if err := c.need(12); err != nil {
		return v, err
	}
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(c.buf[c.pos+i*4:]))
	}
	c.pos += 12
	return v, nil
}
