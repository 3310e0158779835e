package anim

import "encoding/binary"

const ANIM_MAGIC = 0x4D494E41 // "ANIM"

const (
	VERSION_SENTINEL_V0 = 0xFFFFFFFF

	HEADER_FRAME_COUNT_OFFSET = 0x0C
	HEADER_VERSION_OFFSET     = 0x48
	HEADER_CONTROL_OFFSET     = 0x4C
	HEADER_V0_SIZE            = 0x4C
	HEADER_V1_SIZE            = 0x70 // data region starts right after the section offsets
)

type Format int

const (
	FORMAT_V0 Format = iota
	FORMAT_V1
)

func (f Format) String() string {
	if f == FORMAT_V0 {
		return "V0"
	}
	return "V1"
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

const (
	SECTION_SEGMENT_TABLE = iota
	SECTION_BITFIELD
	SECTION_CONSTANTS
	SECTION_ANIMATED_HEADERS
	SECTIONS_COUNT
)

type Header struct {
	Magic      uint32
	Flags      uint32
	DataSize   uint32
	FrameCount uint32
	Version    uint32 // raw sentinel at 0x48
	Format     Format
	Reserved   [HEADER_VERSION_OFFSET - 0x10]byte

	// Only present for FORMAT_V1
	Control *ControlBlock
}

type ControlBlock struct {
	BoneCount    uint32
	SegmentCount uint32
	// rotation, translation, scale
	ConstCounts [GROUPS_COUNT]uint32
	// relative to DataStart
	SectionOffsets [SECTIONS_COUNT]uint32
}

func (h *Header) IsV0() bool { return h.Format == FORMAT_V0 }

// DataStart is the absolute offset every section offset is relative to.
func (h *Header) DataStart() int { return HEADER_V1_SIZE }

// DataEnd is the absolute end of the declared data region.
func (h *Header) DataEnd() int { return HEADER_V1_SIZE + int(h.DataSize) }

// Section returns absolute offset of section i.
func (h *Header) Section(i int) int {
	return h.DataStart() + int(h.Control.SectionOffsets[i])
}

func (h *Header) FromBuf(b []byte) {
	h.Magic = binary.LittleEndian.Uint32(b[0x00:])
	h.Flags = binary.LittleEndian.Uint32(b[0x04:])
	h.DataSize = binary.LittleEndian.Uint32(b[0x08:])
	h.FrameCount = binary.LittleEndian.Uint32(b[HEADER_FRAME_COUNT_OFFSET:])
	copy(h.Reserved[:], b[0x10:HEADER_VERSION_OFFSET])
	h.Version = binary.LittleEndian.Uint32(b[HEADER_VERSION_OFFSET:])
}

func (cb *ControlBlock) FromBuf(b []byte) {
	cb.BoneCount = binary.LittleEndian.Uint32(b[0x00:])
	cb.SegmentCount = binary.LittleEndian.Uint32(b[0x04:])
	for i := range cb.ConstCounts {
		cb.ConstCounts[i] = binary.LittleEndian.Uint32(b[0x08+i*4:])
	}
	for i := range cb.SectionOffsets {
		cb.SectionOffsets[i] = binary.LittleEndian.Uint32(b[0x14+i*4:])
	}
}

// ParseHeader reads the fixed header and picks the format variant.
// V0 is only flagged, its control block is left nil.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HEADER_V0_SIZE {
		return nil, formatErrorf(KIND_TRUNCATED, len(data), "header needs 0x%x bytes, got 0x%x", HEADER_V0_SIZE, len(data))
	}

	h := &Header{}
	h.FromBuf(data)
	if h.Magic != ANIM_MAGIC {
		return nil, formatErrorf(KIND_BAD_MAGIC, 0, "magic 0x%.8x, expected 0x%.8x", h.Magic, ANIM_MAGIC)
	}

	if h.Version == VERSION_SENTINEL_V0 {
		h.Format = FORMAT_V0
		return h, nil
	}
	h.Format = FORMAT_V1

	if len(data) < HEADER_V1_SIZE {
		return nil, formatErrorf(KIND_TRUNCATED, len(data), "v1 header needs 0x%x bytes, got 0x%x", HEADER_V1_SIZE, len(data))
	}
	h.Control = &ControlBlock{}
	h.Control.FromBuf(data[HEADER_CONTROL_OFFSET:])

	if h.DataEnd() > len(data) {
		return nil, formatErrorf(KIND_TRUNCATED, len(data), "data region ends at 0x%x", h.DataEnd())
	}
	if h.Control.SegmentCount == 0 {
		return nil, formatErrorf(KIND_INVALID_SEGMENT, HEADER_CONTROL_OFFSET+4, "segment count is zero")
	}

	prev := uint32(0)
	for i, off := range h.Control.SectionOffsets {
		if off < prev || off > h.DataSize {
			return nil, formatErrorf(KIND_OUT_OF_BOUNDS, HEADER_CONTROL_OFFSET+0x14+i*4,
				"section %d offset 0x%x not in [0x%x, 0x%x]", i, off, prev, h.DataSize)
		}
		prev = off
	}

	return h, nil
}
