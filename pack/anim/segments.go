package anim

const SEGMENT_DESCRIPTOR_SIZE = 0x10

type SegmentDescriptor struct {
	// Running totals, stored but not interpreted
	Totals     [3]uint32
	DataOffset uint32 // relative to DataStart
}

type SegmentTable struct {
	// Present only for multi-segment timelines
	Boundaries  []uint32
	Sentinel    uint32
	Descriptors []SegmentDescriptor
	// absolute offset right after the descriptors
	End int
}

type Segment struct {
	Index      int
	FrameStart int
	FrameEnd   int // exclusive
	Descriptor SegmentDescriptor
	BodyStart  int // absolute
	BodyEnd    int // absolute, exclusive
}

func (s *Segment) FrameCount() int { return s.FrameEnd - s.FrameStart }

func parseSegmentTable(data []byte, h *Header) (*SegmentTable, error) {
	cb := h.Control
	c := newCursor(data, 0)
	if err := c.Seek(h.Section(SECTION_SEGMENT_TABLE)); err != nil {
		return nil, err
	}

	st := &SegmentTable{
		Descriptors: make([]SegmentDescriptor, 0, minInt(int(cb.SegmentCount), c.Remaining()/SEGMENT_DESCRIPTOR_SIZE)),
	}

	if cb.SegmentCount >= 2 {
		if int64(cb.SegmentCount)*4 > int64(c.Remaining()) {
			return nil, formatErrorf(KIND_OUT_OF_BOUNDS, c.Pos(), "%d segment boundaries do not fit buffer", cb.SegmentCount)
		}
		st.Boundaries = make([]uint32, cb.SegmentCount)
		for i := range st.Boundaries {
			pos := c.Pos()
			b, err := c.U32()
			if err != nil {
				return nil, err
			}
			switch {
			case i == 0 && b != 0:
				return nil, formatErrorf(KIND_INVALID_SEGMENT, pos, "first segment starts at frame %d", b)
			case i > 0 && b <= st.Boundaries[i-1]:
				return nil, formatErrorf(KIND_INVALID_SEGMENT, pos, "segment %d boundary %d not after %d", i, b, st.Boundaries[i-1])
			case b >= h.FrameCount:
				return nil, formatErrorf(KIND_INVALID_SEGMENT, pos, "segment %d boundary %d past frame count %d", i, b, h.FrameCount)
			}
			st.Boundaries[i] = b
		}
		var err error
		if st.Sentinel, err = c.U32(); err != nil {
			return nil, err
		}
	}

	for i := 0; i < int(cb.SegmentCount); i++ {
		var d SegmentDescriptor
		raw, err := c.Bytes(SEGMENT_DESCRIPTOR_SIZE)
		if err != nil {
			return nil, err
		}
		rc := newCursor(raw, 0)
		for j := range d.Totals {
			d.Totals[j], _ = rc.U32()
		}
		d.DataOffset, _ = rc.U32()
		st.Descriptors = append(st.Descriptors, d)
	}
	st.End = c.Pos()
	return st, nil
}

// Segments lays out frame ranges and body byte ranges. firstBody is where the
// first segment body begins: right after the animated channel headers.
func (st *SegmentTable) Segments(h *Header, firstBody int) ([]Segment, []*FormatError, error) {
	var warnings []*FormatError
	if st.End != h.Section(SECTION_BITFIELD) {
		warnings = append(warnings, formatErrorf(KIND_SECTION_SIZE_MISMATCH, st.End,
			"segment table ends at 0x%x, bitfield declared at 0x%x", st.End, h.Section(SECTION_BITFIELD)))
	}

	segs := make([]Segment, len(st.Descriptors))
	for i := range segs {
		s := &segs[i]
		s.Index = i
		s.Descriptor = st.Descriptors[i]
		if len(st.Boundaries) != 0 {
			s.FrameStart = int(st.Boundaries[i])
		}
		if i+1 < len(st.Boundaries) {
			s.FrameEnd = int(st.Boundaries[i+1])
		} else {
			s.FrameEnd = int(h.FrameCount)
		}

		if i == 0 {
			s.BodyStart = firstBody
			if declared := h.DataStart() + int(s.Descriptor.DataOffset); declared != firstBody {
				warnings = append(warnings, formatErrorf(KIND_SECTION_SIZE_MISMATCH, firstBody,
					"segment 0 body declared at 0x%x", declared))
			}
		} else {
			s.BodyStart = h.DataStart() + int(s.Descriptor.DataOffset)
		}
	}

	for i := range segs {
		s := &segs[i]
		if i+1 < len(segs) {
			s.BodyEnd = segs[i+1].BodyStart
		} else {
			s.BodyEnd = h.DataEnd()
		}
		if s.BodyEnd < s.BodyStart {
			return nil, warnings, formatErrorf(KIND_INVALID_SEGMENT, s.BodyStart,
				"segment %d body span is negative (ends at 0x%x)", i, s.BodyEnd)
		}
		if s.BodyEnd > h.DataEnd() {
			return nil, warnings, formatErrorf(KIND_OUT_OF_BOUNDS, s.BodyStart,
				"segment %d body ends at 0x%x past data region end 0x%x", i, s.BodyEnd, h.DataEnd())
		}
	}
	return segs, warnings, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
