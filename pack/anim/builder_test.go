package anim

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// bitPacker is the writing side of bitstreamReader, used to build fixtures.
type bitPacker struct {
	data []byte
	pos  uint
}

func (p *bitPacker) Write(v uint32, n uint8) {
	for i := uint8(0); i < n; i++ {
		if p.pos/8 >= uint(len(p.data)) {
			p.data = append(p.data, 0)
		}
		if v&(1<<i) != 0 {
			p.data[p.pos/8] |= 1 << (p.pos % 8)
		}
		p.pos++
	}
}

type testSegment struct {
	frameStart int
	widths     []uint8
	anchors    []uint8
	stream     []byte
}

// testAnim describes a V1 file; build lays it out with consistent offsets.
type testAnim struct {
	frameCount int
	boneCount  int
	codes      []uint8 // group-major, boneCount*3
	consts     [GROUPS_COUNT][]mgl32.Vec3
	headers    []AnimatedHeader
	segments   []testSegment
	sentinel   uint32
}

func putU32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendVec3(b []byte, v mgl32.Vec3) []byte {
	for _, f := range v {
		b = appendU32(b, math.Float32bits(f))
	}
	return b
}

func (ta *testAnim) build() []byte {
	var data []byte
	var offsets [SECTIONS_COUNT]uint32

	offsets[SECTION_SEGMENT_TABLE] = 0
	if len(ta.segments) >= 2 {
		for _, s := range ta.segments {
			data = appendU32(data, uint32(s.frameStart))
		}
		data = appendU32(data, ta.sentinel)
	}
	descriptorsAt := len(data)
	for i := range ta.segments {
		data = appendU32(data, uint32(i))
		data = appendU32(data, uint32(i*2))
		data = appendU32(data, uint32(i*3))
		data = appendU32(data, 0) // patched below
	}

	offsets[SECTION_BITFIELD] = uint32(len(data))
	words := (len(ta.codes) + BITFIELD_CODES_PER_WORD - 1) / BITFIELD_CODES_PER_WORD
	bitfield := make([]byte, words*BITFIELD_WORD_SIZE)
	for i, code := range ta.codes {
		w := binary.LittleEndian.Uint32(bitfield[(i/16)*4:])
		w |= uint32(code&3) << (uint(i%16) * 2)
		binary.LittleEndian.PutUint32(bitfield[(i/16)*4:], w)
	}
	data = append(data, bitfield...)

	offsets[SECTION_CONSTANTS] = uint32(len(data))
	for g := range ta.consts {
		for _, v := range ta.consts[g] {
			data = appendVec3(data, v)
		}
	}

	offsets[SECTION_ANIMATED_HEADERS] = uint32(len(data))
	for _, h := range ta.headers {
		data = appendVec3(data, h.Base)
		data = appendVec3(data, h.Range)
	}

	for i, s := range ta.segments {
		putU32(data, descriptorsAt+i*SEGMENT_DESCRIPTOR_SIZE+12, uint32(len(data)))
		data = append(data, s.widths...)
		data = append(data, s.anchors...)
		data = append(data, s.stream...)
	}

	buf := make([]byte, HEADER_V1_SIZE, HEADER_V1_SIZE+len(data))
	putU32(buf, 0x00, ANIM_MAGIC)
	putU32(buf, 0x08, uint32(len(data)))
	putU32(buf, HEADER_FRAME_COUNT_OFFSET, uint32(ta.frameCount))
	putU32(buf, HEADER_VERSION_OFFSET, 1)
	putU32(buf, 0x4C, uint32(ta.boneCount))
	putU32(buf, 0x50, uint32(len(ta.segments)))
	for g := range ta.consts {
		putU32(buf, 0x54+g*4, uint32(len(ta.consts[g])))
	}
	for i, off := range offsets {
		putU32(buf, 0x60+i*4, off)
	}
	return append(buf, data...)
}

// constantOnly has one bone whose channels all come from the constant tables.
func constantOnly() *testAnim {
	return &testAnim{
		frameCount: 1,
		boneCount:  1,
		codes:      []uint8{1, 1, 1},
		consts: [GROUPS_COUNT][]mgl32.Vec3{
			{{0.1, 0.2, 0.3}},
			{{1, 2, 3}},
			{{1, 1, 1}},
		},
		segments: []testSegment{{}},
	}
}

// oneRotationChannel animates the rotation of a single bone with 8-bit codes.
func oneRotationChannel(stream []byte) *testAnim {
	return &testAnim{
		frameCount: 2,
		boneCount:  1,
		codes:      []uint8{2, 1, 1},
		consts: [GROUPS_COUNT][]mgl32.Vec3{
			nil,
			{{4, 5, 6}},
			{{1, 1, 1}},
		},
		headers:  []AnimatedHeader{{Base: mgl32.Vec3{0, 0, 0}, Range: mgl32.Vec3{1, 1, 1}}},
		segments: []testSegment{{widths: []uint8{8}, anchors: []uint8{0, 0, 0}, stream: stream}},
	}
}

// lcg gives reproducible pseudo random codes for fixtures.
type lcg uint32

func (l *lcg) Next(bits uint8) uint32 {
	*l = *l*1664525 + 1013904223
	if bits == 0 {
		return 0
	}
	return uint32(*l) >> (32 - bits)
}

// multiSegment has 3 bones, 5 frames in 3 segments with different bit widths.
// Bone 0 rotation and bone 2 translation are animated, bone 1 scale too.
// codes[frame][channel] are the packed quantized values.
func multiSegment() (ta *testAnim, codes [][][3]uint32, widths [][]uint8) {
	ta = &testAnim{
		frameCount: 5,
		boneCount:  3,
		codes: []uint8{
			2, 1, 1, // rotation
			1, 0, 2, // translation
			1, 2, 3, // scale
		},
		consts: [GROUPS_COUNT][]mgl32.Vec3{
			{{0, 0, 0}, {0.5, 0, 0}},
			{{1, 0, 0}, {0, 1, 0}},
			{{1, 1, 1}, {2, 2, 2}},
		},
		headers: []AnimatedHeader{
			{Base: mgl32.Vec3{-1, -1, -1}, Range: mgl32.Vec3{2, 2, 2}},
			{Base: mgl32.Vec3{0, 10, 20}, Range: mgl32.Vec3{5, 5, 5}},
			{Base: mgl32.Vec3{1, 1, 1}, Range: mgl32.Vec3{0.5, 0.25, 0.125}},
		},
		sentinel: 0xFFFFFFFF,
	}

	seed := lcg(7)
	for i, seg := range []struct {
		start, end int
		widths     []uint8
	}{
		{0, 2, []uint8{8, 12, 3}},
		{2, 4, []uint8{4, 16, 1}},
		{4, 5, []uint8{32, 0, 7}},
	} {
		var p bitPacker
		for f := seg.start; f < seg.end; f++ {
			frame := make([][3]uint32, len(seg.widths))
			for ch, w := range seg.widths {
				for c := 0; c < 3; c++ {
					frame[ch][c] = seed.Next(w)
					p.Write(frame[ch][c], w)
				}
			}
			codes = append(codes, frame)
			widths = append(widths, seg.widths)
		}
		ta.segments = append(ta.segments, testSegment{
			frameStart: seg.start,
			widths:     seg.widths,
			anchors:    []uint8{byte(i), 0x80, 0xff, 1, 2, 3, 4, 5, 6},
			stream:     p.data,
		})
	}
	return ta, codes, widths
}

func leU32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }
