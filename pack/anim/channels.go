package anim

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	CONSTANT_VALUE_SIZE  = 0xc
	ANIMATED_HEADER_SIZE = 0x18
)

// AnimatedHeader is the dequantization domain of one animated channel.
type AnimatedHeader struct {
	Base  mgl32.Vec3
	Range mgl32.Vec3
}

// Dequantize maps a code of bitWidth bits into [Base[c], Base[c]+Range[c]].
func (ah *AnimatedHeader) Dequantize(c int, q uint32, bitWidth uint8) float32 {
	if bitWidth == 0 {
		return ah.Base[c]
	}
	maxQ := float64(uint64(1)<<bitWidth - 1)
	return ah.Base[c] + float32(float64(q)/maxQ)*ah.Range[c]
}

// ChannelRef points a channel to its data: an index into the group constants
// for CLASS_CONSTANT, a global animated channel index for CLASS_ANIMATED.
type ChannelRef struct {
	Class ChannelClass
	Index int
}

type AnimatedChannel struct {
	Bone  int
	Group Group
}

// ChannelMap is the resolved, flat view of every channel of every bone.
type ChannelMap struct {
	BoneCount int
	Refs      []ChannelRef // group-major, same order as Classification.Classes
	Constants [GROUPS_COUNT][]mgl32.Vec3
	Headers   []AnimatedHeader
	Animated  []AnimatedChannel // header order
}

func (cm *ChannelMap) Ref(bone int, g Group) ChannelRef {
	return cm.Refs[int(g)*cm.BoneCount+bone]
}

var defaultGroupValue = [GROUPS_COUNT]mgl32.Vec3{
	GROUP_ROTATION:    {0, 0, 0},
	GROUP_TRANSLATION: {0, 0, 0},
	GROUP_SCALE:       {1, 1, 1},
}

// Value returns the frame independent value of a non-animated channel.
func (cm *ChannelMap) Value(bone int, g Group) mgl32.Vec3 {
	ref := cm.Ref(bone, g)
	if ref.Class == CLASS_CONSTANT {
		return cm.Constants[g][ref.Index]
	}
	return defaultGroupValue[g]
}

func readConstants(data []byte, h *Header, cls *Classification) (
	consts [GROUPS_COUNT][]mgl32.Vec3, warnings []*FormatError, err error) {

	c := newCursor(data, 0)
	if err := c.Seek(h.Section(SECTION_CONSTANTS)); err != nil {
		return consts, nil, err
	}

	for g := GROUP_ROTATION; g < GROUPS_COUNT; g++ {
		count := int(h.Control.ConstCounts[g])
		if int64(count)*CONSTANT_VALUE_SIZE > int64(c.Remaining()) {
			return consts, warnings, formatErrorf(KIND_OUT_OF_BOUNDS, c.Pos(),
				"%d %v constants do not fit buffer", count, g)
		}
		if count != cls.Constant[g] {
			warnings = append(warnings, formatErrorf(KIND_SECTION_SIZE_MISMATCH, c.Pos(),
				"%d %v constants for %d constant channels", count, g, cls.Constant[g]))
		}
		consts[g] = make([]mgl32.Vec3, count)
		for i := range consts[g] {
			if consts[g][i], err = c.Vec3(); err != nil {
				return consts, warnings, err
			}
		}
	}

	if end := h.Section(SECTION_ANIMATED_HEADERS); c.Pos() != end {
		warnings = append(warnings, formatErrorf(KIND_SECTION_SIZE_MISMATCH, c.Pos(),
			"constants end at 0x%x, animated headers declared at 0x%x", c.Pos(), end))
	}
	return consts, warnings, nil
}

// readAnimatedHeaders returns the headers and the absolute offset right after them.
func readAnimatedHeaders(data []byte, h *Header, total int) ([]AnimatedHeader, int, error) {
	c := newCursor(data, 0)
	if err := c.Seek(h.Section(SECTION_ANIMATED_HEADERS)); err != nil {
		return nil, 0, err
	}
	if int64(total)*ANIMATED_HEADER_SIZE > int64(c.Remaining()) {
		return nil, 0, formatErrorf(KIND_OUT_OF_BOUNDS, c.Pos(), "%d animated headers do not fit buffer", total)
	}

	headers := make([]AnimatedHeader, total)
	for i := range headers {
		var err error
		if headers[i].Base, err = c.Vec3(); err != nil {
			return nil, 0, err
		}
		if headers[i].Range, err = c.Vec3(); err != nil {
			return nil, 0, err
		}
	}
	return headers, c.Pos(), nil
}

func newChannelMap(cls *Classification, consts [GROUPS_COUNT][]mgl32.Vec3, headers []AnimatedHeader) *ChannelMap {
	cm := &ChannelMap{
		BoneCount: cls.BoneCount,
		Refs:      make([]ChannelRef, len(cls.Classes)),
		Constants: consts,
		Headers:   headers,
		Animated:  make([]AnimatedChannel, 0, cls.TotalAnimated()),
	}

	for g := GROUP_ROTATION; g < GROUPS_COUNT; g++ {
		iConst := 0
		for bone, class := range cls.Group(g) {
			ref := &cm.Refs[int(g)*cm.BoneCount+bone]
			switch class {
			case CLASS_ANIMATED:
				*ref = ChannelRef{Class: CLASS_ANIMATED, Index: len(cm.Animated)}
				cm.Animated = append(cm.Animated, AnimatedChannel{Bone: bone, Group: g})
			case CLASS_CONSTANT:
				if iConst < len(consts[g]) {
					*ref = ChannelRef{Class: CLASS_CONSTANT, Index: iConst}
				} else {
					*ref = ChannelRef{Class: CLASS_UNUSED, Index: -1}
				}
				iConst++
			default:
				*ref = ChannelRef{Class: CLASS_UNUSED, Index: -1}
			}
		}
	}
	return cm
}
