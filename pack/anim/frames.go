package anim

import (
	"github.com/go-gl/mathgl/mgl32"
)

const ANCHOR_BIT_WIDTH = 8

// SegmentBody is the parsed prefix of a segment body and the location of its bitstream.
type SegmentBody struct {
	BitWidths []uint8 // per animated channel, header order
	// Raw anchor codes, 3 per animated channel. Exposed, never applied to frames.
	Anchors     []uint8
	BitsInFrame uint64
	StreamStart int // absolute
	StreamBits  uint64
}

// Anchor dequantizes the anchor of channel ch with an 8-bit domain.
func (sb *SegmentBody) Anchor(ch int, ah *AnimatedHeader) mgl32.Vec3 {
	var v mgl32.Vec3
	for c := range v {
		v[c] = ah.Dequantize(c, uint32(sb.Anchors[ch*3+c]), ANCHOR_BIT_WIDTH)
	}
	return v
}

func readSegmentBody(data []byte, seg *Segment, totalAnimated int) (*SegmentBody, error) {
	// The body is bounded by its own span, never by the rest of the buffer
	if seg.BodyEnd > len(data) {
		return nil, formatErrorf(KIND_OUT_OF_BOUNDS, seg.BodyStart,
			"segment %d body ends at 0x%x past buffer end 0x%x", seg.Index, seg.BodyEnd, len(data))
	}
	c := newCursor(data[:seg.BodyEnd], seg.BodyStart)

	sb := &SegmentBody{}
	var err error
	if sb.BitWidths, err = c.Bytes(totalAnimated); err != nil {
		return nil, err
	}
	for i, bw := range sb.BitWidths {
		if bw > BITSTREAM_MAX_WIDTH {
			return nil, formatErrorf(KIND_INVALID_BIT_WIDTH, seg.BodyStart+i,
				"segment %d channel %d bit width %d", seg.Index, i, bw)
		}
		sb.BitsInFrame += uint64(bw) * 3
	}
	if sb.Anchors, err = c.Bytes(totalAnimated * 3); err != nil {
		return nil, err
	}

	sb.StreamStart = c.Pos()
	sb.StreamBits = sb.BitsInFrame * uint64(seg.FrameCount())
	if need := (sb.StreamBits + 7) / 8; need > uint64(c.Remaining()) {
		return nil, formatErrorf(KIND_OUT_OF_BOUNDS, sb.StreamStart,
			"segment %d bitstream needs 0x%x bytes, body has 0x%x", seg.Index, need, c.Remaining())
	}
	return sb, nil
}

// staticFrame is the per-bone template every frame starts from.
func staticFrame(cm *ChannelMap) []BoneTransform {
	frame := make([]BoneTransform, cm.BoneCount)
	for bone := range frame {
		for g := GROUP_ROTATION; g < GROUPS_COUNT; g++ {
			*frame[bone].group(g) = cm.Value(bone, g)
		}
	}
	return frame
}

// decodeSegmentFrames writes frames [FrameStart, FrameEnd) of pose. Segments own
// disjoint frame ranges, so concurrent calls for different segments do not race.
func decodeSegmentFrames(data []byte, seg *Segment, body *SegmentBody, cm *ChannelMap,
	static []BoneTransform, pose *PoseSequence) {

	streamEnd := body.StreamStart + int((body.StreamBits+7)/8)
	br := newBitstreamReader(data[body.StreamStart:streamEnd])

	for frame := seg.FrameStart; frame < seg.FrameEnd; frame++ {
		out := pose.Frame(frame)
		copy(out, static)

		for ch, ac := range cm.Animated {
			bw := body.BitWidths[ch]
			ah := &cm.Headers[ch]
			v := out[ac.Bone].group(ac.Group)
			for c := range v {
				v[c] = ah.Dequantize(c, br.Read(bw), bw)
			}
		}
	}
}
