package anim

import (
	"golang.org/x/sync/errgroup"

	"github.com/mogaika/anim_browser/utils"
)

// DEFAULT_MAX_TRANSFORMS bounds frameCount*boneCount of one file, about 150 MB of poses.
const DEFAULT_MAX_TRANSFORMS = 1 << 22

type Options struct {
	// nil logger is silent
	Logger      *utils.Logger
	ClassPolicy ClassPolicy
	// Decode independent segments in separate goroutines
	ParallelSegments bool
	// Turn SectionSizeMismatch warnings into errors
	Strict bool
	// Largest frameCount*boneCount accepted, <= 0 means DEFAULT_MAX_TRANSFORMS.
	// frameCount alone is bounded by it too, so bone-less files can not spin forever.
	MaxTransforms int
}

type Decoder struct {
	opts Options
}

func NewDecoder(opts Options) *Decoder {
	if opts.ClassPolicy == nil {
		opts.ClassPolicy = DefaultClassPolicy
	}
	if opts.MaxTransforms <= 0 {
		opts.MaxTransforms = DEFAULT_MAX_TRANSFORMS
	}
	return &Decoder{opts: opts}
}

// Animation is everything decoded from one V1 buffer.
type Animation struct {
	Header         *Header
	SegmentTable   *SegmentTable
	Segments       []Segment
	Classification *Classification
	Channels       *ChannelMap
	Bodies         []*SegmentBody
	Pose           *PoseSequence
	Warnings       []*FormatError
}

func (d *Decoder) warn(a *Animation, ws ...*FormatError) error {
	for _, w := range ws {
		if d.opts.Strict {
			return w
		}
		d.opts.Logger.Printf("warning: %v", w)
		a.Warnings = append(a.Warnings, w)
	}
	return nil
}

func (d *Decoder) Classify(data []byte, h *Header) (*Classification, error) {
	return classify(data, h, d.opts.ClassPolicy)
}

func (d *Decoder) DecodeAnimation(data []byte) (*Animation, error) {
	l := d.opts.Logger

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.IsV0() {
		return nil, formatErrorf(KIND_UNSUPPORTED_VERSION, HEADER_VERSION_OFFSET, "V0 animations are not decoded")
	}
	l.Printf("header: %d frames, %d bones, %d segments, consts %v, sections %v",
		h.FrameCount, h.Control.BoneCount, h.Control.SegmentCount, h.Control.ConstCounts, h.Control.SectionOffsets)

	frames, bones := uint64(h.FrameCount), uint64(h.Control.BoneCount)
	if limit := uint64(d.opts.MaxTransforms); frames > limit || frames*bones > limit {
		return nil, formatErrorf(KIND_OUT_OF_BOUNDS, HEADER_FRAME_COUNT_OFFSET,
			"%d frames of %d bones exceed the limit of %d transforms", frames, bones, limit)
	}

	a := &Animation{Header: h}

	if a.SegmentTable, err = parseSegmentTable(data, h); err != nil {
		return nil, err
	}
	if a.Classification, err = d.Classify(data, h); err != nil {
		return nil, err
	}
	l.Printf("animated channels: %v (total %d)", a.Classification.Animated, a.Classification.TotalAnimated())

	consts, ws, err := readConstants(data, h, a.Classification)
	if err != nil {
		return nil, err
	}
	if err := d.warn(a, ws...); err != nil {
		return nil, err
	}

	headers, headersEnd, err := readAnimatedHeaders(data, h, a.Classification.TotalAnimated())
	if err != nil {
		return nil, err
	}
	a.Channels = newChannelMap(a.Classification, consts, headers)

	a.Segments, ws, err = a.SegmentTable.Segments(h, headersEnd)
	if werr := d.warn(a, ws...); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}

	a.Bodies = make([]*SegmentBody, len(a.Segments))
	for i := range a.Segments {
		if a.Bodies[i], err = readSegmentBody(data, &a.Segments[i], a.Classification.TotalAnimated()); err != nil {
			return nil, err
		}
		l.Printf("segment %d: frames [%d, %d), body 0x%x..0x%x, %d bits/frame",
			i, a.Segments[i].FrameStart, a.Segments[i].FrameEnd,
			a.Segments[i].BodyStart, a.Segments[i].BodyEnd, a.Bodies[i].BitsInFrame)
	}

	a.Pose = newPoseSequence(int(h.FrameCount), int(h.Control.BoneCount))
	static := staticFrame(a.Channels)
	if d.opts.ParallelSegments && len(a.Segments) > 1 {
		var g errgroup.Group
		for i := range a.Segments {
			i := i
			g.Go(func() error {
				decodeSegmentFrames(data, &a.Segments[i], a.Bodies[i], a.Channels, static, a.Pose)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range a.Segments {
			decodeSegmentFrames(data, &a.Segments[i], a.Bodies[i], a.Channels, static, a.Pose)
		}
	}
	l.Println("decoded frames:", a.Pose.FrameCount, "bones:", a.Pose.BoneCount)

	return a, nil
}

func (d *Decoder) Decode(data []byte) (*PoseSequence, error) {
	a, err := d.DecodeAnimation(data)
	if err != nil {
		return nil, err
	}
	return a.Pose, nil
}

var defaultDecoder = NewDecoder(Options{})

// Decode decodes a V1 buffer with default options.
func Decode(data []byte) (*PoseSequence, error) {
	return defaultDecoder.Decode(data)
}

func DecodeAnimation(data []byte) (*Animation, error) {
	return defaultDecoder.DecodeAnimation(data)
}
