package anim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/anim_browser/utils"
)

type ClassificationInfo struct {
	Animated [GROUPS_COUNT]int `json:"animated" yaml:"animated,flow"`
	Constant [GROUPS_COUNT]int `json:"constant" yaml:"constant,flow"`
	Classes  []ChannelClass    `json:"classes" yaml:"classes,flow"`
}

type SegmentInfo struct {
	FrameStart  int    `json:"frame_start" yaml:"frame_start"`
	FrameEnd    int    `json:"frame_end" yaml:"frame_end"`
	BodyStart   int    `json:"body_start" yaml:"body_start"`
	BodyEnd     int    `json:"body_end" yaml:"body_end"`
	BitsInFrame uint64 `json:"bits_in_frame" yaml:"bits_in_frame"`
	BitWidths   []int  `json:"bit_widths" yaml:"bit_widths,flow"`
}

// AnimationInfo is the browsable summary of a decoded file.
type AnimationInfo struct {
	Name           string                 `json:"name" yaml:"name"`
	Format         Format                 `json:"format" yaml:"format"`
	Flags          uint32                 `json:"flags" yaml:"flags"`
	DataSize       uint32                 `json:"data_size" yaml:"data_size"`
	FrameCount     int                    `json:"frame_count" yaml:"frame_count"`
	BoneCount      int                    `json:"bone_count" yaml:"bone_count"`
	ConstCounts    [GROUPS_COUNT]uint32   `json:"const_counts" yaml:"const_counts,flow"`
	SectionOffsets [SECTIONS_COUNT]uint32 `json:"section_offsets" yaml:"section_offsets,flow"`
	Classification ClassificationInfo     `json:"classification" yaml:"classification"`
	Segments       []SegmentInfo          `json:"segments" yaml:"segments"`
	Warnings       []*FormatError         `json:"warnings" yaml:"warnings"`
}

func (a *Animation) Marshal(name string) *AnimationInfo {
	h := a.Header
	info := &AnimationInfo{
		Name:           name,
		Format:         h.Format,
		Flags:          h.Flags,
		DataSize:       h.DataSize,
		FrameCount:     int(h.FrameCount),
		BoneCount:      int(h.Control.BoneCount),
		ConstCounts:    h.Control.ConstCounts,
		SectionOffsets: h.Control.SectionOffsets,
		Classification: ClassificationInfo{
			Animated: a.Classification.Animated,
			Constant: a.Classification.Constant,
			Classes:  a.Classification.Classes,
		},
		Segments: make([]SegmentInfo, len(a.Segments)),
		Warnings: a.Warnings,
	}
	for i := range a.Segments {
		s, body := &a.Segments[i], a.Bodies[i]
		info.Segments[i] = SegmentInfo{
			FrameStart:  s.FrameStart,
			FrameEnd:    s.FrameEnd,
			BodyStart:   s.BodyStart,
			BodyEnd:     s.BodyEnd,
			BitsInFrame: body.BitsInFrame,
			BitWidths:   make([]int, len(body.BitWidths)),
		}
		for j, bw := range body.BitWidths {
			info.Segments[i].BitWidths[j] = int(bw)
		}
	}
	return info
}

type BoneFrameInfo struct {
	Bone        int        `json:"bone"`
	Rotation    mgl32.Vec3 `json:"rotation"`
	Quat        mgl32.Vec4 `json:"quat"`  // x, y, z, w
	Euler       mgl32.Vec3 `json:"euler"` // degrees
	Translation mgl32.Vec3 `json:"translation"`
	Scale       mgl32.Vec3 `json:"scale"`
}

func (ps *PoseSequence) MarshalFrame(frame int, rp RotationPolicy) ([]BoneFrameInfo, error) {
	if err := ps.CheckFrame(frame); err != nil {
		return nil, err
	}
	qs := ps.Quats(frame, rp)
	bones := make([]BoneFrameInfo, ps.BoneCount)
	for i, bt := range ps.Frame(frame) {
		bones[i] = BoneFrameInfo{
			Bone:        i,
			Rotation:    bt.Rotation,
			Quat:        qs[i].V.Vec4(qs[i].W),
			Euler:       utils.RadiansToDegreesV3(utils.QuatToEuler(qs[i])),
			Translation: bt.Translation,
			Scale:       bt.Scale,
		}
	}
	return bones, nil
}
