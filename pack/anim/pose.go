package anim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoneTransform holds decoded values as stored. Rotation is the three stored
// components; see RotationPolicy for turning it into a quaternion.
type BoneTransform struct {
	Rotation    mgl32.Vec3
	Translation mgl32.Vec3
	Scale       mgl32.Vec3
}

func (bt *BoneTransform) group(g Group) *mgl32.Vec3 {
	switch g {
	case GROUP_ROTATION:
		return &bt.Rotation
	case GROUP_TRANSLATION:
		return &bt.Translation
	default:
		return &bt.Scale
	}
}

func (bt BoneTransform) Get(g Group) mgl32.Vec3 { return *bt.group(g) }

// PoseSequence stores frameCount*boneCount transforms, frame-major.
type PoseSequence struct {
	FrameCount int
	BoneCount  int
	Transforms []BoneTransform
}

func newPoseSequence(frames, bones int) *PoseSequence {
	return &PoseSequence{
		FrameCount: frames,
		BoneCount:  bones,
		Transforms: make([]BoneTransform, frames*bones),
	}
}

func (ps *PoseSequence) At(frame, bone int) BoneTransform {
	return ps.Transforms[frame*ps.BoneCount+bone]
}

// Frame returns the bone transforms of one frame. The slice aliases the sequence.
func (ps *PoseSequence) Frame(frame int) []BoneTransform {
	return ps.Transforms[frame*ps.BoneCount : (frame+1)*ps.BoneCount]
}

func (ps *PoseSequence) CheckFrame(frame int) error {
	if frame < 0 || frame >= ps.FrameCount {
		return fmt.Errorf("frame %d out of range [0, %d)", frame, ps.FrameCount)
	}
	return nil
}

// Equal reports bit-identical contents.
func (ps *PoseSequence) Equal(other *PoseSequence) bool {
	if ps.FrameCount != other.FrameCount || ps.BoneCount != other.BoneCount {
		return false
	}
	for i := range ps.Transforms {
		a, b := &ps.Transforms[i], &other.Transforms[i]
		for g := GROUP_ROTATION; g < GROUPS_COUNT; g++ {
			va, vb := a.group(g), b.group(g)
			for c := range va {
				if math.Float32bits(va[c]) != math.Float32bits(vb[c]) {
					return false
				}
			}
		}
	}
	return true
}
