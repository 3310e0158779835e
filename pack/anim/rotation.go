package anim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RotationPolicy rebuilds a unit quaternion from the three stored rotation components.
// The decoder never applies one; callers pick the convention.
type RotationPolicy interface {
	Quat(raw mgl32.Vec3) mgl32.Quat
}

// SmallestThree treats raw as x, y, z and derives w from the unit length constraint.
type SmallestThree struct {
	NegativeW bool
}

func (st SmallestThree) Quat(raw mgl32.Vec3) mgl32.Quat {
	w2 := 1 - float64(raw.Dot(raw))
	if w2 < 0 {
		// Rounding pushed the stored part past unit length
		return mgl32.Quat{W: 0, V: raw.Normalize()}
	}
	w := float32(math.Sqrt(w2))
	if st.NegativeW {
		w = -w
	}
	return mgl32.Quat{W: w, V: raw}
}

func RotationPolicyByName(name string) (RotationPolicy, error) {
	switch name {
	case "", "positive":
		return SmallestThree{}, nil
	case "negative":
		return SmallestThree{NegativeW: true}, nil
	}
	return nil, fmt.Errorf("unknown rotation sign %q", name)
}

// Quats applies rp to the rotation of every bone of a frame.
func (ps *PoseSequence) Quats(frame int, rp RotationPolicy) []mgl32.Quat {
	bones := ps.Frame(frame)
	qs := make([]mgl32.Quat, len(bones))
	for i := range bones {
		qs[i] = rp.Quat(bones[i].Rotation)
	}
	return qs
}
