package anim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSmallestThree(t *testing.T) {
	for _, test := range []struct {
		policy SmallestThree
		raw    mgl32.Vec3
		expect mgl32.Quat
	}{
		{SmallestThree{}, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent()},
		{SmallestThree{NegativeW: true}, mgl32.Vec3{0, 0, 0}, mgl32.Quat{W: -1}},
		{SmallestThree{}, mgl32.Vec3{0.6, 0, 0}, mgl32.Quat{W: 0.8, V: mgl32.Vec3{0.6, 0, 0}}},
		{SmallestThree{NegativeW: true}, mgl32.Vec3{0, 0.8, 0}, mgl32.Quat{W: -0.6, V: mgl32.Vec3{0, 0.8, 0}}},
		{SmallestThree{}, mgl32.Vec3{2, 0, 0}, mgl32.Quat{W: 0, V: mgl32.Vec3{1, 0, 0}}},
	} {
		q := test.policy.Quat(test.raw)
		if !q.ApproxEqualThreshold(test.expect, 1e-6) {
			t.Errorf("%+v.Quat(%v)=%v; expected %v", test.policy, test.raw, q, test.expect)
		}
		if l := q.Len(); math.Abs(float64(l)-1) > 1e-6 {
			t.Errorf("%+v.Quat(%v) length %v; expected unit", test.policy, test.raw, l)
		}
	}
}

func TestRotationPolicyByName(t *testing.T) {
	for name, expect := range map[string]RotationPolicy{
		"":         SmallestThree{},
		"positive": SmallestThree{},
		"negative": SmallestThree{NegativeW: true},
	} {
		rp, err := RotationPolicyByName(name)
		if err != nil || rp != expect {
			t.Errorf("RotationPolicyByName(%q)=%v, %v; expected %v", name, rp, err, expect)
		}
	}
	if _, err := RotationPolicyByName("up"); err == nil {
		t.Errorf("RotationPolicyByName(%q) returned no error", "up")
	}
}

func TestPoseQuats(t *testing.T) {
	ps, err := Decode(oneRotationChannel([]byte{0x00, 0x00, 0x00, 0xFF, 0x00, 0x00}).build())
	if err != nil {
		t.Fatal(err)
	}
	qs := ps.Quats(1, SmallestThree{})
	if len(qs) != 1 || !qs[0].ApproxEqualThreshold(mgl32.Quat{W: 0, V: mgl32.Vec3{1, 0, 0}}, 1e-6) {
		t.Errorf("Quats(1)=%v; expected [x axis half turn]", qs)
	}
	if qs := ps.Quats(0, SmallestThree{}); !qs[0].ApproxEqualThreshold(mgl32.QuatIdent(), 1e-6) {
		t.Errorf("Quats(0)=%v; expected identity", qs)
	}
}
