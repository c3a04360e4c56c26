package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math.Abs(length-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatRotateMatchesRodrigues(t *testing.T) {
	axis := Vec3{1, 2, -1}.Normalize()
	q := QuatFromAxisAngle(axis, 0.8)
	v := Vec3{3, -1, 2}

	got := q.Rotate(v)
	want := RotateAroundAxis(v, axis, 0.8)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("Quat.Rotate = %v, Rodrigues = %v", got, want)
	}
}

func TestQuatFromFrame(t *testing.T) {
	if q := QuatFromFrame(FrameOf(DefaultPose())); math.Abs(math.Abs(q.W)-1) > 1e-9 {
		t.Errorf("default frame should map to identity, got %+v", q)
	}

	p := DefaultPose().Rotate(UnitY, math.Pi/2).Rotate(UnitZ, 0.3)
	q := QuatFromFrame(FrameOf(p))
	if got := q.Rotate(UnitZ); !got.ApproxEqual(p.Heading, 1e-9) {
		t.Errorf("rotated +Z = %v, want heading %v", got, p.Heading)
	}
	if got := q.Rotate(UnitY); !got.ApproxEqual(p.Up, 1e-9) {
		t.Errorf("rotated +Y = %v, want up %v", got, p.Up)
	}
}
