package math

import "math"

// Pose is the turtle's instantaneous orthonormal frame: a position plus unit heading and up.
// Poses are values and are never mutated in place.
type Pose struct {
	Position Vec3
	Heading  Vec3
	Up       Vec3
}

// DefaultPose is the pose at the origin looking down +Z with +Y up.
func DefaultPose() Pose {
	return Pose{Heading: UnitZ, Up: UnitY}
}

// Right returns normalize(heading x up).
func (p Pose) Right() Vec3 {
	return p.Heading.Cross(p.Up).Normalize()
}

// Translate returns the pose moved by d.
func (p Pose) Translate(d Vec3) Pose {
	p.Position = p.Position.Add(d)
	return p
}

// Rotate returns the pose with heading and up rotated about a unit axis.
// The position is unchanged.
func (p Pose) Rotate(axis Vec3, radians float64) Pose {
	p.Heading = RotateAroundAxis(p.Heading, axis, radians)
	p.Up = RotateAroundAxis(p.Up, axis, radians)
	return p
}

// IsOrthonormal reports whether heading and up are unit length and perpendicular within tol.
func (p Pose) IsOrthonormal(tol float64) bool {
	return math.Abs(p.Heading.Length()-1) <= tol &&
		math.Abs(p.Up.Length()-1) <= tol &&
		math.Abs(p.Heading.Dot(p.Up)) <= tol
}

// ApproxEqual compares all three vectors component-wise within eps.
func (p Pose) ApproxEqual(other Pose, eps float64) bool {
	return p.Position.ApproxEqual(other.Position, eps) &&
		p.Heading.ApproxEqual(other.Heading, eps) &&
		p.Up.ApproxEqual(other.Up, eps)
}

// Orthonormalize runs Gram-Schmidt on a heading/up pair: the heading is normalized, and up is
// projected onto the plane orthogonal to it and normalized. A degenerate up (parallel to the
// heading) is replaced by any vector perpendicular to the heading.
func Orthonormalize(heading, up Vec3) (Vec3, Vec3) {
	h := heading.Normalize()
	u := up.Sub(h.Scale(up.Dot(h)))
	if u.Length() < 1e-9 {
		u = anyPerpendicular(h)
	}
	return h, u.Normalize()
}

func anyPerpendicular(v Vec3) Vec3 {
	if math.Abs(v.Y) < 0.9 {
		return UnitY.Sub(v.Scale(v.Y))
	}
	return UnitX.Sub(v.Scale(v.X))
}
