package math

// Frame is the orthonormal basis of a pose: heading, up and the derived right vector.
type Frame struct {
	Heading Vec3
	Up      Vec3
	Right   Vec3
}

// FrameOf returns the basis of p.
func FrameOf(p Pose) Frame {
	return Frame{Heading: p.Heading, Up: p.Up, Right: p.Right()}
}

// BasisChange maps vectors expressed against one frame onto another frame.
// A vector is projected onto the source axes and re-synthesized from the matching
// target axes, which is an exact rotation when both frames are orthonormal.
type BasisChange struct {
	from Frame
	to   Frame
}

// NewBasisChange returns the rotation taking from's frame onto to's frame.
func NewBasisChange(from, to Pose) BasisChange {
	return BasisChange{from: FrameOf(from), to: FrameOf(to)}
}

// Apply rotates v.
func (b BasisChange) Apply(v Vec3) Vec3 {
	h := v.Dot(b.from.Heading)
	u := v.Dot(b.from.Up)
	r := v.Dot(b.from.Right)
	return b.to.Heading.Scale(h).
		Add(b.to.Up.Scale(u)).
		Add(b.to.Right.Scale(r))
}

// ApplyPose rotates the heading and up of p. The position is left untouched.
func (b BasisChange) ApplyPose(p Pose) Pose {
	p.Heading = b.Apply(p.Heading)
	p.Up = b.Apply(p.Up)
	return p
}

// ApplyAbout rotates point about pivot and then translates it by offset.
func (b BasisChange) ApplyAbout(point, pivot, offset Vec3) Vec3 {
	return pivot.Add(b.Apply(point.Sub(pivot))).Add(offset)
}
