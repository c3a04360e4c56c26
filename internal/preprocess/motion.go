package preprocess

import (
	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// Motion maps a command onto a pose. Apply returns the pose reached after the
// fraction t in [0, 1] of the command has been performed starting from p.
type Motion interface {
	Apply(p math.Pose, c turtle.Command, t float64) math.Pose
}

// TurtleMotion is the standard mesh mapping of the vocabulary.
type TurtleMotion struct{}

// Apply implements Motion.
func (TurtleMotion) Apply(p math.Pose, c turtle.Command, t float64) math.Pose {
	switch c.Kind {
	case turtle.KindForward:
		return p.Translate(p.Heading.Scale(c.Value * t))
	case turtle.KindUp:
		return p.Translate(p.Up.Scale(c.Value * t))
	case turtle.KindDown:
		return p.Translate(p.Up.Scale(-c.Value * t))
	case turtle.KindRight:
		return p.Translate(p.Right().Scale(c.Value * t))
	case turtle.KindLeft:
		return p.Translate(p.Right().Scale(-c.Value * t))
	case turtle.KindTurnH, turtle.KindTurnV, turtle.KindTurnR:
		return turnInPlace(p, c, t)
	case turtle.KindParallel:
		return applyParallel(TurtleMotion{}, p, c, t)
	case turtle.KindNone:
		return p
	}
	return p
}

// turnInPlace yaws, pitches or rolls p by c.Value*t degrees.
func turnInPlace(p math.Pose, c turtle.Command, t float64) math.Pose {
	angle := math.Radians(c.Value * t)
	switch c.Kind {
	case turtle.KindTurnH:
		return p.Rotate(p.Up, angle)
	case turtle.KindTurnV:
		return p.Rotate(p.Right(), angle)
	case turtle.KindTurnR:
		return p.Rotate(p.Heading, angle)
	}
	return p
}

// applyParallel applies every member with the same progress, in order.
func applyParallel(m Motion, p math.Pose, c turtle.Command, t float64) math.Pose {
	for _, child := range c.Children {
		p = m.Apply(p, child, t)
	}
	h, u := math.Orthonormalize(p.Heading, p.Up)
	p.Heading, p.Up = h, u
	return p
}

// OrbitalMotion reinterprets the vocabulary for a camera circling a pivot:
// rt/lt orbit horizontally about WorldUp, u/d orbit vertically about the camera's
// right axis, f dollies along the heading and th/tv/tr pan, tilt and roll in place.
// Orbit amounts are degrees.
type OrbitalMotion struct {
	Pivot   math.Vec3
	WorldUp math.Vec3
}

// Apply implements Motion.
func (o OrbitalMotion) Apply(p math.Pose, c turtle.Command, t float64) math.Pose {
	angle := math.Radians(c.Value * t)
	switch c.Kind {
	case turtle.KindRight:
		// Clockwise seen from above.
		return o.orbit(p, o.worldUp(), -angle)
	case turtle.KindLeft:
		return o.orbit(p, o.worldUp(), angle)
	case turtle.KindUp:
		return o.orbit(p, p.Right(), -angle)
	case turtle.KindDown:
		return o.orbit(p, p.Right(), angle)
	case turtle.KindForward:
		return p.Translate(p.Heading.Scale(c.Value * t))
	case turtle.KindTurnH, turtle.KindTurnV, turtle.KindTurnR:
		return turnInPlace(p, c, t)
	case turtle.KindParallel:
		return applyParallel(o, p, c, t)
	case turtle.KindNone:
		return p
	}
	return p
}

// orbit swings the position arm, heading and up together about axis through the pivot.
func (o OrbitalMotion) orbit(p math.Pose, axis math.Vec3, radians float64) math.Pose {
	arm := p.Position.Sub(o.Pivot)
	p.Position = o.Pivot.Add(math.RotateAroundAxis(arm, axis, radians))
	return p.Rotate(axis, radians)
}

func (o OrbitalMotion) worldUp() math.Vec3 {
	if o.WorldUp == math.Zero {
		return math.UnitY
	}
	return o.WorldUp.Normalize()
}
