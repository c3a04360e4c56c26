// Package camera provides the orbit camera driven either by user input or by camera animations.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/turtlemotion/pkg/math"
)

// OrbitCamera orbits around a center point. While an animation drives it the
// camera holds the animated pose and ignores orbit input.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float64 // Distance from center
	RotationX float64 // Pitch (vertical angle, radians)
	RotationY float64 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64

	pose     math.Pose
	posed    bool
	disabled bool
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        20.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     500.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// orbitPosition returns the position implied by the spherical coordinates.
func (c *OrbitCamera) orbitPosition() math.Vec3 {
	x := c.Distance * gomath.Cos(c.RotationX) * gomath.Sin(c.RotationY)
	y := c.Distance * gomath.Sin(c.RotationX)
	z := c.Distance * gomath.Cos(c.RotationX) * gomath.Cos(c.RotationY)
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// Pose returns the current camera pose: the animated pose if one was applied,
// otherwise a pose looking at the center from the orbit position.
func (c *OrbitCamera) Pose() math.Pose {
	if c.posed {
		return c.pose
	}
	pos := c.orbitPosition()
	heading, up := math.Orthonormalize(c.Center.Sub(pos), math.UnitY)
	return math.Pose{Position: pos, Heading: heading, Up: up}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Pose().Position
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	p := c.Pose()
	eye := p.Position.Float32()
	target := p.Position.Add(p.Heading).Float32()
	up := p.Up.Float32()
	return mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(target), mgl32.Vec3(up))
}

// ApplyPose makes the camera hold p until orbit controls are re-enabled.
func (c *OrbitCamera) ApplyPose(p math.Pose) {
	c.pose = p
	c.posed = true
}

// DisableOrbitControls stops user input from moving the camera.
func (c *OrbitCamera) DisableOrbitControls() {
	c.disabled = true
}

// EnableOrbitControls hands the camera back to the user. The orbit parameters are
// rebuilt from the last animated pose so control resumes without a jump.
func (c *OrbitCamera) EnableOrbitControls() {
	c.disabled = false
	if !c.posed {
		return
	}
	c.Center = c.pose.Position.Add(c.pose.Heading.Scale(c.Distance))
	arm := c.pose.Position.Sub(c.Center)
	c.RotationX = gomath.Asin(clamp(arm.Y/c.Distance, -1, 1))
	c.RotationY = gomath.Atan2(arm.X, arm.Z)
	c.posed = false
}

// ControlsEnabled reports whether orbit input is accepted.
func (c *OrbitCamera) ControlsEnabled() bool {
	return !c.disabled
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	if c.disabled {
		return
	}
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	if c.disabled {
		return
	}
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float64) {
	if c.disabled {
		return
	}
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	dirX := gomath.Sin(c.RotationY)
	dirZ := gomath.Cos(c.RotationY)
	rightX := gomath.Cos(c.RotationY)
	rightZ := -gomath.Sin(c.RotationY)

	// Negate forward so W moves "into" the scene
	c.Center.X += (-dirX*forward + rightX*right) * speed
	c.Center.Z += (-dirZ*forward + rightZ*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds adjusts camera to view the given bounding box.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min)
	maxSize := gomath.Max(size.X, gomath.Max(size.Y, size.Z))
	c.Distance = clamp(maxSize*1.5, c.MinDistance, c.MaxDistance)

	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = 0.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
