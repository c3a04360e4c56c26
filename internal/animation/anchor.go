package animation

import (
	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// ResolveAnchor returns the world pose of a mesh anchor. When the mesh was posed
// by the last tick the anchor is carried from the animation's base pose to its
// current pose; otherwise the stored anchor is placed at the mesh's creation pose.
func (e *Engine) ResolveAnchor(mesh, anchor string) (math.Pose, bool) {
	m, ok := e.meshes[mesh]
	if !ok {
		return math.Pose{}, false
	}
	local, ok := m.Anchors[anchor]
	if !ok {
		return math.Pose{}, false
	}
	a, ok := e.applied[mesh]
	if !ok {
		return model.PlaceLocal(local, m.CreationPose), true
	}
	return carry(model.PlaceLocal(local, a.Base), a.Base, a.Current), true
}

// carry moves p rigidly with the motion that takes base onto current.
func carry(p, base, current math.Pose) math.Pose {
	b := math.NewBasisChange(base, current)
	return math.Pose{
		Position: b.ApplyAbout(p.Position, base.Position, current.Position.Sub(base.Position)),
		Heading:  b.Apply(p.Heading),
		Up:       b.Apply(p.Up),
	}
}
