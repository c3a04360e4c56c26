package animation

import (
	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

type geometry struct {
	vertices []math.Vec3
	faces    []model.Face
}

type fakeRenderer struct {
	updates map[string]int
	last    map[string]geometry
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{updates: map[string]int{}, last: map[string]geometry{}}
}

func (r *fakeRenderer) UpdateGeometry(mesh string, vertices []math.Vec3, faces []model.Face) {
	r.updates[mesh]++
	r.last[mesh] = geometry{
		vertices: append([]math.Vec3(nil), vertices...),
		faces:    append([]model.Face(nil), faces...),
	}
}

type fakeCamera struct {
	pose     math.Pose
	applied  int
	disabled bool
	enabled  int
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{pose: math.DefaultPose()}
}

func (c *fakeCamera) Pose() math.Pose { return c.pose }

func (c *fakeCamera) ApplyPose(p math.Pose) {
	c.pose = p
	c.applied++
}

func (c *fakeCamera) DisableOrbitControls() { c.disabled = true }

func (c *fakeCamera) EnableOrbitControls() {
	c.disabled = false
	c.enabled++
}
