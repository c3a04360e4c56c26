package animation

import (
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// applyMeshPose rotates the base vertices from the base frame onto pose's frame
// about the base position, moves them by the position delta and hands them to
// the renderer. The mesh's creation pose becomes pose.
func (e *Engine) applyMeshPose(name string, pose math.Pose, base rest) {
	m, ok := e.meshes[name]
	if !ok {
		e.log.Debug("pose for unknown mesh", zap.String("mesh", name))
		return
	}
	m.Vertices = PoseVertices(base.Vertices, base.Pose, pose)
	if len(m.Faces) != len(base.Faces) {
		m.Faces = append([]model.Face(nil), base.Faces...)
	}
	m.CreationPose = pose
	e.updateGeometry(name, m.Vertices, m.Faces)
}

// PoseVertices maps vertices given at base onto pose.
func PoseVertices(vertices []math.Vec3, base, pose math.Pose) []math.Vec3 {
	b := math.NewBasisChange(base, pose)
	offset := pose.Position.Sub(base.Position)
	out := make([]math.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = b.ApplyAbout(v, base.Position, offset)
	}
	return out
}

// applyProceduralMesh replaces the mesh geometry outright. Anchors are replaced
// only when the generated mesh carries some.
func (e *Engine) applyProceduralMesh(name string, gen *model.Mesh) {
	m, ok := e.meshes[name]
	if !ok {
		e.log.Debug("geometry for unknown mesh", zap.String("mesh", name))
		return
	}
	if len(gen.Faces) != len(m.Faces) {
		e.log.Debug("procedural topology changed",
			zap.String("mesh", name),
			zap.Int("faces", len(gen.Faces)),
			zap.Int("previous", len(m.Faces)))
	}

	c := gen.Clone()
	m.Vertices, m.Faces, m.CreationPose = c.Vertices, c.Faces, c.CreationPose
	if len(c.Anchors) > 0 {
		m.Anchors = c.Anchors
	}
	e.updateGeometry(name, m.Vertices, m.Faces)
}

func (e *Engine) applyCameraPose(p math.Pose) {
	if e.camera != nil {
		e.camera.ApplyPose(p)
	}
}
