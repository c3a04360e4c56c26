package viewer

import (
	gomath "math"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// sceneBounds returns the box around every mesh registered on e.
func sceneBounds(e *animation.Engine) (model.Bounds, bool) {
	b := model.Bounds{
		Min: math.Vec3{X: gomath.Inf(1), Y: gomath.Inf(1), Z: gomath.Inf(1)},
		Max: math.Vec3{X: gomath.Inf(-1), Y: gomath.Inf(-1), Z: gomath.Inf(-1)},
	}
	found := false
	for _, name := range e.Meshes() {
		m, _ := e.Mesh(name)
		if m.VertexCount() == 0 {
			continue
		}
		mb := m.Bounds()
		b.Min = math.Vec3{X: gomath.Min(b.Min.X, mb.Min.X), Y: gomath.Min(b.Min.Y, mb.Min.Y), Z: gomath.Min(b.Min.Z, mb.Min.Z)}
		b.Max = math.Vec3{X: gomath.Max(b.Max.X, mb.Max.X), Y: gomath.Max(b.Max.Y, mb.Max.Y), Z: gomath.Max(b.Max.Z, mb.Max.Z)}
		found = true
	}
	return b, found
}

// clampDT keeps a stalled frame from jumping animations forward.
func clampDT(dt, limit float64) float64 {
	if dt < 0 {
		return 0
	}
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}
