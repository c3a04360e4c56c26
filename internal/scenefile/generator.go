package scenefile

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// generators builds procedural animations for a declared mesh.
var generators = map[string]func(MeshSpec) animation.Generator{
	"grow":  grow,
	"pulse": pulse,
}

// NewGenerator returns the named built-in generator bound to spec.
func NewGenerator(name string, spec MeshSpec) (animation.Generator, error) {
	mk, ok := generators[name]
	if !ok {
		return nil, errors.Errorf("unknown generator %q (have %v)", name, GeneratorNames())
	}
	return mk(spec), nil
}

// GeneratorNames lists the built-in generators.
func GeneratorNames() []string {
	names := make([]string, 0, len(generators))
	for n := range generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// grow raises the box from its base: height is size.y*t, the bottom face stays put.
func grow(spec MeshSpec) animation.Generator {
	pose := spec.Pose.Pose()
	full := spec.Size.Math()
	if full == math.Zero {
		full = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	bottom := pose.Position.Sub(pose.Up.Scale(full.Y / 2))
	return func(t float64) *model.Mesh {
		h := full.Y * t
		p := pose
		p.Position = bottom.Add(pose.Up.Scale(h / 2))
		return model.Box(math.Vec3{X: full.X, Y: h, Z: full.Z}, p)
	}
}

// pulse scales the box uniformly between half and full size.
func pulse(spec MeshSpec) animation.Generator {
	pose := spec.Pose.Pose()
	full := spec.Size.Math()
	if full == math.Zero {
		full = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return func(t float64) *model.Mesh {
		return model.Box(full.Scale(0.5+0.5*t), pose)
	}
}
