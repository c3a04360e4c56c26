// Package export bakes preprocessed timelines into binary glTF files.
//
// A timeline is written as a filmstrip: one child node per kept frame, each
// instancing the same mesh with the frame's translation and rotation.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// Filmstrip builds a glTF document for a preprocessed animation, keeping every
// stride-th frame. The last frame is always kept.
func Filmstrip(d animation.Descriptor, stride int) (*gltf.Document, error) {
	if d.Kind != animation.KindPreprocessed {
		return nil, errors.Errorf("animation %q is %v, only preprocessed timelines can be baked", d.Name, d.Kind)
	}
	if len(d.Frames) == 0 {
		return nil, errors.Errorf("animation %q has an empty timeline", d.Name)
	}
	if stride < 1 {
		stride = 1
	}

	doc := gltf.NewDocument()

	var mesh *uint32
	if d.HasBase && len(d.BaseVertices) > 0 {
		mesh = gltf.Index(writeMesh(doc, d.Name, localVertices(d.BaseVertices, d.BasePose), d.BaseFaces))
	}

	root := &gltf.Node{Name: d.Name}
	for _, i := range keptFrames(len(d.Frames), stride) {
		f := d.Frames[i]
		root.Children = append(root.Children, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        fmt.Sprintf("%s_f%04d", d.Name, i),
			Translation: f.Position.Float32(),
			Rotation:    math.QuatFromFrame(math.FrameOf(f)).Float32(),
			Mesh:        mesh,
		})
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
	doc.Nodes = append(doc.Nodes, root)
	return doc, nil
}

// WriteBinary encodes doc as GLB.
func WriteBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrap(encoder.Encode(doc), "failed to encode gltf")
}

// ToFile bakes d into dir/<name>.glb and returns the written path.
func ToFile(dir string, d animation.Descriptor, stride int) (string, error) {
	doc, err := Filmstrip(d, stride)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create export dir")
	}
	path := filepath.Join(dir, safeName(d.Name)+".glb")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to create export file")
	}
	defer f.Close()

	if err := WriteBinary(f, doc); err != nil {
		return "", errors.Wrapf(err, "export %q", d.Name)
	}
	return path, nil
}

func writeMesh(doc *gltf.Document, name string, vertices []math.Vec3, faces []model.Face) uint32 {
	positions := make([][3]float32, len(vertices))
	for i, v := range vertices {
		positions[i] = v.Float32()
	}
	indices := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		indices = append(indices, f[0], f[1], f[2])
	}

	positionAccessor := modeler.WritePosition(doc, positions)
	indicesAccessor := modeler.WriteIndices(doc, indices)
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices:    &indicesAccessor,
			Attributes: map[string]uint32{"POSITION": positionAccessor},
		}},
	})
	return uint32(len(doc.Meshes) - 1)
}

// localVertices expresses world vertices posed at base in the DefaultPose frame at
// the origin, which is what node transforms are applied to.
func localVertices(vertices []math.Vec3, base math.Pose) []math.Vec3 {
	b := math.NewBasisChange(base, math.DefaultPose())
	out := make([]math.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = b.Apply(v.Sub(base.Position))
	}
	return out
}

func keptFrames(n, stride int) []int {
	var idx []int
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}

func safeName(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
