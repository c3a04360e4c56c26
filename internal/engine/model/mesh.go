package model

import (
	gomath "math"

	"github.com/Faultbox/turtlemotion/pkg/math"
)

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	c := &Mesh{
		Vertices:     append([]math.Vec3(nil), m.Vertices...),
		Faces:        append([]Face(nil), m.Faces...),
		CreationPose: m.CreationPose,
	}
	if m.Anchors != nil {
		c.Anchors = make(map[string]math.Pose, len(m.Anchors))
		for k, v := range m.Anchors {
			c.Anchors[k] = v
		}
	}
	return c
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Centroid returns the average vertex position, or the creation position for an empty mesh.
func (m *Mesh) Centroid() math.Vec3 {
	if len(m.Vertices) == 0 {
		return m.CreationPose.Position
	}
	var sum math.Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(m.Vertices)))
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: math.Vec3{X: gomath.Inf(1), Y: gomath.Inf(1), Z: gomath.Inf(1)},
		Max: math.Vec3{X: gomath.Inf(-1), Y: gomath.Inf(-1), Z: gomath.Inf(-1)},
	}
	for _, v := range m.Vertices {
		b.Min = math.Vec3{X: gomath.Min(b.Min.X, v.X), Y: gomath.Min(b.Min.Y, v.Y), Z: gomath.Min(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: gomath.Max(b.Max.X, v.X), Y: gomath.Max(b.Max.Y, v.Y), Z: gomath.Max(b.Max.Z, v.Z)}
	}
	return b
}

// Translate moves every vertex and the creation pose by d.
func (m *Mesh) Translate(d math.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(d)
	}
	m.CreationPose = m.CreationPose.Translate(d)
}

// AnchorAt returns the named anchor placed on a mesh whose frame is at pose.
func (m *Mesh) AnchorAt(name string, pose math.Pose) (math.Pose, bool) {
	local, ok := m.Anchors[name]
	if !ok {
		return math.Pose{}, false
	}
	return PlaceLocal(local, pose), true
}

// Anchor returns the named anchor at the mesh's current creation pose.
func (m *Mesh) Anchor(name string) (math.Pose, bool) {
	return m.AnchorAt(name, m.CreationPose)
}

// PlaceLocal maps a pose written against DefaultPose onto the frame at pose.
func PlaceLocal(local, pose math.Pose) math.Pose {
	b := math.NewBasisChange(math.DefaultPose(), pose)
	return math.Pose{
		Position: pose.Position.Add(b.Apply(local.Position)),
		Heading:  b.Apply(local.Heading),
		Up:       b.Apply(local.Up),
	}
}

// Box builds an axis-aligned box of the given size centered at pose's position
// and oriented by pose's frame. It has 8 vertices and 12 triangles.
func Box(size math.Vec3, pose math.Pose) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	corners := []math.Vec3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}

	b := math.NewBasisChange(math.DefaultPose(), pose)
	verts := make([]math.Vec3, len(corners))
	for i, c := range corners {
		verts[i] = pose.Position.Add(b.Apply(c))
	}

	return &Mesh{
		Vertices: verts,
		Faces: []Face{
			{0, 2, 1}, {0, 3, 2}, // back
			{4, 5, 6}, {4, 6, 7}, // front
			{0, 1, 5}, {0, 5, 4}, // bottom
			{3, 7, 6}, {3, 6, 2}, // top
			{0, 4, 7}, {0, 7, 3}, // left
			{1, 2, 6}, {1, 6, 5}, // right
		},
		CreationPose: pose,
		Anchors:      map[string]math.Pose{},
	}
}

// Flatten returns interleaved float32 positions and uint32 indices for GPU upload.
func Flatten(vertices []math.Vec3, faces []Face) ([]float32, []uint32) {
	pos := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		pos = append(pos, float32(v.X), float32(v.Y), float32(v.Z))
	}
	idx := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		idx = append(idx, f[0], f[1], f[2])
	}
	return pos, idx
}
