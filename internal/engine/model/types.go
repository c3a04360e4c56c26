// Package model provides the triangle mesh consumed and produced by the animation engine.
package model

import "github.com/Faultbox/turtlemotion/pkg/math"

// Face is a triangle as three vertex indices.
type Face [3]uint32

// Mesh holds vertex and face buffers plus the pose the mesh was built at.
// Anchors are named poses relative to CreationPose, written as if the mesh
// had been built at DefaultPose; AnchorAt places them in world space.
type Mesh struct {
	Vertices     []math.Vec3
	Faces        []Face
	CreationPose math.Pose
	Anchors      map[string]math.Pose
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
