package animation

import (
	"fmt"

	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/internal/preprocess"
	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// Kind tells how an animation produces its per-tick state.
type Kind int

const (
	// KindPreprocessed looks poses up in a timeline computed at registration.
	KindPreprocessed Kind = iota
	// KindProcedural regenerates the target mesh every tick.
	KindProcedural
)

func (k Kind) String() string {
	switch k {
	case KindPreprocessed:
		return "preprocessed"
	case KindProcedural:
		return "procedural"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// State is the playback state of an animation.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Generator builds the mesh of a procedural animation at eased progress t in [0, 1].
type Generator func(t float64) *model.Mesh

// rest is a snapshot of a mesh used as the reference for posing and for restoring it.
type rest struct {
	Pose     math.Pose
	Vertices []math.Vec3
	Faces    []model.Face
}

func restOf(m *model.Mesh) rest {
	return rest{
		Pose:     m.CreationPose,
		Vertices: append([]math.Vec3(nil), m.Vertices...),
		Faces:    append([]model.Face(nil), m.Faces...),
	}
}

func (r *rest) translate(d math.Vec3) {
	r.Pose = r.Pose.Translate(d)
	for i := range r.Vertices {
		r.Vertices[i] = r.Vertices[i].Add(d)
	}
}

// Descriptor is the registry entry of one animation. Values handed out by the
// engine are snapshots; their slices must not be modified.
type Descriptor struct {
	Name   string
	Target string
	Kind   Kind

	Spans []turtle.Span
	Gen   Generator

	Duration float64
	FPS      float64
	Loop     turtle.LoopMode
	Easing   turtle.Easing

	State       State
	CurrentTime float64
	// CurrentSpan is -1 while no span has been entered.
	CurrentSpan int

	Frames      []math.Pose
	TotalFrames int
	SpanRanges  []preprocess.SpanRange

	// Base is captured from the target mesh at registration. HasBase is false for
	// the camera.
	BasePose     math.Pose
	BaseVertices []math.Vec3
	BaseFaces    []model.Face
	HasBase      bool

	// per tick
	effective float64
	frame     int
	eased     float64
	seeked    bool
}

func (d *Descriptor) base() rest {
	return rest{Pose: d.BasePose, Vertices: d.BaseVertices, Faces: d.BaseFaces}
}

// IsCamera reports whether the animation drives the camera.
func (d *Descriptor) IsCamera() bool {
	return d.Target == CameraTarget
}

// Progress returns the raw playback position as a fraction of the duration.
func (d *Descriptor) Progress() float64 {
	if d.Duration <= 0 {
		return 0
	}
	return d.CurrentTime / d.Duration
}

// FrameIndex returns the timeline frame used by the last tick.
func (d *Descriptor) FrameIndex() int {
	return d.frame
}

// spanAt returns the index of the span owning frame, or -1.
func (d *Descriptor) spanAt(frame int) int {
	for i, r := range d.SpanRanges {
		if r.Contains(frame) {
			return i
		}
	}
	return -1
}
