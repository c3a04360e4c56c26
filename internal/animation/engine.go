// Package animation plays turtle-command animations on meshes and the camera.
//
// An Engine owns the animation registry, the mesh registry with its anchors and
// the link graph. All of it is mutated by Tick and the registration calls; the
// engine is not safe for concurrent use and is meant to be driven from a single
// render loop.
package animation

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/internal/logger"
	"github.com/Faultbox/turtlemotion/internal/preprocess"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// CameraTarget is the target name that routes an animation to the camera.
const CameraTarget = "$camera"

// Renderer receives geometry produced by the engine. It decides between updating
// buffers in place and recreating them when the face count changes.
type Renderer interface {
	UpdateGeometry(mesh string, vertices []math.Vec3, faces []model.Face)
}

// CameraController is driven by camera animations.
type CameraController interface {
	ApplyPose(p math.Pose)
	DisableOrbitControls()
	EnableOrbitControls()
}

// PoseSource is implemented by cameras that can report their current pose. It is
// used as the starting pose of camera animations.
type PoseSource interface {
	Pose() math.Pose
}

// Option configures an Engine.
type Option func(*Engine)

// WithRenderer sets the geometry sink.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera driven by CameraTarget animations.
func WithCamera(c CameraController) Option {
	return func(e *Engine) {
		e.camera = c
	}
}

// WithOutput sets where text written by span callbacks is flushed.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithLogger replaces the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithAngularVelocity sets how many frames rotations get relative to linear moves.
// Zero makes every rotation instantaneous.
func WithAngularVelocity(av float64) Option {
	return func(e *Engine) {
		if av >= 0 {
			e.angularVelocity = av
		}
	}
}

// Engine is the animation registry and scheduler.
type Engine struct {
	renderer Renderer
	camera   CameraController
	out      io.Writer
	log      *zap.Logger

	angularVelocity float64

	anims  map[string]*Descriptor
	order  []string
	meshes map[string]*model.Mesh
	links  map[string]*LinkEntry

	// applied holds the base and current pose of every target posed by the last tick.
	applied map[string]applied
}

type applied struct {
	Base    math.Pose
	Current math.Pose
}

// New creates an engine with empty registries.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:             logger.Named("animation"),
		angularVelocity: preprocess.DefaultOptions().AngularVelocity,
		anims:           make(map[string]*Descriptor),
		meshes:          make(map[string]*model.Mesh),
		links:           make(map[string]*LinkEntry),
		applied:         make(map[string]applied),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddMesh registers or replaces a mesh and pushes its geometry to the renderer.
// The engine keeps its own copy.
func (e *Engine) AddMesh(name string, m *model.Mesh) error {
	if name == "" || name == CameraTarget {
		return errors.Errorf("invalid mesh name %q", name)
	}
	if m == nil {
		return errors.Errorf("mesh %q is nil", name)
	}
	c := m.Clone()
	if c.Anchors == nil {
		c.Anchors = map[string]math.Pose{}
	}
	e.meshes[name] = c
	e.updateGeometry(name, c.Vertices, c.Faces)
	e.log.Debug("mesh added",
		zap.String("mesh", name),
		zap.Int("vertices", c.VertexCount()),
		zap.Int("anchors", len(c.Anchors)))
	return nil
}

// Mesh returns the live mesh registered under name.
func (e *Engine) Mesh(name string) (*model.Mesh, bool) {
	m, ok := e.meshes[name]
	return m, ok
}

// Meshes returns the registered mesh names in sorted order.
func (e *Engine) Meshes() []string {
	names := make([]string, 0, len(e.meshes))
	for name := range e.meshes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoveMesh drops a mesh together with the animations targeting it and every
// link it takes part in.
func (e *Engine) RemoveMesh(name string) error {
	if _, ok := e.meshes[name]; !ok {
		return errors.Wrapf(ErrUnknownMesh, "remove %q", name)
	}
	for _, anim := range append([]string(nil), e.order...) {
		if e.anims[anim].Target == name {
			_ = e.Unregister(anim)
		}
	}
	for child, l := range e.links {
		if child == name || l.Parent == name {
			delete(e.links, child)
		}
	}
	delete(e.meshes, name)
	delete(e.applied, name)
	return nil
}

func (e *Engine) updateGeometry(name string, vertices []math.Vec3, faces []model.Face) {
	if e.renderer != nil {
		e.renderer.UpdateGeometry(name, vertices, faces)
	}
}

func (e *Engine) cameraPose() math.Pose {
	if src, ok := e.camera.(PoseSource); ok {
		return src.Pose()
	}
	return math.DefaultPose()
}
