package scenefile

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/internal/logger"
	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// Built lists what a scene registered on an engine.
type Built struct {
	Animations []string
	// Autoplay holds the animations to start: the scene's play list, or every
	// animation when the list is empty.
	Autoplay []string
}

// Build adds the scene's meshes, animations and links to e. defaultFPS is used
// when neither the animation nor the scene sets a rate.
func (s *Scene) Build(e *animation.Engine, defaultFPS float64) (*Built, error) {
	log := logger.Named("scene")

	for _, m := range s.Meshes {
		if err := e.AddMesh(m.Name, m.Mesh()); err != nil {
			return nil, errors.Wrapf(err, "mesh %q", m.Name)
		}
	}

	fps := defaultFPS
	if s.FPS > 0 {
		fps = s.FPS
	}

	b := &Built{}
	for i := range s.Animations {
		a := &s.Animations[i]
		name, err := s.register(e, a, fps, log)
		if err != nil {
			return nil, errors.Wrapf(err, "animation #%d", i)
		}
		b.Animations = append(b.Animations, name)
	}

	for _, l := range s.Links {
		opts := animation.LinkOptions{At: l.At, From: l.From, InheritRotation: l.InheritRotation}
		if err := e.Link(l.Child, l.Parent, opts); err != nil {
			return nil, errors.Wrapf(err, "link %q -> %q", l.Child, l.Parent)
		}
	}

	b.Autoplay = s.Play
	if len(b.Autoplay) == 0 {
		b.Autoplay = b.Animations
	}
	log.Info("scene built",
		zap.Int("meshes", len(s.Meshes)),
		zap.Int("animations", len(b.Animations)),
		zap.Int("links", len(s.Links)))
	return b, nil
}

func (s *Scene) register(e *animation.Engine, a *AnimSpec, fps float64, log *zap.Logger) (string, error) {
	target := a.Target
	if target == "camera" {
		target = animation.CameraTarget
	}
	if a.Name == "" {
		a.Name = a.Target + "-" + uuid.NewString()[:8]
	}
	loop, err := turtle.ParseLoopMode(a.Loop)
	if err != nil {
		return "", errors.Wrapf(err, "animation %q", a.Name)
	}
	easing, err := turtle.ParseEasing(a.Easing)
	if err != nil {
		return "", errors.Wrapf(err, "animation %q", a.Name)
	}

	if a.Procedural != "" {
		spec, ok := s.mesh(a.Target)
		if !ok {
			return "", errors.Errorf("procedural animation %q targets undeclared mesh %q", a.Name, a.Target)
		}
		gen, err := NewGenerator(a.Procedural, spec)
		if err != nil {
			return "", errors.Wrapf(err, "animation %q", a.Name)
		}
		return a.Name, e.RegisterProceduralAnimation(a.Name, target, gen, a.Duration, easing, loop)
	}

	spans := make([]turtle.Span, len(a.Spans))
	for i, ss := range a.Spans {
		span, err := ss.span(a.Name, log)
		if err != nil {
			return "", errors.Wrapf(err, "animation %q span %d", a.Name, i)
		}
		spans[i] = span
	}

	if a.FPS > 0 {
		fps = a.FPS
	}
	var opts []animation.RegisterOption
	if a.Orbit != nil {
		opts = append(opts, animation.Orbiting(a.Orbit.Math()))
	}
	if target == animation.CameraTarget && s.Camera != nil {
		opts = append(opts, animation.FromPose(s.Camera.Pose()))
	}
	return a.Name, e.RegisterAnimation(a.Name, target, spans, a.Duration, fps, loop, easing, opts...)
}

func (ss SpanSpec) span(anim string, log *zap.Logger) (turtle.Span, error) {
	easing, err := turtle.ParseEasing(ss.Easing)
	if err != nil {
		return turtle.Span{}, err
	}
	span := turtle.Span{Weight: ss.Weight, Easing: easing}
	if span.Weight == 0 {
		span.Weight = 1
	}
	for _, c := range ss.Commands {
		for _, tag := range c.Unknown() {
			log.Warn("unknown command ignored", zap.String("animation", anim), zap.String("tag", tag))
		}
		span.Commands = append(span.Commands, c.Command)
	}
	if ss.Enter != "" {
		span.OnEnter = message(ss.Enter)
	}
	if ss.Exit != "" {
		span.OnExit = message(ss.Exit)
	}
	return span, nil
}

func message(text string) turtle.Callback {
	return func(ctx *turtle.CallbackContext) {
		ctx.Printf("[%s] %s\n", ctx.Animation, text)
	}
}

func (s *Scene) mesh(name string) (MeshSpec, bool) {
	for _, m := range s.Meshes {
		if m.Name == name {
			return m, true
		}
	}
	return MeshSpec{}, false
}

// Mesh builds the box described by m, with its anchors.
func (m MeshSpec) Mesh() *model.Mesh {
	size := m.Size.Math()
	if size == math.Zero {
		size = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	mesh := model.Box(size, m.Pose.Pose())
	for name, a := range m.Anchors {
		mesh.Anchors[name] = a.Pose()
	}
	return mesh
}

// CameraPose returns the scene's camera start pose, if any.
func (s *Scene) CameraPose() (math.Pose, bool) {
	if s.Camera == nil {
		return math.Pose{}, false
	}
	return s.Camera.Pose(), true
}
