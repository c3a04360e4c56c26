package animation

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/preprocess"
	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// RegisterOption adjusts how a preprocessed animation is built.
type RegisterOption func(*registration)

type registration struct {
	initial    *math.Pose
	cameraMode preprocess.CameraMode
	pivot      math.Vec3
	worldUp    math.Vec3
}

// FromPose starts the turtle at p instead of the target's current pose.
func FromPose(p math.Pose) RegisterOption {
	return func(r *registration) {
		r.initial = &p
	}
}

// Orbiting maps the commands onto an orbit around pivot. Only meaningful for
// camera animations.
func Orbiting(pivot math.Vec3) RegisterOption {
	return func(r *registration) {
		r.cameraMode = preprocess.CameraOrbital
		r.pivot = pivot
	}
}

// WithWorldUp sets the horizontal orbit axis used by Orbiting.
func WithWorldUp(up math.Vec3) RegisterOption {
	return func(r *registration) {
		r.worldUp = up
	}
}

// RegisterAnimation preprocesses spans into a timeline of duration*fps frames
// and stores it under name. Mesh targets must already be registered; their
// current geometry becomes the animation's base.
func (e *Engine) RegisterAnimation(name, target string, spans []turtle.Span, duration, fps float64, loop turtle.LoopMode, easing turtle.Easing, opts ...RegisterOption) error {
	d, err := e.newDescriptor(name, target, duration, loop, easing)
	if err != nil {
		return err
	}
	if fps <= 0 {
		return errors.Wrapf(ErrInvalidTiming, "animation %q fps %v", name, fps)
	}

	var reg registration
	for _, opt := range opts {
		opt(&reg)
	}

	initial := d.BasePose
	if d.IsCamera() {
		initial = e.cameraPose()
	}
	if reg.initial != nil {
		initial = *reg.initial
	}
	if d.IsCamera() {
		d.BasePose = initial
	}

	d.Kind = KindPreprocessed
	d.FPS = fps
	d.Spans = make([]turtle.Span, len(spans))
	for i, s := range spans {
		s.Loop = loop
		d.Spans[i] = s
	}

	popts := preprocess.DefaultOptions()
	popts.AngularVelocity = e.angularVelocity
	popts.CameraMode = reg.cameraMode
	popts.Pivot = reg.pivot
	if reg.worldUp != math.Zero {
		popts.WorldUp = reg.worldUp
	}

	res := preprocess.Preprocess(d.Spans, duration, fps, initial, popts)
	d.Frames = res.Frames
	d.TotalFrames = res.TotalFrames
	d.SpanRanges = res.SpanRanges

	e.insert(d)
	e.log.Debug("animation registered",
		zap.String("animation", name),
		zap.String("target", target),
		zap.Int("spans", len(spans)),
		zap.Int("frames", d.TotalFrames),
		zap.Stringer("loop", loop))
	return nil
}

// RegisterProceduralAnimation stores an animation that rebuilds the target mesh
// from gen every tick.
func (e *Engine) RegisterProceduralAnimation(name, target string, gen Generator, duration float64, easing turtle.Easing, loop turtle.LoopMode) error {
	if gen == nil {
		return errors.Wrapf(ErrNoGenerator, "animation %q", name)
	}
	if target == CameraTarget {
		return errors.Errorf("procedural animation %q cannot target the camera", name)
	}
	d, err := e.newDescriptor(name, target, duration, loop, easing)
	if err != nil {
		return err
	}
	d.Kind = KindProcedural
	d.Gen = gen

	e.insert(d)
	e.log.Debug("procedural animation registered",
		zap.String("animation", name),
		zap.String("target", target),
		zap.Float64("duration", duration))
	return nil
}

func (e *Engine) newDescriptor(name, target string, duration float64, loop turtle.LoopMode, easing turtle.Easing) (*Descriptor, error) {
	if name == "" {
		return nil, errors.New("animation name is empty")
	}
	if _, ok := e.anims[name]; ok {
		return nil, errors.Wrapf(ErrDuplicateAnimation, "register %q", name)
	}
	if duration <= 0 {
		return nil, errors.Wrapf(ErrInvalidTiming, "animation %q duration %v", name, duration)
	}

	d := &Descriptor{
		Name:        name,
		Target:      target,
		Duration:    duration,
		Loop:        loop,
		Easing:      easing,
		State:       Stopped,
		CurrentSpan: -1,
	}
	if target != CameraTarget {
		m, ok := e.meshes[target]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownMesh, "animation %q target %q", name, target)
		}
		r := restOf(m)
		d.BasePose, d.BaseVertices, d.BaseFaces, d.HasBase = r.Pose, r.Vertices, r.Faces, true
	}
	return d, nil
}

func (e *Engine) insert(d *Descriptor) {
	e.anims[d.Name] = d
	e.order = append(e.order, d.Name)
}

// Unregister removes an animation. A playing mesh animation leaves the mesh where
// it is.
func (e *Engine) Unregister(name string) error {
	d, ok := e.anims[name]
	if !ok {
		return errors.Wrapf(ErrUnknownAnimation, "unregister %q", name)
	}
	wasActive := d.State != Stopped
	delete(e.anims, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if wasActive && d.IsCamera() {
		e.releaseCamera()
	}
	return nil
}

// Animation returns a snapshot of the named descriptor.
func (e *Engine) Animation(name string) (Descriptor, bool) {
	d, ok := e.anims[name]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Animations returns the registered animation names in sorted order.
func (e *Engine) Animations() []string {
	names := append([]string(nil), e.order...)
	sort.Strings(names)
	return names
}

// Play starts or resumes an animation. A stopped animation starts from time
// zero unless it was seeked while stopped.
func (e *Engine) Play(name string) error {
	d, ok := e.anims[name]
	if !ok {
		return errors.Wrapf(ErrUnknownAnimation, "play %q", name)
	}
	if d.State == Stopped && !d.seeked {
		d.CurrentTime = 0
		d.CurrentSpan = -1
	}
	d.State = Playing
	if d.IsCamera() && e.camera != nil {
		e.camera.DisableOrbitControls()
	}
	e.log.Debug("play", zap.String("animation", name))
	return nil
}

// Pause freezes a playing animation at its current time.
func (e *Engine) Pause(name string) error {
	d, ok := e.anims[name]
	if !ok {
		return errors.Wrapf(ErrUnknownAnimation, "pause %q", name)
	}
	if d.State != Playing {
		return nil
	}
	d.State = Paused
	if d.IsCamera() {
		e.releaseCamera()
	}
	return nil
}

// Stop cancels an animation, rewinds it and restores a mesh target to its base
// geometry. Linked followers without an animation of their own move back with it.
func (e *Engine) Stop(name string) error {
	d, ok := e.anims[name]
	if !ok {
		return errors.Wrapf(ErrUnknownAnimation, "stop %q", name)
	}
	d.State = Stopped
	d.CurrentTime = 0
	d.CurrentSpan = -1
	d.seeked = false

	if d.HasBase {
		if m, ok := e.meshes[d.Target]; ok {
			m.Vertices = append([]math.Vec3(nil), d.BaseVertices...)
			m.Faces = append(m.Faces[:0:0], d.BaseFaces...)
			m.CreationPose = d.BasePose
			e.updateGeometry(d.Target, m.Vertices, m.Faces)
		}
		delete(e.applied, d.Target)
		e.settleFollowers(d.Target)
	}
	if d.IsCamera() {
		e.releaseCamera()
	}
	e.log.Debug("stop", zap.String("animation", name))
	return nil
}

// Seek moves playback to fraction of the duration, clamped to [0, 1]. A paused
// animation is re-posed on the next tick without advancing.
func (e *Engine) Seek(name string, fraction float64) error {
	d, ok := e.anims[name]
	if !ok {
		return errors.Wrapf(ErrUnknownAnimation, "seek %q", name)
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	d.CurrentTime = fraction * d.Duration
	d.seeked = true
	return nil
}

// releaseCamera hands the camera back to the user unless another camera
// animation is still playing.
func (e *Engine) releaseCamera() {
	if e.camera == nil {
		return
	}
	for _, d := range e.anims {
		if d.IsCamera() && d.State == Playing {
			return
		}
	}
	e.camera.EnableOrbitControls()
}
