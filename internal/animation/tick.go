package animation

import (
	"bytes"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/internal/turtle"
)

// Tick advances every playing animation by dt seconds and applies the result to
// meshes and the camera. It reports whether anything was advanced.
func (e *Engine) Tick(dt float64) bool {
	if dt < 0 || gomath.IsNaN(dt) {
		dt = 0
	}

	var active, finished []*Descriptor
	for _, name := range append([]string(nil), e.order...) {
		d, ok := e.anims[name]
		if !ok {
			continue
		}
		step := dt
		switch {
		case d.State == Playing:
		case d.State == Paused && d.seeked:
			step = 0
		default:
			continue
		}
		d.seeked = false
		if e.advance(d, step) {
			finished = append(finished, d)
		}
		active = append(active, d)
	}
	if len(active) == 0 {
		return false
	}

	for _, d := range active {
		if d.Kind == KindProcedural {
			e.runProcedural(d)
		}
	}
	e.applyTimelines(active)

	for _, d := range finished {
		e.complete(d)
	}
	return true
}

// advance moves d's clock, maps it through the loop mode and resolves the frame
// or procedural progress for this tick. It reports whether a non-looping
// animation reached its end.
func (e *Engine) advance(d *Descriptor, dt float64) bool {
	finished := false
	t := d.CurrentTime + dt
	dur := d.Duration

	switch d.Loop {
	case turtle.LoopForward:
		t = wrap(t, dur)
		d.effective = t
	case turtle.LoopReverse:
		t = wrap(t, dur)
		d.effective = dur - t
	case turtle.LoopBounce:
		t = wrap(t, 2*dur)
		if t >= dur {
			d.effective = 2*dur - t
		} else {
			d.effective = t
		}
	default:
		if t >= dur {
			t = dur
			finished = true
		}
		d.effective = t
	}
	d.CurrentTime = t

	switch d.Kind {
	case KindProcedural:
		d.eased = d.Easing.Apply(d.effective / dur)
	case KindPreprocessed:
		e.locate(d)
	}
	return finished
}

// locate picks the timeline frame for d's effective time and fires span
// boundary callbacks when the owning span changes.
func (e *Engine) locate(d *Descriptor) {
	if d.TotalFrames == 0 || len(d.Frames) == 0 {
		d.frame = 0
		return
	}
	raw := d.effective / d.Duration * float64(d.TotalFrames)
	frame := clampIndex(int(gomath.Floor(raw)), len(d.Frames))

	span := d.spanAt(frame)
	if span != d.CurrentSpan {
		e.crossSpan(d, span)
	}

	// Easing reshapes playback inside the span's own frame range. A linear span
	// takes the animation's easing.
	if span >= 0 && span < len(d.Spans) {
		ease := d.Spans[span].Easing
		if ease == turtle.EaseLinear {
			ease = d.Easing
		}
		if ease != turtle.EaseLinear {
			r := d.SpanRanges[span]
			u := (raw - float64(r.StartFrame)) / float64(r.FrameCount)
			local := int(gomath.Floor(ease.Apply(u) * float64(r.FrameCount)))
			frame = r.StartFrame + clampIndex(local, r.FrameCount)
		}
	}
	d.frame = frame
}

func (e *Engine) crossSpan(d *Descriptor, next int) {
	prev := d.CurrentSpan
	d.CurrentSpan = next
	if prev >= 0 && prev < len(d.Spans) {
		e.fire(d, prev, d.Spans[prev].OnExit, "exit")
	}
	if next >= 0 && next < len(d.Spans) {
		e.fire(d, next, d.Spans[next].OnEnter, "enter")
	}
}

// complete finishes a non-looping animation that reached its end this tick.
func (e *Engine) complete(d *Descriptor) {
	if d.State == Stopped {
		return
	}
	if s := d.CurrentSpan; s >= 0 && s < len(d.Spans) {
		e.fire(d, s, d.Spans[s].OnExit, "exit")
	}
	d.State = Stopped
	d.CurrentTime = 0
	d.CurrentSpan = -1

	if d.IsCamera() {
		e.releaseCamera()
	}
	e.log.Debug("animation finished", zap.String("animation", d.Name))
}

// fire runs a span callback. A panic is logged and swallowed; whatever the
// callback wrote is flushed either way.
func (e *Engine) fire(d *Descriptor, span int, cb turtle.Callback, hook string) {
	if cb == nil {
		return
	}
	var buf bytes.Buffer
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("span callback panicked",
				zap.String("animation", d.Name),
				zap.Int("span", span),
				zap.String("hook", hook),
				zap.Any("panic", r))
		}
		e.flush(&buf)
	}()
	cb(&turtle.CallbackContext{Animation: d.Name, Span: span, Out: &buf})
}

func (e *Engine) flush(buf *bytes.Buffer) {
	if buf.Len() == 0 || e.out == nil {
		return
	}
	if _, err := e.out.Write(buf.Bytes()); err != nil {
		e.log.Warn("callback output dropped", zap.Error(err))
	}
}

func (e *Engine) runProcedural(d *Descriptor) {
	m := e.generate(d)
	if m == nil {
		return
	}
	e.applyProceduralMesh(d.Target, m)
}

func (e *Engine) generate(d *Descriptor) (m *model.Mesh) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("generator panicked",
				zap.String("animation", d.Name),
				zap.Float64("t", d.eased),
				zap.Any("panic", r))
			m = nil
		}
	}()
	return d.Gen(d.eased)
}

func wrap(t, period float64) float64 {
	t = gomath.Mod(t, period)
	if t < 0 {
		t += period
	}
	return t
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
