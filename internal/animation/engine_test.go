package animation

import (
	"bytes"
	gomath "math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/Faultbox/turtlemotion/internal/engine/model"
	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

const eps = 1e-9

func newTestEngine(t *testing.T) (*Engine, *fakeRenderer, *fakeCamera, *bytes.Buffer) {
	t.Helper()
	r := newFakeRenderer()
	c := newFakeCamera()
	out := &bytes.Buffer{}
	return New(WithRenderer(r), WithCamera(c), WithOutput(out)), r, c, out
}

func addBox(t *testing.T, e *Engine, name string, pose math.Pose) {
	t.Helper()
	if err := e.AddMesh(name, model.Box(math.Vec3{X: 1, Y: 1, Z: 1}, pose)); err != nil {
		t.Fatalf("AddMesh(%s): %v", name, err)
	}
}

func at(x, y, z float64) math.Pose {
	p := math.DefaultPose()
	p.Position = math.Vec3{X: x, Y: y, Z: z}
	return p
}

func forward(dist float64) []turtle.Span {
	return []turtle.Span{turtle.NewSpan(turtle.F(dist))}
}

func TestRegisterErrors(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unknown target", e.RegisterAnimation("a", "nope", forward(1), 1, 10, turtle.LoopNone, turtle.EaseLinear), ErrUnknownMesh},
		{"zero duration", e.RegisterAnimation("b", "box", forward(1), 0, 10, turtle.LoopNone, turtle.EaseLinear), ErrInvalidTiming},
		{"zero fps", e.RegisterAnimation("c", "box", forward(1), 1, 0, turtle.LoopNone, turtle.EaseLinear), ErrInvalidTiming},
		{"nil generator", e.RegisterProceduralAnimation("d", "box", nil, 1, turtle.EaseLinear, turtle.LoopNone), ErrNoGenerator},
		{"unknown play", e.Play("missing"), ErrUnknownAnimation},
		{"unknown seek", e.Seek("missing", 0.5), ErrUnknownAnimation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("got %v, want %v", tt.err, tt.want)
			}
		})
	}

	if err := e.RegisterAnimation("ok", "box", forward(1), 1, 10, turtle.LoopNone, turtle.EaseLinear); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := e.RegisterAnimation("ok", "box", forward(1), 1, 10, turtle.LoopNone, turtle.EaseLinear)
	if !errors.Is(err, ErrDuplicateAnimation) {
		t.Errorf("duplicate register = %v", err)
	}
}

func TestRegisterStoresTimeline(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())

	spans := []turtle.Span{turtle.NewSpan(turtle.F(4)), turtle.NewSpan(turtle.TH(90))}
	if err := e.RegisterAnimation("walk", "box", spans, 2, 10, turtle.LoopBounce, turtle.EaseLinear); err != nil {
		t.Fatal(err)
	}
	d, ok := e.Animation("walk")
	if !ok {
		t.Fatal("animation not found")
	}
	if d.TotalFrames != 20 || len(d.Frames) != 20 || len(d.SpanRanges) != 2 {
		t.Fatalf("timeline shape: %s", spew.Sdump(d.TotalFrames, len(d.Frames), d.SpanRanges))
	}
	if d.State != Stopped || d.CurrentSpan != -1 || !d.HasBase {
		t.Errorf("fresh descriptor state = %v span %d base %v", d.State, d.CurrentSpan, d.HasBase)
	}
	for i, s := range d.Spans {
		if s.Loop != turtle.LoopBounce {
			t.Errorf("span %d loop = %v, want echoed bounce", i, s.Loop)
		}
	}
	if got := e.Animations(); len(got) != 1 || got[0] != "walk" {
		t.Errorf("Animations() = %v", got)
	}
}

func TestForwardLoopRoundTrip(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())
	if err := e.RegisterAnimation("loop", "box", forward(10), 2, 10, turtle.LoopForward, turtle.EaseLinear); err != nil {
		t.Fatal(err)
	}
	_ = e.Play("loop")

	e.Tick(0)
	start, _ := e.Animation("loop")

	if !e.Tick(2) {
		t.Fatal("Tick should report progress")
	}
	end, _ := e.Animation("loop")
	if end.CurrentTime != 0 {
		t.Errorf("CurrentTime after one period = %v, want 0", end.CurrentTime)
	}
	if end.FrameIndex() != start.FrameIndex() {
		t.Errorf("frame after one period = %d, want %d", end.FrameIndex(), start.FrameIndex())
	}
	if end.State != Playing {
		t.Errorf("looping animation state = %v", end.State)
	}
}

func TestReverseLoopStartsAtEnd(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())
	_ = e.RegisterAnimation("rev", "box", forward(10), 2, 10, turtle.LoopReverse, turtle.EaseLinear)
	_ = e.Play("rev")

	e.Tick(0)
	d, _ := e.Animation("rev")
	if d.FrameIndex() != d.TotalFrames-1 {
		t.Errorf("reverse frame at t=0 is %d, want last", d.FrameIndex())
	}
	m, _ := e.Mesh("box")
	if gomath.Abs(m.CreationPose.Position.Z-10) > eps {
		t.Errorf("reverse pose at t=0 = %v, want end of path", m.CreationPose.Position)
	}
}

func TestBounceSymmetry(t *testing.T) {
	const duration = 2.0
	poseAt := func(t *testing.T, elapsed float64) math.Pose {
		e, _, _, _ := newTestEngine(t)
		addBox(t, e, "box", math.DefaultPose())
		spans := []turtle.Span{turtle.NewSpan(turtle.F(6), turtle.TH(120), turtle.U(2))}
		if err := e.RegisterAnimation("b", "box", spans, duration, 10, turtle.LoopBounce, turtle.EaseLinear); err != nil {
			t.Fatal(err)
		}
		_ = e.Play("b")
		e.Tick(elapsed)
		m, _ := e.Mesh("box")
		return m.CreationPose
	}

	for _, x := range []float64{0.05, 0.33, 1.27, 1.91} {
		a := poseAt(t, x)
		b := poseAt(t, 2*duration-x)
		if !a.ApproxEqual(b, eps) {
			t.Errorf("bounce pose at %v differs from pose at %v:\n%s", x, 2*duration-x, spew.Sdump(a, b))
		}
	}
}

func TestNonLoopingCompletion(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())

	var enters, exits int
	span := turtle.NewSpan(turtle.F(10))
	span.OnEnter = func(*turtle.CallbackContext) { enters++ }
	span.OnExit = func(*turtle.CallbackContext) { exits++ }
	_ = e.RegisterAnimation("once", "box", []turtle.Span{span}, 1, 4, turtle.LoopNone, turtle.EaseLinear)
	_ = e.Play("once")

	e.Tick(0.5)
	if d, _ := e.Animation("once"); d.State != Playing || d.CurrentSpan != 0 {
		t.Fatalf("mid-run state = %v span %d", d.State, d.CurrentSpan)
	}
	e.Tick(0.6)

	d, _ := e.Animation("once")
	if d.State != Stopped || d.CurrentTime != 0 || d.CurrentSpan != -1 {
		t.Errorf("after completion: state %v time %v span %d", d.State, d.CurrentTime, d.CurrentSpan)
	}
	if enters != 1 || exits != 1 {
		t.Errorf("callbacks: %d enters, %d exits; want 1 and 1", enters, exits)
	}
	m, _ := e.Mesh("box")
	if !m.CreationPose.Position.ApproxEqual(math.Vec3{Z: 10}, eps) {
		t.Errorf("mesh should rest on the final frame, got %v", m.CreationPose.Position)
	}
	if e.Tick(1) {
		t.Error("Tick with nothing playing should report no change")
	}
}

func TestSpanCallbacksFlushOutput(t *testing.T) {
	e, _, _, out := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())

	spans := []turtle.Span{turtle.NewSpan(turtle.F(1)), turtle.NewSpan(turtle.F(1))}
	for i := range spans {
		spans[i].OnEnter = func(ctx *turtle.CallbackContext) { ctx.Printf("enter %d\n", ctx.Span) }
		spans[i].OnExit = func(ctx *turtle.CallbackContext) { ctx.Printf("exit %d\n", ctx.Span) }
	}
	_ = e.RegisterAnimation("two", "box", spans, 2, 2, turtle.LoopForward, turtle.EaseLinear)
	_ = e.Play("two")

	e.Tick(0)
	e.Tick(1)
	if got, want := out.String(), "enter 0\nexit 0\nenter 1\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	// Wrapping back to the start crosses from the last span to the first.
	out.Reset()
	e.Tick(1)
	if got, want := out.String(), "exit 1\nenter 0\n"; got != want {
		t.Errorf("wrap output = %q, want %q", got, want)
	}
}

func TestCallbackPanicDoesNotStopTick(t *testing.T) {
	e, _, _, out := newTestEngine(t)
	addBox(t, e, "a", math.DefaultPose())
	addBox(t, e, "b", at(5, 0, 0))

	bad := turtle.NewSpan(turtle.F(1))
	bad.OnEnter = func(ctx *turtle.CallbackContext) {
		ctx.Printf("before")
		panic("boom")
	}
	_ = e.RegisterAnimation("bad", "a", []turtle.Span{bad}, 1, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.RegisterAnimation("good", "b", forward(2), 1, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.Play("bad")
	_ = e.Play("good")

	if !e.Tick(0.5) {
		t.Fatal("Tick should report progress")
	}
	if !strings.Contains(out.String(), "before") {
		t.Errorf("output written before the panic was lost: %q", out.String())
	}
	b, _ := e.Mesh("b")
	if b.CreationPose.Position.Z <= 0 {
		t.Errorf("second animation did not advance: %v", b.CreationPose.Position)
	}
	a, _ := e.Mesh("a")
	if a.CreationPose.Position.Z <= 0 {
		t.Errorf("panicking animation should still move: %v", a.CreationPose.Position)
	}
}

func TestStopRestoresBase(t *testing.T) {
	e, r, _, _ := newTestEngine(t)
	addBox(t, e, "box", at(1, 2, 3))
	base, _ := e.Mesh("box")
	baseVerts := append([]math.Vec3(nil), base.Vertices...)

	spans := []turtle.Span{turtle.NewSpan(turtle.F(3), turtle.TR(45))}
	_ = e.RegisterAnimation("m", "box", spans, 1, 10, turtle.LoopForward, turtle.EaseLinear)
	_ = e.Play("m")
	e.Tick(0.55)

	if err := e.Stop("m"); err != nil {
		t.Fatal(err)
	}
	m, _ := e.Mesh("box")
	for i, v := range m.Vertices {
		if !v.ApproxEqual(baseVerts[i], eps) {
			t.Fatalf("vertex %d = %v, want base %v", i, v, baseVerts[i])
		}
	}
	if got := r.last["box"].vertices; !got[0].ApproxEqual(baseVerts[0], eps) {
		t.Errorf("renderer not given restored geometry: %v", got[0])
	}
	if d, _ := e.Animation("m"); d.State != Stopped || d.CurrentTime != 0 {
		t.Errorf("after stop: %v at %v", d.State, d.CurrentTime)
	}
}

func TestIdempotentRepose(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	pose := math.Pose{Position: math.Vec3{X: 2, Y: -1, Z: 4}, Heading: math.UnitX, Up: math.UnitY}
	addBox(t, e, "box", pose)
	_ = e.RegisterAnimation("m", "box", forward(1), 1, 10, turtle.LoopNone, turtle.EaseLinear)

	d := e.anims["m"]
	e.applyMeshPose("box", d.BasePose, d.base())

	m, _ := e.Mesh("box")
	for i, v := range m.Vertices {
		if !v.ApproxEqual(d.BaseVertices[i], 1e-12) {
			t.Errorf("vertex %d moved: %v -> %v", i, d.BaseVertices[i], v)
		}
	}
}

func TestPauseHoldsTime(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())
	_ = e.RegisterAnimation("m", "box", forward(10), 2, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.Play("m")
	e.Tick(0.5)
	_ = e.Pause("m")

	if e.Tick(0.5) {
		t.Error("paused animation should not advance")
	}
	if d, _ := e.Animation("m"); d.CurrentTime != 0.5 || d.State != Paused {
		t.Errorf("paused at %v state %v", d.CurrentTime, d.State)
	}

	_ = e.Play("m")
	e.Tick(0.5)
	if d, _ := e.Animation("m"); d.CurrentTime != 1 {
		t.Errorf("resume should continue from pause point, time %v", d.CurrentTime)
	}
}

func TestSeekPaused(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())
	_ = e.RegisterAnimation("m", "box", forward(10), 2, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.Play("m")
	e.Tick(0)
	_ = e.Pause("m")

	_ = e.Seek("m", 0.5)
	if !e.Tick(0.1) {
		t.Fatal("seek on a paused animation should re-pose on the next tick")
	}
	d, _ := e.Animation("m")
	if d.CurrentTime != 1 || d.FrameIndex() != 10 || d.State != Paused {
		t.Errorf("after seek: time %v frame %d state %v", d.CurrentTime, d.FrameIndex(), d.State)
	}
	m, _ := e.Mesh("box")
	if !m.CreationPose.ApproxEqual(d.Frames[10], eps) {
		t.Errorf("mesh pose %v, want frame 10 %v", m.CreationPose, d.Frames[10])
	}
	if e.Tick(0.1) {
		t.Error("seek should only re-pose once")
	}
}

func TestCompositionCancels(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())

	_ = e.RegisterAnimation("left", "box", []turtle.Span{turtle.NewSpan(turtle.TH(30))}, 1, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.RegisterAnimation("right", "box", []turtle.Span{turtle.NewSpan(turtle.TH(-30))}, 1, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.Play("left")
	_ = e.Play("right")

	for _, dt := range []float64{0.25, 0.25, 0.3} {
		e.Tick(dt)
		m, _ := e.Mesh("box")
		p := m.CreationPose
		if !p.Heading.ApproxEqual(math.UnitZ, 1e-9) {
			t.Errorf("composed heading = %v, want base +Z", p.Heading)
		}
		if !p.IsOrthonormal(1e-9) {
			t.Errorf("composed pose not orthonormal: %+v", p)
		}
	}
}

func TestCompositionSumsTranslations(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())
	_ = e.RegisterAnimation("fwd", "box", forward(4), 1, 4, turtle.LoopNone, turtle.EaseLinear)
	_ = e.RegisterAnimation("up", "box", []turtle.Span{turtle.NewSpan(turtle.U(2))}, 1, 4, turtle.LoopNone, turtle.EaseLinear)
	_ = e.Play("fwd")
	_ = e.Play("up")

	e.Tick(1)
	m, _ := e.Mesh("box")
	if !m.CreationPose.Position.ApproxEqual(math.Vec3{Y: 2, Z: 4}, eps) {
		t.Errorf("composed position = %v, want (0,2,4)", m.CreationPose.Position)
	}
}

func TestCameraOrbitControls(t *testing.T) {
	e, _, cam, _ := newTestEngine(t)
	_ = e.RegisterAnimation("short", CameraTarget, forward(5), 1, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.RegisterAnimation("long", CameraTarget, []turtle.Span{turtle.NewSpan(turtle.TH(10))}, 2, 10, turtle.LoopNone, turtle.EaseLinear)

	_ = e.Play("short")
	_ = e.Play("long")
	if !cam.disabled {
		t.Fatal("playing a camera animation should disable orbit controls")
	}

	e.Tick(1)
	if cam.applied == 0 {
		t.Fatal("camera pose not applied")
	}
	if !cam.disabled || cam.enabled != 0 {
		t.Error("controls re-enabled while another camera animation plays")
	}

	e.Tick(1)
	if cam.disabled || cam.enabled != 1 {
		t.Errorf("controls not handed back: disabled=%v enabled=%d", cam.disabled, cam.enabled)
	}
}

func TestOrbitalCameraAnimation(t *testing.T) {
	e, _, cam, _ := newTestEngine(t)
	cam.pose = math.Pose{Position: math.Vec3{Z: -10}, Heading: math.UnitZ, Up: math.UnitY}

	spans := []turtle.Span{turtle.NewSpan(turtle.LT(180))}
	if err := e.RegisterAnimation("orbit", CameraTarget, spans, 1, 10, turtle.LoopNone, turtle.EaseLinear, Orbiting(math.Zero)); err != nil {
		t.Fatal(err)
	}
	_ = e.Play("orbit")
	e.Tick(1)

	if !cam.pose.Position.ApproxEqual(math.Vec3{Z: 10}, 1e-9) {
		t.Errorf("half orbit ended at %v, want (0,0,10)", cam.pose.Position)
	}
	if !cam.pose.Heading.ApproxEqual(math.Vec3{Z: -1}, 1e-9) {
		t.Errorf("camera should still face the pivot, heading %v", cam.pose.Heading)
	}
}

func TestProceduralAnimation(t *testing.T) {
	e, r, _, _ := newTestEngine(t)
	addBox(t, e, "grow", math.DefaultPose())

	var seen []float64
	gen := func(t float64) *model.Mesh {
		seen = append(seen, t)
		return model.Box(math.Vec3{X: 1, Y: 1 + t, Z: 1}, math.DefaultPose())
	}
	if err := e.RegisterProceduralAnimation("g", "grow", gen, 2, turtle.EaseLinear, turtle.LoopNone); err != nil {
		t.Fatal(err)
	}
	_ = e.Play("g")
	e.Tick(1)

	if len(seen) != 1 || gomath.Abs(seen[0]-0.5) > eps {
		t.Fatalf("generator progress = %v, want [0.5]", seen)
	}
	if b := r.last["grow"]; len(b.faces) != 12 {
		t.Errorf("renderer faces = %d", len(b.faces))
	}
	m, _ := e.Mesh("grow")
	if size := m.Bounds().Size(); gomath.Abs(size.Y-1.5) > eps {
		t.Errorf("generated height = %v, want 1.5", size.Y)
	}
}

func TestProceduralTopologyChange(t *testing.T) {
	e, r, _, _ := newTestEngine(t)
	addBox(t, e, "shape", math.DefaultPose())

	gen := func(t float64) *model.Mesh {
		m := model.Box(math.Vec3{X: 1, Y: 1, Z: 1}, math.DefaultPose())
		if t > 0.5 {
			m.Faces = m.Faces[:6]
		}
		return m
	}
	_ = e.RegisterProceduralAnimation("p", "shape", gen, 1, turtle.EaseLinear, turtle.LoopNone)
	_ = e.Play("p")

	e.Tick(0.25)
	if n := len(r.last["shape"].faces); n != 12 {
		t.Errorf("faces before change = %d", n)
	}
	e.Tick(0.5)
	if n := len(r.last["shape"].faces); n != 6 {
		t.Errorf("faces after change = %d", n)
	}
}

func TestProceduralPanicRecovered(t *testing.T) {
	e, r, _, _ := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())
	before := r.updates["box"]

	_ = e.RegisterProceduralAnimation("p", "box", func(float64) *model.Mesh { panic("no mesh") }, 1, turtle.EaseLinear, turtle.LoopNone)
	_ = e.Play("p")

	if !e.Tick(0.5) {
		t.Error("Tick should still report progress")
	}
	if r.updates["box"] != before {
		t.Error("a failed generator must not touch the geometry")
	}
}

func TestUnregisterAndRemoveMesh(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "a", math.DefaultPose())
	addBox(t, e, "b", at(3, 0, 0))
	_ = e.RegisterAnimation("m", "a", forward(1), 1, 10, turtle.LoopNone, turtle.EaseLinear)
	_ = e.Link("b", "a", LinkOptions{})

	if err := e.Unregister("m"); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Animation("m"); ok {
		t.Error("animation still registered")
	}
	if err := e.Unregister("m"); !errors.Is(err, ErrUnknownAnimation) {
		t.Errorf("second unregister = %v", err)
	}

	_ = e.RegisterAnimation("m2", "a", forward(1), 1, 10, turtle.LoopNone, turtle.EaseLinear)
	if err := e.RemoveMesh("a"); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Animation("m2"); ok {
		t.Error("animations of a removed mesh should be dropped")
	}
	if _, ok := e.LinkOf("b"); ok {
		t.Error("links to a removed mesh should be dropped")
	}
	if err := e.RemoveMesh("a"); !errors.Is(err, ErrUnknownMesh) {
		t.Errorf("second RemoveMesh = %v", err)
	}
}

func TestAnimationEasingAppliesToLinearSpans(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	addBox(t, e, "linear", at(0, 0, 0))
	addBox(t, e, "cubic", at(3, 0, 0))
	addBox(t, e, "own", at(6, 0, 0))

	outSpan := turtle.NewSpan(turtle.F(10))
	outSpan.Easing = turtle.EaseOut

	regs := []struct {
		name   string
		spans  []turtle.Span
		easing turtle.Easing
		frame  int
	}{
		{"linear", forward(10), turtle.EaseLinear, 50},
		{"cubic", forward(10), turtle.EaseInCubic, 12},
		// The span's own curve wins over the animation's.
		{"own", []turtle.Span{outSpan}, turtle.EaseInCubic, 75},
	}
	for _, r := range regs {
		if err := e.RegisterAnimation(r.name, r.name, r.spans, 1, 100, turtle.LoopNone, r.easing); err != nil {
			t.Fatalf("register %s: %v", r.name, err)
		}
		_ = e.Play(r.name)
	}
	e.Tick(0.5)

	for _, r := range regs {
		d, _ := e.Animation(r.name)
		if d.FrameIndex() != r.frame {
			t.Errorf("%s frame = %d, want %d", r.name, d.FrameIndex(), r.frame)
		}
	}
	lin, _ := e.Mesh("linear")
	cub, _ := e.Mesh("cubic")
	if cub.CreationPose.Position.Z >= lin.CreationPose.Position.Z {
		t.Errorf("ease-in-cubic z %v should trail linear z %v", cub.CreationPose.Position.Z, lin.CreationPose.Position.Z)
	}
}

func TestSpanEasingKeepsBoundaries(t *testing.T) {
	e, _, _, out := newTestEngine(t)
	addBox(t, e, "box", math.DefaultPose())

	first := turtle.NewSpan(turtle.F(1))
	first.Easing = turtle.EaseIn
	second := turtle.NewSpan(turtle.U(1))
	second.Easing = turtle.EaseIn
	second.OnEnter = func(ctx *turtle.CallbackContext) { ctx.Printf("second\n") }

	// 2 s at 10 fps: span 0 owns frames 0-9, span 1 frames 10-19.
	if err := e.RegisterAnimation("walk", "box", []turtle.Span{first, second}, 2, 10, turtle.LoopNone, turtle.EaseLinear); err != nil {
		t.Fatal(err)
	}
	_ = e.Play("walk")

	steps := []struct {
		dt    float64
		frame int
		span  int
		out   string
	}{
		{0.5, 2, 0, ""},           // linear frame 5, eased 0.25*10
		{0.25, 5, 0, ""},          // linear frame 7, eased 0.5625*10
		{0.25, 10, 1, "second\n"}, // boundary at the unwarped frame 10
		{0.5, 12, 1, "second\n"},  // linear frame 15, eased 10+0.25*10
	}
	for i, s := range steps {
		e.Tick(s.dt)
		d, _ := e.Animation("walk")
		if d.FrameIndex() != s.frame || d.CurrentSpan != s.span {
			t.Errorf("step %d: frame %d span %d, want frame %d span %d", i, d.FrameIndex(), d.CurrentSpan, s.frame, s.span)
		}
		if out.String() != s.out {
			t.Errorf("step %d: output %q, want %q", i, out.String(), s.out)
		}
	}
}
