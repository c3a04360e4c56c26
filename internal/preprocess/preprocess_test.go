package preprocess

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

const tol = 1e-9

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestTotalFrames(t *testing.T) {
	tests := []struct {
		duration, fps float64
		want          int
	}{
		{2, 1, 2},
		{1, 60, 60},
		{1.01, 60, 61},
		{0, 30, 1},
		{-1, 30, 1},
		{0.001, 1, 1},
	}

	for _, tt := range tests {
		if got := TotalFrames(tt.duration, tt.fps); got != tt.want {
			t.Errorf("TotalFrames(%v, %v) = %d, want %d", tt.duration, tt.fps, got, tt.want)
		}
	}
}

func TestDistributeLargestRemainder(t *testing.T) {
	got := Distribute(10, []float64{1, 1, 1})
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Distribute(10, 1/1/1) = %v, want %v", got, want)
		}
	}

	got = Distribute(7, []float64{0.5, 0.25, 0.25})
	// raw 3.5, 1.75, 1.75 -> 3,1,1 + two remainders to the 0.75s
	want = []int{3, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Distribute(7, .5/.25/.25) = %v, want %v", got, want)
		}
	}
}

func TestDistributeAllZero(t *testing.T) {
	got := Distribute(5, []float64{0, 0})
	if sum(got) != 0 {
		t.Errorf("all-zero weights should get no frames, got %v", got)
	}
}

func TestFrameCountInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		nSpans := 1 + rng.Intn(5)
		spans := make([]turtle.Span, nSpans)
		for i := range spans {
			spans[i] = turtle.Span{
				Weight:   rng.Float64() * 4,
				Commands: []turtle.Command{turtle.F(rng.Float64() * 10), turtle.TH(rng.Float64()*360 - 180)},
			}
		}
		duration := rng.Float64() * 5
		fps := float64(1 + rng.Intn(60))

		res := Preprocess(spans, duration, fps, math.DefaultPose(), DefaultOptions())
		want := TotalFrames(duration, fps)

		total := 0
		for _, r := range res.SpanRanges {
			total += r.FrameCount
		}
		if total != want || res.TotalFrames != want {
			t.Fatalf("span frames sum %d, TotalFrames %d, want %d", total, res.TotalFrames, want)
		}
		if len(res.Frames) != want {
			t.Fatalf("len(Frames) = %d, want %d", len(res.Frames), want)
		}
	}
}

func TestDistributionProportionality(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for iter := 0; iter < 200; iter++ {
		d1 := 0.1 + rng.Float64()*20
		d2 := 0.1 + rng.Float64()*20
		n := rng.Intn(100)

		counts := DistributeCommandFrames(n, []turtle.Command{turtle.F(d1), turtle.U(-d2)}, 1)
		if counts[0]+counts[1] != n {
			t.Fatalf("counts %v do not sum to %d", counts, n)
		}
		want1 := float64(n) * d1 / (d1 + d2)
		want2 := float64(n) * d2 / (d1 + d2)
		if gomath.Abs(float64(counts[0])-want1) > 1 || gomath.Abs(float64(counts[1])-want2) > 1 {
			t.Fatalf("counts %v too far from %.3f/%.3f", counts, want1, want2)
		}
	}
}

func TestEffectiveDistance(t *testing.T) {
	tests := []struct {
		name string
		cmd  turtle.Command
		av   float64
		want float64
	}{
		{"forward", turtle.F(-4), 1, 4},
		{"turn", turtle.TH(90), 1, 0.25},
		{"turn fast", turtle.TV(-180), 2, 1},
		{"instant turn", turtle.TR(90), 0, 0},
		{"parallel max", turtle.Parallel(turtle.F(3), turtle.TH(720)), 1, 3},
		{"parallel rotation wins", turtle.Parallel(turtle.F(1), turtle.TH(720)), 1, 2},
		{"none", turtle.Command{}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveDistance(tt.cmd, tt.av); gomath.Abs(got-tt.want) > tol {
				t.Errorf("EffectiveDistance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForwardThenTurnScenario(t *testing.T) {
	spans := []turtle.Span{turtle.NewSpan(turtle.F(10), turtle.TH(90))}
	res := Preprocess(spans, 2.0, 1, math.DefaultPose(), DefaultOptions())

	if res.TotalFrames != 2 || len(res.Frames) != 2 {
		t.Fatalf("expected 2 frames, got total=%d len=%d", res.TotalFrames, len(res.Frames))
	}

	counts := DistributeCommandFrames(2, spans[0].Commands, 1)
	if counts[0] != 2 || counts[1] != 0 {
		t.Fatalf("command frames = %v, want [2 0]", counts)
	}

	halfway := math.Vec3{X: 0, Y: 0, Z: 5}
	if !res.Frames[0].Position.ApproxEqual(halfway, tol) {
		t.Errorf("frames[0].Position = %v, want %v", res.Frames[0].Position, halfway)
	}

	turned := math.RotateAroundAxis(math.UnitZ, math.UnitY, gomath.Pi/2)
	if !res.Frames[1].Heading.ApproxEqual(turned, tol) {
		t.Errorf("frames[1].Heading = %v, want %v\n%s", res.Frames[1].Heading, turned, spew.Sdump(res.Frames))
	}
	if !res.Frames[1].Position.ApproxEqual(math.Vec3{Z: 10}, tol) {
		t.Errorf("frames[1].Position = %v, want (0,0,10)", res.Frames[1].Position)
	}
}

func TestInstantRotationBetweenFrames(t *testing.T) {
	// Zero angular velocity: the turn happens between the two forward runs.
	spans := []turtle.Span{turtle.NewSpan(turtle.F(4), turtle.TH(90), turtle.F(4))}
	opts := DefaultOptions()
	opts.AngularVelocity = 0
	res := Preprocess(spans, 4, 1, math.DefaultPose(), opts)

	if len(res.Frames) != 4 {
		t.Fatalf("len(Frames) = %d, want 4", len(res.Frames))
	}
	if !res.Frames[1].Position.ApproxEqual(math.Vec3{Z: 4}, tol) {
		t.Errorf("frames[1] = %v, want end of first run", res.Frames[1].Position)
	}
	// Positive yaw about +Y takes +Z to +X.
	want := math.Vec3{X: 2, Z: 4}
	if !res.Frames[2].Position.ApproxEqual(want, tol) {
		t.Errorf("frames[2] = %v, want %v", res.Frames[2].Position, want)
	}
}

func TestFullyInstantSpanHoldsEndPose(t *testing.T) {
	spans := []turtle.Span{
		turtle.NewSpan(turtle.TH(90)),
		turtle.NewSpan(turtle.F(2)),
	}
	opts := DefaultOptions()
	opts.AngularVelocity = 0
	res := Preprocess(spans, 4, 1, math.DefaultPose(), opts)

	if res.SpanRanges[0].FrameCount != 2 {
		t.Fatalf("span 0 frames = %d, want 2", res.SpanRanges[0].FrameCount)
	}
	for i := 0; i < 2; i++ {
		if !res.Frames[i].Heading.ApproxEqual(math.UnitX, tol) {
			t.Errorf("frames[%d].Heading = %v, want +X", i, res.Frames[i].Heading)
		}
	}
	// Second span continues from the turned state.
	if !res.Frames[3].Position.ApproxEqual(math.Vec3{X: 2}, tol) {
		t.Errorf("frames[3].Position = %v, want (2,0,0)", res.Frames[3].Position)
	}
}

func TestEmptySpans(t *testing.T) {
	res := Preprocess(nil, 1, 30, math.DefaultPose(), DefaultOptions())
	if len(res.Frames) != 0 || res.TotalFrames != 30 {
		t.Errorf("empty spans: len=%d total=%d", len(res.Frames), res.TotalFrames)
	}
}

func TestNegativeDistanceReverses(t *testing.T) {
	spans := []turtle.Span{turtle.NewSpan(turtle.F(-6), turtle.LT(-2))}
	res := Preprocess(spans, 1, 8, math.DefaultPose(), DefaultOptions())
	// LT(-2) moves along +right, which is -X for the default pose.
	want := math.Vec3{X: -2, Z: -6}
	if !res.Final.Position.ApproxEqual(want, tol) {
		t.Errorf("Final = %v, want %v", res.Final.Position, want)
	}
}

func TestParallelGroup(t *testing.T) {
	spans := []turtle.Span{turtle.NewSpan(turtle.Parallel(turtle.U(4), turtle.TR(180)))}
	res := Preprocess(spans, 1, 4, math.DefaultPose(), DefaultOptions())

	if len(res.Frames) != 4 {
		t.Fatalf("len(Frames) = %d, want 4", len(res.Frames))
	}
	// Halfway: up moved 2, roll 90 degrees.
	mid := res.Frames[1]
	if !mid.Position.ApproxEqual(math.Vec3{Y: 2}, tol) {
		t.Errorf("mid position = %v, want (0,2,0)", mid.Position)
	}
	if gomath.Abs(mid.Up.Dot(math.UnitY)) > 1e-9 {
		t.Errorf("mid up %v should be perpendicular to +Y after a 90 degree roll", mid.Up)
	}
	if !res.Final.Up.ApproxEqual(math.Vec3{Y: -1}, tol) {
		t.Errorf("final up = %v, want -Y", res.Final.Up)
	}
	for i, f := range res.Frames {
		if !f.IsOrthonormal(1e-9) {
			t.Errorf("frame %d not orthonormal: %+v", i, f)
		}
	}
}

func TestUnknownCommandIsNoop(t *testing.T) {
	spans := []turtle.Span{turtle.NewSpan(turtle.Command{Kind: turtle.Kind(99), Value: 5}, turtle.F(1))}
	res := Preprocess(spans, 1, 2, math.DefaultPose(), DefaultOptions())
	if !res.Final.Position.ApproxEqual(math.Vec3{Z: 1}, tol) {
		t.Errorf("unknown command moved turtle: %v", res.Final.Position)
	}
}
