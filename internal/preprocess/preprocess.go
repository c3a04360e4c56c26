package preprocess

import (
	"github.com/Faultbox/turtlemotion/internal/turtle"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// CameraMode selects how the vocabulary is mapped onto poses.
type CameraMode int

// Camera modes.
const (
	// CameraFree moves the camera exactly like a mesh turtle.
	CameraFree CameraMode = iota
	// CameraOrbital orbits, dollies and pans around Options.Pivot.
	CameraOrbital
)

// Options tunes preprocessing.
type Options struct {
	// AngularVelocity scales the frame share of rotations. Zero makes every
	// rotation instantaneous.
	AngularVelocity float64
	CameraMode      CameraMode
	Pivot           math.Vec3
	// WorldUp is the horizontal orbit axis; zero means +Y.
	WorldUp math.Vec3
}

// DefaultOptions returns options with an angular velocity of 1.
func DefaultOptions() Options {
	return Options{AngularVelocity: 1, WorldUp: math.UnitY}
}

// SpanRange locates a span's frames inside the timeline.
type SpanRange struct {
	StartFrame int
	FrameCount int
}

// Contains reports whether frame falls inside the range.
func (r SpanRange) Contains(frame int) bool {
	return frame >= r.StartFrame && frame < r.StartFrame+r.FrameCount
}

// Result is a preprocessed timeline.
type Result struct {
	Frames      []math.Pose
	TotalFrames int
	SpanRanges  []SpanRange
	// Final is the turtle state after every command has run.
	Final math.Pose
}

// Preprocess turns spans into TotalFrames poses. Each span gets a share of the
// frames proportional to its weight, and each command a share of its span's
// frames proportional to its effective distance. A command with n frames emits
// poses at t=(i+1)/n; a command with none is applied between frames. Commands
// trailing the last frame of a span are folded into that frame so every span
// ends on its final state.
func Preprocess(spans []turtle.Span, duration, fps float64, initial math.Pose, opts Options) Result {
	total := TotalFrames(duration, fps)
	res := Result{
		TotalFrames: total,
		SpanRanges:  make([]SpanRange, len(spans)),
		Final:       initial,
	}
	if len(spans) == 0 {
		return res
	}

	motion := motionFor(opts)
	budgets := DistributeSpanFrames(total, spans)
	res.Frames = make([]math.Pose, 0, total)
	state := initial

	for si, span := range spans {
		start := len(res.Frames)
		res.SpanRanges[si] = SpanRange{StartFrame: start, FrameCount: budgets[si]}

		counts := DistributeCommandFrames(budgets[si], span.Commands, opts.AngularVelocity)
		for ci, cmd := range span.Commands {
			n := counts[ci]
			for i := 0; i < n; i++ {
				t := float64(i+1) / float64(n)
				res.Frames = append(res.Frames, motion.Apply(state, cmd, t))
			}
			state = motion.Apply(state, cmd, 1)
		}

		emitted := len(res.Frames) - start
		switch {
		case emitted == 0:
			// Every command was instantaneous; hold the end pose for the span's frames.
			for i := 0; i < budgets[si]; i++ {
				res.Frames = append(res.Frames, state)
			}
		case emitted > 0:
			res.Frames[len(res.Frames)-1] = state
		}
	}

	res.Final = state
	return res
}

func motionFor(opts Options) Motion {
	if opts.CameraMode == CameraOrbital {
		return OrbitalMotion{Pivot: opts.Pivot, WorldUp: opts.WorldUp}
	}
	return TurtleMotion{}
}
