// Package preprocess converts timed turtle spans into a fixed pose timeline.
package preprocess

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/turtlemotion/internal/turtle"
)

// TotalFrames returns max(1, ceil(duration*fps)).
func TotalFrames(duration, fps float64) int {
	n := gomath.Ceil(duration * fps)
	if gomath.IsNaN(n) || n < 1 {
		return 1
	}
	return int(n)
}

// Distribute splits total into integer shares proportional to weights.
// Each share is floored and the remainder is handed out one at a time to the
// largest fractional parts, ties going to the earlier index. The result always
// sums to total unless every weight is zero, in which case every share is zero.
func Distribute(total int, weights []float64) []int {
	counts := make([]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return counts
	}

	var sum float64
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		return counts
	}

	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, 0, len(weights))
	assigned := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		raw := float64(total) * w / sum
		floor := gomath.Floor(raw)
		counts[i] = int(floor)
		assigned += counts[i]
		rems = append(rems, remainder{index: i, frac: raw - floor})
	}

	sort.SliceStable(rems, func(a, b int) bool {
		return rems[a].frac > rems[b].frac
	})
	for i := 0; assigned < total && len(rems) > 0; i = (i + 1) % len(rems) {
		counts[rems[i].index]++
		assigned++
	}
	return counts
}

// DistributeSpanFrames splits the animation's frame budget across spans by weight.
func DistributeSpanFrames(total int, spans []turtle.Span) []int {
	weights := make([]float64, len(spans))
	for i, s := range spans {
		weights[i] = s.EffectiveWeight()
	}
	return Distribute(total, weights)
}

// EffectiveDistance is the weight a command gets when a span's frames are split
// among its commands. Linear moves count their absolute distance; rotations count
// angularVelocity*|degrees|/360; a parallel group counts its largest member.
func EffectiveDistance(c turtle.Command, angularVelocity float64) float64 {
	switch {
	case c.Kind.IsLinear():
		return gomath.Abs(c.Value)
	case c.Kind.IsRotation():
		return angularVelocity * gomath.Abs(c.Value) / 360
	case c.Kind == turtle.KindParallel:
		var best float64
		for _, child := range c.Children {
			if d := EffectiveDistance(child, angularVelocity); d > best {
				best = d
			}
		}
		return best
	default:
		return 0
	}
}

// DistributeCommandFrames splits a span's frames among its commands by effective distance.
func DistributeCommandFrames(frames int, cmds []turtle.Command, angularVelocity float64) []int {
	weights := make([]float64, len(cmds))
	for i, c := range cmds {
		weights[i] = EffectiveDistance(c, angularVelocity)
	}
	return Distribute(frames, weights)
}
