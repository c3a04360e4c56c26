package turtle

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// LoopMode controls what happens when playback reaches the end of an animation.
type LoopMode int

// Loop modes.
const (
	LoopNone LoopMode = iota
	LoopForward
	LoopReverse
	LoopBounce
)

// String returns the config name of the mode.
func (m LoopMode) String() string {
	switch m {
	case LoopNone:
		return "none"
	case LoopForward:
		return "forward"
	case LoopReverse:
		return "reverse"
	case LoopBounce:
		return "bounce"
	}
	return fmt.Sprintf("LoopMode(%d)", int(m))
}

// Loops reports whether playback continues past the duration.
func (m LoopMode) Loops() bool {
	return m != LoopNone
}

// ParseLoopMode parses a loop mode name. The empty string means none.
func ParseLoopMode(s string) (LoopMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LoopNone, nil
	case "forward", "loop":
		return LoopForward, nil
	case "reverse":
		return LoopReverse, nil
	case "bounce", "pingpong":
		return LoopBounce, nil
	}
	return LoopNone, errors.Errorf("unknown loop mode %q", s)
}

// CallbackContext is handed to span boundary callbacks. Anything written to Out is
// flushed to the engine's output channel once the callback returns.
type CallbackContext struct {
	Animation string
	Span      int
	Out       io.Writer
}

// Printf writes formatted text to the callback output.
func (c *CallbackContext) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Callback runs when playback enters or leaves a span.
type Callback func(ctx *CallbackContext)

// Span is a weighted run of commands. Its share of the animation's frames is
// proportional to Weight.
type Span struct {
	Commands []Command
	Weight   float64
	Easing   Easing
	OnEnter  Callback
	OnExit   Callback

	// Loop echoes the owning animation's loop mode; set at registration.
	Loop LoopMode
}

// NewSpan returns a linear span of weight 1.
func NewSpan(cmds ...Command) Span {
	return Span{Commands: cmds, Weight: 1}
}

// EffectiveWeight returns the weight used for frame distribution. Non-positive
// weights fall back to 1.
func (s Span) EffectiveWeight() float64 {
	if s.Weight <= 0 {
		return 1
	}
	return s.Weight
}
