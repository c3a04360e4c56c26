// Package turtle defines the movement vocabulary consumed by the animation engine:
// commands, parallel groups, spans, easing curves and loop modes.
package turtle

import (
	"fmt"
	"strings"
)

// Kind identifies a movement command.
type Kind int

// Command kinds. KindNone is the zero value and is treated as a no-op.
const (
	KindNone Kind = iota

	// Linear moves: signed distance.
	KindForward // f: along heading
	KindUp      // u: along up
	KindDown    // d: along -up
	KindRight   // rt: along right
	KindLeft    // lt: along -right

	// Rotations: signed degrees.
	KindTurnH // th: yaw about up
	KindTurnV // tv: pitch about right
	KindTurnR // tr: roll about heading

	KindParallel
)

var kindTags = map[Kind]string{
	KindForward:  "f",
	KindUp:       "u",
	KindDown:     "d",
	KindRight:    "rt",
	KindLeft:     "lt",
	KindTurnH:    "th",
	KindTurnV:    "tv",
	KindTurnR:    "tr",
	KindParallel: "parallel",
}

// String returns the DSL tag for the kind.
func (k Kind) String() string {
	if s, ok := kindTags[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a DSL tag to its kind. Unknown tags return KindNone and false.
func ParseKind(tag string) (Kind, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for k, s := range kindTags {
		if s == tag {
			return k, true
		}
	}
	return KindNone, false
}

// IsLinear reports whether k moves the turtle by a distance.
func (k Kind) IsLinear() bool {
	return k >= KindForward && k <= KindLeft
}

// IsRotation reports whether k turns the turtle by an angle.
func (k Kind) IsRotation() bool {
	return k >= KindTurnH && k <= KindTurnR
}

// Command is one movement instruction. Value holds the distance for linear kinds and the
// angle in degrees for rotations. Children is only used by KindParallel.
type Command struct {
	Kind     Kind
	Value    float64
	Children []Command
}

// F moves forward along the heading.
func F(dist float64) Command { return Command{Kind: KindForward, Value: dist} }

// U moves along the up vector.
func U(dist float64) Command { return Command{Kind: KindUp, Value: dist} }

// D moves against the up vector.
func D(dist float64) Command { return Command{Kind: KindDown, Value: dist} }

// RT moves along the right vector.
func RT(dist float64) Command { return Command{Kind: KindRight, Value: dist} }

// LT moves against the right vector.
func LT(dist float64) Command { return Command{Kind: KindLeft, Value: dist} }

// TH yaws about the up vector.
func TH(deg float64) Command { return Command{Kind: KindTurnH, Value: deg} }

// TV pitches about the right vector.
func TV(deg float64) Command { return Command{Kind: KindTurnV, Value: deg} }

// TR rolls about the heading.
func TR(deg float64) Command { return Command{Kind: KindTurnR, Value: deg} }

// Parallel groups commands that progress together over the same frames.
func Parallel(cmds ...Command) Command {
	return Command{Kind: KindParallel, Children: cmds}
}

// String formats the command in DSL form, e.g. "f 10" or "parallel(f 5, th 90)".
func (c Command) String() string {
	if c.Kind == KindParallel {
		parts := make([]string, len(c.Children))
		for i, child := range c.Children {
			parts[i] = child.String()
		}
		return "parallel(" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("%s %g", c.Kind, c.Value)
}
