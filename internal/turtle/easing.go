package turtle

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Easing is a progress remapping curve on [0, 1].
type Easing int

// Easing curves.
const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
)

var easingNames = map[Easing]string{
	EaseLinear:     "linear",
	EaseIn:         "ease-in",
	EaseOut:        "ease-out",
	EaseInOut:      "ease-in-out",
	EaseInCubic:    "ease-in-cubic",
	EaseOutCubic:   "ease-out-cubic",
	EaseInOutCubic: "ease-in-out-cubic",
}

// String returns the config name of the curve.
func (e Easing) String() string {
	if s, ok := easingNames[e]; ok {
		return s
	}
	return fmt.Sprintf("Easing(%d)", int(e))
}

// ParseEasing parses an easing name. The empty string means linear.
func ParseEasing(s string) (Easing, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return EaseLinear, nil
	}
	for e, name := range easingNames {
		if name == s {
			return e, nil
		}
	}
	return EaseLinear, errors.Errorf("unknown easing %q", s)
}

// Apply maps t through the curve. t is clamped to [0, 1].
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case EaseInCubic:
		return t * t * t
	case EaseOutCubic:
		u := t - 1
		return u*u*u + 1
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := 2*t - 2
		return 0.5*u*u*u + 1
	default:
		return t
	}
}
