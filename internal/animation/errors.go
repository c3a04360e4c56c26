package animation

import "github.com/pkg/errors"

// Errors returned by the engine API. Callers compare with errors.Is or errors.Cause.
var (
	ErrUnknownAnimation   = errors.New("unknown animation")
	ErrDuplicateAnimation = errors.New("animation already registered")
	ErrUnknownMesh        = errors.New("unknown mesh")
	ErrUnknownAnchor      = errors.New("unknown anchor")
	ErrInvalidTiming      = errors.New("duration and fps must be positive")
	ErrNoGenerator        = errors.New("procedural animation needs a generator")
	ErrLinkCycle          = errors.New("link would create a cycle")
)
