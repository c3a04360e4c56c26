// Package input turns SDL2 events into per-frame viewer events and tracks held
// keys and mouse buttons between frames.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	// Relative motion for EventMouseMove, scroll amount for EventMouseWheel.
	DeltaX int
	DeltaY int
	Button uint8
	Repeat bool
}

// Input collects the events of one frame.
type Input struct {
	events  []Event
	keys    map[sdl.Scancode]bool
	buttons map[uint8]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update drains the SDL queue. It returns true once a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if i.handle(ev) {
			return true
		}
	}
	return false
}

// handle records ev and updates held state. Unknown events are dropped.
func (i *Input) handle(ev sdl.Event) (quit bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		i.push(Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.push(Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
		}

	case *sdl.KeyboardEvent:
		down := e.State == sdl.PRESSED
		i.keys[e.Keysym.Scancode] = down
		out := Event{Type: EventKeyUp, Key: e.Keysym.Scancode}
		if down {
			out.Type = EventKeyDown
			out.Repeat = e.Repeat != 0
		}
		i.push(out)

	case *sdl.MouseMotionEvent:
		i.push(Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		})

	case *sdl.MouseWheelEvent:
		i.push(Event{Type: EventMouseWheel, DeltaX: int(e.X), DeltaY: int(e.Y)})

	case *sdl.MouseButtonEvent:
		down := e.State == sdl.PRESSED
		i.buttons[e.Button] = down
		out := Event{Type: EventMouseUp, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		if down {
			out.Type = EventMouseDown
		}
		i.push(out)
	}
	return false
}

func (i *Input) push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports a fresh press of scancode this frame. Auto-repeats are
// ignored.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.keys[scancode]
}

// IsButtonDown reports whether a mouse button is currently held.
func (i *Input) IsButtonDown(button uint8) bool {
	return i.buttons[button]
}

// Axis returns +1, -1 or 0 depending on which of two held keys is down.
func (i *Input) Axis(positive, negative sdl.Scancode) float64 {
	return axis(i.IsKeyDown(positive), i.IsKeyDown(negative))
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}
