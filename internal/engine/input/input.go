// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
)

// Event is one translated SDL event. Only the fields relevant to Type are
// set.
type Event struct {
	Type EventType

	// Keyboard
	Key    sdl.Scancode
	Shift  bool
	Repeat bool

	// Window, in screen coordinates
	Width, Height int

	// Mouse, in window coordinates (origin top-left)
	MouseX, MouseY int32
	DX, DY         int32
	Button         uint8
	WheelY         int32
}

// Input collects the events of one frame and tracks held mouse buttons.
type Input struct {
	events  []Event
	buttons map[uint8]bool
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		buttons: make(map[uint8]bool),
	}
}

// Update drains the SDL event queue. It returns true when the window was
// closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		e, ok := translate(ev)
		if !ok {
			continue
		}
		switch e.Type {
		case EventQuit:
			quit = true
		case EventMouseDown:
			i.buttons[e.Button] = true
		case EventMouseUp:
			delete(i.buttons, e.Button)
		}
		i.events = append(i.events, e)
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// ButtonDown reports whether a mouse button is held.
func (i *Input) ButtonDown(button uint8) bool {
	return i.buttons[button]
}

func translate(ev sdl.Event) (Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event != sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{}, false
		}
		return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return Event{}, false
		}
		return Event{
			Type:   EventKeyDown,
			Key:    e.Keysym.Scancode,
			Shift:  sdl.GetModState()&sdl.KMOD_SHIFT != 0,
			Repeat: e.Repeat != 0,
		}, true

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: e.X, MouseY: e.Y, DX: e.XRel, DY: e.YRel}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, MouseX: e.X, MouseY: e.Y, Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		return Event{Type: EventWheel, WheelY: e.Y}, true
	}
	return Event{}, false
}
