// Package input handles SDL2 input events.
package input

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies viewer events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	// EventFocusLost is sent when the window loses keyboard focus or the
	// pointer leaves it. A drag in progress cannot see its release.
	EventFocusLost
)

// Mouse buttons.
const (
	ButtonLeft   = sdl.BUTTON_LEFT
	ButtonMiddle = sdl.BUTTON_MIDDLE
	ButtonRight  = sdl.BUTTON_RIGHT
)

// ParseButton maps a config name to a mouse button.
func ParseButton(name string) (uint8, error) {
	switch strings.ToLower(name) {
	case "left":
		return ButtonLeft, nil
	case "middle", "":
		return ButtonMiddle, nil
	case "right":
		return ButtonRight, nil
	default:
		return 0, fmt.Errorf("unknown mouse button %q", name)
	}
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		if e.Type == EventQuit {
			return true
		}
	}

	return false
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_FOCUS_LOST, sdl.WINDOWEVENT_LEAVE:
			return Event{Type: EventFocusLost}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			t = EventMouseUp
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true
	}

	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
