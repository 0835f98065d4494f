// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for game use
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
	EventPadAxis
	EventPadButtonDown
	EventPadButtonUp
	EventPadAdded
	EventPadRemoved
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	WheelY int
	Button uint8 // mouse or gamepad button
	Axis   uint8
	Value  float64 // gamepad axis in [-1, 1]
	Pad    sdl.JoystickID
}

const axisCount = int(sdl.CONTROLLER_AXIS_MAX)

// Input handles all input processing. It keeps the held state of keys,
// mouse buttons and the first connected gamepad.
type Input struct {
	events []Event

	keys        map[sdl.Scancode]bool
	mouse       map[uint8]bool
	padButtons  map[uint8]bool
	axes        [axisCount]float64
	pad         *sdl.GameController
	padID       sdl.JoystickID
	padAttached bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:     make([]Event, 0, 16),
		keys:       make(map[sdl.Scancode]bool),
		mouse:      make(map[uint8]bool),
		padButtons: make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := translate(event)
		if !ok {
			continue
		}
		switch ev.Type {
		case EventQuit:
			quit = true
		case EventPadAdded:
			i.openPad(ev)
			continue
		}
		i.apply(ev)
	}

	return quit
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		} else if e.Type == sdl.KEYUP {
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			RelX:   int(e.XRel),
			RelY:   int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		typ := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			typ = EventMouseDown
		}
		return Event{
			Type:   typ,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}, true

	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, WheelY: int(e.Y)}, true

	case *sdl.ControllerAxisEvent:
		return Event{
			Type:  EventPadAxis,
			Axis:  e.Axis,
			Value: normalizeAxis(e.Value),
			Pad:   e.Which,
		}, true

	case *sdl.ControllerButtonEvent:
		typ := EventPadButtonUp
		if e.Type == sdl.CONTROLLERBUTTONDOWN {
			typ = EventPadButtonDown
		}
		return Event{Type: typ, Button: e.Button, Pad: e.Which}, true

	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			return Event{Type: EventPadAdded, Pad: e.Which}, true
		case sdl.CONTROLLERDEVICEREMOVED:
			return Event{Type: EventPadRemoved, Pad: e.Which}, true
		}
	}
	return Event{}, false
}

// normalizeAxis maps a raw SDL axis value to [-1, 1].
func normalizeAxis(v int16) float64 {
	if v < 0 {
		return float64(v) / 32768
	}
	return float64(v) / 32767
}

// openPad opens the device for an added event. For added events SDL
// reports the device index, not an instance id.
func (i *Input) openPad(ev Event) {
	if i.padAttached {
		return
	}
	pad := sdl.GameControllerOpen(int(ev.Pad))
	if pad == nil {
		return
	}
	i.pad = pad
	i.padID = pad.Joystick().InstanceID()
	i.padAttached = true
	ev.Pad = i.padID
	i.events = append(i.events, ev)
}

// apply records an event and updates held state.
func (i *Input) apply(ev Event) {
	i.events = append(i.events, ev)

	switch ev.Type {
	case EventKeyDown:
		i.keys[ev.Key] = true
	case EventKeyUp:
		delete(i.keys, ev.Key)
	case EventMouseDown:
		i.mouse[ev.Button] = true
	case EventMouseUp:
		delete(i.mouse, ev.Button)
	case EventPadAxis:
		if i.padAttached && ev.Pad == i.padID && int(ev.Axis) < axisCount {
			i.axes[ev.Axis] = ev.Value
		}
	case EventPadButtonDown:
		if i.padAttached && ev.Pad == i.padID {
			i.padButtons[ev.Button] = true
		}
	case EventPadButtonUp:
		delete(i.padButtons, ev.Button)
	case EventPadRemoved:
		if i.padAttached && ev.Pad == i.padID {
			i.detachPad()
		}
	}
}

func (i *Input) detachPad() {
	if i.pad != nil {
		i.pad.Close()
	}
	i.pad = nil
	i.padAttached = false
	i.axes = [axisCount]float64{}
	clear(i.padButtons)
}

// Close releases the gamepad.
func (i *Input) Close() {
	if i.padAttached {
		i.detachPad()
	}
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

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.keys[scancode]
}

// IsMouseHeld reports whether a mouse button is currently down.
func (i *Input) IsMouseHeld(button uint8) bool {
	return i.mouse[button]
}

// HasPad reports whether a gamepad is attached.
func (i *Input) HasPad() bool {
	return i.padAttached
}

// PadAxis returns the last value of a gamepad axis.
func (i *Input) PadAxis(axis sdl.GameControllerAxis) float64 {
	if int(axis) < 0 || int(axis) >= axisCount {
		return 0
	}
	return i.axes[axis]
}

// IsPadHeld reports whether a gamepad button is currently down.
func (i *Input) IsPadHeld(button sdl.GameControllerButton) bool {
	return i.padButtons[uint8(button)]
}

// IsPadPressed checks if a gamepad button was pressed this frame.
func (i *Input) IsPadPressed(button sdl.GameControllerButton) bool {
	for _, e := range i.events {
		if e.Type == EventPadButtonDown && e.Button == uint8(button) {
			return true
		}
	}
	return false
}

// MouseDelta sums relative mouse motion this frame.
func (i *Input) MouseDelta() (dx, dy int) {
	for _, e := range i.events {
		if e.Type == EventMouseMove {
			dx += e.RelX
			dy += e.RelY
		}
	}
	return dx, dy
}

// Wheel sums vertical wheel motion this frame.
func (i *Input) Wheel() int {
	w := 0
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			w += e.WheelY
		}
	}
	return w
}

// Resized returns the latest resize this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}
