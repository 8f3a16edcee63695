package terminal

import "github.com/lixenwraith/termframe/geom"

// EventType distinguishes input event categories.
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventResize
	EventResponse
	EventClosed // input stream ended
)

// Event is a unified input event: key, mouse, resize, or a terminal
// response to a query. Exactly the fields of the active category are
// meaningful.
type Event struct {
	Type EventType

	// EventKey
	Key     Key
	Rune    rune
	Mods    Modifier
	Release bool

	// EventMouse
	MousePos    geom.Point
	MouseBtn    MouseButton
	MouseAction MouseAction

	// EventResize
	Size geom.Size

	// EventResponse
	Caps Capabilities
}
