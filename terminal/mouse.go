package terminal

import (
	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/geom"
)

// MouseButton represents mouse button identity.
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event.
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// MouseMode controls which mouse events the terminal reports (bitmask).
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // press/release
	MouseModeDrag   MouseMode = 1 << 1 // button held + motion
	MouseModeMotion MouseMode = 1 << 2 // all motion
)

// String returns a human-readable button name.
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// translateMouse decodes an SGR mouse report into an event.
// Button byte layout: bits 0-1 button (3 = release), bit 5 motion,
// bit 6 scroll, bits 2-4 shift/alt/ctrl.
func translateMouse(m ansi.Mouse) Event {
	ev := Event{
		Type:     EventMouse,
		MousePos: geom.Point{X: m.X - 1, Y: m.Y - 1},
	}

	buttonID := m.Btn & 0x03
	isMotion := m.Btn&32 != 0
	isScroll := m.Btn&64 != 0

	if isScroll {
		if buttonID == 0 {
			ev.MouseBtn = MouseBtnWheelUp
		} else {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress
	} else {
		switch buttonID {
		case 0:
			ev.MouseBtn = MouseBtnLeft
		case 1:
			ev.MouseBtn = MouseBtnMiddle
		case 2:
			ev.MouseBtn = MouseBtnRight
		case 3:
			ev.MouseBtn = MouseBtnNone
		}

		switch {
		case m.Release:
			ev.MouseAction = MouseActionRelease
		case isMotion && ev.MouseBtn != MouseBtnNone:
			ev.MouseAction = MouseActionDrag
		case isMotion:
			ev.MouseAction = MouseActionMove
		default:
			ev.MouseAction = MouseActionPress
		}
	}

	if m.Btn&4 != 0 {
		ev.Mods |= ModShift
	}
	if m.Btn&8 != 0 {
		ev.Mods |= ModAlt
	}
	if m.Btn&16 != 0 {
		ev.Mods |= ModCtrl
	}
	return ev
}

// SetMouseMode transitions the terminal's mouse reporting from old to
// mode, enabling SGR coordinates alongside the first tracking mode and
// disabling them with the last.
func SetMouseMode(dev Device, enc ansi.Encoding, old, mode MouseMode) {
	var buf []byte

	if old&MouseModeMotion != 0 && mode&MouseModeMotion == 0 {
		buf = ansi.Append(buf, ansi.ResetMode{Mode: ansi.ModeMouseMotion}, enc)
	}
	if old&MouseModeDrag != 0 && mode&MouseModeDrag == 0 {
		buf = ansi.Append(buf, ansi.ResetMode{Mode: ansi.ModeMouseDrag}, enc)
	}
	if old&MouseModeClick != 0 && mode&MouseModeClick == 0 {
		buf = ansi.Append(buf, ansi.ResetMode{Mode: ansi.ModeMouseClick}, enc)
	}
	if mode == MouseModeNone && old != MouseModeNone {
		buf = ansi.Append(buf, ansi.ResetMode{Mode: ansi.ModeMouseSGR}, enc)
	}

	if mode != MouseModeNone && old == MouseModeNone {
		buf = ansi.Append(buf, ansi.SetMode{Mode: ansi.ModeMouseSGR}, enc)
	}
	if mode&MouseModeClick != 0 && old&MouseModeClick == 0 {
		buf = ansi.Append(buf, ansi.SetMode{Mode: ansi.ModeMouseClick}, enc)
	}
	if mode&MouseModeDrag != 0 && old&MouseModeDrag == 0 {
		buf = ansi.Append(buf, ansi.SetMode{Mode: ansi.ModeMouseDrag}, enc)
	}
	if mode&MouseModeMotion != 0 && old&MouseModeMotion == 0 {
		buf = ansi.Append(buf, ansi.SetMode{Mode: ansi.ModeMouseMotion}, enc)
	}

	if len(buf) > 0 {
		dev.Write(buf)
	}
}
