package terminal

import (
	"strings"
	"testing"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/geom"
)

func TestTranslateMouseButtons(t *testing.T) {
	tests := map[string]struct {
		in         ansi.Mouse
		wantBtn    MouseButton
		wantAction MouseAction
		wantMods   Modifier
	}{
		"left press": {
			ansi.Mouse{Btn: 0, X: 1, Y: 1},
			MouseBtnLeft, MouseActionPress, ModNone,
		},
		"right release": {
			ansi.Mouse{Btn: 2, X: 1, Y: 1, Release: true},
			MouseBtnRight, MouseActionRelease, ModNone,
		},
		"middle press": {
			ansi.Mouse{Btn: 1, X: 1, Y: 1},
			MouseBtnMiddle, MouseActionPress, ModNone,
		},
		"drag": {
			ansi.Mouse{Btn: 32, X: 1, Y: 1},
			MouseBtnLeft, MouseActionDrag, ModNone,
		},
		"bare motion": {
			ansi.Mouse{Btn: 35, X: 1, Y: 1},
			MouseBtnNone, MouseActionMove, ModNone,
		},
		"wheel up": {
			ansi.Mouse{Btn: 64, X: 1, Y: 1},
			MouseBtnWheelUp, MouseActionPress, ModNone,
		},
		"wheel down": {
			ansi.Mouse{Btn: 65, X: 1, Y: 1},
			MouseBtnWheelDown, MouseActionPress, ModNone,
		},
		"ctrl shift click": {
			ansi.Mouse{Btn: 0 | 4 | 16, X: 1, Y: 1},
			MouseBtnLeft, MouseActionPress, ModShift | ModCtrl,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ev := translateMouse(tt.in)
			if ev.Type != EventMouse {
				t.Fatalf("type = %v", ev.Type)
			}
			if ev.MouseBtn != tt.wantBtn || ev.MouseAction != tt.wantAction || ev.Mods != tt.wantMods {
				t.Errorf("event = %+v, want btn=%v action=%v mods=%v",
					ev, tt.wantBtn, tt.wantAction, tt.wantMods)
			}
		})
	}
}

func TestTranslateMouseCoordinatesAreZeroBased(t *testing.T) {
	ev := translateMouse(ansi.Mouse{Btn: 0, X: 1, Y: 1})
	if ev.MousePos != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("origin report = %+v, want (0,0)", ev.MousePos)
	}
}

// writeCapturingDevice records everything written.
type writeCapturingDevice struct {
	scriptedDevice
	out []byte
}

func (d *writeCapturingDevice) Write(p []byte) { d.out = append(d.out, p...) }

func TestSetMouseModeSequencesSGRFirst(t *testing.T) {
	dev := &writeCapturingDevice{scriptedDevice: *newScriptedDevice()}

	SetMouseMode(dev, ansi.Enc7Bit, MouseModeNone, MouseModeClick|MouseModeDrag)
	out := string(dev.out)

	sgr := strings.Index(out, "\x1b[?1006h")
	click := strings.Index(out, "\x1b[?1000h")
	drag := strings.Index(out, "\x1b[?1002h")
	if sgr < 0 || click < 0 || drag < 0 {
		t.Fatalf("enable output = %q", out)
	}
	if !(sgr < click && click < drag) {
		t.Errorf("enable order wrong: %q", out)
	}

	dev.out = nil
	SetMouseMode(dev, ansi.Enc7Bit, MouseModeClick|MouseModeDrag, MouseModeNone)
	out = string(dev.out)
	for _, want := range []string{"\x1b[?1002l", "\x1b[?1000l", "\x1b[?1006l"} {
		if !strings.Contains(out, want) {
			t.Errorf("disable output %q missing %q", out, want)
		}
	}
}
