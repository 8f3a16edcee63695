package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/termframe/geom"
)

// scriptedDevice feeds canned input chunks to the reader.
type scriptedDevice struct {
	chunks chan []byte
	resize func(geom.Size)
	size   geom.Size
}

func newScriptedDevice() *scriptedDevice {
	return &scriptedDevice{
		chunks: make(chan []byte, 16),
		size:   geom.Size{Width: 80, Height: 24},
	}
}

func (d *scriptedDevice) feed(p []byte) { d.chunks <- p }

func (d *scriptedDevice) Write(p []byte) {}

func (d *scriptedDevice) Read(stop <-chan struct{}) ([]byte, error) {
	select {
	case <-stop:
		return nil, nil
	case c, ok := <-d.chunks:
		if !ok {
			return nil, errors.New("input closed")
		}
		return c, nil
	case <-time.After(5 * time.Millisecond):
		return nil, nil // poll timeout
	}
}

func (d *scriptedDevice) Size() geom.Size        { return d.size }
func (d *scriptedDevice) Enter(mode Mode) error  { return nil }
func (d *scriptedDevice) Restore()               {}
func (d *scriptedDevice) OnResize(h func(geom.Size)) { d.resize = h }

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event stream closed")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	panic("unreachable")
}

func startInput(t *testing.T) (*Input, *scriptedDevice) {
	t.Helper()
	dev := newScriptedDevice()
	in := NewInput(dev)
	in.Start()
	t.Cleanup(in.Stop)
	return in, dev
}

func TestInputDeliversCharacters(t *testing.T) {
	in, dev := startInput(t)
	dev.feed([]byte("a"))

	ev := waitEvent(t, in.Events())
	if ev.Type != EventKey || ev.Rune != 'a' || ev.Key != KeyNone {
		t.Errorf("event = %+v", ev)
	}
}

func TestInputDeliversArrowsAcrossChunks(t *testing.T) {
	in, dev := startInput(t)
	dev.feed([]byte{0x1b})
	dev.feed([]byte{0x5b, 0x41})

	ev := waitEvent(t, in.Events())
	if ev.Type != EventKey || ev.Key != KeyUp {
		t.Errorf("event = %+v, want KeyUp", ev)
	}
}

func TestInputLoneEscapeFlushesOnTimeout(t *testing.T) {
	in, dev := startInput(t)
	dev.feed([]byte{0x1b})
	// No follow-up bytes: the next poll timeout flushes a literal ESC.

	ev := waitEvent(t, in.Events())
	if ev.Type != EventKey || ev.Key != KeyEscape || ev.Rune != 0x1b {
		t.Errorf("event = %+v, want escape key", ev)
	}
}

func TestInputDeliversResponses(t *testing.T) {
	in, dev := startInput(t)
	dev.feed([]byte("\x1b[?62;1;6c"))

	ev := waitEvent(t, in.Events())
	if ev.Type != EventResponse {
		t.Fatalf("event = %+v, want response", ev)
	}
	if ev.Caps.Kind != CapCompatible || ev.Caps.Family != 62 {
		t.Errorf("caps = %+v", ev.Caps)
	}
	if len(ev.Caps.Features) != 2 || ev.Caps.Features[0] != 1 || ev.Caps.Features[1] != 6 {
		t.Errorf("features = %v", ev.Caps.Features)
	}
}

func TestInputDeliversMouse(t *testing.T) {
	in, dev := startInput(t)
	dev.feed([]byte("\x1b[<0;12;5M"))

	ev := waitEvent(t, in.Events())
	if ev.Type != EventMouse {
		t.Fatalf("event = %+v, want mouse", ev)
	}
	if ev.MousePos != (geom.Point{X: 11, Y: 4}) {
		t.Errorf("mouse pos = %+v", ev.MousePos)
	}
	if ev.MouseBtn != MouseBtnLeft || ev.MouseAction != MouseActionPress {
		t.Errorf("mouse = %+v", ev)
	}
}

func TestInputDeliversResizeEvents(t *testing.T) {
	in, dev := startInput(t)
	if dev.resize == nil {
		t.Fatal("resize observer not installed")
	}
	dev.resize(geom.Size{Width: 120, Height: 40})

	ev := waitEvent(t, in.Events())
	if ev.Type != EventResize || ev.Size != (geom.Size{Width: 120, Height: 40}) {
		t.Errorf("event = %+v", ev)
	}
}

func TestInputResizeTapRunsBeforeDelivery(t *testing.T) {
	dev := newScriptedDevice()
	in := NewInput(dev)

	var tapped geom.Size
	in.SetResizeTap(func(s geom.Size) { tapped = s })
	in.Start()
	t.Cleanup(in.Stop)

	dev.resize(geom.Size{Width: 99, Height: 9})
	ev := waitEvent(t, in.Events())
	if ev.Type != EventResize {
		t.Fatalf("event = %+v", ev)
	}
	if tapped != (geom.Size{Width: 99, Height: 9}) {
		t.Errorf("tap saw %+v", tapped)
	}
}

func TestInputPostEvent(t *testing.T) {
	in, _ := startInput(t)
	in.PostEvent(Event{Type: EventClosed})

	ev := waitEvent(t, in.Events())
	if ev.Type != EventClosed {
		t.Errorf("event = %+v", ev)
	}
}

func TestInputStreamEndsOnReadError(t *testing.T) {
	dev := newScriptedDevice()
	in := NewInput(dev)
	in.Start()

	close(dev.chunks)

	ev := waitEvent(t, in.Events())
	if ev.Type != EventClosed {
		t.Fatalf("event = %+v, want closed", ev)
	}
	select {
	case _, ok := <-in.Events():
		if ok {
			t.Error("stream delivered events after close")
		}
	case <-time.After(time.Second):
		t.Error("stream did not close")
	}
}

func TestInputFunctionKeyTranslation(t *testing.T) {
	in, dev := startInput(t)
	dev.feed([]byte("\x1bOP\x1b[17;5~"))

	ev := waitEvent(t, in.Events())
	if ev.Key != KeyF1 {
		t.Errorf("first event = %+v, want F1", ev)
	}
	ev = waitEvent(t, in.Events())
	if ev.Key != KeyF6 || ev.Mods != ModCtrl {
		t.Errorf("second event = %+v, want ctrl-F6", ev)
	}
}
