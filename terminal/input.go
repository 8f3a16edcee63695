package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/geom"
)

// Input is the reader task: it pulls byte chunks from the device,
// feeds them through the ansi parser, and delivers typed events in
// terminal byte order. Events end when the device closes or Stop is
// called.
type Input struct {
	dev     Device
	parser  *ansi.Parser
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu        sync.Mutex
	running   bool
	resizeTap func(geom.Size)

	sendMu sync.Mutex
	ended  bool
}

// NewInput creates a reader over the device.
func NewInput(dev Device) *Input {
	return &Input{
		dev:     dev,
		parser:  ansi.NewParser(),
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// SetResizeTap installs an observer invoked before each resize event
// is delivered. Must be called before Start.
func (r *Input) SetResizeTap(f func(geom.Size)) {
	r.resizeTap = f
}

// Start launches the read loop and installs the resize observer.
func (r *Input) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.dev.OnResize(func(size geom.Size) {
		if r.resizeTap != nil {
			r.resizeTap(size)
		}
		r.send(Event{Type: EventResize, Size: size})
	})

	go r.readLoop()
}

// Stop signals the reader to stop and waits for it to exit. In-flight
// parser state is dropped.
func (r *Input) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

// Events returns the event channel. It closes when input ends.
func (r *Input) Events() <-chan Event {
	return r.eventCh
}

// PostEvent injects a synthetic event, dropping it if the stream is
// saturated.
func (r *Input) PostEvent(ev Event) {
	r.send(ev)
}

// readLoop pumps device chunks into the parser until stop or error.
func (r *Input) readLoop() {
	defer close(r.doneCh)
	defer func() {
		// End the stream under the send lock so late senders (resize
		// handler, PostEvent) cannot hit a closed channel.
		r.sendMu.Lock()
		r.ended = true
		close(r.eventCh)
		r.sendMu.Unlock()
	}()

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\ninput reader crashed: %v\r\n", rec)
			fmt.Fprintf(os.Stderr, "%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.dev.Read(r.stopCh)
		if err != nil {
			r.send(Event{Type: EventClosed})
			return
		}

		if len(data) == 0 {
			// Poll timeout: a pending lone ESC becomes a literal
			// escape key.
			for _, res := range r.parser.Flush() {
				if ev, ok := translate(res); ok {
					r.send(ev)
				}
			}
			select {
			case <-r.stopCh:
				r.send(Event{Type: EventClosed})
				return
			default:
				continue
			}
		}

		for _, res := range r.parser.Parse(data) {
			if ev, ok := translate(res); ok {
				r.send(ev)
			}
		}
	}
}

// send delivers non-blocking; a saturated or ended stream drops the
// event.
func (r *Input) send(ev Event) {
	r.sendMu.Lock()
	defer r.sendMu.Unlock()
	if r.ended {
		return
	}
	select {
	case r.eventCh <- ev:
	default:
	}
}

// translate maps a parse result to an event. Unknown results and
// response shapes with no event representation are not emitted.
func translate(res ansi.Result) (Event, bool) {
	switch v := res.(type) {
	case ansi.Character:
		if v.Rune == 0x1B {
			return Event{Type: EventKey, Key: KeyEscape, Rune: v.Rune}, true
		}
		return Event{Type: EventKey, Rune: v.Rune}, true

	case ansi.Cursor:
		var key Key
		switch v.Direction {
		case ansi.DirUp:
			key = KeyUp
		case ansi.DirDown:
			key = KeyDown
		case ansi.DirRight:
			key = KeyRight
		case ansi.DirLeft:
			key = KeyLeft
		}
		return Event{Type: EventKey, Key: key, Mods: v.Mods}, true

	case ansi.Function:
		if v.N < 1 || v.N > 12 {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: KeyF1 + Key(v.N-1), Mods: v.Mods}, true

	case ansi.Special:
		var key Key
		switch v.Key {
		case ansi.KeyHome:
			key = KeyHome
		case ansi.KeyEnd:
			key = KeyEnd
		case ansi.KeyPageUp:
			key = KeyPageUp
		case ansi.KeyPageDown:
			key = KeyPageDown
		case ansi.KeyInsert:
			key = KeyInsert
		case ansi.KeyDelete:
			key = KeyDelete
		case ansi.KeyBacktab:
			key = KeyBacktab
		}
		return Event{Type: EventKey, Key: key, Mods: v.Mods}, true

	case ansi.Mouse:
		return translateMouse(v), true

	case ansi.DeviceAttributes:
		return Event{Type: EventResponse, Caps: translateDA(v)}, true

	default:
		return Event{}, false
	}
}
