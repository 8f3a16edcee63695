// Package render implements the double-buffered damage-based renderer:
// packed cell styles, buffers, damage detection, run-length
// segmentation, minimal SGR transitions, byte-shortest cursor motion,
// and the synchronized-update present pipeline.
package render

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/display"
	"github.com/lixenwraith/termframe/geom"
	"github.com/lixenwraith/termframe/terminal"
)

// Frame is the time-scoped handle a render callback receives: the back
// buffer to draw into plus the tick's timing. The handle must not be
// retained past the callback.
type Frame struct {
	Buffer    *Buffer
	Timestamp time.Time
	Duration  time.Duration

	link *display.Link
}

// IsPaused reports the driver's pause state.
func (f *Frame) IsPaused() bool {
	return f.link != nil && f.link.IsPaused()
}

// FrameHook observes each presented frame; the capture recorder plugs
// in here. The buffer reference is only valid during the call.
type FrameHook func(frame uint64, timestamp time.Time, elapsed time.Duration, buf *Buffer)

// Option configures a Renderer.
type Option func(*Renderer)

// WithEncoding selects 7- or 8-bit control encoding for the session.
func WithEncoding(enc ansi.Encoding) Option {
	return func(r *Renderer) { r.enc = enc }
}

// WithRunThreshold overrides the minimum run length worth a REP.
func WithRunThreshold(n int) Option {
	return func(r *Renderer) { r.minRun = n }
}

// WithFrameHook installs a presented-frame observer.
func WithFrameHook(h FrameHook) Option {
	return func(r *Renderer) { r.hook = h }
}

// WithMouse enables mouse reporting for the session.
func WithMouse(mode terminal.MouseMode) Option {
	return func(r *Renderer) { r.mouse = mode }
}

// Renderer owns the front and back buffers and the terminal session
// state. Drawing targets the back buffer; Present diffs, emits, and
// swaps. The renderer must not be used from multiple tasks
// concurrently.
type Renderer struct {
	dev    terminal.Device
	enc    ansi.Encoding
	minRun int
	hook   FrameHook
	mouse  terminal.MouseMode

	mu      sync.Mutex
	front   *Buffer
	back    *Buffer
	size    geom.Size
	pending geom.Size
	input   *terminal.Input
	link    *display.Link
	prof    *display.Profiler
	frameNo uint64
	closed  bool
}

// New enters raw mode and the alternate screen, allocates both buffers
// at the current window size, and starts the input task. Mode entry
// failure is returned; the terminal is left untouched.
func New(dev terminal.Device, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		dev:    dev,
		enc:    ansi.Enc7Bit,
		minRun: DefaultRunThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := dev.Enter(terminal.ModeRaw); err != nil {
		return nil, err
	}

	size := dev.Size()
	r.size = size
	r.pending = size
	r.front = NewBuffer(size)
	r.back = NewBuffer(size)

	var buf []byte
	// Auto-wrap stays enabled: spans that cross a row boundary rely on
	// the terminal wrapping after the rightmost column (deferred wrap).
	for _, seq := range []ansi.ControlSequence{
		ansi.SetMode{Mode: ansi.ModeAlternateScreen},
		ansi.ResetMode{Mode: ansi.ModeCursorVisible},
		ansi.SelectGraphicRendition{Renditions: []ansi.GraphicRendition{ansi.Reset{}}},
		ansi.ErasePage{Extent: ansi.EraseAll},
		ansi.CursorPosition{Row: 1, Col: 1},
	} {
		buf = ansi.Append(buf, seq, r.enc)
	}
	dev.Write(buf)

	if r.mouse != terminal.MouseModeNone {
		terminal.SetMouseMode(dev, r.enc, terminal.MouseModeNone, r.mouse)
	}

	r.input = terminal.NewInput(dev)
	r.input.SetResizeTap(func(size geom.Size) {
		r.mu.Lock()
		r.pending = size
		r.mu.Unlock()
	})
	r.input.Start()

	return r, nil
}

// Close stops the input task and restores the terminal: mouse off,
// cursor shown, alternate screen left, auto-wrap back on, attributes
// reset, device mode restored. Safe to call more than once.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	r.input.Stop()

	if r.mouse != terminal.MouseModeNone {
		terminal.SetMouseMode(r.dev, r.enc, r.mouse, terminal.MouseModeNone)
	}

	var buf []byte
	for _, seq := range []ansi.ControlSequence{
		ansi.SelectGraphicRendition{Renditions: []ansi.GraphicRendition{ansi.Reset{}}},
		ansi.SetMode{Mode: ansi.ModeCursorVisible},
		ansi.ResetMode{Mode: ansi.ModeAlternateScreen},
		ansi.SetMode{Mode: ansi.ModeAutoWrap},
	} {
		buf = ansi.Append(buf, seq, r.enc)
	}
	r.dev.Write(buf)

	r.dev.Restore()
}

// Size returns the current surface size, tracking resize events.
func (r *Renderer) Size() geom.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Back returns the drawing surface. The next Present diffs it against
// the presented frame.
func (r *Renderer) Back() *Buffer {
	return r.back
}

// Events returns the unified input event stream. It ends when the
// terminal closes.
func (r *Renderer) Events() <-chan terminal.Event {
	return r.input.Events()
}

// PostEvent injects a synthetic event into the stream.
func (r *Renderer) PostEvent(ev terminal.Event) {
	r.input.PostEvent(ev)
}

// QueryCapabilities performs a device-attributes query on the session,
// consuming the event stream until the response or the timeout.
func (r *Renderer) QueryCapabilities(timeout time.Duration) terminal.Capabilities {
	return terminal.QueryCapabilities(r.dev, r.input.Events(), r.enc, timeout)
}

// Statistics returns the profiler's view of the render loop. Before
// Rendering has installed a driver all values are zero.
func (r *Renderer) Statistics() display.FrameStatistics {
	r.mu.Lock()
	prof := r.prof
	r.mu.Unlock()
	if prof == nil {
		return display.FrameStatistics{}
	}
	return prof.Statistics()
}

// WriteSequence passes a control sequence through to the device in the
// session encoding, bypassing the buffers.
func (r *Renderer) WriteSequence(seq ansi.ControlSequence) {
	r.dev.Write(ansi.Encode(seq, r.enc))
}

// WriteString passes literal text through to the device.
func (r *Renderer) WriteString(s string) {
	r.dev.Write([]byte(s))
}

// Present diffs the back buffer against the front, emits the minimal
// update bracketed by a synchronized-update set/reset pair, and swaps
// the buffers. An empty diff swaps and emits nothing.
func (r *Renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.applyResizeLocked()
	r.presentLocked()
}

// Pause suspends the driver's render callback; timestamps keep
// advancing.
func (r *Renderer) Pause() {
	if r.link != nil {
		r.link.Pause()
	}
}

// Resume continues the driver from the current tick without catch-up.
func (r *Renderer) Resume() {
	if r.link != nil {
		r.link.Resume()
	}
}

// Rendering installs the frame-paced driver: the callback draws into
// the back buffer each tick, then the renderer presents, records frame
// statistics, and clears the back buffer for the next frame. The
// callback must not call Present itself. A callback error stops the
// loop and propagates; cancelling ctx stops it at the next tick.
func (r *Renderer) Rendering(ctx context.Context, fps float64, cb func(*Frame) error) error {
	link, err := display.NewLink(fps)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.link = link
	r.prof = display.NewProfiler(fps)
	prof := r.prof
	r.mu.Unlock()

	return link.Run(ctx, func(t display.Tick) error {
		var cbErr error
		prof.Measure(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.closed {
				return
			}
			r.applyResizeLocked()

			frame := &Frame{
				Buffer:    r.back,
				Timestamp: t.Timestamp,
				Duration:  t.Duration,
				link:      link,
			}
			cbErr = cb(frame)
			if cbErr != nil {
				return
			}

			r.presentLocked()
			if r.hook != nil {
				r.hook(r.frameNo, t.Timestamp, t.Duration, r.front)
			}
			r.frameNo++
			r.back.Clear()
		})
		return cbErr
	})
}

// applyResizeLocked reallocates both buffers when a resize event has
// arrived. Content is dropped; the caller redraws (no reflow).
func (r *Renderer) applyResizeLocked() {
	if r.pending == r.size {
		return
	}
	r.size = r.pending
	r.front.Resize(r.size)
	r.back.Resize(r.size)
	// The terminal content is unknown after a resize; force the next
	// diff to rewrite every cell.
	r.front.invalidate()
}

// posUnknown forces the first motion of a present.
var posUnknown = Position{Row: math.MaxInt32, Col: math.MaxInt32}

func (r *Renderer) presentLocked() {
	spans := Damage(r.front, r.back)
	if len(spans) == 0 {
		r.front, r.back = r.back, r.front
		return
	}

	size := r.back.Size()
	out := newSink(r.dev, r.enc)

	out.sequence(ansi.SetMode{Mode: ansi.ModeSynchronizedUpdate})
	defer func() {
		out.sequence(ansi.ResetMode{Mode: ansi.ModeSynchronizedUpdate})
		out.flush()
	}()

	current := posUnknown
	var tracker sgrTracker

	for _, span := range spans {
		// A span opening on the trailing half of a wide pair has no
		// addressable first column; writing starts at the next cell.
		lo := span.Lo
		if r.back.cellAt(lo).IsContinuation() {
			lo++
			if lo >= span.Hi {
				continue
			}
		}

		pos := PositionAt(lo, size)
		if pos != current {
			for _, seq := range MotionSequences(current, pos, r.enc) {
				out.sequence(seq)
			}
		}

		if trans := tracker.transition(span.Style); len(trans) > 0 {
			out.sequence(ansi.SelectGraphicRendition{Renditions: trans})
		}

		for _, seg := range SegmentSpan(r.back, span, r.minRun) {
			switch s := seg.(type) {
			case Run:
				out.writeRune(s.Char)
				if s.Count > 1 {
					out.sequence(ansi.Repeat{N: s.Count - 1})
				}
			case Literal:
				out.writeString(s.Text)
			}
		}

		// The cursor rests after the last written column, except at
		// the right edge where the terminal defers the wrap. A span
		// closing on a wide leader advances one extra column.
		cols := span.Hi - lo
		if isWide(r.back, span.Hi-1) {
			cols++
		}
		switch {
		case lo+cols > size.Area():
			current = posUnknown
		default:
			last := PositionAt(lo+cols-1, size)
			if last.Col == size.Width {
				current = last
			} else {
				current = Position{Row: last.Row, Col: last.Col + 1}
			}
		}
	}

	out.sequence(ansi.SelectGraphicRendition{Renditions: []ansi.GraphicRendition{ansi.Reset{}}})

	r.front, r.back = r.back, r.front
}
