package terminal

import "github.com/lixenwraith/termframe/geom"

// Mode selects the device line discipline.
type Mode uint8

const (
	ModeCanonical Mode = iota
	ModeRaw
)

// Device is the platform terminal boundary consumed by the renderer
// and the input task. Writes are best-effort and blocking; write
// errors are swallowed (the next frame retries implicitly).
type Device interface {
	// Write sends bytes to the terminal.
	Write(p []byte)

	// Read blocks for the next chunk of input bytes. An empty chunk
	// with nil error signals a poll timeout or a stop request; callers
	// use it to flush pending escape state.
	Read(stop <-chan struct{}) ([]byte, error)

	// Size returns the current window size in cells.
	Size() geom.Size

	// Enter switches between canonical and raw mode.
	Enter(mode Mode) error

	// Restore returns the device to its original mode. Safe to call
	// more than once.
	Restore()

	// OnResize registers the window-size observer. The handler runs on
	// the device's notification goroutine.
	OnResize(handler func(geom.Size))
}
