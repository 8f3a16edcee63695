//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/termframe/geom"
)

// unixDevice drives a tty through stdin/stdout.
type unixDevice struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

// NewDevice returns the platform terminal device bound to stdin/stdout.
func NewDevice() Device {
	return &unixDevice{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// NewDeviceFiles returns a device bound to explicit tty files, used by
// tests driving a pty pair.
func NewDeviceFiles(in, out *os.File) Device {
	return &unixDevice{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

func (d *unixDevice) Enter(mode Mode) error {
	switch mode {
	case ModeRaw:
		if !term.IsTerminal(d.inFd) {
			return fmt.Errorf("terminal: input is not a tty")
		}
		old, err := term.MakeRaw(d.inFd)
		if err != nil {
			return fmt.Errorf("terminal: enter raw mode: %w", err)
		}
		d.oldTerm = old
		return nil
	case ModeCanonical:
		d.Restore()
		return nil
	default:
		return fmt.Errorf("terminal: unknown mode %d", mode)
	}
}

func (d *unixDevice) Restore() {
	if d.resizeStopCh != nil {
		close(d.resizeStopCh)
		<-d.resizeDoneCh
		d.resizeStopCh = nil
	}
	if d.oldTerm != nil {
		term.Restore(d.inFd, d.oldTerm)
		d.oldTerm = nil
	}
}

func (d *unixDevice) Size() geom.Size {
	ws, err := unix.IoctlGetWinsize(d.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return geom.Size{Width: 80, Height: 24}
	}
	return geom.Size{Width: int(ws.Col), Height: int(ws.Row)}
}

// Write is best-effort; errors are dropped per the device contract.
func (d *unixDevice) Write(p []byte) {
	d.out.Write(p)
}

// Read polls with a timeout so the stop channel stays responsive, then
// performs one blocking read and returns the chunk.
func (d *unixDevice) Read(stop <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)

	select {
	case <-stop:
		return nil, nil
	default:
	}

	fds := []unix.PollFd{
		{Fd: int32(d.inFd), Events: unix.POLLIN},
	}

	n, err := unix.Poll(fds, 100)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil // timeout
	}

	rn, err := unix.Read(d.inFd, buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, err
	}
	if rn == 0 {
		return nil, fmt.Errorf("terminal: input closed")
	}

	ret := make([]byte, rn)
	copy(ret, buf[:rn])
	return ret, nil
}

func (d *unixDevice) OnResize(handler func(geom.Size)) {
	d.resizeStopCh = make(chan struct{})
	d.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(d.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-d.resizeStopCh:
				return
			case <-sigCh:
				handler(d.Size())
			}
		}
	}()
}
