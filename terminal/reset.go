package terminal

import (
	"io"
	"os"

	"github.com/lixenwraith/termframe/ansi"
)

// EmergencyReset attempts to restore the terminal to a sane state from
// a panic context where the normal restore path cannot run: mouse
// tracking off, cursor shown, alternate screen left, attributes reset,
// auto-wrap back on, then a full RIS.
func EmergencyReset(w io.Writer) {
	var buf []byte
	for _, seq := range []ansi.ControlSequence{
		ansi.ResetMode{Mode: ansi.ModeMouseMotion},
		ansi.ResetMode{Mode: ansi.ModeMouseDrag},
		ansi.ResetMode{Mode: ansi.ModeMouseClick},
		ansi.ResetMode{Mode: ansi.ModeMouseSGR},
		ansi.SetMode{Mode: ansi.ModeCursorVisible},
		ansi.ResetMode{Mode: ansi.ModeAlternateScreen},
		ansi.SelectGraphicRendition{Renditions: []ansi.GraphicRendition{ansi.Reset{}}},
		ansi.SetMode{Mode: ansi.ModeAutoWrap},
	} {
		buf = ansi.Append(buf, seq, ansi.Enc7Bit)
	}
	buf = append(buf, 0x1b, 'c') // RIS
	w.Write(buf)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios.
	resetTerminalMode()
}
