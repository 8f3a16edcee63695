package terminal

import "github.com/lixenwraith/termframe/ansi"

// Key identifies a parsed input key. Plain characters carry KeyNone
// with the character in Event.Rune; the escape key reports its byte
// value so callers can match either way.
type Key uint16

const (
	KeyNone   Key = 0
	KeyEscape Key = 0x1B
)

// Named keys sit above the byte range.
const (
	KeyUp Key = 0x100 + iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBacktab

	// Function keys are contiguous: F(n) == KeyF1 + n - 1.
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifier re-exports the wire-level modifier mask decoded by the
// parser.
type Modifier = ansi.Modifier

const (
	ModNone  = ansi.ModNone
	ModShift = ansi.ModShift
	ModAlt   = ansi.ModAlt
	ModCtrl  = ansi.ModCtrl
)

var keyNames = map[Key]string{
	KeyNone:     "None",
	KeyEscape:   "Escape",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyRight:    "Right",
	KeyLeft:     "Left",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyInsert:   "Insert",
	KeyDelete:   "Delete",
	KeyBacktab:  "Backtab",
	KeyF1:       "F1",
	KeyF2:       "F2",
	KeyF3:       "F3",
	KeyF4:       "F4",
	KeyF5:       "F5",
	KeyF6:       "F6",
	KeyF7:       "F7",
	KeyF8:       "F8",
	KeyF9:       "F9",
	KeyF10:      "F10",
	KeyF11:      "F11",
	KeyF12:      "F12",
}

// String returns a human-readable key name.
func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Unknown"
}
