package ansi

import "fmt"

// Mode numbers the DEC private modes the engine sets and resets.
type Mode int

const (
	ModeAutoWrap           Mode = 7
	ModeCursorVisible      Mode = 25
	ModeMouseClick         Mode = 1000
	ModeMouseDrag          Mode = 1002
	ModeMouseMotion        Mode = 1003
	ModeAlternateScreen    Mode = 1049
	ModeMouseSGR           Mode = 1006
	ModeSynchronizedUpdate Mode = 2026
)

// EraseExtent selects how much of the page or line an erase command clears.
type EraseExtent int

const (
	EraseToEnd       EraseExtent = 0
	EraseToBeginning EraseExtent = 1
	EraseAll         EraseExtent = 2
)

// ControlSequence is the closed command alphabet the renderer emits.
// Every variant has a canonical CSI encoding produced by Encode.
// Response-shaped variants (CurrentPositionReport, DeviceAttributes
// carrying a response payload) are not valid output; encoding one is a
// programming error and panics.
type ControlSequence interface {
	appendTo(dst []byte, enc Encoding) []byte
}

// CursorUp moves the cursor up N rows (CUU).
type CursorUp struct{ N int }

// CursorDown moves the cursor down N rows (CUD).
type CursorDown struct{ N int }

// CursorForward moves the cursor right N columns (CUF).
type CursorForward struct{ N int }

// CursorBackward moves the cursor left N columns (CUB).
type CursorBackward struct{ N int }

// CursorNextLine moves to column 1, N rows down (CNL).
type CursorNextLine struct{ N int }

// CursorPreviousLine moves to column 1, N rows up (CPL).
type CursorPreviousLine struct{ N int }

// CursorHorizontalAbsolute moves to the given 1-based column (CHA).
type CursorHorizontalAbsolute struct{ Col int }

// CursorPosition moves to the given 1-based row and column (CUP).
type CursorPosition struct{ Row, Col int }

// ErasePage clears the page (ED).
type ErasePage struct{ Extent EraseExtent }

// EraseLine clears the line (EL).
type EraseLine struct{ Extent EraseExtent }

// EraseField clears the current field (EF).
type EraseField struct{ Extent EraseExtent }

// EraseArea clears the qualified area (EA).
type EraseArea struct{ Extent EraseExtent }

// EraseCharacter blanks N characters at the cursor (ECH).
type EraseCharacter struct{ N int }

// ScrollUp scrolls the page up N lines (SU).
type ScrollUp struct{ N int }

// ScrollDown scrolls the page down N lines (SD).
type ScrollDown struct{ N int }

// Repeat repeats the preceding graphic character N times (REP).
type Repeat struct{ N int }

// SelectGraphicRendition sets colors and attributes (SGR).
type SelectGraphicRendition struct {
	Renditions []GraphicRendition
}

// SetMode sets a DEC private mode (DECSET).
type SetMode struct{ Mode Mode }

// ResetMode resets a DEC private mode (DECRST).
type ResetMode struct{ Mode Mode }

// FillRectangularArea fills the given 1-based rectangle with a character
// (DECFRA). The character must lie in the printable set 32..=126 or
// 160..=225; anything else is a programming error.
type FillRectangularArea struct {
	Char                     rune
	Top, Left, Bottom, Right int
}

// DeviceAttributesClass selects which DA report a DeviceAttributes value
// requests or carries.
type DeviceAttributesClass uint8

const (
	DAPrimary DeviceAttributesClass = iota
	DASecondary
	DATertiary
)

// DeviceAttributes is either a request (empty Params) or a parsed
// response (non-empty Params). Only requests are valid output.
type DeviceAttributes struct {
	Class  DeviceAttributesClass
	Params []int
}

// Request reports whether the value is an outgoing query.
func (d DeviceAttributes) Request() bool { return len(d.Params) == 0 }

// CurrentPositionReport is the CPR response a terminal sends for DSR;
// it is never valid output.
type CurrentPositionReport struct{ Row, Col int }

func (s CursorUp) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'A')
}

func (s CursorDown) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'B')
}

func (s CursorForward) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'C')
}

func (s CursorBackward) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'D')
}

func (s CursorNextLine) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'E')
}

func (s CursorPreviousLine) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'F')
}

func (s CursorHorizontalAbsolute) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.Col, 'G')
}

func (s CursorPosition) appendTo(dst []byte, enc Encoding) []byte {
	dst = enc.appendCSI(dst)
	if s.Row != 1 {
		dst = appendInt(dst, s.Row)
	}
	if s.Col != 1 {
		dst = append(dst, ';')
		dst = appendInt(dst, s.Col)
	}
	return append(dst, 'H')
}

func (s ErasePage) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSIExtent(dst, enc, s.Extent, 'J')
}

func (s EraseLine) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSIExtent(dst, enc, s.Extent, 'K')
}

func (s EraseField) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSIExtent(dst, enc, s.Extent, 'N')
}

func (s EraseArea) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSIExtent(dst, enc, s.Extent, 'O')
}

func (s EraseCharacter) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'X')
}

func (s ScrollUp) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'S')
}

func (s ScrollDown) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'T')
}

func (s Repeat) appendTo(dst []byte, enc Encoding) []byte {
	return appendCSICount(dst, enc, s.N, 'b')
}

func (s SelectGraphicRendition) appendTo(dst []byte, enc Encoding) []byte {
	dst = enc.appendCSI(dst)
	for i, r := range s.Renditions {
		if i > 0 {
			dst = append(dst, ';')
		}
		dst = r.appendParams(dst)
	}
	return append(dst, 'm')
}

func (s SetMode) appendTo(dst []byte, enc Encoding) []byte {
	dst = enc.appendCSI(dst)
	dst = append(dst, '?')
	dst = appendInt(dst, int(s.Mode))
	return append(dst, 'h')
}

func (s ResetMode) appendTo(dst []byte, enc Encoding) []byte {
	dst = enc.appendCSI(dst)
	dst = append(dst, '?')
	dst = appendInt(dst, int(s.Mode))
	return append(dst, 'l')
}

func (s FillRectangularArea) appendTo(dst []byte, enc Encoding) []byte {
	c := s.Char
	if !((c >= 32 && c <= 126) || (c >= 160 && c <= 225)) {
		panic(fmt.Sprintf("ansi: FillRectangularArea with non-printable character %U", c))
	}
	dst = enc.appendCSI(dst)
	dst = appendInt(dst, int(c))
	dst = append(dst, ';')
	dst = appendInt(dst, s.Top)
	dst = append(dst, ';')
	dst = appendInt(dst, s.Left)
	dst = append(dst, ';')
	dst = appendInt(dst, s.Bottom)
	dst = append(dst, ';')
	dst = appendInt(dst, s.Right)
	return append(dst, '$', 'x')
}

func (s DeviceAttributes) appendTo(dst []byte, enc Encoding) []byte {
	if !s.Request() {
		panic("ansi: device-attributes response is not valid output")
	}
	dst = enc.appendCSI(dst)
	switch s.Class {
	case DASecondary:
		dst = append(dst, '>')
	case DATertiary:
		dst = append(dst, '=')
	}
	return append(dst, 'c')
}

func (s CurrentPositionReport) appendTo(dst []byte, enc Encoding) []byte {
	panic("ansi: cursor-position report is not valid output")
}

// appendCSICount encodes a single-count CSI command, eliding the
// default count of 1.
func appendCSICount(dst []byte, enc Encoding, n int, final byte) []byte {
	dst = enc.appendCSI(dst)
	if n != 1 {
		dst = appendInt(dst, n)
	}
	return append(dst, final)
}

// appendCSIExtent encodes an erase command, eliding the default extent 0.
func appendCSIExtent(dst []byte, enc Encoding, e EraseExtent, final byte) []byte {
	dst = enc.appendCSI(dst)
	if e != EraseToEnd {
		dst = appendInt(dst, int(e))
	}
	return append(dst, final)
}
