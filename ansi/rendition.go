package ansi

// GraphicRendition is one parameter of a Select Graphic Rendition command.
// The set is closed; the encoder matches exhaustively.
type GraphicRendition interface {
	appendParams(dst []byte) []byte
}

// Reset clears all attributes and colors (SGR 0).
type Reset struct{}

// Bold enables bold intensity (SGR 1).
type Bold struct{}

// NormalIntensity clears bold/faint (SGR 22). This is the only off-code
// for bold in the emitted dialect.
type NormalIntensity struct{}

// Italic enables italics (SGR 3).
type Italic struct{}

// ItalicOff disables italics (SGR 23).
type ItalicOff struct{}

// Underline enables underlining (SGR 4).
type Underline struct{}

// UnderlineOff disables underlining (SGR 24).
type UnderlineOff struct{}

// Blink enables slow blink (SGR 5). There is no reliable individual
// off-code across the targeted terminals; removal forces a Reset.
type Blink struct{}

// Strikethrough enables crossed-out text (SGR 9).
type Strikethrough struct{}

// StrikethroughOff disables crossed-out text (SGR 29).
type StrikethroughOff struct{}

// Foreground selects the foreground color.
type Foreground struct {
	Color Color
}

// Background selects the background color.
type Background struct {
	Color Color
}

func (Reset) appendParams(dst []byte) []byte            { return append(dst, '0') }
func (Bold) appendParams(dst []byte) []byte             { return append(dst, '1') }
func (NormalIntensity) appendParams(dst []byte) []byte  { return append(dst, '2', '2') }
func (Italic) appendParams(dst []byte) []byte           { return append(dst, '3') }
func (ItalicOff) appendParams(dst []byte) []byte        { return append(dst, '2', '3') }
func (Underline) appendParams(dst []byte) []byte        { return append(dst, '4') }
func (UnderlineOff) appendParams(dst []byte) []byte     { return append(dst, '2', '4') }
func (Blink) appendParams(dst []byte) []byte            { return append(dst, '5') }
func (Strikethrough) appendParams(dst []byte) []byte    { return append(dst, '9') }
func (StrikethroughOff) appendParams(dst []byte) []byte { return append(dst, '2', '9') }

func (r Foreground) appendParams(dst []byte) []byte { return r.Color.appendFgParams(dst) }
func (r Background) appendParams(dst []byte) []byte { return r.Color.appendBgParams(dst) }
