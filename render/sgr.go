package render

import "github.com/lixenwraith/termframe/ansi"

// sgrTracker mirrors the graphic-rendition state of the terminal so
// each span transition emits the minimum rendition list. One tracker
// is created per buffered output and dropped when it ends; it must not
// be copied.
type sgrTracker struct {
	current Style
	_       noCopy
}

// transition returns the minimal rendition list moving the terminal
// from the tracked state to target, and records target as current.
func (t *sgrTracker) transition(target Style) []ansi.GraphicRendition {
	if t.current == target {
		return nil
	}

	cur := t.current
	var out []ansi.GraphicRendition

	// Attributes that must be removed but have no off-code require a
	// full reset first; everything is then rebuilt from default.
	removed := cur.Attrs() &^ target.Attrs()
	if removed&irreversibleAttrs != 0 {
		out = append(out, ansi.Reset{})
		cur = DefaultStyle
	}

	if cur.Foreground() != target.Foreground() {
		out = append(out, ansi.Foreground{Color: target.Foreground()})
	}
	if cur.Background() != target.Background() {
		out = append(out, ansi.Background{Color: target.Background()})
	}

	toggled := cur.Attrs() ^ target.Attrs()
	set := target.Attrs()

	if toggled&AttrBold != 0 {
		if set&AttrBold != 0 {
			out = append(out, ansi.Bold{})
		} else {
			out = append(out, ansi.NormalIntensity{})
		}
	}
	if toggled&AttrItalic != 0 {
		if set&AttrItalic != 0 {
			out = append(out, ansi.Italic{})
		} else {
			out = append(out, ansi.ItalicOff{})
		}
	}
	if toggled&AttrUnderline != 0 {
		if set&AttrUnderline != 0 {
			out = append(out, ansi.Underline{})
		} else {
			out = append(out, ansi.UnderlineOff{})
		}
	}
	if toggled&AttrStrikethrough != 0 {
		if set&AttrStrikethrough != 0 {
			out = append(out, ansi.Strikethrough{})
		} else {
			out = append(out, ansi.StrikethroughOff{})
		}
	}
	if toggled&AttrBlink != 0 && set&AttrBlink != 0 {
		out = append(out, ansi.Blink{})
	}

	t.current = target
	return out
}

// noCopy triggers `go vet` when a containing value is copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
