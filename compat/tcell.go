// Package compat converts between termframe and tcell types so
// applications can migrate incrementally between the two stacks.
package compat

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/render"
	"github.com/lixenwraith/termframe/terminal"
)

// ToTcellAttrs converts attribute bits to a tcell AttrMask.
func ToTcellAttrs(a render.Attr) tcell.AttrMask {
	var mask tcell.AttrMask
	if a&render.AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if a&render.AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if a&render.AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if a&render.AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	if a&render.AttrStrikethrough != 0 {
		mask |= tcell.AttrStrikeThrough
	}
	return mask
}

// AttrsFromTcell converts a tcell AttrMask to attribute bits. Attributes
// termframe does not model (dim, reverse) are dropped.
func AttrsFromTcell(mask tcell.AttrMask) render.Attr {
	var a render.Attr
	if mask&tcell.AttrBold != 0 {
		a |= render.AttrBold
	}
	if mask&tcell.AttrItalic != 0 {
		a |= render.AttrItalic
	}
	if mask&tcell.AttrUnderline != 0 {
		a |= render.AttrUnderline
	}
	if mask&tcell.AttrBlink != 0 {
		a |= render.AttrBlink
	}
	if mask&tcell.AttrStrikeThrough != 0 {
		a |= render.AttrStrikethrough
	}
	return a
}

// ToTcellColor converts a color. Named ANSI colors map onto the first
// sixteen palette entries.
func ToTcellColor(c ansi.Color) tcell.Color {
	switch c.Kind {
	case ansi.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	case ansi.ColorANSI:
		if c.ID == ansi.DefaultColor {
			return tcell.ColorDefault
		}
		idx := int(c.ID)
		if c.Intensity == ansi.Bright {
			idx += 8
		}
		return tcell.PaletteColor(idx)
	default:
		return tcell.ColorDefault
	}
}

// ColorFromTcell converts a tcell color. Palette entries 0-15 map to
// named ANSI colors; everything else converts through RGB.
func ColorFromTcell(c tcell.Color) ansi.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return ansi.NoColor()
	}
	if !c.IsRGB() {
		if idx := int(c - tcell.ColorValid); idx < 16 {
			if idx < 8 {
				return ansi.ANSI(ansi.PaletteID(idx), ansi.Normal)
			}
			return ansi.ANSI(ansi.PaletteID(idx-8), ansi.Bright)
		}
	}
	r, g, b := c.RGB()
	return ansi.RGBColor(uint8(r), uint8(g), uint8(b))
}

// ToTcellStyle converts a packed style.
func ToTcellStyle(s render.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(ToTcellColor(s.Foreground())).
		Background(ToTcellColor(s.Background())).
		Attributes(ToTcellAttrs(s.Attrs()))
}

// StyleFromTcell converts a tcell style to a packed style.
func StyleFromTcell(s tcell.Style) render.Style {
	fg, bg, attrs := s.Decompose()
	return render.DefaultStyle.
		WithForeground(ColorFromTcell(fg)).
		WithBackground(ColorFromTcell(bg)).
		WithAttrs(AttrsFromTcell(attrs))
}

var keyToTcell = map[terminal.Key]tcell.Key{
	terminal.KeyEscape:   tcell.KeyEscape,
	terminal.KeyUp:       tcell.KeyUp,
	terminal.KeyDown:     tcell.KeyDown,
	terminal.KeyRight:    tcell.KeyRight,
	terminal.KeyLeft:     tcell.KeyLeft,
	terminal.KeyHome:     tcell.KeyHome,
	terminal.KeyEnd:      tcell.KeyEnd,
	terminal.KeyPageUp:   tcell.KeyPgUp,
	terminal.KeyPageDown: tcell.KeyPgDn,
	terminal.KeyInsert:   tcell.KeyInsert,
	terminal.KeyDelete:   tcell.KeyDelete,
	terminal.KeyBacktab:  tcell.KeyBacktab,
	terminal.KeyF1:       tcell.KeyF1,
	terminal.KeyF2:       tcell.KeyF2,
	terminal.KeyF3:       tcell.KeyF3,
	terminal.KeyF4:       tcell.KeyF4,
	terminal.KeyF5:       tcell.KeyF5,
	terminal.KeyF6:       tcell.KeyF6,
	terminal.KeyF7:       tcell.KeyF7,
	terminal.KeyF8:       tcell.KeyF8,
	terminal.KeyF9:       tcell.KeyF9,
	terminal.KeyF10:      tcell.KeyF10,
	terminal.KeyF11:      tcell.KeyF11,
	terminal.KeyF12:      tcell.KeyF12,
}

var keyFromTcell = func() map[tcell.Key]terminal.Key {
	m := make(map[tcell.Key]terminal.Key, len(keyToTcell))
	for k, v := range keyToTcell {
		m[v] = k
	}
	return m
}()

// ToTcellEventKey converts a key event. Plain characters become
// KeyRune events.
func ToTcellEventKey(ev terminal.Event) *tcell.EventKey {
	var mods tcell.ModMask
	if ev.Mods&terminal.ModShift != 0 {
		mods |= tcell.ModShift
	}
	if ev.Mods&terminal.ModAlt != 0 {
		mods |= tcell.ModAlt
	}
	if ev.Mods&terminal.ModCtrl != 0 {
		mods |= tcell.ModCtrl
	}

	if key, ok := keyToTcell[ev.Key]; ok {
		return tcell.NewEventKey(key, ev.Rune, mods)
	}
	return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mods)
}

// KeyFromTcell converts a tcell key code; unmapped keys yield KeyNone.
func KeyFromTcell(k tcell.Key) terminal.Key {
	if key, ok := keyFromTcell[k]; ok {
		return key
	}
	return terminal.KeyNone
}
