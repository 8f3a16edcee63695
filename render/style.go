package render

import "github.com/lixenwraith/termframe/ansi"

// Attr is the bitmask of text attributes a style carries.
type Attr uint8

const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << 0
	AttrItalic        Attr = 1 << 1
	AttrUnderline     Attr = 1 << 2
	AttrBlink         Attr = 1 << 3
	AttrStrikethrough Attr = 1 << 4
)

// irreversibleAttrs are attributes without an individual off-code in
// the emitted dialect; removing one forces a full SGR reset.
const irreversibleAttrs = AttrBlink

// Style packs a cell's colors and attributes into 64 bits:
//
//	[63..40 background | 39..16 foreground | 15..8 attributes | 7..0 presence flags]
//
// Two styles are equal iff their packings are equal; the damage
// detector and the SGR tracker rely on that.
type Style uint64

// DefaultStyle has no colors and no attributes.
const DefaultStyle Style = 0

// Presence flags (bits 0..7).
const (
	flagFgSet Style = 1 << 0
	flagFgRGB Style = 1 << 1
	flagFgBright Style = 1 << 2
	flagBgSet Style = 1 << 3
	flagBgRGB Style = 1 << 4
	flagBgBright Style = 1 << 5
)

const (
	attrShift = 8
	fgShift   = 16
	bgShift   = 40
	colorMask = 0xFFFFFF
)

// packColorBits returns the 24-bit color field for c.
func packColorBits(c ansi.Color) uint32 {
	if c.Kind == ansi.ColorRGB {
		return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
	return uint32(c.ID)
}

// WithForeground returns s with its foreground replaced by c.
func (s Style) WithForeground(c ansi.Color) Style {
	s &^= flagFgSet | flagFgRGB | flagFgBright
	s &^= Style(colorMask) << fgShift
	switch c.Kind {
	case ansi.ColorNone:
		return s
	case ansi.ColorRGB:
		s |= flagFgSet | flagFgRGB
	default:
		s |= flagFgSet
		if c.Intensity == ansi.Bright {
			s |= flagFgBright
		}
	}
	return s | Style(packColorBits(c))<<fgShift
}

// WithBackground returns s with its background replaced by c.
func (s Style) WithBackground(c ansi.Color) Style {
	s &^= flagBgSet | flagBgRGB | flagBgBright
	s &^= Style(colorMask) << bgShift
	switch c.Kind {
	case ansi.ColorNone:
		return s
	case ansi.ColorRGB:
		s |= flagBgSet | flagBgRGB
	default:
		s |= flagBgSet
		if c.Intensity == ansi.Bright {
			s |= flagBgBright
		}
	}
	return s | Style(packColorBits(c))<<bgShift
}

// Foreground unpacks the foreground color.
func (s Style) Foreground() ansi.Color {
	if s&flagFgSet == 0 {
		return ansi.NoColor()
	}
	bits := uint32(s>>fgShift) & colorMask
	if s&flagFgRGB != 0 {
		return ansi.RGBColor(uint8(bits>>16), uint8(bits>>8), uint8(bits))
	}
	intensity := ansi.Normal
	if s&flagFgBright != 0 {
		intensity = ansi.Bright
	}
	return ansi.ANSI(ansi.PaletteID(bits), intensity)
}

// Background unpacks the background color.
func (s Style) Background() ansi.Color {
	if s&flagBgSet == 0 {
		return ansi.NoColor()
	}
	bits := uint32(s>>bgShift) & colorMask
	if s&flagBgRGB != 0 {
		return ansi.RGBColor(uint8(bits>>16), uint8(bits>>8), uint8(bits))
	}
	intensity := ansi.Normal
	if s&flagBgBright != 0 {
		intensity = ansi.Bright
	}
	return ansi.ANSI(ansi.PaletteID(bits), intensity)
}

// Attrs unpacks the attribute bits.
func (s Style) Attrs() Attr {
	return Attr(s >> attrShift)
}

// WithAttrs returns s with its attribute bits replaced by a.
func (s Style) WithAttrs(a Attr) Style {
	s &^= Style(0xFF) << attrShift
	return s | Style(a)<<attrShift
}

// Bold toggles the bold attribute.
func (s Style) Bold(on bool) Style { return s.withAttr(AttrBold, on) }

// Italic toggles the italic attribute.
func (s Style) Italic(on bool) Style { return s.withAttr(AttrItalic, on) }

// Underline toggles the underline attribute.
func (s Style) Underline(on bool) Style { return s.withAttr(AttrUnderline, on) }

// Blink toggles the blink attribute.
func (s Style) Blink(on bool) Style { return s.withAttr(AttrBlink, on) }

// Strikethrough toggles the strikethrough attribute.
func (s Style) Strikethrough(on bool) Style { return s.withAttr(AttrStrikethrough, on) }

func (s Style) withAttr(a Attr, on bool) Style {
	if on {
		return s.WithAttrs(s.Attrs() | a)
	}
	return s.WithAttrs(s.Attrs() &^ a)
}
