package ansi

// ColorKind discriminates the color variants carried by graphic renditions.
type ColorKind uint8

const (
	ColorNone ColorKind = iota // terminal default
	ColorANSI                  // named palette color
	ColorRGB                   // 24-bit direct color
)

// PaletteID identifies one of the named ANSI colors.
type PaletteID uint8

const (
	Black PaletteID = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	DefaultColor
)

// Intensity selects between the normal and bright palette ranges.
type Intensity uint8

const (
	Normal Intensity = iota
	Bright
)

// Color is a closed sum over no-color, named ANSI palette colors, and
// 24-bit RGB. Construct through NoColor, ANSI, or RGBColor.
type Color struct {
	Kind      ColorKind
	ID        PaletteID
	Intensity Intensity
	R, G, B   uint8
}

// NoColor is the terminal-default color.
func NoColor() Color {
	return Color{Kind: ColorNone}
}

// ANSI constructs a named palette color with the given intensity.
func ANSI(id PaletteID, intensity Intensity) Color {
	return Color{Kind: ColorANSI, ID: id, Intensity: intensity}
}

// RGBColor constructs a 24-bit direct color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// appendFgParams appends the SGR parameter list selecting c as foreground.
func (c Color) appendFgParams(dst []byte) []byte {
	switch c.Kind {
	case ColorRGB:
		dst = append(dst, '3', '8', ';', '2', ';')
		dst = appendInt(dst, int(c.R))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.G))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.B))
		return dst
	case ColorANSI:
		if c.ID == DefaultColor {
			return append(dst, '3', '9')
		}
		if c.Intensity == Bright {
			return appendInt(dst, 90+int(c.ID))
		}
		return appendInt(dst, 30+int(c.ID))
	default:
		return append(dst, '3', '9')
	}
}

// appendBgParams appends the SGR parameter list selecting c as background.
func (c Color) appendBgParams(dst []byte) []byte {
	switch c.Kind {
	case ColorRGB:
		dst = append(dst, '4', '8', ';', '2', ';')
		dst = appendInt(dst, int(c.R))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.G))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.B))
		return dst
	case ColorANSI:
		if c.ID == DefaultColor {
			return append(dst, '4', '9')
		}
		if c.Intensity == Bright {
			return appendInt(dst, 100+int(c.ID))
		}
		return appendInt(dst, 40+int(c.ID))
	default:
		return append(dst, '4', '9')
	}
}
