package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termframe/geom"
)

// Buffer is a densely packed row-major cell grid. It is uniquely owned:
// the renderer holds its two buffers and the driver hands the caller a
// time-scoped reference to the back buffer only.
//
// Out-of-bounds reads yield a blank cell; out-of-bounds writes are
// silent no-ops.
type Buffer struct {
	size  geom.Size
	cells []Cell
}

// NewBuffer creates a blank-filled buffer of the given size. Negative
// dimensions are treated as zero.
func NewBuffer(size geom.Size) *Buffer {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	b := &Buffer{size: size, cells: make([]Cell, size.Area())}
	b.Clear()
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() geom.Size { return b.size }

// Resize adjusts the dimensions, reallocating only when capacity is
// insufficient, and blanks the content.
func (b *Buffer) Resize(size geom.Size) {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	n := size.Area()
	if cap(b.cells) < n {
		b.cells = make([]Cell, n)
	} else {
		b.cells = b.cells[:n]
	}
	b.size = size
	b.Clear()
}

// Clear blanks every cell using exponential copy.
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = BlankCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// At returns the cell at pos, or a blank cell when pos is out of
// bounds.
func (b *Buffer) At(pos Position) Cell {
	if !pos.Valid(b.size) {
		return BlankCell
	}
	return b.cells[pos.Offset(b.size)]
}

// Set assigns a single cell. Out of bounds or zero-width characters are
// ignored.
func (b *Buffer) Set(pos Position, c Cell) {
	if !pos.Valid(b.size) {
		return
	}
	if c.Rune != 0 && runewidth.RuneWidth(c.Rune) == 0 {
		return
	}
	b.cells[pos.Offset(b.size)] = c
}

// WriteString writes s starting at pos, interpreting \n (down one row),
// \r (column 1), and \t (next multiple-of-8 tab stop, clamped to the
// last column). Wide characters occupy two cells; a wide character
// whose leader would sit in the rightmost column wraps to the next row
// first. Returns the position after the last write.
//
// An invalid start position leaves the buffer untouched.
func (b *Buffer) WriteString(s string, pos Position, style Style) Position {
	if !pos.Valid(b.size) {
		return pos
	}

	row, col := pos.Row, pos.Col
	for _, r := range s {
		switch r {
		case '\n':
			row++
			continue
		case '\r':
			col = 1
			continue
		case '\t':
			col = ((col-1)/8+1)*8 + 1
			if col > b.size.Width {
				col = b.size.Width
			}
			continue
		}

		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}

		if col+w-1 > b.size.Width {
			row++
			col = 1
		}
		if row > b.size.Height {
			break
		}

		idx := (row-1)*b.size.Width + (col - 1)
		b.cells[idx] = Cell{Rune: r, Style: style}
		if w == 2 {
			if idx+1 < len(b.cells) {
				b.cells[idx+1] = Cell{Rune: 0, Style: style}
			}
			col += 2
		} else {
			col++
		}
	}
	return Position{Row: row, Col: col}
}

// Fill sets every cell of the given 0-based rectangle, clipped to the
// buffer bounds. An empty clipped rectangle writes nothing.
func (b *Buffer) Fill(r geom.Rect, c Cell) {
	clipped := r.Intersect(geom.NewRect(0, 0, b.size.Width, b.size.Height))
	if clipped.IsEmpty() {
		return
	}
	for y := clipped.Origin.Y; y < clipped.MaxY(); y++ {
		base := y * b.size.Width
		for x := clipped.Origin.X; x < clipped.MaxX(); x++ {
			b.cells[base+x] = c
		}
	}
}

// invalidate fills the buffer with a sentinel no real cell equals,
// forcing the next damage pass to cover everything.
func (b *Buffer) invalidate() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

// cellAt returns the cell at a linear index without bounds checking;
// callers stay inside [0, len(cells)).
func (b *Buffer) cellAt(i int) Cell { return b.cells[i] }
