package render

import "github.com/lixenwraith/termframe/geom"

// Position is a 1-based (row, column) pair; the origin is (1, 1).
type Position struct {
	Row int
	Col int
}

// PositionFromPoint converts a 0-based geometric point.
func PositionFromPoint(p geom.Point) Position {
	return Position{Row: p.Y + 1, Col: p.X + 1}
}

// Valid reports whether p addresses a cell inside size.
func (p Position) Valid(size geom.Size) bool {
	return p.Row >= 1 && p.Row <= size.Height &&
		p.Col >= 1 && p.Col <= size.Width
}

// Offset returns the row-major linear index of p in a buffer of the
// given size.
func (p Position) Offset(size geom.Size) int {
	return (p.Row-1)*size.Width + (p.Col - 1)
}

// PositionAt converts a row-major linear index back to a position.
func PositionAt(offset int, size geom.Size) Position {
	return Position{
		Row: offset/size.Width + 1,
		Col: offset%size.Width + 1,
	}
}
