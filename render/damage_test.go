package render

import (
	"reflect"
	"testing"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/geom"
)

func TestDamageIdenticalBuffersIsEmpty(t *testing.T) {
	size := geom.Size{Width: 10, Height: 3}
	f := NewBuffer(size)
	b := NewBuffer(size)
	f.WriteString("same", Position{Row: 2, Col: 2}, DefaultStyle)
	b.WriteString("same", Position{Row: 2, Col: 2}, DefaultStyle)

	if spans := Damage(f, b); len(spans) != 0 {
		t.Errorf("Damage on identical buffers = %#v", spans)
	}
	if spans := Damage(f, f); len(spans) != 0 {
		t.Errorf("Damage(F, F) = %#v", spans)
	}
}

func TestDamageSingleCellChange(t *testing.T) {
	size := geom.Size{Width: 10, Height: 3}
	f := NewBuffer(size)
	b := NewBuffer(size)
	// Change only cell (2,3): row-major index 12.
	b.Set(Position{Row: 2, Col: 3}, Cell{Rune: 'x', Style: DefaultStyle})

	spans := Damage(f, b)
	want := []DamageSpan{{Lo: 12, Hi: 13, Style: DefaultStyle}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Damage = %#v, want %#v", spans, want)
	}
}

func TestDamageSplitsAtStyleBoundaries(t *testing.T) {
	size := geom.Size{Width: 10, Height: 1}
	f := NewBuffer(size)
	b := NewBuffer(size)

	red := DefaultStyle.WithForeground(ansi.ANSI(ansi.Red, ansi.Normal))
	blue := DefaultStyle.WithForeground(ansi.ANSI(ansi.Blue, ansi.Normal))
	b.WriteString("aa", Position{Row: 1, Col: 1}, red)
	b.WriteString("bb", Position{Row: 1, Col: 3}, blue)

	spans := Damage(f, b)
	want := []DamageSpan{
		{Lo: 0, Hi: 2, Style: red},
		{Lo: 2, Hi: 4, Style: blue},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Damage = %#v, want %#v", spans, want)
	}
}

func TestDamageSpansAreStyleHomogeneous(t *testing.T) {
	size := geom.Size{Width: 16, Height: 4}
	f := NewBuffer(size)
	b := NewBuffer(size)

	styles := []Style{
		DefaultStyle,
		DefaultStyle.Bold(true),
		DefaultStyle.WithForeground(ansi.RGBColor(9, 9, 9)),
		DefaultStyle.WithBackground(ansi.ANSI(ansi.Cyan, ansi.Bright)),
	}
	for i := 0; i < size.Area(); i += 3 {
		pos := PositionAt(i, size)
		b.Set(pos, Cell{Rune: rune('a' + i%26), Style: styles[i%len(styles)]})
	}

	for _, span := range Damage(f, b) {
		for i := span.Lo; i < span.Hi; i++ {
			if got := b.cellAt(i).Style; got != span.Style {
				t.Fatalf("span %+v contains style %#x at %d", span, uint64(got), i)
			}
		}
	}
}

func TestDamageSeparateRegions(t *testing.T) {
	size := geom.Size{Width: 10, Height: 1}
	f := NewBuffer(size)
	b := NewBuffer(size)
	b.Set(Position{Row: 1, Col: 1}, Cell{Rune: 'x', Style: DefaultStyle})
	b.Set(Position{Row: 1, Col: 9}, Cell{Rune: 'y', Style: DefaultStyle})

	spans := Damage(f, b)
	want := []DamageSpan{
		{Lo: 0, Hi: 1, Style: DefaultStyle},
		{Lo: 8, Hi: 9, Style: DefaultStyle},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Damage = %#v, want %#v", spans, want)
	}
}

func TestDamageSizeMismatchCoversEverything(t *testing.T) {
	f := NewBuffer(geom.Size{Width: 10, Height: 3})
	b := NewBuffer(geom.Size{Width: 8, Height: 4})

	spans := Damage(f, b)
	want := []DamageSpan{{Lo: 0, Hi: 32, Style: DefaultStyle}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Damage = %#v, want %#v", spans, want)
	}
}
