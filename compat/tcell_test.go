package compat

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/render"
	"github.com/lixenwraith/termframe/terminal"
)

func TestAttrRoundTrip(t *testing.T) {
	attrs := render.AttrBold | render.AttrItalic | render.AttrUnderline |
		render.AttrBlink | render.AttrStrikethrough
	if got := AttrsFromTcell(ToTcellAttrs(attrs)); got != attrs {
		t.Errorf("round trip = %v, want %v", got, attrs)
	}
}

func TestAttrsFromTcellDropsUnmodeled(t *testing.T) {
	got := AttrsFromTcell(tcell.AttrDim | tcell.AttrReverse | tcell.AttrBold)
	if got != render.AttrBold {
		t.Errorf("AttrsFromTcell = %v, want bold only", got)
	}
}

func TestColorConversion(t *testing.T) {
	tests := map[string]struct {
		in   ansi.Color
		want tcell.Color
	}{
		"default":    {ansi.NoColor(), tcell.ColorDefault},
		"ansi red":   {ansi.ANSI(ansi.Red, ansi.Normal), tcell.PaletteColor(1)},
		"bright red": {ansi.ANSI(ansi.Red, ansi.Bright), tcell.PaletteColor(9)},
		"rgb":        {ansi.RGBColor(10, 20, 30), tcell.NewRGBColor(10, 20, 30)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ToTcellColor(tt.in); got != tt.want {
				t.Errorf("ToTcellColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	colors := []ansi.Color{
		ansi.NoColor(),
		ansi.ANSI(ansi.Black, ansi.Normal),
		ansi.ANSI(ansi.White, ansi.Bright),
		ansi.RGBColor(1, 2, 3),
		ansi.RGBColor(255, 255, 255),
	}
	for _, c := range colors {
		if got := ColorFromTcell(ToTcellColor(c)); got != c {
			t.Errorf("round trip of %#v = %#v", c, got)
		}
	}
}

func TestStyleRoundTrip(t *testing.T) {
	s := render.DefaultStyle.
		WithForeground(ansi.RGBColor(200, 100, 50)).
		WithBackground(ansi.ANSI(ansi.Blue, ansi.Normal)).
		Bold(true).
		Underline(true)

	if got := StyleFromTcell(ToTcellStyle(s)); got != s {
		t.Errorf("style round trip = %#x, want %#x", uint64(got), uint64(s))
	}
}

func TestKeyMapping(t *testing.T) {
	tests := map[terminal.Key]tcell.Key{
		terminal.KeyUp:     tcell.KeyUp,
		terminal.KeyF5:     tcell.KeyF5,
		terminal.KeyHome:   tcell.KeyHome,
		terminal.KeyEscape: tcell.KeyEscape,
	}
	for ours, theirs := range tests {
		ev := ToTcellEventKey(terminal.Event{Type: terminal.EventKey, Key: ours})
		if ev.Key() != theirs {
			t.Errorf("ToTcellEventKey(%v).Key() = %v, want %v", ours, ev.Key(), theirs)
		}
		if got := KeyFromTcell(theirs); got != ours {
			t.Errorf("KeyFromTcell(%v) = %v, want %v", theirs, got, ours)
		}
	}
}

func TestRuneEventBecomesKeyRune(t *testing.T) {
	ev := ToTcellEventKey(terminal.Event{
		Type: terminal.EventKey,
		Rune: 'x',
		Mods: terminal.ModAlt,
	})
	if ev.Key() != tcell.KeyRune || ev.Rune() != 'x' {
		t.Errorf("event = key %v rune %q", ev.Key(), ev.Rune())
	}
	if ev.Modifiers() != tcell.ModAlt {
		t.Errorf("modifiers = %v", ev.Modifiers())
	}
}
