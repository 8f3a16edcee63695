package render

// DamageSpan is a half-open range [Lo, Hi) of buffer indices whose
// cells all share Style. Spans are style-homogeneous by construction:
// the detector splits raw difference runs at every style boundary.
type DamageSpan struct {
	Lo, Hi int
	Style  Style
}

// Damage compares the presented front buffer against the updated back
// buffer and returns the minimal ordered set of style-homogeneous
// spans that differ. Identical buffers yield nil. A size mismatch
// yields a single span covering all of back with the default style;
// the caller must redraw everything.
//
// O(N) in the buffer size.
func Damage(front, back *Buffer) []DamageSpan {
	if front.Size() != back.Size() {
		n := back.Size().Area()
		if n == 0 {
			return nil
		}
		return []DamageSpan{{Lo: 0, Hi: n, Style: DefaultStyle}}
	}

	var spans []DamageSpan
	n := back.Size().Area()
	start := -1

	for i := 0; i < n; i++ {
		if front.cellAt(i) == back.cellAt(i) {
			if start >= 0 {
				spans = splitByStyle(back, start, i, spans)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = splitByStyle(back, start, n, spans)
	}
	return spans
}

// splitByStyle closes the raw span [lo, hi), emitting one DamageSpan
// per style run. Empty raw spans emit nothing.
func splitByStyle(b *Buffer, lo, hi int, spans []DamageSpan) []DamageSpan {
	if lo >= hi {
		return spans
	}
	runStart := lo
	runStyle := b.cellAt(lo).Style
	for i := lo + 1; i < hi; i++ {
		if s := b.cellAt(i).Style; s != runStyle {
			spans = append(spans, DamageSpan{Lo: runStart, Hi: i, Style: runStyle})
			runStart = i
			runStyle = s
		}
	}
	return append(spans, DamageSpan{Lo: runStart, Hi: hi, Style: runStyle})
}
