package render

import "github.com/lixenwraith/termframe/ansi"

// MotionSequences returns the byte-shortest command list that moves
// the cursor from one position to another, measured in the selected
// encoding. Equal positions yield nil.
//
// Candidates considered: absolute positioning, next/previous-line
// motions into column 1, pure horizontal motion (absolute column or
// relative forward/backward), pure vertical motion, and a vertical
// plus horizontal composite. The absolute candidate is always present,
// so the result never exceeds the length of a CursorPosition command.
func MotionSequences(from, to Position, enc ansi.Encoding) []ansi.ControlSequence {
	if from == to {
		return nil
	}

	dr := to.Row - from.Row
	dc := to.Col - from.Col

	candidates := [][]ansi.ControlSequence{
		{ansi.CursorPosition{Row: to.Row, Col: to.Col}},
	}

	if to.Col == 1 && dr > 0 {
		candidates = append(candidates, []ansi.ControlSequence{ansi.CursorNextLine{N: dr}})
	}
	if to.Col == 1 && dr < 0 {
		candidates = append(candidates, []ansi.ControlSequence{ansi.CursorPreviousLine{N: -dr}})
	}

	horizontals := func() [][]ansi.ControlSequence {
		hs := [][]ansi.ControlSequence{
			{ansi.CursorHorizontalAbsolute{Col: to.Col}},
		}
		if dc > 0 {
			hs = append(hs, []ansi.ControlSequence{ansi.CursorForward{N: dc}})
		}
		if dc < 0 {
			hs = append(hs, []ansi.ControlSequence{ansi.CursorBackward{N: -dc}})
		}
		return hs
	}

	switch {
	case dr == 0:
		candidates = append(candidates, horizontals()...)
	case dc == 0:
		candidates = append(candidates, []ansi.ControlSequence{vertical(dr)})
	default:
		for _, h := range horizontals() {
			composite := append([]ansi.ControlSequence{vertical(dr)}, h...)
			candidates = append(candidates, composite)
		}
	}

	best := candidates[0]
	bestLen := encodedLen(best, enc)
	for _, c := range candidates[1:] {
		if l := encodedLen(c, enc); l < bestLen {
			best, bestLen = c, l
		}
	}
	return best
}

func vertical(dr int) ansi.ControlSequence {
	if dr > 0 {
		return ansi.CursorDown{N: dr}
	}
	return ansi.CursorUp{N: -dr}
}

func encodedLen(seqs []ansi.ControlSequence, enc ansi.Encoding) int {
	total := 0
	for _, s := range seqs {
		total += ansi.EncodedLen(s, enc)
	}
	return total
}
