package ansi

// Parser is the push-driven input state machine. Callers feed byte
// chunks through Parse and receive zero or more Results; input may be
// split at any byte boundary. An incomplete trailing sequence is
// retained and resumed by the next Parse call, so the parser is
// restartable and lossless across arbitrarily small chunks.
//
// A failed parse consumes one byte (an ESC followed by an unrecognised
// introducer drops both bytes) and resumes in the Normal state,
// guaranteeing forward progress regardless of input validity.
type Parser struct {
	buf []byte
}

// Sequence length guards. A CSI longer than maxCSI or a string command
// longer than maxString is treated as malformed.
const (
	maxCSI    = 64
	maxString = 4096
)

// NewParser creates an empty parser in the Normal state.
func NewParser() *Parser {
	return &Parser{buf: make([]byte, 0, 256)}
}

// Parse consumes chunk and returns the results decoded so far. Bytes
// belonging to an incomplete trailing sequence are retained for the
// next call.
func (p *Parser) Parse(chunk []byte) []Result {
	p.buf = append(p.buf, chunk...)

	var out []Result
	i := 0
	n := len(p.buf)

	for i < n {
		b := p.buf[i]

		if b == esc {
			consumed, results := p.parseEscape(p.buf[i:])
			if consumed == 0 {
				break // incomplete, wait for more input
			}
			out = append(out, results...)
			i += consumed
			continue
		}

		if b < 0x80 {
			out = append(out, Character{Rune: rune(b)})
			i++
			continue
		}

		// UTF-8 multibyte in the Normal state.
		size := utf8SeqLen(b)
		if size == 0 {
			i++ // invalid start byte: failed parse, one byte
			continue
		}
		if i+size > n {
			break // incomplete, wait for more input
		}
		r, sz := decodeRune(p.buf[i:])
		if sz == 1 && r == 0xFFFD {
			i++ // malformed continuation or overlong: one byte
			continue
		}
		out = append(out, Character{Rune: r})
		i += sz
	}

	// Compact the retained remainder to the front.
	if i > 0 {
		if i >= len(p.buf) {
			p.buf = p.buf[:0]
		} else {
			copy(p.buf, p.buf[i:])
			p.buf = p.buf[:len(p.buf)-i]
		}
	}
	return out
}

// Flush handles end of input: a lone pending ESC becomes a literal
// escape character; any other retained partial stays pending.
func (p *Parser) Flush() []Result {
	if len(p.buf) == 1 && p.buf[0] == esc {
		p.buf = p.buf[:0]
		return []Result{Character{Rune: rune(esc)}}
	}
	return nil
}

// Pending returns the number of retained partial-sequence bytes.
func (p *Parser) Pending() int { return len(p.buf) }

// parseEscape dispatches on the byte after ESC. Returns consumed == 0
// when the sequence is incomplete.
func (p *Parser) parseEscape(data []byte) (int, []Result) {
	if len(data) < 2 {
		return 0, nil
	}
	switch data[1] {
	case '[':
		return p.parseCSI(data)
	case 'O':
		return p.parseSS3(data)
	case ']':
		return p.parseString(data, true)
	case 'P':
		return p.parseString(data, false)
	default:
		// Unrecognised introducer: drop ESC and the byte.
		return 2, nil
	}
}

// parseCSI scans parameters, intermediates and private prefix bytes up
// to the final byte, then dispatches.
func (p *Parser) parseCSI(data []byte) (int, []Result) {
	var (
		params  []int
		inter   []byte
		cur     int
		hasCur  bool
	)

	i := 2
	for {
		if i >= len(data) {
			if len(data) > maxCSI {
				return 1, nil
			}
			return 0, nil
		}
		if i > maxCSI {
			return 1, nil
		}

		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			if cur > 65535 {
				return 1, nil
			}
			hasCur = true
		case b == ';':
			params = append(params, cur)
			cur = 0
			hasCur = false
		case (b >= 0x20 && b <= 0x2f) || (b >= 0x3c && b <= 0x3f):
			inter = append(inter, b)
		case b >= 0x40 && b <= 0x7e:
			if hasCur || len(params) > 0 {
				params = append(params, cur)
			}
			full := make([]byte, i+1)
			copy(full, data[:i+1])
			return i + 1, dispatchCSI(full, inter, params, b)
		default:
			return 1, nil
		}
		i++
	}
}

// paramOr returns the idx-th parameter, with def for missing or zero
// values (the VT default convention).
func paramOr(params []int, idx, def int) int {
	if idx < len(params) && params[idx] != 0 {
		return params[idx]
	}
	return def
}

// dispatchCSI maps a complete CSI sequence to a Result.
func dispatchCSI(full []byte, inter []byte, params []int, final byte) []Result {
	var private byte
	for _, c := range inter {
		if c >= 0x3c && c <= 0x3f {
			private = c
		}
	}

	switch final {
	case 'A', 'B', 'C', 'D':
		if private != 0 {
			return []Result{Unknown{Bytes: full}}
		}
		dir := [4]Direction{DirUp, DirDown, DirRight, DirLeft}[final-'A']
		return []Result{Cursor{
			Direction: dir,
			Count:     paramOr(params, 0, 1),
			Mods:      modifierFromParam(paramOr(params, 1, 1)),
		}}

	case 'c':
		switch private {
		case '?':
			return []Result{DeviceAttributes{Class: DAPrimary, Params: params}}
		case '>':
			return []Result{DeviceAttributes{Class: DASecondary, Params: params}}
		case '=':
			return []Result{DeviceAttributes{Class: DATertiary, Params: params}}
		default:
			return []Result{Unknown{Bytes: full}}
		}

	case 'P', 'Q', 'S':
		if private != 0 {
			return []Result{Unknown{Bytes: full}}
		}
		return []Result{Function{
			N:    int(final-'P') + 1,
			Mods: modifierFromParam(paramOr(params, 1, 1)),
		}}

	case 'R':
		// F3 shares the final byte with the cursor-position report;
		// a leading parameter other than 1 is a CPR.
		if private != 0 {
			return []Result{Unknown{Bytes: full}}
		}
		if len(params) == 2 && params[0] != 1 {
			return []Result{CurrentPositionReport{Row: params[0], Col: params[1]}}
		}
		return []Result{Function{N: 3, Mods: modifierFromParam(paramOr(params, 1, 1))}}

	case '~':
		if private != 0 {
			return []Result{Unknown{Bytes: full}}
		}
		mods := modifierFromParam(paramOr(params, 1, 1))
		switch paramOr(params, 0, 0) {
		case 1, 7:
			return []Result{Special{Key: KeyHome, Mods: mods}}
		case 4, 8:
			return []Result{Special{Key: KeyEnd, Mods: mods}}
		case 2:
			return []Result{Special{Key: KeyInsert, Mods: mods}}
		case 3:
			return []Result{Special{Key: KeyDelete, Mods: mods}}
		case 5:
			return []Result{Special{Key: KeyPageUp, Mods: mods}}
		case 6:
			return []Result{Special{Key: KeyPageDown, Mods: mods}}
		case 11, 12, 13, 14, 15:
			return []Result{Function{N: paramOr(params, 0, 0) - 10, Mods: mods}}
		case 17, 18, 19, 20, 21:
			return []Result{Function{N: paramOr(params, 0, 0) - 11, Mods: mods}}
		case 23, 24:
			return []Result{Function{N: paramOr(params, 0, 0) - 12, Mods: mods}}
		default:
			return []Result{Unknown{Bytes: full}}
		}

	case 'Z':
		return []Result{Special{Key: KeyBacktab, Mods: ModShift}}

	case 'H':
		if private == 0 && len(params) == 0 {
			return []Result{Special{Key: KeyHome}}
		}
		return []Result{Unknown{Bytes: full}}

	case 'F':
		if private == 0 && len(params) == 0 {
			return []Result{Special{Key: KeyEnd}}
		}
		return []Result{Unknown{Bytes: full}}

	case 'M', 'm':
		if private == '<' && len(params) == 3 {
			return []Result{Mouse{
				Btn:     params[0],
				X:       params[1],
				Y:       params[2],
				Release: final == 'm',
			}}
		}
		return []Result{Unknown{Bytes: full}}

	default:
		return []Result{Unknown{Bytes: full}}
	}
}

// parseSS3 handles ESC O sequences.
func (p *Parser) parseSS3(data []byte) (int, []Result) {
	if len(data) < 3 {
		return 0, nil
	}
	b := data[2]
	switch b {
	case 'A', 'B', 'C', 'D':
		dir := [4]Direction{DirUp, DirDown, DirRight, DirLeft}[b-'A']
		return 3, []Result{Cursor{Direction: dir, Count: 1}}
	case 'H':
		return 3, []Result{Special{Key: KeyHome}}
	case 'F':
		return 3, []Result{Special{Key: KeyEnd}}
	case 'P', 'Q', 'R', 'S':
		return 3, []Result{Function{N: int(b-'P') + 1}}
	default:
		full := make([]byte, 3)
		copy(full, data[:3])
		return 3, []Result{Unknown{Bytes: full}}
	}
}

// parseString accumulates an OSC (withBEL) or DCS command until its
// terminator and yields it as Unknown.
func (p *Parser) parseString(data []byte, withBEL bool) (int, []Result) {
	for i := 2; i < len(data); i++ {
		if i > maxString {
			return 1, nil
		}
		b := data[i]
		if withBEL && b == bel {
			full := make([]byte, i+1)
			copy(full, data[:i+1])
			return i + 1, []Result{Unknown{Bytes: full}}
		}
		if b == esc {
			if i+1 >= len(data) {
				return 0, nil
			}
			if data[i+1] == '\\' {
				full := make([]byte, i+2)
				copy(full, data[:i+2])
				return i + 2, []Result{Unknown{Bytes: full}}
			}
			return 1, nil
		}
	}
	if len(data) > maxString {
		return 1, nil
	}
	return 0, nil
}

// utf8SeqLen returns the expected UTF-8 sequence length from the start
// byte, 0 if invalid.
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

// decodeRune decodes the first UTF-8 rune from data, rejecting overlong
// encodings. Malformed input yields (U+FFFD, 1).
func decodeRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, 0
	}

	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var min rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size = 2
		min = 0x80
		r = rune(b & 0x1f)
	case b&0xf0 == 0xe0:
		size = 3
		min = 0x800
		r = rune(b & 0x0f)
	case b&0xf8 == 0xf0:
		size = 4
		min = 0x10000
		r = rune(b & 0x07)
	default:
		return 0xFFFD, 1
	}

	if len(data) < size {
		return 0xFFFD, 1
	}

	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}

	if r < min {
		return 0xFFFD, 1
	}

	return r, size
}
