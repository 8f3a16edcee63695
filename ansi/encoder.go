// Package ansi models the ISO 6429 / ECMA-48 command alphabet the
// renderer emits and parses: a closed ControlSequence sum type with
// canonical 7- and 8-bit encodings, graphic renditions, and the
// push-driven input state machine that decodes terminal byte streams.
//
// The package bypasses terminfo entirely; sequences target the ANSI/VT
// subset understood by xterm-compatible emulators.
package ansi

// Encoding selects between 7-bit (ESC-prefixed) and 8-bit (single C1
// byte) control introducers. A given output session uses one encoding.
type Encoding uint8

const (
	Enc7Bit Encoding = iota
	Enc8Bit
)

const (
	esc byte = 0x1b
	bel byte = 0x07
	csi byte = 0x9b
	osc byte = 0x9d
	st  byte = 0x9c
)

// appendCSI appends the Control Sequence Introducer.
func (e Encoding) appendCSI(dst []byte) []byte {
	if e == Enc8Bit {
		return append(dst, csi)
	}
	return append(dst, esc, '[')
}

// appendOSC appends the Operating System Command introducer.
func (e Encoding) appendOSC(dst []byte) []byte {
	if e == Enc8Bit {
		return append(dst, osc)
	}
	return append(dst, esc, ']')
}

// Encode returns the canonical byte encoding of seq.
func Encode(seq ControlSequence, enc Encoding) []byte {
	return seq.appendTo(nil, enc)
}

// Append appends the canonical byte encoding of seq to dst.
func Append(dst []byte, seq ControlSequence, enc Encoding) []byte {
	return seq.appendTo(dst, enc)
}

// EncodedLen returns the byte length of seq in the given encoding.
func EncodedLen(seq ControlSequence, enc Encoding) int {
	return len(seq.appendTo(nil, enc))
}

// appendInt appends the decimal representation of n without allocation.
// Terminal parameters are small; three digits cover all common values.
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(dst, buf[i:]...)
}
