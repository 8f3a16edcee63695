package render

import (
	"unicode/utf8"

	"github.com/lixenwraith/termframe/ansi"
)

// byteSink is the writer half of the terminal device.
type byteSink interface {
	Write(p []byte)
}

// sinkPageSize is one output page; a present that fits in a page
// reaches the device in a single write.
const sinkPageSize = 4096

// sink is the page-buffered byte stream a present() writes through.
// Appending a fragment larger than the remaining capacity first
// flushes the page; an explicit flush drains the remainder. A sink is
// scope-owned by one present and must flush on every exit path.
type sink struct {
	dev     byteSink
	enc     ansi.Encoding
	buf     []byte
	scratch []byte
}

func newSink(dev byteSink, enc ansi.Encoding) *sink {
	return &sink{
		dev: dev,
		enc: enc,
		buf: make([]byte, 0, sinkPageSize),
	}
}

// sequence encodes and appends one control sequence.
func (s *sink) sequence(seq ansi.ControlSequence) {
	s.scratch = ansi.Append(s.scratch[:0], seq, s.enc)
	s.append(s.scratch)
}

// writeString appends literal text.
func (s *sink) writeString(text string) {
	if len(text) <= sinkPageSize {
		if len(text) > sinkPageSize-len(s.buf) {
			s.flush()
		}
		s.buf = append(s.buf, text...)
		return
	}
	s.flush()
	s.dev.Write([]byte(text))
}

// writeRune appends one character.
func (s *sink) writeRune(r rune) {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	s.append(tmp[:n])
}

func (s *sink) append(p []byte) {
	if len(p) > sinkPageSize-len(s.buf) {
		s.flush()
	}
	s.buf = append(s.buf, p...)
}

// flush drains the page to the device.
func (s *sink) flush() {
	if len(s.buf) > 0 {
		s.dev.Write(s.buf)
		s.buf = s.buf[:0]
	}
}
