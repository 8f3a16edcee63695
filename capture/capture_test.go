package capture

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/geom"
	"github.com/lixenwraith/termframe/render"
)

func testBuffer(t *testing.T) *render.Buffer {
	t.Helper()
	b := render.NewBuffer(geom.Size{Width: 8, Height: 2})
	style := render.DefaultStyle.WithForeground(ansi.ANSI(ansi.Green, ansi.Normal)).Bold(true)
	b.WriteString("ok", render.Position{Row: 1, Col: 1}, style)
	return b
}

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	cfg := DefaultConfig(filepath.Join(t.TempDir(), "frames.db"))
	cfg.BatchSize = 2
	cfg.BatchTimeout = 10 * time.Millisecond
	r, err := NewRecorder(cfg)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecorderRoundTrip(t *testing.T) {
	rec := newTestRecorder(t)
	buf := testBuffer(t)

	hook := rec.Hook()
	ts := time.Unix(1700000000, 123)
	hook(0, ts, 4*time.Millisecond, buf)

	// Wait out the batch timeout so the writer flushes.
	deadline := time.Now().Add(2 * time.Second)
	var fr *FrameRecord
	var err error
	for time.Now().Before(deadline) {
		fr, err = rec.Frame(0)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("Frame(0): %v", err)
	}

	if !fr.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", fr.Timestamp, ts)
	}
	if fr.Elapsed != 4*time.Millisecond {
		t.Errorf("elapsed = %v", fr.Elapsed)
	}
	if fr.Size != buf.Size() {
		t.Errorf("size = %+v", fr.Size)
	}
	if len(fr.Cells) != buf.Size().Area() {
		t.Fatalf("cells = %d, want %d", len(fr.Cells), buf.Size().Area())
	}
	for i, cell := range fr.Cells {
		pos := render.PositionAt(i, buf.Size())
		if want := buf.At(pos); cell != want {
			t.Fatalf("cell %d = %#v, want %#v", i, cell, want)
		}
	}
}

func TestRecorderFramesQuery(t *testing.T) {
	rec := newTestRecorder(t)
	buf := testBuffer(t)

	hook := rec.Hook()
	base := time.Unix(1700000000, 0)
	for i := uint64(0); i < 5; i++ {
		hook(i, base.Add(time.Duration(i)*time.Second), time.Millisecond, buf)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		frames, err := rec.Frames(1, 3)
		if err == nil && len(frames) == 3 {
			if frames[0].Frame != 1 || frames[2].Frame != 3 {
				t.Fatalf("frame order wrong: %d..%d", frames[0].Frame, frames[2].Frame)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("recorded frames never became queryable")
}

func TestRecorderCloseFlushesPending(t *testing.T) {
	cfg := DefaultConfig(filepath.Join(t.TempDir(), "frames.db"))
	cfg.BatchSize = 100 // force the close path to flush
	cfg.BatchTimeout = time.Hour
	rec, err := NewRecorder(cfg)
	if err != nil {
		t.Fatal(err)
	}

	rec.Hook()(7, time.Unix(1, 0), time.Millisecond, testBuffer(t))
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewRecorder(DefaultConfig(cfg.Path))
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if _, err := reopened.Frame(7); err != nil {
		t.Errorf("pending frame lost on close: %v", err)
	}
}

func TestEncodeDecodeCells(t *testing.T) {
	buf := testBuffer(t)
	blob := encodeCells(buf)
	cells, err := decodeCells(blob, buf.Size().Area())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, c := range cells {
		want := buf.At(render.PositionAt(i, buf.Size()))
		if c != want {
			t.Fatalf("cell %d = %#v, want %#v", i, c, want)
		}
	}

	if _, err := decodeCells(blob[:len(blob)-1], buf.Size().Area()); err == nil {
		t.Error("truncated blob accepted")
	}
}
