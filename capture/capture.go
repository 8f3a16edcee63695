// Package capture records presented frames to SQLite for session
// replay and render debugging. Recording is asynchronous: snapshots
// queue onto a channel and a writer goroutine batches inserts, so the
// render loop never blocks on the database.
package capture

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/termframe/geom"
	"github.com/lixenwraith/termframe/render"
)

// Config holds recorder settings.
type Config struct {
	// Path is the SQLite database file.
	Path string

	// BatchSize is the number of frames accumulated before a flush.
	// Default: 32.
	BatchSize int

	// BatchTimeout bounds how long a partial batch waits. Default: 1s.
	BatchTimeout time.Duration

	// ChannelBuffer is the async queue depth; frames beyond it are
	// dropped rather than stalling the render loop. Default: 128.
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults for the given path.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		BatchSize:     32,
		BatchTimeout:  time.Second,
		ChannelBuffer: 128,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS frames (
	frame     INTEGER PRIMARY KEY,
	ts_nanos  INTEGER NOT NULL,
	elapsed   INTEGER NOT NULL,
	width     INTEGER NOT NULL,
	height    INTEGER NOT NULL,
	cells     BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_frames_ts ON frames(ts_nanos);
`

// FrameRecord is one replayed frame.
type FrameRecord struct {
	Frame     uint64
	Timestamp time.Time
	Elapsed   time.Duration
	Size      geom.Size
	Cells     []render.Cell
}

type pending struct {
	frame   uint64
	tsNanos int64
	elapsed int64
	width   int
	height  int
	cells   []byte
}

// Recorder persists frame snapshots.
type Recorder struct {
	db *sql.DB
	ch chan pending

	wg        sync.WaitGroup
	closeOnce sync.Once

	mu      sync.Mutex
	dropped uint64
}

// NewRecorder opens (creating if needed) the database and starts the
// batch writer.
func NewRecorder(cfg Config) (*Recorder, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = time.Second
	}
	if cfg.ChannelBuffer <= 0 {
		cfg.ChannelBuffer = 128
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", cfg.Path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("capture: create schema: %w", err)
	}

	r := &Recorder{
		db: db,
		ch: make(chan pending, cfg.ChannelBuffer),
	}

	r.wg.Add(1)
	go r.writeLoop(cfg.BatchSize, cfg.BatchTimeout)

	return r, nil
}

// Hook adapts the recorder to the renderer's frame observer. The
// buffer is snapshotted synchronously (it is only valid during the
// call); the insert happens on the writer goroutine. A full queue
// drops the frame.
func (r *Recorder) Hook() render.FrameHook {
	return func(frame uint64, timestamp time.Time, elapsed time.Duration, buf *render.Buffer) {
		p := pending{
			frame:   frame,
			tsNanos: timestamp.UnixNano(),
			elapsed: int64(elapsed),
			width:   buf.Size().Width,
			height:  buf.Size().Height,
			cells:   encodeCells(buf),
		}
		select {
		case r.ch <- p:
		default:
			r.mu.Lock()
			r.dropped++
			r.mu.Unlock()
		}
	}
}

// Dropped returns the number of frames lost to queue saturation.
func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes pending frames and closes the database.
func (r *Recorder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.ch)
		r.wg.Wait()
		err = r.db.Close()
	})
	return err
}

// writeLoop batches queued frames into transactions.
func (r *Recorder) writeLoop(batchSize int, timeout time.Duration) {
	defer r.wg.Done()

	batch := make([]pending, 0, batchSize)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.insert(batch); err != nil {
			log.Printf("capture: batch insert failed: %v", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case p, ok := <-r.ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, p)
			if len(batch) >= batchSize {
				flush()
			}
		case <-timer.C:
			flush()
			timer.Reset(timeout)
		}
	}
}

func (r *Recorder) insert(batch []pending) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO frames (frame, ts_nanos, elapsed, width, height, cells)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range batch {
		if _, err := stmt.Exec(p.frame, p.tsNanos, p.elapsed, p.width, p.height, p.cells); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Frame loads one recorded frame by number.
func (r *Recorder) Frame(n uint64) (*FrameRecord, error) {
	row := r.db.QueryRow(
		`SELECT frame, ts_nanos, elapsed, width, height, cells FROM frames WHERE frame = ?`, n)
	return scanFrame(row)
}

// Frames loads up to limit recorded frames starting at first, in
// order.
func (r *Recorder) Frames(first uint64, limit int) ([]*FrameRecord, error) {
	rows, err := r.db.Query(
		`SELECT frame, ts_nanos, elapsed, width, height, cells
		 FROM frames WHERE frame >= ? ORDER BY frame LIMIT ?`, first, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*FrameRecord
	for rows.Next() {
		fr, err := scanFrame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFrame(row rowScanner) (*FrameRecord, error) {
	var (
		frame         uint64
		tsNanos       int64
		elapsed       int64
		width, height int
		blob          []byte
	)
	if err := row.Scan(&frame, &tsNanos, &elapsed, &width, &height, &blob); err != nil {
		return nil, err
	}

	cells, err := decodeCells(blob, width*height)
	if err != nil {
		return nil, fmt.Errorf("capture: frame %d: %w", frame, err)
	}

	return &FrameRecord{
		Frame:     frame,
		Timestamp: time.Unix(0, tsNanos),
		Elapsed:   time.Duration(elapsed),
		Size:      geom.Size{Width: width, Height: height},
		Cells:     cells,
	}, nil
}

// cellBytes is the serialised size of one cell: rune plus packed style.
const cellBytes = 4 + 8

// encodeCells serialises the buffer row-major, little endian.
func encodeCells(buf *render.Buffer) []byte {
	size := buf.Size()
	out := make([]byte, 0, size.Area()*cellBytes)
	var tmp [cellBytes]byte
	for row := 1; row <= size.Height; row++ {
		for col := 1; col <= size.Width; col++ {
			c := buf.At(render.Position{Row: row, Col: col})
			binary.LittleEndian.PutUint32(tmp[0:4], uint32(c.Rune))
			binary.LittleEndian.PutUint64(tmp[4:12], uint64(c.Style))
			out = append(out, tmp[:]...)
		}
	}
	return out
}

func decodeCells(blob []byte, count int) ([]render.Cell, error) {
	if len(blob) != count*cellBytes {
		return nil, fmt.Errorf("cell blob is %d bytes, want %d", len(blob), count*cellBytes)
	}
	cells := make([]render.Cell, count)
	for i := range cells {
		off := i * cellBytes
		cells[i] = render.Cell{
			Rune:  rune(binary.LittleEndian.Uint32(blob[off : off+4])),
			Style: render.Style(binary.LittleEndian.Uint64(blob[off+4 : off+12])),
		}
	}
	return cells, nil
}
