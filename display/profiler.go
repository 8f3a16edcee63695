package display

import "time"

// FrameCounts tallies rendered and dropped frames. A frame is dropped
// when its render time exceeded the target interval.
type FrameCounts struct {
	Rendered uint64
	Dropped  uint64
}

// FrameStatistics is a point-in-time view of the profiler. With no
// samples recorded all values are zero.
type FrameStatistics struct {
	Target  time.Duration
	Current time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration

	// FPSMax is 1/Min, FPSMin is 1/Max.
	FPSMax float64
	FPSMin float64

	Frames FrameCounts
}

// Profiler tracks frame times against a fixed target in O(1) per
// sample. It is owned by the driver scope and must not be copied.
type Profiler struct {
	target time.Duration
	ring   *sampleRing
	counts FrameCounts
	_      noCopy
}

// NewProfiler creates a profiler for the given target frame rate. The
// ring holds max(60, 2*fps) samples.
func NewProfiler(fps float64) *Profiler {
	if fps <= 0 {
		fps = 1
	}
	capacity := int(2 * fps)
	if capacity < 60 {
		capacity = 60
	}
	return &Profiler{
		target: time.Duration(float64(time.Second) / fps),
		ring:   newSampleRing(capacity),
	}
}

// Measure times op and records the elapsed duration.
func (p *Profiler) Measure(op func()) {
	start := time.Now()
	op()
	p.Record(time.Since(start))
}

// Record adds one frame-time sample.
func (p *Profiler) Record(d time.Duration) {
	p.counts.Rendered++
	if d > p.target {
		p.counts.Dropped++
	}
	p.ring.push(d)
}

// Statistics summarises the ring contents.
func (p *Profiler) Statistics() FrameStatistics {
	stats := FrameStatistics{
		Target: p.target,
		Frames: p.counts,
	}
	if p.ring.count == 0 {
		return stats
	}

	stats.Current = p.ring.newest()
	stats.Average = p.ring.mean()
	stats.Min = p.ring.min
	stats.Max = p.ring.max
	if p.ring.min > 0 {
		stats.FPSMax = float64(time.Second) / float64(p.ring.min)
	}
	if p.ring.max > 0 {
		stats.FPSMin = float64(time.Second) / float64(p.ring.max)
	}
	return stats
}

// noCopy triggers `go vet` when a containing value is copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
