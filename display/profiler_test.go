package display

import (
	"testing"
	"time"
)

func TestProfilerEmptyStatisticsAreZero(t *testing.T) {
	p := NewProfiler(60)
	stats := p.Statistics()
	if stats.Current != 0 || stats.Average != 0 || stats.Min != 0 || stats.Max != 0 {
		t.Errorf("empty statistics = %+v", stats)
	}
	if stats.FPSMin != 0 || stats.FPSMax != 0 {
		t.Errorf("empty fps = %v/%v", stats.FPSMin, stats.FPSMax)
	}
	if stats.Frames.Rendered != 0 || stats.Frames.Dropped != 0 {
		t.Errorf("empty counts = %+v", stats.Frames)
	}
}

func TestProfilerCountsDrops(t *testing.T) {
	p := NewProfiler(100) // 10ms target
	p.Record(5 * time.Millisecond)
	p.Record(15 * time.Millisecond)
	p.Record(10 * time.Millisecond) // equal to target is not a drop
	p.Record(11 * time.Millisecond)

	stats := p.Statistics()
	if stats.Frames.Rendered != 4 {
		t.Errorf("rendered = %d", stats.Frames.Rendered)
	}
	if stats.Frames.Dropped != 2 {
		t.Errorf("dropped = %d", stats.Frames.Dropped)
	}
}

func TestProfilerStatistics(t *testing.T) {
	p := NewProfiler(50) // 20ms target
	p.Record(10 * time.Millisecond)
	p.Record(20 * time.Millisecond)
	p.Record(30 * time.Millisecond)

	stats := p.Statistics()
	if stats.Current != 30*time.Millisecond {
		t.Errorf("current = %v", stats.Current)
	}
	if stats.Average != 20*time.Millisecond {
		t.Errorf("average = %v", stats.Average)
	}
	if stats.Min != 10*time.Millisecond || stats.Max != 30*time.Millisecond {
		t.Errorf("min/max = %v/%v", stats.Min, stats.Max)
	}
	if want := 100.0; stats.FPSMax != want {
		t.Errorf("fps max = %v, want %v", stats.FPSMax, want)
	}
	if want := 1000.0 / 30.0; stats.FPSMin < want-0.01 || stats.FPSMin > want+0.01 {
		t.Errorf("fps min = %v, want ~%v", stats.FPSMin, want)
	}
}

func TestProfilerRingCapacity(t *testing.T) {
	if p := NewProfiler(10); len(p.ring.samples) != 60 {
		t.Errorf("capacity at 10fps = %d, want 60", len(p.ring.samples))
	}
	if p := NewProfiler(120); len(p.ring.samples) != 240 {
		t.Errorf("capacity at 120fps = %d, want 240", len(p.ring.samples))
	}
}

func TestProfilerMeasure(t *testing.T) {
	p := NewProfiler(1000)
	ran := false
	p.Measure(func() { ran = true })
	if !ran {
		t.Fatal("Measure did not invoke the operation")
	}
	if p.Statistics().Frames.Rendered != 1 {
		t.Error("Measure did not record a sample")
	}
}
