// Package display paces the render loop: a display link that
// synchronises a callback to a target frame rate, and a profiler that
// tracks frame times in O(1) per sample.
package display

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Tick carries one firing of the display link.
type Tick struct {
	// Timestamp is the tick's scheduled time, quantised to the link's
	// interval grid.
	Timestamp time.Time
	// Duration is the target interval.
	Duration time.Duration

	link *Link
}

// IsPaused reports the link's pause state.
func (t Tick) IsPaused() bool {
	return t.link != nil && t.link.IsPaused()
}

// Link drives a callback at a fixed rate. Ticks stay on the grid
// anchored at Run's start; a slow callback skips missed ticks rather
// than bursting to catch up. Pausing skips the callback while
// timestamps keep advancing.
type Link struct {
	interval time.Duration
	paused   atomic.Bool
}

// NewLink creates a link targeting fps frames per second.
func NewLink(fps float64) (*Link, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("display: target fps must be positive, got %v", fps)
	}
	return &Link{
		interval: time.Duration(float64(time.Second) / fps),
	}, nil
}

// Interval returns the target interval between ticks.
func (l *Link) Interval() time.Duration { return l.interval }

// Pause suspends callback invocation.
func (l *Link) Pause() { l.paused.Store(true) }

// Resume continues from the current tick without catch-up.
func (l *Link) Resume() { l.paused.Store(false) }

// IsPaused reports the pause state.
func (l *Link) IsPaused() bool { return l.paused.Load() }

// Run loops until ctx is cancelled or fn returns an error. Each
// iteration sleeps to the next grid point past now, then invokes fn
// with that timestamp unless paused. A callback error propagates to
// the caller; cancellation returns ctx.Err().
func (l *Link) Run(ctx context.Context, fn func(Tick) error) error {
	t0 := time.Now()
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		now := time.Now()
		elapsed := now.Sub(t0)
		next := t0.Add((elapsed/l.interval + 1) * l.interval)

		timer.Reset(next.Sub(now))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if l.IsPaused() {
			continue
		}

		if err := fn(Tick{Timestamp: next, Duration: l.interval, link: l}); err != nil {
			return err
		}
	}
}
