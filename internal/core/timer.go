package core

import "time"

// FixedStep turns wall-clock frames into a steady series of simulation ticks.
// Time is always passed in so callers and tests control the clock.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxSteps    int
}

// NewFixedStep constructs a FixedStep that ticks every interval and never
// reports more than maxSteps ticks for one frame.
func NewFixedStep(interval time.Duration, maxSteps int) *FixedStep {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &FixedStep{step: interval, accumulator: interval, maxSteps: maxSteps}
}

// Step returns the tick interval.
func (f *FixedStep) Step() time.Duration { return f.step }

// Advance reports how many ticks are due at now. The first call always yields
// one tick. Backlog beyond maxSteps is dropped so a stalled frame never
// triggers a burst of catch-up ticks.
func (f *FixedStep) Advance(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	if delta < 0 {
		delta = 0
	}
	f.last = now
	f.accumulator += delta

	n := 0
	for f.accumulator >= f.step && n < f.maxSteps {
		f.accumulator -= f.step
		n++
	}
	if n == f.maxSteps && f.accumulator >= f.step {
		f.accumulator = 0
	}
	return n
}
