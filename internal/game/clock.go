package game

import "time"

// Clock turns a monotonic time source into per-frame deltas.
type Clock struct {
	now      func() time.Duration
	last     time.Duration
	maxDelta time.Duration
	paused   bool
}

// MonotonicNow returns a time source counting from the moment it was created.
func MonotonicNow() func() time.Duration {
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}

// NewClock creates a clock reading now. Deltas longer than maxDelta are
// clamped so a stall does not tunnel the player through the floor.
func NewClock(now func() time.Duration, maxDelta time.Duration) *Clock {
	return &Clock{now: now, last: now(), maxDelta: maxDelta}
}

// Tick returns the seconds elapsed since the previous Tick, clamped to the
// maximum delta. It returns 0 while paused.
func (c *Clock) Tick() float64 {
	now := c.now()
	d := now - c.last
	c.last = now

	if c.paused || d < 0 {
		return 0
	}
	if d > c.maxDelta {
		d = c.maxDelta
	}
	return d.Seconds()
}

// SetPaused pauses or resumes the clock. The baseline keeps moving while
// paused, so resuming yields a normal delta.
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
	c.last = c.now()
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool { return c.paused }
