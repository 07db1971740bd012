// Package anim cycles through sprite sheet frames on a wall-clock interval.
package anim

import (
	"image"
	"time"
)

// Cycle is a looping sequence of frames on a sprite sheet.
type Cycle struct {
	frames        []image.Rectangle
	frameDuration time.Duration
	current       int
	lastAdvance   time.Duration
}

// NewCycle creates an empty cycle that advances every frameDuration. The
// capacity hint sizes the frame slice up front.
func NewCycle(frameDuration time.Duration, capacity int) *Cycle {
	if capacity < 0 {
		capacity = 0
	}
	return &Cycle{
		frames:        make([]image.Rectangle, 0, capacity),
		frameDuration: frameDuration,
	}
}

// Append adds a frame to the end of the cycle.
func (c *Cycle) Append(r image.Rectangle) {
	c.frames = append(c.frames, r)
}

// Len returns the number of frames.
func (c *Cycle) Len() int { return len(c.frames) }

// Index returns the active frame index.
func (c *Cycle) Index() int { return c.current }

// FrameDuration returns the interval between frames.
func (c *Cycle) FrameDuration() time.Duration { return c.frameDuration }

// Advance moves to the next frame if at least one frame duration has passed
// since the previous advance. now is any monotonic timestamp.
func (c *Cycle) Advance(now time.Duration) {
	if len(c.frames) == 0 {
		return
	}
	if now-c.lastAdvance < c.frameDuration {
		return
	}
	c.current = (c.current + 1) % len(c.frames)
	c.lastAdvance = now
}

// Current returns the active frame. It panics if no frame was appended.
func (c *Cycle) Current() image.Rectangle {
	if len(c.frames) == 0 {
		panic("anim: Current called on a cycle without frames")
	}
	return c.frames[c.current]
}

// Reset rewinds to the first frame.
func (c *Cycle) Reset() {
	c.current = 0
}

// ResetAt rewinds to the first frame and restarts the frame timer at now, so
// the first frame is shown for a full duration.
func (c *Cycle) ResetAt(now time.Duration) {
	c.current = 0
	c.lastAdvance = now
}
