package anim

import (
	"image"
	"testing"
	"time"
)

func newRunCycle() *Cycle {
	c := NewCycle(30*time.Millisecond, 3)
	for i := 0; i < 3; i++ {
		c.Append(image.Rect(16*i, 16, 16*i+16, 32))
	}
	return c
}

func TestAdvanceWaitsForFrameDuration(t *testing.T) {
	c := newRunCycle()

	c.Advance(29 * time.Millisecond)
	if c.Index() != 0 {
		t.Errorf("Expected index 0 before the interval elapsed, got %d", c.Index())
	}

	c.Advance(30 * time.Millisecond)
	if c.Index() != 1 {
		t.Errorf("Expected index 1 at exactly one interval, got %d", c.Index())
	}

	// The timer restarts from the last advance.
	c.Advance(45 * time.Millisecond)
	if c.Index() != 1 {
		t.Errorf("Expected index 1 mid-interval, got %d", c.Index())
	}
}

func TestAdvanceWraps(t *testing.T) {
	c := newRunCycle()
	now := time.Duration(0)
	for i := 0; i < 3; i++ {
		now += 30 * time.Millisecond
		c.Advance(now)
	}
	if c.Index() != 0 {
		t.Errorf("Expected index to wrap to 0, got %d", c.Index())
	}
	want := image.Rect(0, 16, 16, 32)
	if got := c.Current(); got != want {
		t.Errorf("Expected frame %v, got %v", want, got)
	}
}

func TestReset(t *testing.T) {
	c := newRunCycle()
	c.Advance(time.Second)
	if c.Index() == 0 {
		t.Fatal("Expected cycle to have advanced")
	}
	c.Reset()
	if c.Index() != 0 {
		t.Errorf("Expected index 0 after reset, got %d", c.Index())
	}

	c.Advance(2 * time.Second)
	c.ResetAt(3 * time.Second)
	c.Advance(3*time.Second + 10*time.Millisecond)
	if c.Index() != 0 {
		t.Errorf("Expected ResetAt to restart the timer, got index %d", c.Index())
	}
}

func TestCurrentPanicsWithoutFrames(t *testing.T) {
	c := NewCycle(time.Millisecond, 0)
	c.Advance(time.Second) // no frames: no-op

	defer func() {
		if recover() == nil {
			t.Error("Expected Current to panic on an empty cycle")
		}
	}()
	c.Current()
}
