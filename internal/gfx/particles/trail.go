// Package particles implements the dust trail kicked up behind a running
// character: a fixed pool of particles reused in round-robin order.
package particles

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/krpors/titania/internal/core/geom"
)

// Config holds the tuning for a trail.
type Config struct {
	Capacity       int     `json:"capacity"`         // Number of pooled particles
	EmitIntervalMS int     `json:"emit_interval_ms"` // Minimum time between emissions
	Life           int     `json:"life"`             // Initial life in ticks
	Spread         float64 `json:"spread"`           // Horizontal jitter around the origin
	SizeMin        float64 `json:"size_min"`
	SizeMax        float64 `json:"size_max"`
	RiseMin        float64 `json:"rise_min"` // Initial upward speed range (px/s)
	RiseMax        float64 `json:"rise_max"`
	Gravity        float64 `json:"gravity"` // Downward acceleration (px/s²)
}

// DefaultConfig returns the trail used by the player.
func DefaultConfig() Config {
	return Config{
		Capacity:       20,
		EmitIntervalMS: 25,
		Life:           20,
		Spread:         2,
		SizeMin:        2,
		SizeMax:        5,
		RiseMin:        100,
		RiseMax:        150,
		Gravity:        3000,
	}
}

// Validate checks the configuration for values the trail cannot work with.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("trail capacity must be positive, got %d", c.Capacity)
	}
	if c.EmitIntervalMS < 0 {
		return fmt.Errorf("trail emit interval must not be negative, got %d", c.EmitIntervalMS)
	}
	if c.Life <= 0 {
		return fmt.Errorf("trail life must be positive, got %d", c.Life)
	}
	if c.SizeMin > c.SizeMax {
		return fmt.Errorf("trail size range inverted: %g > %g", c.SizeMin, c.SizeMax)
	}
	if c.RiseMin > c.RiseMax {
		return fmt.Errorf("trail rise range inverted: %g > %g", c.RiseMin, c.RiseMax)
	}
	return nil
}

// EmitInterval returns the emission interval as a duration.
func (c Config) EmitInterval() time.Duration {
	return time.Duration(c.EmitIntervalMS) * time.Millisecond
}

// Particle is a single pooled particle.
type Particle struct {
	X, Y  float64
	W, H  float64
	DY    float64
	Alpha uint8
	Life  int
}

// Alive reports whether the particle should be drawn.
func (p Particle) Alive() bool { return p.Life >= 0 }

// Rect returns the particle's world rectangle.
func (p Particle) Rect() geom.Rect {
	return geom.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Trail is a fixed-capacity ring of particles.
type Trail struct {
	cfg       Config
	particles []Particle
	next      int
	lastEmit  time.Duration
	rng       *rand.Rand
}

// NewTrail allocates the whole pool up front. Every particle starts dead.
// rng may be nil, in which case a time-seeded source is used.
func NewTrail(cfg Config, rng *rand.Rand) (*Trail, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t := &Trail{
		cfg:       cfg,
		particles: make([]Particle, cfg.Capacity),
		rng:       rng,
	}
	for i := range t.particles {
		t.particles[i] = Particle{W: 3, H: 3, Alpha: 255, Life: -1}
	}
	return t, nil
}

// Capacity returns the pool size.
func (t *Trail) Capacity() int { return len(t.particles) }

// Particles returns the pool. Callers must skip particles that are not
// Alive and must not modify the slice.
func (t *Trail) Particles() []Particle { return t.particles }

// LiveCount returns the number of particles currently drawn.
func (t *Trail) LiveCount() int {
	n := 0
	for _, p := range t.particles {
		if p.Alive() {
			n++
		}
	}
	return n
}

// Live returns a copy of the particles that should be drawn.
func (t *Trail) Live() []Particle {
	live := make([]Particle, 0, len(t.particles))
	for _, p := range t.particles {
		if p.Alive() {
			live = append(live, p)
		}
	}
	return live
}

// MaybeEmit writes a fresh particle near origin if the emit interval has
// elapsed since the previous emission. It reports whether it emitted.
func (t *Trail) MaybeEmit(now time.Duration, origin geom.Point) bool {
	if now-t.lastEmit < t.cfg.EmitInterval() {
		return false
	}

	p := &t.particles[t.next%len(t.particles)]
	size := t.between(t.cfg.SizeMin, t.cfg.SizeMax)
	p.X = t.between(origin.X-t.cfg.Spread, origin.X+t.cfg.Spread)
	p.Y = origin.Y
	p.W = size
	p.H = size
	p.DY = -t.between(t.cfg.RiseMin, t.cfg.RiseMax)
	p.Life = t.cfg.Life
	p.Alpha = 255

	t.next = (t.next + 1) % len(t.particles)
	t.lastEmit = now
	return true
}

// Tick ages and moves every particle, dead or alive.
func (t *Trail) Tick(dt float64) {
	for i := range t.particles {
		p := &t.particles[i]
		p.Life--
		p.Y += p.DY * dt
		p.DY += t.cfg.Gravity * dt
		if p.Life >= 0 {
			p.Alpha = uint8(255 * p.Life / t.cfg.Life)
		}
	}
}

func (t *Trail) between(min, max float64) float64 {
	return min + t.rng.Float64()*(max-min)
}
