package particles

import (
	"math/rand"
	"testing"
	"time"

	"github.com/krpors/titania/internal/core/geom"
)

func newTestTrail(t *testing.T, capacity int) *Trail {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Capacity = capacity
	trail, err := NewTrail(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Failed to create trail: %v", err)
	}
	return trail
}

func TestNewTrailStartsDead(t *testing.T) {
	trail := newTestTrail(t, 5)
	if trail.Capacity() != 5 {
		t.Errorf("Expected capacity 5, got %d", trail.Capacity())
	}
	if trail.LiveCount() != 0 {
		t.Errorf("Expected no live particles, got %d", trail.LiveCount())
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 0
	if _, err := NewTrail(cfg, nil); err == nil {
		t.Error("Expected error for zero capacity")
	}

	cfg = DefaultConfig()
	cfg.SizeMin, cfg.SizeMax = 5, 2
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for inverted size range")
	}
}

func TestMaybeEmitRespectsInterval(t *testing.T) {
	trail := newTestTrail(t, 4)
	origin := geom.Point{X: 100, Y: 50}

	if trail.MaybeEmit(10*time.Millisecond, origin) {
		t.Error("Expected no emission before the interval")
	}
	if !trail.MaybeEmit(25*time.Millisecond, origin) {
		t.Error("Expected emission at the interval")
	}
	if trail.MaybeEmit(40*time.Millisecond, origin) {
		t.Error("Expected no emission 15ms after the previous one")
	}
	if trail.LiveCount() != 1 {
		t.Errorf("Expected 1 live particle, got %d", trail.LiveCount())
	}
	if len(trail.Live()) != 1 {
		t.Errorf("Expected Live to return 1 particle, got %d", len(trail.Live()))
	}

	p := trail.Particles()[0]
	cfg := DefaultConfig()
	if p.X < origin.X-cfg.Spread || p.X > origin.X+cfg.Spread {
		t.Errorf("Expected x within spread of %g, got %g", origin.X, p.X)
	}
	if p.Y != origin.Y {
		t.Errorf("Expected y %g, got %g", origin.Y, p.Y)
	}
	if p.W < cfg.SizeMin || p.W > cfg.SizeMax || p.W != p.H {
		t.Errorf("Expected square size in [%g,%g], got %gx%g", cfg.SizeMin, cfg.SizeMax, p.W, p.H)
	}
	if p.DY > -cfg.RiseMin || p.DY < -cfg.RiseMax {
		t.Errorf("Expected upward dy in [-%g,-%g], got %g", cfg.RiseMax, cfg.RiseMin, p.DY)
	}
	if p.Life != cfg.Life || p.Alpha != 255 {
		t.Errorf("Expected life %d alpha 255, got life %d alpha %d", cfg.Life, p.Life, p.Alpha)
	}
}

func TestRoundRobinOverwritesSlotZero(t *testing.T) {
	const capacity = 4
	trail := newTestTrail(t, capacity)
	interval := DefaultConfig().EmitInterval()

	now := time.Duration(0)
	for i := 0; i < capacity; i++ {
		now += interval
		trail.MaybeEmit(now, geom.Point{X: 10, Y: 10})
	}
	slot0 := trail.Particles()[0]

	// Age the pool so the overwrite is visible in life as well as position.
	trail.Tick(1.0 / 60)
	if trail.Particles()[0].Life != slot0.Life-1 {
		t.Fatalf("Expected slot 0 to age to %d, got %d", slot0.Life-1, trail.Particles()[0].Life)
	}

	now += interval
	if !trail.MaybeEmit(now, geom.Point{X: 500, Y: 400}) {
		t.Fatal("Expected the (capacity+1)-th emission to happen")
	}
	got := trail.Particles()[0]
	if got.Y != 400 {
		t.Errorf("Expected slot 0 to be overwritten with y=400, got %g", got.Y)
	}
	if got.Life != DefaultConfig().Life {
		t.Errorf("Expected slot 0 life reset to %d, got %d", DefaultConfig().Life, got.Life)
	}
	if trail.Particles()[1].Y == 400 {
		t.Error("Expected slot 1 to keep its previous particle")
	}
}

func TestTickMovesAndAgesEveryParticle(t *testing.T) {
	trail := newTestTrail(t, 3)
	trail.MaybeEmit(time.Second, geom.Point{X: 0, Y: 100})

	before := trail.Particles()[0]
	dt := 0.01
	trail.Tick(dt)
	after := trail.Particles()[0]

	if after.Life != before.Life-1 {
		t.Errorf("Expected life %d, got %d", before.Life-1, after.Life)
	}
	wantY := before.Y + before.DY*dt
	if after.Y != wantY {
		t.Errorf("Expected y %g, got %g", wantY, after.Y)
	}
	wantDY := before.DY + DefaultConfig().Gravity*dt
	if after.DY != wantDY {
		t.Errorf("Expected dy %g, got %g", wantDY, after.DY)
	}
	if after.Alpha >= before.Alpha {
		t.Errorf("Expected alpha to fade, got %d -> %d", before.Alpha, after.Alpha)
	}

	// Dead slots are ticked too.
	if trail.Particles()[1].Life != -2 {
		t.Errorf("Expected dead slot life -2, got %d", trail.Particles()[1].Life)
	}
}

func TestParticlesExpire(t *testing.T) {
	trail := newTestTrail(t, 2)
	trail.MaybeEmit(time.Second, geom.Point{})
	for i := 0; i <= DefaultConfig().Life; i++ {
		trail.Tick(1.0 / 60)
	}
	if trail.LiveCount() != 0 {
		t.Errorf("Expected particle to expire, got %d live", trail.LiveCount())
	}
}
