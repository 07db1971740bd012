// Package player implements the player character: intent flags set by input,
// delta-time physics integration and collision resolution against the tile
// grid, one axis at a time.
package player

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/krpors/titania/internal/core/geom"
	"github.com/krpors/titania/internal/gfx/anim"
	"github.com/krpors/titania/internal/gfx/particles"
	"github.com/krpors/titania/internal/gfx/sheet"
	"github.com/krpors/titania/internal/world/tilegrid"
)

// State is the vertical movement state of the body.
type State int

const (
	Falling State = iota
	Grounded
	Jumping
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Pose selects which sprite the renderer draws.
type Pose int

const (
	PoseRest Pose = iota
	PoseMove
	PoseJump
	PoseFall
)

// Bump is the cosmetic callout shown after hitting a ceiling.
type Bump struct {
	Life   float64
	Scale  float64
	Anchor geom.Point
}

// Active reports whether the callout is still visible.
func (b Bump) Active() bool { return b.Life > 0 }

// Events reports what happened during one Update.
type Events struct {
	Jumped      bool
	Landed      bool
	ImpactSpeed float64 // dy at the moment of landing
	HardLanding bool
	Bumped      bool
}

// Body is the player character.
type Body struct {
	tuning Tuning
	grid   *tilegrid.Grid

	pos    geom.Point
	dx, dy float64
	facing int
	state  State
	hitbox geom.Rect

	movingLeft  bool
	movingRight bool
	jumpHeld    bool

	bump Bump

	moveCycle *anim.Cycle
	restCycle *anim.Cycle
	resting   bool
	jumpFrame image.Rectangle
	fallFrame image.Rectangle

	trail   *particles.Trail
	elapsed time.Duration
}

// New creates a body at the tuning's spawn point. Frames come from sh; the
// trail is built from trailCfg using rng (nil for a time-seeded source).
func New(tuning Tuning, grid *tilegrid.Grid, sh *sheet.Sheet, trailCfg particles.Config, rng *rand.Rand) (*Body, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if grid == nil {
		return nil, fmt.Errorf("player needs a tile grid")
	}
	if _, th := grid.TileSize(); tuning.SnapEpsilon >= th {
		return nil, fmt.Errorf("snap epsilon %g must be smaller than the tile height %g", tuning.SnapEpsilon, th)
	}

	moveCycle, err := sh.Cycle(sheet.Move)
	if err != nil {
		return nil, fmt.Errorf("failed to build move cycle: %w", err)
	}
	restCycle, err := sh.Cycle(sheet.Rest)
	if err != nil {
		return nil, fmt.Errorf("failed to build rest cycle: %w", err)
	}
	jumpFrame, err := sh.Frame(sheet.Jump)
	if err != nil {
		return nil, err
	}
	fallFrame, err := sh.Frame(sheet.Fall)
	if err != nil {
		return nil, err
	}

	trail, err := particles.NewTrail(trailCfg, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create trail: %w", err)
	}

	b := &Body{
		tuning:    tuning,
		grid:      grid,
		facing:    1,
		moveCycle: moveCycle,
		restCycle: restCycle,
		resting:   true,
		jumpFrame: jumpFrame,
		fallFrame: fallFrame,
		trail:     trail,
	}
	b.Respawn(geom.Point{X: tuning.SpawnX, Y: tuning.SpawnY})
	return b, nil
}

// Respawn places the body at p, airborne and at rest.
func (b *Body) Respawn(p geom.Point) {
	b.pos = p
	b.dx = b.tuning.MinRunSpeed
	b.dy = 0
	b.state = Falling
	b.movingLeft, b.movingRight, b.jumpHeld = false, false, false
	b.bump = Bump{}
	b.restCycle.ResetAt(b.elapsed)
	b.resting = true
	b.hitbox = b.rectAt(p.X, p.Y)
}

// SetMoveLeft sets the intent to run left.
func (b *Body) SetMoveLeft(on bool) {
	b.movingLeft = on
	b.settle()
}

// SetMoveRight sets the intent to run right.
func (b *Body) SetMoveRight(on bool) {
	b.movingRight = on
	b.settle()
}

// SetJumpIntent sets whether jump is held.
func (b *Body) SetJumpIntent(on bool) { b.jumpHeld = on }

// Stop clears both run intents.
func (b *Body) Stop() {
	b.movingLeft = false
	b.movingRight = false
	b.settle()
}

func (b *Body) settle() {
	if !b.movingLeft && !b.movingRight {
		b.dx = b.tuning.MinRunSpeed
	}
}

func (b *Body) moving() bool { return b.movingLeft || b.movingRight }

func (b *Body) rectAt(x, y float64) geom.Rect {
	return geom.Rect{X: x, Y: y, W: b.tuning.Width, H: b.tuning.Height}
}

// Update advances the body by dt seconds.
func (b *Body) Update(dt float64) Events {
	var ev Events
	t := &b.tuning
	b.elapsed += time.Duration(dt * float64(time.Second))

	if b.moving() {
		b.dx += (t.MinRunSpeed + t.MaxRunSpeed) / 2 * dt
		if b.dx > t.MaxRunSpeed {
			b.dx = t.MaxRunSpeed
		}
	}

	if b.moving() {
		if b.resting {
			b.moveCycle.ResetAt(b.elapsed)
			b.resting = false
		}
		b.moveCycle.Advance(b.elapsed)
		if b.state == Grounded {
			b.trail.MaybeEmit(b.elapsed, geom.Point{X: b.pos.X + t.Width/2, Y: b.pos.Y + t.Height})
		}
	} else if b.dy == 0 {
		if !b.resting {
			b.restCycle.ResetAt(b.elapsed)
			b.resting = true
		}
		b.restCycle.Advance(b.elapsed)
	}

	b.trail.Tick(dt)

	newx := b.pos.X
	if b.movingLeft {
		newx -= b.dx * dt
		b.facing = -1
	}
	if b.movingRight {
		newx += b.dx * dt
		b.facing = 1
	}

	if b.jumpHeld && b.state == Grounded && b.dy <= 0 {
		b.dy -= t.JumpVelocity
		b.state = Jumping
		ev.Jumped = true
	}
	if !b.jumpHeld && b.state == Jumping && b.dy < t.JumpCancelThreshold {
		b.dy = 0
		b.state = Falling
	}

	if newx != b.pos.X && !b.grid.Collides(b.rectAt(newx, b.pos.Y)) {
		b.pos.X = newx
	}

	b.dy += t.Gravity * dt
	newy := b.pos.Y + b.dy*dt

	if b.bump.Active() {
		b.bump.Life -= t.BumpDecay * dt
		b.bump.Scale += t.BumpGrowth * dt
	}

	b.resolveVertical(newy, &ev)

	b.hitbox = b.rectAt(b.pos.X, b.pos.Y)
	return ev
}

// resolveVertical moves the body to newy, or lands it, or bumps it against a
// ceiling. The query sweeps from the current position to the target so fast
// falls cannot skip a floor. While descending the sweep reaches at least
// twice the snap epsilon below the feet, which keeps a resting body in
// contact with its floor for any dt.
func (b *Body) resolveVertical(newy float64, ev *Events) {
	t := &b.tuning
	y := b.pos.Y

	if b.dy < 0 {
		sweep := geom.Rect{X: b.pos.X, Y: newy, W: t.Width, H: y + t.Height - newy}
		if b.grid.Collides(sweep) {
			b.jumpHeld = false
			b.dy = 0
			b.state = Falling
			b.bump = Bump{
				Life:   t.BumpLife,
				Scale:  1,
				Anchor: geom.Point{X: b.pos.X + t.Width/4, Y: b.pos.Y - t.Height/4},
			}
			ev.Bumped = true
			return
		}
		b.pos.Y = newy
		return
	}

	reach := max(newy, y+2*t.SnapEpsilon)
	sweep := geom.Rect{X: b.pos.X, Y: y, W: t.Width, H: reach + t.Height - y}
	if !b.grid.Collides(sweep) {
		b.pos.Y = newy
		b.state = Falling
		return
	}

	if top, ok := b.floorBelow(sweep); ok {
		b.pos.Y = top - t.Height - t.SnapEpsilon
	}
	if b.state != Grounded {
		ev.Landed = true
		ev.ImpactSpeed = b.dy
		ev.HardLanding = b.dy >= t.HardLandingSpeed
	}
	b.dy = 0
	b.state = Grounded
	b.jumpHeld = false
}

// floorBelow returns the top edge of the first solid tile row under the
// body's feet inside sweep.
func (b *Body) floorBelow(sweep geom.Rect) (float64, bool) {
	_, th := b.grid.TileSize()
	feet := b.pos.Y + b.tuning.Height
	x0, y0, x1, y1 := b.grid.Footprint(sweep)
	for ty := y0; ty <= y1; ty++ {
		top := float64(ty) * th
		if top < feet {
			continue
		}
		for tx := x0; tx <= x1; tx++ {
			if tilegrid.IsSolid(b.grid.TileCodeAt(tx, ty)) {
				return top, true
			}
		}
	}
	return 0, false
}

// Position returns the top-left corner of the hitbox.
func (b *Body) Position() geom.Point { return b.pos }

// Size returns the hitbox size.
func (b *Body) Size() (w, h float64) { return b.tuning.Width, b.tuning.Height }

// Velocity returns the run speed and the vertical velocity.
func (b *Body) Velocity() (dx, dy float64) { return b.dx, b.dy }

// Facing returns -1 when facing left and 1 when facing right.
func (b *Body) Facing() int { return b.facing }

// State returns the vertical movement state.
func (b *Body) State() State { return b.state }

// OnGround reports whether the body stands on a surface.
func (b *Body) OnGround() bool { return b.state == Grounded }

// Hitbox returns the collision rectangle as of the last Update.
func (b *Body) Hitbox() geom.Rect { return b.hitbox }

// Trail returns the dust trail.
func (b *Body) Trail() *particles.Trail { return b.trail }

// Bump returns the ceiling callout.
func (b *Body) Bump() Bump { return b.bump }

// Elapsed returns the simulated time the body has lived through.
func (b *Body) Elapsed() time.Duration { return b.elapsed }

// Tuning returns the movement constants.
func (b *Body) Tuning() Tuning { return b.tuning }

// Pose picks the sprite to draw from the current motion.
func (b *Body) Pose() Pose {
	switch {
	case b.dy < 0:
		return PoseJump
	case b.dy > 0:
		return PoseFall
	case b.moving():
		return PoseMove
	default:
		return PoseRest
	}
}

// CurrentFrame returns the sheet rectangle for the current pose.
func (b *Body) CurrentFrame() image.Rectangle {
	switch b.Pose() {
	case PoseJump:
		return b.jumpFrame
	case PoseFall:
		return b.fallFrame
	case PoseMove:
		return b.moveCycle.Current()
	default:
		return b.restCycle.Current()
	}
}
