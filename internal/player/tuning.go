package player

import "fmt"

// Tuning holds every constant of the movement model. Distances are pixels,
// speeds px/s and accelerations px/s².
type Tuning struct {
	SpawnX float64 `json:"spawn_x"`
	SpawnY float64 `json:"spawn_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	MinRunSpeed float64 `json:"min_run_speed"`
	MaxRunSpeed float64 `json:"max_run_speed"`

	JumpVelocity        float64 `json:"jump_velocity"`
	JumpCancelThreshold float64 `json:"jump_cancel_threshold"` // Upward dy below which releasing jump cuts it short
	Gravity             float64 `json:"gravity"`
	SnapEpsilon         float64 `json:"snap_epsilon"` // Gap kept between feet and floor after landing

	BumpLife   float64 `json:"bump_life"`
	BumpDecay  float64 `json:"bump_decay"`  // Life lost per second
	BumpGrowth float64 `json:"bump_growth"` // Scale gained per second

	HardLandingSpeed float64 `json:"hard_landing_speed"` // Impact dy reported as a hard landing
}

// DefaultTuning returns the stock movement model.
func DefaultTuning() Tuning {
	return Tuning{
		SpawnX:              120,
		SpawnY:              70,
		Width:               22,
		Height:              36,
		MinRunSpeed:         300,
		MaxRunSpeed:         400,
		JumpVelocity:        1000,
		JumpCancelThreshold: -200,
		Gravity:             3000,
		SnapEpsilon:         0.001,
		BumpLife:            255,
		BumpDecay:           500,
		BumpGrowth:          1,
		HardLandingSpeed:    600,
	}
}

// Validate rejects tunings the body cannot move with.
func (t Tuning) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("invalid player size: %gx%g", t.Width, t.Height)
	}
	if t.MinRunSpeed < 0 || t.MinRunSpeed > t.MaxRunSpeed {
		return fmt.Errorf("invalid run speed range: %g..%g", t.MinRunSpeed, t.MaxRunSpeed)
	}
	if t.JumpVelocity <= 0 {
		return fmt.Errorf("jump velocity must be positive, got %g", t.JumpVelocity)
	}
	if t.JumpCancelThreshold > 0 {
		return fmt.Errorf("jump cancel threshold must not be positive, got %g", t.JumpCancelThreshold)
	}
	if t.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %g", t.Gravity)
	}
	// Feet resting exactly on a tile top would put the floor row inside
	// every footprint, so the gap must be positive.
	if t.SnapEpsilon <= 0 {
		return fmt.Errorf("snap epsilon must be positive, got %g", t.SnapEpsilon)
	}
	if t.BumpDecay < 0 || t.BumpLife < 0 {
		return fmt.Errorf("invalid bump life %g or decay %g", t.BumpLife, t.BumpDecay)
	}
	return nil
}
