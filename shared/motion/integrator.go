package motion

import (
	"time"

	"github.com/automoto/netplayer/shared/intent"
	"github.com/automoto/netplayer/shared/netconfig"
)

// Integrator applies a MotionModel and the jump rules for one body. It is
// owned by a single tick goroutine.
type Integrator struct {
	model     MotionModel
	jumpPower float64
	cooldown  time.Duration

	lastJump time.Duration
	jumped   bool
}

// NewIntegrator builds an integrator from tunables.
func NewIntegrator(cfg netconfig.MovementConfig) (*Integrator, error) {
	model, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Integrator{
		model:     model,
		jumpPower: cfg.JumpPower,
		cooldown:  cfg.JumpCooldown,
	}, nil
}

// Step runs the model and then the jump gate. grounded must come from a ground
// check made earlier in the same tick. now is the simulation clock. A zero
// jump power disables jumping.
func (g *Integrator) Step(in intent.Intent, st State, grounded bool, now time.Duration, dt float64) (State, bool) {
	st = g.model.Step(in, st, dt)
	if g.jumpPower == 0 || !g.CanJump(grounded, in, now) {
		return st, false
	}
	st.Velocity.Y = 0
	st.Velocity.Y -= g.jumpPower
	g.lastJump = now
	g.jumped = true
	return st, true
}

// CanJump reports whether every jump condition holds: grounded, jump held, and
// strictly more than the cooldown since the last jump. A body that has never
// jumped only needs the first two.
func (g *Integrator) CanJump(grounded bool, in intent.Intent, now time.Duration) bool {
	if !grounded {
		return false
	}
	if !in.Jumping() {
		return false
	}
	if g.jumped && now-g.lastJump <= g.cooldown {
		return false
	}
	return true
}

// LastJump returns the simulation time of the last jump and whether one happened.
func (g *Integrator) LastJump() (time.Duration, bool) {
	return g.lastJump, g.jumped
}
