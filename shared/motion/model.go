// Package motion turns control intent into horizontal motion and gates jumps.
// Vertical motion (gravity, collision response) belongs to the physics body
// that owns the state; models only shape velocity.
package motion

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/gamemath"
	"github.com/automoto/netplayer/shared/intent"
	"github.com/automoto/netplayer/shared/netconfig"
)

// ErrInvalidConfig is wrapped by every tunables validation failure.
var ErrInvalidConfig = errors.New("invalid movement config")

// State is the physics state a model steps. The Y axis points down.
type State struct {
	Position math.Vec2
	Velocity math.Vec2
}

// MotionModel advances a state by one fixed step given the current intent.
type MotionModel interface {
	Step(in intent.Intent, st State, dt float64) State
}

// DirectVelocity sets horizontal velocity straight from the axis and eases it
// toward zero when there is no intent.
type DirectVelocity struct {
	Speed   float64
	Damping float64
}

func (m DirectVelocity) Step(in intent.Intent, st State, _ float64) State {
	axis := in.Axis()
	if axis != 0 {
		st.Velocity.X = axis * m.Speed
		return st
	}
	st.Velocity.X = gamemath.DampToward(st.Velocity.X, m.Damping)
	return st
}

// ForceAccumulation adds an impulse of axis*StartSpeed every step and clamps
// the result to MaxSpeed.
type ForceAccumulation struct {
	StartSpeed float64
	MaxSpeed   float64
	Damping    float64
}

func (m ForceAccumulation) Step(in intent.Intent, st State, _ float64) State {
	axis := in.Axis()
	if axis != 0 {
		st.Velocity.X = gamemath.ClampSpeed(st.Velocity.X+axis*m.StartSpeed, m.MaxSpeed)
		return st
	}
	st.Velocity.X = gamemath.ClampSpeed(gamemath.DampToward(st.Velocity.X, m.Damping), m.MaxSpeed)
	return st
}

// Kinematic drives both axes from the move vector, for bodies that ignore
// gravity. Velocity is replaced outright every step.
type Kinematic struct {
	Speed float64
}

func (m Kinematic) Step(in intent.Intent, st State, _ float64) State {
	st.Velocity = gamemath.Scale(gamemath.Normalize(in.Move), m.Speed)
	return st
}

// New builds the model selected by cfg.Model.
func New(cfg netconfig.MovementConfig) (MotionModel, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	switch cfg.Model {
	case netconfig.ModelDirectVelocity:
		return DirectVelocity{Speed: cfg.Speed, Damping: cfg.Damping}, nil
	case netconfig.ModelForceAccumulation:
		return ForceAccumulation{StartSpeed: cfg.StartSpeed, MaxSpeed: cfg.MaxSpeed, Damping: cfg.Damping}, nil
	case netconfig.ModelKinematic:
		return Kinematic{Speed: cfg.Speed}, nil
	}
	return nil, fmt.Errorf("%w: model %d", ErrInvalidConfig, cfg.Model)
}

// Validate checks the tunables the selected model depends on.
func Validate(cfg netconfig.MovementConfig) error {
	switch cfg.Model {
	case netconfig.ModelDirectVelocity, netconfig.ModelKinematic:
		if cfg.Speed < 0 {
			return fmt.Errorf("%w: speed %v is negative", ErrInvalidConfig, cfg.Speed)
		}
	case netconfig.ModelForceAccumulation:
		if cfg.StartSpeed < 0 {
			return fmt.Errorf("%w: start speed %v is negative", ErrInvalidConfig, cfg.StartSpeed)
		}
		if cfg.MaxSpeed <= 0 {
			return fmt.Errorf("%w: max speed must be positive, got %v", ErrInvalidConfig, cfg.MaxSpeed)
		}
	default:
		return fmt.Errorf("%w: unknown model %d", ErrInvalidConfig, cfg.Model)
	}
	if cfg.Model != netconfig.ModelKinematic && (cfg.Damping <= 0 || cfg.Damping > 1) {
		return fmt.Errorf("%w: damping %v outside (0, 1]", ErrInvalidConfig, cfg.Damping)
	}
	if cfg.JumpPower < 0 {
		return fmt.Errorf("%w: jump power %v is negative", ErrInvalidConfig, cfg.JumpPower)
	}
	if cfg.JumpCooldown < 0 {
		return fmt.Errorf("%w: jump cooldown %v is negative", ErrInvalidConfig, cfg.JumpCooldown)
	}
	return nil
}
