package network

import (
	stdmath "math"
	"time"

	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/gamemath"
	"github.com/automoto/netplayer/shared/intent"
	"github.com/automoto/netplayer/shared/motion"
	"github.com/automoto/netplayer/shared/netconfig"
	"github.com/automoto/netplayer/shared/tick"
)

// Correction defaults, in world units and blend fraction per snapshot.
const (
	DefaultSnapDistance = 1.0
	DefaultBlend        = 0.2
)

// Predictor runs the local player's motion model ahead of the server and
// pulls the result back toward each authoritative snapshot. Only the axes the
// model fully owns are predicted: X always, Y only when gravity is off. The
// other axis follows the server verbatim.
type Predictor struct {
	SnapDistance float64
	Blend        float64

	model    motion.MotionModel
	clock    *tick.Accumulator
	predictY bool

	state       motion.State
	initialized bool
}

// NewPredictor builds a predictor for the tunables the server replicated.
func NewPredictor(cfg netconfig.MovementConfig, step time.Duration) (*Predictor, error) {
	model, err := motion.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Predictor{
		SnapDistance: DefaultSnapDistance,
		Blend:        DefaultBlend,
		model:        model,
		clock:        tick.NewAccumulator(step, 8),
		predictY:     cfg.GravityScale == 0,
	}, nil
}

// Advance runs the fixed steps due after elapsed with the local intent and
// returns how many ran. Nothing runs before the first snapshot.
func (p *Predictor) Advance(in intent.Intent, elapsed time.Duration) int {
	steps := p.clock.Advance(elapsed)
	if !p.initialized {
		return 0
	}
	dt := p.clock.Seconds()
	for i := 0; i < steps; i++ {
		p.clock.Consume()
		next := p.model.Step(in, p.state, dt)
		p.state.Velocity.X = next.Velocity.X
		p.state.Position.X += next.Velocity.X * dt
		if p.predictY {
			p.state.Velocity.Y = next.Velocity.Y
			p.state.Position.Y += next.Velocity.Y * dt
		}
	}
	return steps
}

// Reconcile applies an authoritative position and velocity. The first call
// adopts it outright. Afterwards a predicted axis snaps when its error exceeds
// SnapDistance and otherwise blends by Blend. Reports whether it snapped.
func (p *Predictor) Reconcile(pos, vel math.Vec2) (snapped bool) {
	if !p.initialized {
		p.state = motion.State{Position: pos, Velocity: vel}
		p.initialized = true
		return true
	}

	var snapX, snapY bool
	p.state.Position.X, p.state.Velocity.X, snapX = p.correct(p.state.Position.X, p.state.Velocity.X, pos.X, vel.X)
	if p.predictY {
		p.state.Position.Y, p.state.Velocity.Y, snapY = p.correct(p.state.Position.Y, p.state.Velocity.Y, pos.Y, vel.Y)
	} else {
		p.state.Position.Y, p.state.Velocity.Y = pos.Y, vel.Y
	}
	return snapX || snapY
}

func (p *Predictor) correct(predicted, predictedVel, server, serverVel float64) (float64, float64, bool) {
	if stdmath.Abs(predicted-server) > p.SnapDistance {
		return server, serverVel, true
	}
	return gamemath.Lerp(predicted, server, p.Blend), predictedVel, false
}

// Position returns the predicted position.
func (p *Predictor) Position() math.Vec2 { return p.state.Position }

// Interpolated returns the predicted position carried forward through the
// unconsumed part of the current step, for drawing between fixed steps.
func (p *Predictor) Interpolated() math.Vec2 {
	pos := p.state.Position
	lead := p.clock.Alpha() * p.clock.Seconds()
	pos.X += p.state.Velocity.X * lead
	if p.predictY {
		pos.Y += p.state.Velocity.Y * lead
	}
	return pos
}

// Velocity returns the predicted velocity.
func (p *Predictor) Velocity() math.Vec2 { return p.state.Velocity }

// Ready reports whether a snapshot has been applied.
func (p *Predictor) Ready() bool { return p.initialized }
