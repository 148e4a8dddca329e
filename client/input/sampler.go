// Package input turns device events for the controlling client into intents
// and the commands that carry them to the server.
package input

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/intent"
	"github.com/automoto/netplayer/shared/logger"
	"github.com/automoto/netplayer/shared/messages"
	"github.com/automoto/netplayer/shared/netconfig"
)

// Sender delivers a command to the server. network.Client.SendMessage fits.
type Sender func(msg any) error

// Sampler holds the local player's pending intent. It stays disabled until
// the client learns which entity it controls, and drops every event until
// then. Aim is kept locally and never sent.
type Sampler struct {
	send   Sender
	camera Camera
	aim    *AimRig

	enabled atomic.Bool
	move    intent.Cell[math.Vec2]
	jump    intent.Cell[float64]
	target  intent.Cell[math.Vec2]
	origin  intent.Cell[math.Vec2]

	log *logrus.Entry
}

// NewSampler wires a sampler to its command sender, camera and aim rig. aim
// may be nil when nothing is rendered.
func NewSampler(send Sender, camera Camera, aim *AimRig) *Sampler {
	return &Sampler{
		send:   send,
		camera: camera,
		aim:    aim,
		log:    logger.Component("input"),
	}
}

// Enable starts accepting events. Call once the local player is known.
func (s *Sampler) Enable() { s.enabled.Store(true) }

// Enabled reports whether events are being accepted.
func (s *Sampler) Enabled() bool { return s.enabled.Load() }

// SetOrigin records the player's world position, the pivot for aiming.
func (s *Sampler) SetOrigin(pos math.Vec2) { s.origin.Store(pos) }

// OnMove handles a 2D move event. The stored vector is normalized and a
// canceled action clears it.
func (s *Sampler) OnMove(phase netconfig.InputPhase, value math.Vec2) {
	if !s.Enabled() {
		return
	}
	if phase == netconfig.PhaseCanceled {
		value = math.Vec2{}
	}
	value = intent.NormalizeMove(value)
	s.move.Store(value)
	if phase.SendsCommand() {
		s.dispatch(messages.MoveIntent{X: value.X, Y: value.Y})
	}
}

// OnMoveAxis handles a 1D move event, clamped to [-1, 1].
func (s *Sampler) OnMoveAxis(phase netconfig.InputPhase, axis float64) {
	if !s.Enabled() {
		return
	}
	if phase == netconfig.PhaseCanceled {
		axis = 0
	}
	value := intent.AxisMove(axis)
	s.move.Store(value)
	if phase.SendsCommand() {
		s.dispatch(messages.MoveIntent{X: value.X, Y: value.Y})
	}
}

// OnJump handles the jump button. The level is forwarded as is; edge and
// cooldown handling happen in the jump gate on the server.
func (s *Sampler) OnJump(phase netconfig.InputPhase, level float64) {
	if !s.Enabled() {
		return
	}
	if phase == netconfig.PhaseCanceled {
		level = 0
	}
	s.jump.Store(level)
	if phase.SendsCommand() {
		s.dispatch(messages.JumpIntent{Level: level})
	}
}

// OnAim converts a screen point to world space, stores it and turns the
// aim rig toward it.
func (s *Sampler) OnAim(screen math.Vec2) {
	if !s.Enabled() {
		return
	}
	world := s.camera.ScreenToWorld(screen)
	s.target.Store(world)
	if s.aim != nil {
		s.aim.LookAt(s.origin.Load(), world)
	}
}

// Intent returns the current local intent.
func (s *Sampler) Intent() intent.Intent {
	return intent.Intent{
		Move: s.move.Load(),
		Jump: s.jump.Load(),
		Aim:  s.target.Load(),
	}
}

// dispatch sends without retrying; failures are logged and dropped.
func (s *Sampler) dispatch(msg any) {
	if err := s.send(msg); err != nil {
		s.log.WithError(err).Debugf("dropped %T", msg)
	}
}
