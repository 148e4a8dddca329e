// Package device polls ebiten keyboard, gamepad and mouse state once per frame
// and feeds the changes into an input.Sampler as action phases.
package device

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/client/input"
	"github.com/automoto/netplayer/shared/netconfig"
)

// Binding lists the keys and standard gamepad buttons for one action.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps actions to their inputs.
type Bindings map[netconfig.ActionID]Binding

// DefaultBindings are arrow keys or WASD plus space, and the d-pad plus the
// bottom face button.
func DefaultBindings() Bindings {
	return Bindings{
		netconfig.ActionMoveLeft: {
			Keys:                   []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
		},
		netconfig.ActionMoveRight: {
			Keys:                   []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
		},
		netconfig.ActionMoveUp: {
			Keys:                   []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
		},
		netconfig.ActionMoveDown: {
			Keys:                   []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
		},
		netconfig.ActionJump: {
			Keys:                   []ebiten.Key{ebiten.KeySpace, ebiten.KeyX},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
		},
	}
}

// AnalogDeadzone is the stick magnitude below which an axis reads as zero.
const AnalogDeadzone = 0.25

// Poller reads devices and forwards changes. Vector mode sends the full move
// direction; axis mode sends only the horizontal component.
type Poller struct {
	sampler  *input.Sampler
	bindings Bindings
	vector   bool

	move   input.VectorTracker
	jump   input.ButtonTracker
	cursor [2]int

	gamepadIDs []ebiten.GamepadID
}

func NewPoller(sampler *input.Sampler, bindings Bindings, vector bool) *Poller {
	return &Poller{sampler: sampler, bindings: bindings, vector: vector}
}

// Update polls once. Call from the ebiten Update callback.
func (p *Poller) Update() {
	p.gamepadIDs = ebiten.AppendGamepadIDs(p.gamepadIDs[:0])

	move := p.moveVector()
	if !p.vector {
		move.Y = 0
	}
	if phase, ok := p.move.Next(move); ok {
		if p.vector {
			p.sampler.OnMove(phase, move)
		} else {
			p.sampler.OnMoveAxis(phase, move.X)
		}
	}

	level := 0.0
	if p.pressed(netconfig.ActionJump) {
		level = 1
	}
	if phase, ok := p.jump.Next(level); ok {
		p.sampler.OnJump(phase, level)
	}

	x, y := ebiten.CursorPosition()
	if x != p.cursor[0] || y != p.cursor[1] {
		p.cursor = [2]int{x, y}
		p.sampler.OnAim(math.Vec2{X: float64(x), Y: float64(y)})
	}
}

func (p *Poller) moveVector() math.Vec2 {
	var v math.Vec2
	if p.pressed(netconfig.ActionMoveLeft) {
		v.X--
	}
	if p.pressed(netconfig.ActionMoveRight) {
		v.X++
	}
	if p.pressed(netconfig.ActionMoveUp) {
		v.Y--
	}
	if p.pressed(netconfig.ActionMoveDown) {
		v.Y++
	}
	if v != (math.Vec2{}) {
		return v
	}

	// Fall back to the left stick when no digital input is held.
	for _, id := range p.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vert := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if h > AnalogDeadzone || h < -AnalogDeadzone {
			v.X = h
		}
		if vert > AnalogDeadzone || vert < -AnalogDeadzone {
			v.Y = vert
		}
		if v != (math.Vec2{}) {
			return v
		}
	}
	return v
}

func (p *Poller) pressed(action netconfig.ActionID) bool {
	binding := p.bindings[action]
	for _, key := range binding.Keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	for _, id := range p.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, btn := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, btn) {
				return true
			}
		}
	}
	return false
}
