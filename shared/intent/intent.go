// Package intent holds the player's latest control intent and the single-slot
// cell that carries it from the network receive path to the simulation tick.
package intent

import (
	"sync/atomic"

	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/gamemath"
)

// Intent is one sample of control intent. Move is either a normalized
// direction or, for axis-driven models, an X axis in [-1, 1] with Y == 0.
type Intent struct {
	Move math.Vec2
	Jump float64
	Aim  math.Vec2
}

// Axis returns the horizontal move axis clamped to [-1, 1].
func (in Intent) Axis() float64 {
	return gamemath.Clamp(in.Move.X, -1, 1)
}

// Jumping reports whether any jump level is held.
func (in Intent) Jumping() bool {
	return in.Jump != 0
}

// NormalizeMove returns a vector sample scaled to unit length, the form the
// server stores for move commands.
func NormalizeMove(v math.Vec2) math.Vec2 {
	return gamemath.Normalize(v)
}

// AxisMove builds a move vector from a 1D axis value.
func AxisMove(axis float64) math.Vec2 {
	return math.Vec2{X: gamemath.Clamp(axis, -1, 1)}
}

// Cell is a last-write-wins slot. One goroutine stores, another loads; the most
// recent Store is visible to the next Load in full. Older values are dropped
// without ever being observed, and there is no ordering beyond recency.
type Cell[T any] struct {
	v atomic.Pointer[T]
}

// Store replaces the held value.
func (c *Cell[T]) Store(v T) {
	c.v.Store(&v)
}

// Load returns the latest stored value, or the zero value if nothing was stored.
func (c *Cell[T]) Load() T {
	if p := c.v.Load(); p != nil {
		return *p
	}
	var zero T
	return zero
}

// Pending is the server-side intent buffer for one player: the latest move
// and jump samples received from its controlling client.
type Pending struct {
	move Cell[math.Vec2]
	jump Cell[float64]
}

// SetMove normalizes and stores a move sample.
func (p *Pending) SetMove(v math.Vec2) {
	p.move.Store(NormalizeMove(v))
}

// SetJump stores a jump level.
func (p *Pending) SetJump(level float64) {
	p.jump.Store(level)
}

// Snapshot returns the latest intent for the tick.
func (p *Pending) Snapshot() Intent {
	return Intent{Move: p.move.Load(), Jump: p.jump.Load()}
}
