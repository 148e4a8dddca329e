package core

import (
	stdmath "math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/features/math"
)

// Player collision box in world units.
const (
	BodyWidth  = 0.75
	BodyHeight = 1.5
)

// Body is the server-only physics collaborator for one player: it owns the
// resolv object, applies gravity and resolves collisions against ground
// geometry. Velocity is in world units per second, Y down.
type Body struct {
	Object   *resolv.Object
	Velocity math.Vec2

	gravity      float64
	gravityScale float64
	maxFall      float64
}

// NewBody adds a body to space with its feet at (x, y).
func NewBody(space *resolv.Space, x, y, gravity, gravityScale, maxFall float64) *Body {
	w, h := toSpace(BodyWidth), toSpace(BodyHeight)
	obj := resolv.NewObject(toSpace(x)-w/2, toSpace(y)-h, w, h, tagPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	space.Add(obj)

	return &Body{
		Object:       obj,
		gravity:      gravity,
		gravityScale: gravityScale,
		maxFall:      maxFall,
	}
}

// Feet returns the bottom centre of the body in world units.
func (b *Body) Feet() math.Vec2 {
	return math.Vec2{
		X: toWorld(b.Object.X + b.Object.W/2),
		Y: toWorld(b.Object.Y + b.Object.H),
	}
}

// Step applies gravity and moves the body by Velocity*dt, stopping at ground.
func (b *Body) Step(dt float64) {
	if g := b.gravity * b.gravityScale; g != 0 {
		b.Velocity.Y += g * dt
		if b.maxFall > 0 && b.Velocity.Y > b.maxFall {
			b.Velocity.Y = b.maxFall
		}
	}

	// --- Resolve horizontal collision ---
	dx := toSpace(b.Velocity.X * dt)
	if dx != 0 {
		checkDist := dx
		if dx > 0 {
			checkDist++
		}
		if check := b.Object.Check(checkDist, 0, TagGround); check != nil {
			if solids := check.ObjectsByTags(TagGround); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dx = contact.X()
				b.Velocity.X = 0
			}
		}
		b.Object.X += dx
	}

	// --- Resolve vertical collision ---
	dy := toSpace(b.Velocity.Y * dt)
	if dy != 0 {
		checkDist := dy
		if dy > 0 {
			checkDist++
		}
		if check := b.Object.Check(0, checkDist, TagGround); check != nil {
			if solids := check.ObjectsByTags(TagGround); len(solids) > 0 {
				contact := check.ContactWithObject(nearestVertical(b.Object, solids, dy))
				dy = contact.Y()
				b.Velocity.Y = 0
			}
		}
		b.Object.Y += dy
	}

	b.Object.Update()
}

// Teleport places the body's feet at (x, y) and clears its velocity.
func (b *Body) Teleport(x, y float64) {
	b.Object.X = toSpace(x) - b.Object.W/2
	b.Object.Y = toSpace(y) - b.Object.H
	b.Velocity = math.Vec2{}
	b.Object.Update()
}

// Remove takes the body out of its space.
func (b *Body) Remove() {
	if b.Object.Space != nil {
		b.Object.Space.Remove(b.Object)
	}
}

// nearestVertical picks the solid closest to obj along the direction of dy.
func nearestVertical(obj *resolv.Object, solids []*resolv.Object, dy float64) *resolv.Object {
	best := solids[0]
	bestGap := stdmath.Inf(1)
	for _, s := range solids {
		var gap float64
		if dy > 0 {
			gap = s.Y - (obj.Y + obj.H)
		} else {
			gap = obj.Y - (s.Y + s.H)
		}
		if gap >= -1e-9 && gap < bestGap {
			best, bestGap = s, gap
		}
	}
	return best
}
