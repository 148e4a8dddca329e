package input

import "github.com/yohamta/donburi/features/math"

// Camera maps screen pixels to world units.
type Camera interface {
	ScreenToWorld(screen math.Vec2) math.Vec2
}

// OrthoCamera is a 2D camera centred on Position, with Zoom screen pixels per
// world unit.
type OrthoCamera struct {
	Position math.Vec2
	Zoom     float64
	Width    float64
	Height   float64
}

func (c *OrthoCamera) ScreenToWorld(screen math.Vec2) math.Vec2 {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return math.Vec2{
		X: c.Position.X + (screen.X-c.Width/2)/zoom,
		Y: c.Position.Y + (screen.Y-c.Height/2)/zoom,
	}
}
