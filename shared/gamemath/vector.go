package gamemath

import (
	stdmath "math"

	"github.com/yohamta/donburi/features/math"
)

// Length returns the euclidean length of v.
func Length(v math.Vec2) float64 {
	return stdmath.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func Normalize(v math.Vec2) math.Vec2 {
	l := Length(v)
	if l == 0 {
		return math.Vec2{}
	}
	return math.Vec2{X: v.X / l, Y: v.Y / l}
}

// Scale multiplies both components of v by s.
func Scale(v math.Vec2, s float64) math.Vec2 {
	return math.Vec2{X: v.X * s, Y: v.Y * s}
}

// Distance returns the distance between two points.
func Distance(a, b math.Vec2) float64 {
	return Length(math.Vec2{X: b.X - a.X, Y: b.Y - a.Y})
}

// LookAtDegrees returns the angle, in degrees counter-clockwise from +X, of the
// direction from origin to target. A target on the origin yields 0.
func LookAtDegrees(origin, target math.Vec2) float64 {
	dir := Normalize(math.Vec2{X: target.X - origin.X, Y: target.Y - origin.Y})
	if dir.X == 0 && dir.Y == 0 {
		return 0
	}
	return stdmath.Atan2(dir.Y, dir.X) * 180 / stdmath.Pi
}

// ShortestArc returns the signed rotation in degrees, within (-180, 180], that
// turns from toward to.
func ShortestArc(from, to float64) float64 {
	d := stdmath.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
