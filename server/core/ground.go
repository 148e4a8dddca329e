package core

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/gamemath"
)

// DefaultProbeRadius is the ground probe radius in world units.
const DefaultProbeRadius = 0.1

// GroundResolver answers "is this body standing on ground" once per tick with
// a small circle probe at the feet. Broad phase goes through the resolv space,
// the narrow phase is a circle against each candidate's rectangle.
type GroundResolver struct {
	probe  *resolv.Object
	radius float64 // world units
	tags   []string
}

// NewGroundResolver adds a probe to space. With no tags the probe tests
// against TagGround.
func NewGroundResolver(space *resolv.Space, radius float64, tags ...string) *GroundResolver {
	if radius <= 0 {
		radius = DefaultProbeRadius
	}
	if len(tags) == 0 {
		tags = []string{TagGround}
	}
	// resolv's cell lookup stops one pixel short of an object's far edge, so
	// the probe box carries an extra pixel to reach the circle's bottom.
	d := toSpace(radius*2) + 1
	probe := resolv.NewObject(0, 0, d, d, tagProbe)
	space.Add(probe)
	return &GroundResolver{probe: probe, radius: radius, tags: tags}
}

// Grounded moves the probe to feet and reports whether it overlaps any
// tagged object.
func (g *GroundResolver) Grounded(feet math.Vec2) bool {
	r := toSpace(g.radius)
	g.probe.X = toSpace(feet.X) - r
	g.probe.Y = toSpace(feet.Y) - r
	g.probe.Update()

	check := g.probe.Check(0, 0, g.tags...)
	if check == nil {
		return false
	}
	centre := math.Vec2{X: toSpace(feet.X), Y: toSpace(feet.Y)}
	for _, obj := range check.ObjectsByTags(g.tags...) {
		if circleOverlapsRect(centre, r, obj.X, obj.Y, obj.W, obj.H) {
			return true
		}
	}
	return false
}

// Remove takes the probe out of its space.
func (g *GroundResolver) Remove() {
	if g.probe.Space != nil {
		g.probe.Space.Remove(g.probe)
	}
}

// circleOverlapsRect treats touching as overlapping.
func circleOverlapsRect(c math.Vec2, r, x, y, w, h float64) bool {
	closest := math.Vec2{
		X: gamemath.Clamp(c.X, x, x+w),
		Y: gamemath.Clamp(c.Y, y, y+h),
	}
	return gamemath.Distance(c, closest) <= r
}
