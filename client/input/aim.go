package input

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/gamemath"
)

// DefaultAimDuration is the time the rig takes to face a new target, in seconds.
const DefaultAimDuration = 0.1

// AimRig eases a rotation toward the latest aim target along the shortest
// arc. It is visual only.
type AimRig struct {
	Duration float32

	angle float64
	tween *gween.Tween
}

func NewAimRig() *AimRig {
	return &AimRig{Duration: DefaultAimDuration}
}

// LookAt restarts the rotation toward target as seen from origin.
func (r *AimRig) LookAt(origin, target math.Vec2) {
	to := r.angle + gamemath.ShortestArc(r.angle, gamemath.LookAtDegrees(origin, target))
	r.tween = gween.New(float32(r.angle), float32(to), r.Duration, ease.OutQuad)
}

// Update advances the rotation by dt seconds and returns the current angle.
func (r *AimRig) Update(dt float64) float64 {
	if r.tween == nil {
		return r.angle
	}
	current, done := r.tween.Update(float32(dt))
	r.angle = float64(current)
	if done {
		r.tween = nil
	}
	return r.angle
}

// Angle returns the current rotation in degrees.
func (r *AimRig) Angle() float64 { return r.angle }

// Turning reports whether a rotation is in progress.
func (r *AimRig) Turning() bool { return r.tween != nil }
