package input

import (
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/netconfig"
)

// VectorTracker turns a polled 2D value into action phases: leaving zero is
// Started, changing while held is Performed, returning to zero is Canceled.
type VectorTracker struct {
	last math.Vec2
}

// Next reports the phase for v and whether anything happened.
func (t *VectorTracker) Next(v math.Vec2) (netconfig.InputPhase, bool) {
	prev := t.last
	t.last = v
	return phaseFor(prev != (math.Vec2{}), v != (math.Vec2{}), prev != v)
}

// ButtonTracker does the same for a scalar level such as a trigger or key.
type ButtonTracker struct {
	last float64
}

func (t *ButtonTracker) Next(level float64) (netconfig.InputPhase, bool) {
	prev := t.last
	t.last = level
	return phaseFor(prev != 0, level != 0, prev != level)
}

func phaseFor(wasActive, active, changed bool) (netconfig.InputPhase, bool) {
	switch {
	case !wasActive && active:
		return netconfig.PhaseStarted, true
	case wasActive && !active:
		return netconfig.PhaseCanceled, true
	case active && changed:
		return netconfig.PhasePerformed, true
	default:
		return netconfig.PhaseWaiting, false
	}
}
