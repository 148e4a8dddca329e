package netcomponents

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// NetVelocityData is replicated so clients can extrapolate between snapshots.
type NetVelocityData struct {
	SpeedX, SpeedY float64
}

var NetVelocity = donburi.NewComponentType[NetVelocityData]()

// Vec returns the velocity as a vector.
func (v NetVelocityData) Vec() math.Vec2 {
	return math.Vec2{X: v.SpeedX, Y: v.SpeedY}
}

func LerpNetVelocity(from, to NetVelocityData, t float64) *NetVelocityData {
	return &NetVelocityData{
		SpeedX: from.SpeedX + (to.SpeedX-from.SpeedX)*t,
		SpeedY: from.SpeedY + (to.SpeedY-from.SpeedY)*t,
	}
}
