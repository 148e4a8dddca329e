package netcomponents

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// NetPositionData is the authoritative top-left corner of a player body.
type NetPositionData struct {
	X, Y float64
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

// Vec returns the position as a vector.
func (p NetPositionData) Vec() math.Vec2 {
	return math.Vec2{X: p.X, Y: p.Y}
}

// LerpNetPosition interpolates between two snapshots; remote players are
// drawn between the last two positions the server sent.
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	return &NetPositionData{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}
