package network

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/netcomponents"
)

// PlayerView is one replicated player decoded from a snapshot. Fields stay
// nil when the snapshot did not carry them.
type PlayerView struct {
	ID       esync.NetworkId
	Position *netcomponents.NetPositionData
	Velocity *netcomponents.NetVelocityData
	State    *netcomponents.NetPlayerStateData
	Movement *netcomponents.NetMovementData
}

// Pos returns the position, or the zero vector.
func (v PlayerView) Pos() math.Vec2 {
	if v.Position == nil {
		return math.Vec2{}
	}
	return v.Position.Vec()
}

// Vel returns the velocity, or the zero vector.
func (v PlayerView) Vel() math.Vec2 {
	if v.Velocity == nil {
		return math.Vec2{}
	}
	return v.Velocity.Vec()
}

// DecodeSnapshot deserializes every entity's components. Components that fail
// to decode are skipped.
func DecodeSnapshot(snapshot esync.WorldSnapshot) []PlayerView {
	views := make([]PlayerView, 0, len(snapshot))
	for _, ent := range snapshot {
		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}
		views = append(views, collectView(ent.Id, compData))
	}
	return views
}

func collectView(id esync.NetworkId, compData []any) PlayerView {
	view := PlayerView{ID: id}
	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetPositionData:
			view.Position = &v
		case netcomponents.NetVelocityData:
			view.Velocity = &v
		case netcomponents.NetPlayerStateData:
			view.State = &v
		case netcomponents.NetMovementData:
			view.Movement = &v
		}
	}
	return view
}
