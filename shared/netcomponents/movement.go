package netcomponents

import (
	"github.com/automoto/netplayer/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetMovementData replicates the movement tunables chosen at spawn so a
// controlling client can predict with the same model the server runs.
type NetMovementData struct {
	Config netconfig.MovementConfig
}

var NetMovement = donburi.NewComponentType[NetMovementData]()
