package netcomponents

import (
	"github.com/automoto/netplayer/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetPlayerStateData is the authoritative per-player state every observer
// receives. Health and MaxHealth are written only by the server.
type NetPlayerStateData struct {
	StateID   netconfig.StateID
	Direction int // -1 left, 1 right
	Health    uint32
	MaxHealth uint32
	Grounded  bool
	Name      string
	IsLocal   bool // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
