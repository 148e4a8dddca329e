package messages

import (
	"github.com/leap-fish/necs/esync"

	"github.com/automoto/netplayer/shared/netconfig"
)

// JoinRequest is sent by a client after connecting to request joining the game.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// NetworkID names the entity this client controls; it is the only place a
// client learns which replicated player is its own.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	SessionID  string
	ServerName string
	TickRate   int
	MaxHealth  uint32
	Movement   netconfig.MovementConfig
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
