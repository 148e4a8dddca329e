package protocol

import (
	"sync"

	"github.com/automoto/netplayer/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPosition    uint = 10
	SyncIDNetVelocity    uint = 11
	SyncIDNetPlayerState uint = 12
	SyncIDNetMovement    uint = 13
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPosition uint8 = 10
	InterpIDNetVelocity uint8 = 11
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
// Registration is process-wide, so repeated calls return the first result.
func RegisterComponents() error {
	registerOnce.Do(func() {
		registerErr = register()
	})
	return registerErr
}

func register() error {
	// Register with interpolation for smooth client-side rendering
	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetVelocity,
		netcomponents.NetVelocityData{},
		netcomponents.NetVelocity,
		esync.WithInterpFn(InterpIDNetVelocity, netcomponents.LerpNetVelocity),
	); err != nil {
		return err
	}

	// PlayerState: no interpolation (discrete state changes)
	if err := esync.RegisterComponent(
		SyncIDNetPlayerState,
		netcomponents.NetPlayerStateData{},
		netcomponents.NetPlayerState,
	); err != nil {
		return err
	}

	// Movement tunables: set once at spawn
	if err := esync.RegisterComponent(
		SyncIDNetMovement,
		netcomponents.NetMovementData{},
		netcomponents.NetMovement,
	); err != nil {
		return err
	}

	return nil
}
