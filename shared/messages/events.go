package messages

// HealthChangedEvent is broadcast whenever a player's authoritative health
// changes. Fields are ordered (health, max).
type HealthChangedEvent struct {
	NetworkID uint
	Health    uint32
	MaxHealth uint32
}

// DeathEvent is broadcast once when a player's health reaches zero.
type DeathEvent struct {
	VictimID uint // NetworkId of victim
	KillerID uint // NetworkId of killer (0 if environmental)
}

// SpawnEvent is broadcast when a new player spawns.
type SpawnEvent struct {
	NetworkID  uint
	PlayerName string
	X, Y       float64
}

// DespawnEvent is broadcast when a player is removed.
type DespawnEvent struct {
	NetworkID uint
}
