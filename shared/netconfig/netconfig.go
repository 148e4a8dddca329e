// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

import (
	"fmt"
	"time"
)

// StateID identifies the coarse player state derived each tick.
type StateID int

const (
	StateNone StateID = iota - 1

	Idle
	Running
	Jump
	Fall
	Dead
)

var stateNames = map[StateID]string{
	Idle:    "idle",
	Running: "running",
	Jump:    "jump",
	Fall:    "fall",
	Dead:    "dead",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ModelID selects the horizontal movement strategy.
type ModelID int

const (
	ModelDirectVelocity    ModelID = iota // velocity = axis * speed, lerp damping
	ModelForceAccumulation                // impulse per tick, clamped to max speed
	ModelKinematic                        // velocity = move vector * speed, no gravity
)

var modelNames = map[ModelID]string{
	ModelDirectVelocity:    "direct",
	ModelForceAccumulation: "force",
	ModelKinematic:         "kinematic",
}

func (m ModelID) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "unknown"
}

// Models lists every movement model in id order.
func Models() []ModelID {
	return []ModelID{ModelDirectVelocity, ModelForceAccumulation, ModelKinematic}
}

// ParseModelID maps a textual model name ("direct", "force", "kinematic")
// back to its ModelID.
func ParseModelID(name string) (ModelID, bool) {
	for id, n := range modelNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// MarshalText lets model ids appear by name in JSON tunables files.
func (m ModelID) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ModelID) UnmarshalText(b []byte) error {
	id, ok := ParseModelID(string(b))
	if !ok {
		return &UnknownModelError{Name: string(b)}
	}
	*m = id
	return nil
}

// UnknownModelError is returned when a model name does not match any ModelID.
type UnknownModelError struct {
	Name string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown movement model %q", e.Name)
}

// InputPhase mirrors the lifecycle of a bound input action.
type InputPhase int

const (
	PhaseWaiting InputPhase = iota
	PhaseStarted
	PhasePerformed
	PhaseCanceled
)

// SendsCommand reports whether a value in this phase is forwarded to the server.
func (p InputPhase) SendsCommand() bool {
	return p == PhaseStarted || p == PhasePerformed || p == PhaseCanceled
}

// ActionID represents a logical player action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionJump
	ActionCount // Must be last - used for array sizing
)

// MovementConfig is the per-player tunable set. The server owns it and
// replicates it to observers once at spawn.
type MovementConfig struct {
	Model        ModelID       `json:"model" jsonschema:"description=Movement model name: direct or force or kinematic"`
	Speed        float64       `json:"speed" jsonschema:"description=Horizontal speed for the direct and kinematic models"`
	StartSpeed   float64       `json:"startSpeed" jsonschema:"description=Per-tick impulse for the force model"`
	MaxSpeed     float64       `json:"maxSpeed" jsonschema:"description=Horizontal clamp for the force model"`
	Damping      float64       `json:"damping" jsonschema:"maximum=1,description=Lerp factor toward zero when there is no move intent"`
	JumpPower    float64       `json:"jumpPower"`
	JumpCooldown time.Duration `json:"jumpCooldown" jsonschema:"description=Nanoseconds between jumps"`
	GravityScale float64       `json:"gravityScale"`
}

// Default tunables.
const (
	DefaultMaxHealth    uint32 = 10
	DefaultSpeed               = 4.0
	DefaultStartSpeed          = 1.5
	DefaultMaxSpeed            = 6.0
	DefaultJumpPower           = 8.0
	DefaultJumpCooldown        = 300 * time.Millisecond

	DirectDamping = 0.1
	ForceDamping  = 0.3
)

// DefaultMovement returns the preset for a movement model.
func DefaultMovement(model ModelID) MovementConfig {
	cfg := MovementConfig{
		Model:        model,
		Speed:        DefaultSpeed,
		StartSpeed:   DefaultStartSpeed,
		MaxSpeed:     DefaultMaxSpeed,
		Damping:      DirectDamping,
		JumpPower:    DefaultJumpPower,
		JumpCooldown: DefaultJumpCooldown,
		GravityScale: 1,
	}
	switch model {
	case ModelForceAccumulation:
		cfg.Damping = ForceDamping
	case ModelKinematic:
		cfg.Speed = 3
		cfg.GravityScale = 0
		cfg.JumpPower = 0
	}
	return cfg
}
