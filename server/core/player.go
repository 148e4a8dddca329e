package core

import (
	stdmath "math"
	"time"

	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/health"
	"github.com/automoto/netplayer/shared/intent"
	"github.com/automoto/netplayer/shared/leveldata"
	"github.com/automoto/netplayer/shared/motion"
	"github.com/automoto/netplayer/shared/netcomponents"
	"github.com/automoto/netplayer/shared/netconfig"
)

// runningThreshold is the horizontal speed below which a grounded player is idle.
const runningThreshold = 0.1

// PlayerParams describes a player to spawn.
type PlayerParams struct {
	ClientID  string
	Name      string
	SessionID string
	Spawn     leveldata.SpawnPoint

	MaxHealth    uint32
	Movement     netconfig.MovementConfig
	Gravity      float64
	MaxFallSpeed float64
	ProbeRadius  float64
}

// Player is the server-side composition of one connected player: its
// replicated entity, health, latest intents, physics body and jump gate.
// Everything except the intent cells is touched only by the tick goroutine.
type Player struct {
	ClientID  string
	Name      string
	SessionID string
	Entity    donburi.Entity
	NetworkID esync.NetworkId

	Health *health.Controller

	world      donburi.World
	pending    intent.Pending
	body       *Body
	ground     *GroundResolver
	integrator *motion.Integrator
	movement   netconfig.MovementConfig

	grounded     bool
	facing       int
	lastAttacker uint
	hazardHits   map[int]time.Duration
}

// NewPlayer creates the player's entity in world, marks it for replication
// and adds its body to the level. Health starts at MaxHealth.
func NewPlayer(world donburi.World, level *ServerLevel, p PlayerParams) (*Player, error) {
	integrator, err := motion.NewIntegrator(p.Movement)
	if err != nil {
		return nil, err
	}

	entity := world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
		netcomponents.NetMovement,
	)
	entry := world.Entry(entity)

	netcomponents.NetPosition.Set(entry, &netcomponents.NetPositionData{X: p.Spawn.X, Y: p.Spawn.Y})
	netcomponents.NetVelocity.Set(entry, &netcomponents.NetVelocityData{})
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		StateID:   netconfig.Idle,
		Direction: 1,
		Health:    p.MaxHealth,
		MaxHealth: p.MaxHealth,
		Name:      p.Name,
	})
	netcomponents.NetMovement.Set(entry, &netcomponents.NetMovementData{Config: p.Movement})

	// Position and velocity interpolate on clients; state and tunables snap.
	err = srvsync.NetworkSync(world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetPlayerState,
		netcomponents.NetMovement,
	)
	if err != nil {
		world.Remove(entity)
		return nil, err
	}

	pl := &Player{
		ClientID:   p.ClientID,
		Name:       p.Name,
		SessionID:  p.SessionID,
		Entity:     entity,
		Health:     health.New(p.MaxHealth),
		world:      world,
		body:       NewBody(level.Space, p.Spawn.X, p.Spawn.Y, p.Gravity, p.Movement.GravityScale, p.MaxFallSpeed),
		ground:     NewGroundResolver(level.Space, p.ProbeRadius),
		integrator: integrator,
		movement:   p.Movement,
		facing:     1,
		hazardHits: make(map[int]time.Duration),
	}
	if nid := esync.GetNetworkId(entry); nid != nil {
		pl.NetworkID = *nid
	}

	pl.Health.Subscribe(health.ListenerFuncs{
		OnChanged: pl.writeHealth,
	})
	return pl, nil
}

// SubmitMoveIntent stores the latest move vector. Safe from any goroutine.
func (p *Player) SubmitMoveIntent(x, y float64) {
	p.pending.SetMove(math.Vec2{X: x, Y: y})
}

// SubmitJumpIntent stores the latest jump level. Safe from any goroutine.
func (p *Player) SubmitJumpIntent(level float64) {
	p.pending.SetJump(level)
}

// Intent returns the latest submitted intent.
func (p *Player) Intent() intent.Intent {
	return p.pending.Snapshot()
}

// Tick advances the player one fixed step: ground check, integrator, body,
// then the replicated components. now is the simulation clock.
func (p *Player) Tick(now time.Duration, dt float64) (jumped bool) {
	p.grounded = p.ground.Grounded(p.body.Feet())

	in := p.pending.Snapshot()
	if !p.Health.Alive() {
		in = intent.Intent{}
	}

	st := motion.State{Position: p.body.Feet(), Velocity: p.body.Velocity}
	st, jumped = p.integrator.Step(in, st, p.grounded, now, dt)
	p.body.Velocity = st.Velocity
	p.body.Step(dt)

	if axis := in.Axis(); axis > 0 {
		p.facing = 1
	} else if axis < 0 {
		p.facing = -1
	}

	p.writeComponents()
	return jumped
}

// ApplyDamage records the attacker and forwards to the health controller.
func (p *Player) ApplyDamage(amount uint32, attacker uint) {
	if !p.Health.Alive() || amount == 0 {
		return
	}
	p.lastAttacker = attacker
	p.Health.ApplyDamage(amount)
}

// Grounded returns the result of the last ground check.
func (p *Player) Grounded() bool { return p.grounded }

// Feet returns the body's bottom centre in world units.
func (p *Player) Feet() math.Vec2 { return p.body.Feet() }

// Velocity returns the body's velocity in world units per second.
func (p *Player) Velocity() math.Vec2 { return p.body.Velocity }

// Bounds returns the body rectangle in world units.
func (p *Player) Bounds() leveldata.Rect {
	o := p.body.Object
	return leveldata.Rect{X: toWorld(o.X), Y: toWorld(o.Y), W: toWorld(o.W), H: toWorld(o.H)}
}

// StateID derives the replicated coarse state.
func (p *Player) StateID() netconfig.StateID {
	return DeriveState(p.Health.Alive(), p.grounded, p.body.Velocity)
}

// Movement returns the player's tunables.
func (p *Player) Movement() netconfig.MovementConfig { return p.movement }

func (p *Player) remove() {
	p.body.Remove()
	p.ground.Remove()
	if p.world.Valid(p.Entity) {
		p.world.Remove(p.Entity)
	}
}

func (p *Player) entry() *donburi.Entry {
	if !p.world.Valid(p.Entity) {
		return nil
	}
	return p.world.Entry(p.Entity)
}

func (p *Player) writeComponents() {
	entry := p.entry()
	if entry == nil {
		return
	}
	feet := p.body.Feet()
	pos := netcomponents.NetPosition.Get(entry)
	pos.X, pos.Y = feet.X, feet.Y

	vel := netcomponents.NetVelocity.Get(entry)
	vel.SpeedX, vel.SpeedY = p.body.Velocity.X, p.body.Velocity.Y

	state := netcomponents.NetPlayerState.Get(entry)
	state.Grounded = p.grounded
	state.Direction = p.facing
	state.StateID = p.StateID()
}

func (p *Player) writeHealth(current, max uint32) {
	entry := p.entry()
	if entry == nil {
		return
	}
	state := netcomponents.NetPlayerState.Get(entry)
	state.Health = current
	state.MaxHealth = max
	if current == 0 {
		state.StateID = netconfig.Dead
	}
}

// DeriveState maps physics and health to a coarse state.
func DeriveState(alive, grounded bool, vel math.Vec2) netconfig.StateID {
	switch {
	case !alive:
		return netconfig.Dead
	case !grounded && vel.Y < 0:
		return netconfig.Jump
	case !grounded:
		return netconfig.Fall
	case stdmath.Abs(vel.X) >= runningThreshold:
		return netconfig.Running
	default:
		return netconfig.Idle
	}
}
