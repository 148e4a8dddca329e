package core

import (
	stdmath "math"
	"testing"
	"time"

	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/server/config"
	"github.com/automoto/netplayer/shared/leveldata"
	"github.com/automoto/netplayer/shared/netcomponents"
	"github.com/automoto/netplayer/shared/netconfig"
)

const eps = 1e-6

func TestPlayerFallsAndLands(t *testing.T) {
	s := newTestServer(t, leveldata.FlatLevel(20, 10, 1))
	_, p := joinPlayer(t, s, "alice")

	p.body.Teleport(10, 5)
	stepN(s, 1)
	if p.Grounded() {
		t.Fatal("expected player in the air to be ungrounded")
	}
	if p.StateID() != netconfig.Fall {
		t.Errorf("expected fall state, got %v", p.StateID())
	}

	stepN(s, 120)
	if !p.Grounded() {
		t.Fatal("expected player to land")
	}
	if got := p.Feet().Y; stdmath.Abs(got-9) > eps {
		t.Errorf("expected feet on ground top at 9, got %v", got)
	}
	if p.Velocity().Y != 0 {
		t.Errorf("expected vertical velocity cleared on landing, got %v", p.Velocity().Y)
	}

	state := netcomponents.NetPlayerState.Get(p.entry())
	if !state.Grounded || state.StateID != netconfig.Idle {
		t.Errorf("expected replicated grounded idle state, got %+v", state)
	}
	pos := netcomponents.NetPosition.Get(p.entry())
	if stdmath.Abs(pos.Y-9) > eps || stdmath.Abs(pos.X-10) > eps {
		t.Errorf("expected replicated position (10, 9), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestPlayerJumpRespectsGroundAndCooldown(t *testing.T) {
	s := newTestServer(t, leveldata.FlatLevel(20, 10, 1))
	_, p := joinPlayer(t, s, "alice")
	p.SubmitJumpIntent(1)

	var jumps []time.Duration
	dt := s.clock.Seconds()
	for i := 0; i < 180; i++ {
		now := s.clock.Consume()
		grounded := p.ground.Grounded(p.body.Feet())
		if p.Tick(now, dt) {
			if !grounded {
				t.Fatalf("jumped while airborne at %v", now)
			}
			jumps = append(jumps, now)
		}
	}

	if len(jumps) < 2 {
		t.Fatalf("expected repeated jumps while held, got %v", jumps)
	}
	if jumps[0] != 0 {
		t.Errorf("expected a never-jumped player to jump on the first tick, got %v", jumps[0])
	}
	for i := 1; i < len(jumps); i++ {
		if gap := jumps[i] - jumps[i-1]; gap <= netconfig.DefaultJumpCooldown {
			t.Errorf("jumps %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestPlayerJumpLeavesGround(t *testing.T) {
	s := newTestServer(t, leveldata.FlatLevel(20, 10, 1))
	_, p := joinPlayer(t, s, "alice")
	p.SubmitJumpIntent(1)
	stepN(s, 1)

	if p.Velocity().Y >= 0 {
		t.Fatalf("expected upward velocity after jump, got %v", p.Velocity().Y)
	}
	if p.Feet().Y >= 9 {
		t.Errorf("expected feet above ground after jump, got %v", p.Feet().Y)
	}
	p.SubmitJumpIntent(0)
	stepN(s, 1)
	if p.StateID() != netconfig.Jump {
		t.Errorf("expected jump state while rising, got %v", p.StateID())
	}
}

func TestBodyStopsAtWall(t *testing.T) {
	data := leveldata.FlatLevel(20, 10, 1)
	data.GroundRects = append(data.GroundRects, leveldata.Rect{X: 12, Y: 7, W: 1, H: 2})
	s := newTestServer(t, data)
	_, p := joinPlayer(t, s, "alice")

	p.SubmitMoveIntent(1, 0)
	stepN(s, 120)

	right := p.Feet().X + BodyWidth/2
	if right > 12+eps {
		t.Errorf("expected body stopped at wall x=12, right edge at %v", right)
	}
	if right < 11.9 {
		t.Errorf("expected body to reach the wall, right edge at %v", right)
	}
}

func TestDeadPlayerIgnoresIntent(t *testing.T) {
	s := newTestServer(t, leveldata.FlatLevel(20, 10, 1))
	_, p := joinPlayer(t, s, "alice")
	p.ApplyDamage(netconfig.DefaultMaxHealth, 0)

	start := p.Feet().X
	p.SubmitMoveIntent(1, 0)
	p.SubmitJumpIntent(1)
	stepN(s, 30)

	if stdmath.Abs(p.Feet().X-start) > eps {
		t.Errorf("expected dead player to stay put, moved from %v to %v", start, p.Feet().X)
	}
	if p.StateID() != netconfig.Dead {
		t.Errorf("expected dead state, got %v", p.StateID())
	}
	state := netcomponents.NetPlayerState.Get(p.entry())
	if state.Health != 0 || state.StateID != netconfig.Dead {
		t.Errorf("expected replicated dead state, got %+v", state)
	}
}

func TestKinematicPlayerMovesOnBothAxes(t *testing.T) {
	s := newTestServer(t, leveldata.FlatLevel(20, 10, 1), func(c *config.Config) {
		c.Movement = netconfig.DefaultMovement(netconfig.ModelKinematic)
	})
	_, p := joinPlayer(t, s, "alice")
	p.body.Teleport(10, 5)

	p.SubmitMoveIntent(0, -1)
	stepN(s, 30)

	// Speed 3 for half a second with no gravity.
	if got := p.Feet().Y; stdmath.Abs(got-3.5) > 1e-3 {
		t.Errorf("expected feet at 3.5 after rising 1.5 units, got %v", got)
	}
}

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name     string
		alive    bool
		grounded bool
		vel      math.Vec2
		want     netconfig.StateID
	}{
		{"idle", true, true, math.Vec2{}, netconfig.Idle},
		{"running", true, true, math.Vec2{X: -2}, netconfig.Running},
		{"below running threshold", true, true, math.Vec2{X: 0.05}, netconfig.Idle},
		{"rising", true, false, math.Vec2{Y: -3}, netconfig.Jump},
		{"falling", true, false, math.Vec2{Y: 3}, netconfig.Fall},
		{"dead overrides", false, true, math.Vec2{X: 4}, netconfig.Dead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveState(tt.alive, tt.grounded, tt.vel); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
