package motion

import (
	"errors"
	stdmath "math"
	"testing"
	"time"

	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/netplayer/shared/intent"
	"github.com/automoto/netplayer/shared/netconfig"
)

const dt = 1.0 / 60

func move(axis float64) intent.Intent {
	return intent.Intent{Move: intent.AxisMove(axis)}
}

func TestDirectVelocitySetsSpeed(t *testing.T) {
	m := DirectVelocity{Speed: 4, Damping: netconfig.DirectDamping}
	st := m.Step(move(-1), State{Velocity: math.Vec2{X: 2, Y: 3}}, dt)
	if st.Velocity.X != -4 {
		t.Errorf("expected vx -4, got %v", st.Velocity.X)
	}
	if st.Velocity.Y != 3 {
		t.Errorf("expected vy untouched, got %v", st.Velocity.Y)
	}
}

func TestDampingApproachesZeroMonotonically(t *testing.T) {
	models := map[string]MotionModel{
		"direct": DirectVelocity{Speed: 4, Damping: netconfig.DirectDamping},
		"force":  ForceAccumulation{StartSpeed: 1.5, MaxSpeed: 6, Damping: netconfig.ForceDamping},
	}
	for name, m := range models {
		t.Run(name, func(t *testing.T) {
			st := State{Velocity: math.Vec2{X: 4}}
			prev := st.Velocity.X
			for i := 0; i < 300; i++ {
				st = m.Step(intent.Intent{}, st, dt)
				if st.Velocity.X < 0 {
					t.Fatalf("tick %d: overshot to %v", i, st.Velocity.X)
				}
				if st.Velocity.X > prev {
					t.Fatalf("tick %d: grew from %v to %v", i, prev, st.Velocity.X)
				}
				prev = st.Velocity.X
			}
			if prev != 0 {
				t.Errorf("expected rest, got %v", prev)
			}
		})
	}
}

func TestDirectDampingFactor(t *testing.T) {
	m := DirectVelocity{Speed: 4, Damping: 0.1}
	st := m.Step(intent.Intent{}, State{Velocity: math.Vec2{X: 10}}, dt)
	if stdmath.Abs(st.Velocity.X-9) > 1e-9 {
		t.Errorf("expected 9 after one damped tick, got %v", st.Velocity.X)
	}
}

func TestForceAccumulationClamps(t *testing.T) {
	m := ForceAccumulation{StartSpeed: 1.5, MaxSpeed: 6, Damping: 0.3}
	for _, axis := range []float64{1, -1, 0.4} {
		st := State{}
		for i := 0; i < 100; i++ {
			st = m.Step(move(axis), st, dt)
			if stdmath.Abs(st.Velocity.X) > 6 {
				t.Fatalf("axis %v tick %d: |vx| %v exceeds max speed", axis, i, st.Velocity.X)
			}
		}
		if stdmath.Abs(st.Velocity.X) != 6 {
			t.Errorf("axis %v: expected saturation at 6, got %v", axis, st.Velocity.X)
		}
	}
}

func TestForceAccumulationClampsInheritedVelocity(t *testing.T) {
	m := ForceAccumulation{StartSpeed: 1.5, MaxSpeed: 6, Damping: 0.3}
	st := m.Step(move(1), State{Velocity: math.Vec2{X: 40}}, dt)
	if st.Velocity.X != 6 {
		t.Errorf("expected clamp to 6, got %v", st.Velocity.X)
	}
}

func TestKinematicUsesBothAxes(t *testing.T) {
	m := Kinematic{Speed: 3}
	st := m.Step(intent.Intent{Move: math.Vec2{X: 0, Y: -2}}, State{Velocity: math.Vec2{X: 9, Y: 9}}, dt)
	if st.Velocity.X != 0 || st.Velocity.Y != -3 {
		t.Errorf("expected (0, -3), got %v", st.Velocity)
	}
}

func TestNewSelectsModel(t *testing.T) {
	tests := []struct {
		model netconfig.ModelID
		want  any
	}{
		{netconfig.ModelDirectVelocity, DirectVelocity{}},
		{netconfig.ModelForceAccumulation, ForceAccumulation{}},
		{netconfig.ModelKinematic, Kinematic{}},
	}
	for _, tt := range tests {
		m, err := New(netconfig.DefaultMovement(tt.model))
		if err != nil {
			t.Fatalf("%v: unexpected error %v", tt.model, err)
		}
		switch tt.want.(type) {
		case DirectVelocity:
			if _, ok := m.(DirectVelocity); !ok {
				t.Errorf("%v: got %T", tt.model, m)
			}
		case ForceAccumulation:
			if _, ok := m.(ForceAccumulation); !ok {
				t.Errorf("%v: got %T", tt.model, m)
			}
		case Kinematic:
			if _, ok := m.(Kinematic); !ok {
				t.Errorf("%v: got %T", tt.model, m)
			}
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	bad := []netconfig.MovementConfig{
		{Model: netconfig.ModelID(42)},
		func() netconfig.MovementConfig {
			c := netconfig.DefaultMovement(netconfig.ModelForceAccumulation)
			c.MaxSpeed = 0
			return c
		}(),
		func() netconfig.MovementConfig {
			c := netconfig.DefaultMovement(netconfig.ModelDirectVelocity)
			c.Damping = 1.5
			return c
		}(),
		func() netconfig.MovementConfig {
			c := netconfig.DefaultMovement(netconfig.ModelDirectVelocity)
			c.JumpCooldown = -time.Second
			return c
		}(),
	}
	for i, cfg := range bad {
		if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func newIntegrator(t *testing.T) *Integrator {
	t.Helper()
	g, err := NewIntegrator(netconfig.DefaultMovement(netconfig.ModelDirectVelocity))
	if err != nil {
		t.Fatalf("NewIntegrator: %v", err)
	}
	return g
}

func TestJumpGate(t *testing.T) {
	jump := intent.Intent{Jump: 1}
	tests := []struct {
		name     string
		grounded bool
		in       intent.Intent
		wantJump bool
	}{
		{"grounded with intent", true, jump, true},
		{"airborne", false, jump, false},
		{"no intent", true, intent.Intent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newIntegrator(t)
			start := State{Velocity: math.Vec2{Y: 2.5}}
			st, jumped := g.Step(tt.in, start, tt.grounded, time.Second, dt)
			if jumped != tt.wantJump {
				t.Fatalf("expected jumped=%v, got %v", tt.wantJump, jumped)
			}
			if tt.wantJump {
				if st.Velocity.Y != -netconfig.DefaultJumpPower {
					t.Errorf("expected vy %v, got %v", -netconfig.DefaultJumpPower, st.Velocity.Y)
				}
				return
			}
			if st.Velocity.Y != start.Velocity.Y {
				t.Errorf("expected vy unchanged at %v, got %v", start.Velocity.Y, st.Velocity.Y)
			}
		})
	}
}

func TestJumpCooldownSuppressesSecondJump(t *testing.T) {
	g := newIntegrator(t)
	jump := intent.Intent{Jump: 1}

	_, first := g.Step(jump, State{}, true, time.Second, dt)
	if !first {
		t.Fatal("expected first jump to succeed")
	}
	st, second := g.Step(jump, State{Velocity: math.Vec2{Y: 1}}, true, time.Second+200*time.Millisecond, dt)
	if second {
		t.Fatal("expected second jump within cooldown to be suppressed")
	}
	if st.Velocity.Y != 1 {
		t.Errorf("expected vy untouched, got %v", st.Velocity.Y)
	}

	// Exactly at the cooldown boundary is still suppressed; the rule is strict.
	if _, ok := g.Step(jump, State{}, true, time.Second+netconfig.DefaultJumpCooldown, dt); ok {
		t.Error("expected jump at exactly the cooldown to be suppressed")
	}
	if _, ok := g.Step(jump, State{}, true, time.Second+netconfig.DefaultJumpCooldown+time.Millisecond, dt); !ok {
		t.Error("expected jump after the cooldown to succeed")
	}
	if last, ok := g.LastJump(); !ok || last != time.Second+netconfig.DefaultJumpCooldown+time.Millisecond {
		t.Errorf("unexpected last jump %v (%v)", last, ok)
	}
}

func TestFirstJumpAllowedAtTimeZero(t *testing.T) {
	g := newIntegrator(t)
	if _, ok := g.Step(intent.Intent{Jump: 1}, State{}, true, 0, dt); !ok {
		t.Error("expected a body that never jumped to jump at t=0")
	}
}

func TestKinematicPresetNeverJumps(t *testing.T) {
	g, err := NewIntegrator(netconfig.DefaultMovement(netconfig.ModelKinematic))
	if err != nil {
		t.Fatalf("NewIntegrator: %v", err)
	}
	if _, ok := g.Step(intent.Intent{Jump: 1}, State{}, true, time.Second, dt); ok {
		t.Error("expected zero jump power to disable jumping")
	}
}
