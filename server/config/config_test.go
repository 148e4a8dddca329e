package config

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/netplayer/shared/netconfig"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil, env(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != 7373 || cfg.TickRate != 20 || cfg.MaxHealth != 10 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Movement.Model != netconfig.ModelDirectVelocity || cfg.Movement.Speed != 4 || cfg.Movement.JumpPower != 8 {
		t.Errorf("unexpected movement defaults %+v", cfg.Movement)
	}
	if cfg.FixedStep() != time.Second/60 {
		t.Errorf("expected 60 Hz step, got %v", cfg.FixedStep())
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	cfg, err := Parse(
		[]string{"-port", "9000", "-model", "force"},
		env(map[string]string{"NETPLAYER_PORT": "8000", "NETPLAYER_NAME": "arena", "NETPLAYER_MAXHEALTH": "25"}),
	)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected flag port 9000, got %d", cfg.Port)
	}
	if cfg.Name != "arena" || cfg.MaxHealth != 25 {
		t.Errorf("expected env name and health, got %q %d", cfg.Name, cfg.MaxHealth)
	}
	if cfg.Movement.Model != netconfig.ModelForceAccumulation || cfg.Movement.Damping != netconfig.ForceDamping {
		t.Errorf("expected force preset, got %+v", cfg.Movement)
	}
}

func TestParseTunablesFile(t *testing.T) {
	cfg, err := Parse([]string{"-tunables", "testdata/force.json"}, env(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := cfg.Movement
	if m.Model != netconfig.ModelForceAccumulation || m.StartSpeed != 2 || m.MaxSpeed != 5 {
		t.Errorf("unexpected tunables %+v", m)
	}
	if m.JumpCooldown != 500*time.Millisecond {
		t.Errorf("expected 500ms cooldown, got %v", m.JumpCooldown)
	}
	if m.JumpPower != netconfig.DefaultJumpPower {
		t.Errorf("expected missing fields to keep defaults, got jump power %v", m.JumpPower)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"unknown model", []string{"-model", "teleport"}, nil},
		{"bad env int", nil, map[string]string{"NETPLAYER_TICKRATE": "fast"}},
		{"zero health", []string{"-maxhealth", "0"}, nil},
		{"health overflows uint32", []string{"-maxhealth", "4294967306"}, nil},
		{"physics slower than ticks", []string{"-tickrate", "30", "-physicsrate", "20"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args, env(tt.env)); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParseMissingTunablesFile(t *testing.T) {
	if _, err := Parse([]string{"-tunables", "testdata/missing.json"}, env(nil)); err == nil {
		t.Error("expected error for a missing tunables file")
	}
}
