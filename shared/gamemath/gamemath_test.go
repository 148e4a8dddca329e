package gamemath

import (
	stdmath "math"
	"testing"

	"github.com/yohamta/donburi/features/math"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   math.Vec2
		want math.Vec2
	}{
		{"zero stays zero", math.Vec2{}, math.Vec2{}},
		{"axis", math.Vec2{X: 5}, math.Vec2{X: 1}},
		{"diagonal", math.Vec2{X: 3, Y: 4}, math.Vec2{X: 0.6, Y: 0.8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if stdmath.Abs(got.X-tt.want.X) > 1e-9 || stdmath.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDampTowardNeverOvershoots(t *testing.T) {
	for _, start := range []float64{6, -6, 0.5, -0.01} {
		v := start
		for i := 0; i < 500; i++ {
			next := DampToward(v, 0.3)
			if stdmath.Abs(next) > stdmath.Abs(v) {
				t.Fatalf("start %v: magnitude grew from %v to %v", start, v, next)
			}
			if next != 0 && (next > 0) != (start > 0) {
				t.Fatalf("start %v: sign flipped to %v", start, next)
			}
			v = next
		}
		if v != 0 {
			t.Errorf("start %v: expected rest after 500 steps, got %v", start, v)
		}
	}
}

func TestLerpClampsFactor(t *testing.T) {
	if got := Lerp(10, 0, 2); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Lerp(10, 0, -1); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
}

func TestLookAtDegrees(t *testing.T) {
	origin := math.Vec2{X: 1, Y: 1}
	if got := LookAtDegrees(origin, math.Vec2{X: 1, Y: 3}); stdmath.Abs(got-90) > 1e-9 {
		t.Errorf("expected 90, got %v", got)
	}
	if got := LookAtDegrees(origin, math.Vec2{X: -1, Y: 1}); stdmath.Abs(got-180) > 1e-9 {
		t.Errorf("expected 180, got %v", got)
	}
	if got := LookAtDegrees(origin, origin); got != 0 {
		t.Errorf("expected 0 for coincident points, got %v", got)
	}
}

func TestShortestArc(t *testing.T) {
	if got := ShortestArc(170, -170); got != 20 {
		t.Errorf("expected 20, got %v", got)
	}
	if got := ShortestArc(-170, 170); got != -20 {
		t.Errorf("expected -20, got %v", got)
	}
}

func TestClampSpeed(t *testing.T) {
	if ClampSpeed(9, 6) != 6 || ClampSpeed(-9, 6) != -6 || ClampSpeed(2, 6) != 2 {
		t.Error("ClampSpeed did not clamp to [-max, max]")
	}
}
