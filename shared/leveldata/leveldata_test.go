package leveldata

import (
	"os"
	"testing"
	"time"
)

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := LoadAllLevels(os.DirFS("testdata"), "levels")
	if err != nil {
		t.Fatalf("LoadAllLevels: %v", err)
	}
	if len(names) != 1 || names[0] != "arena" {
		t.Fatalf("expected [arena], got %v", names)
	}
	data := levels["arena"]

	if data.Width != 6 || data.Height != 5 {
		t.Errorf("expected 6x5 tiles, got %dx%d", data.Width, data.Height)
	}

	wantGround := []Rect{{X: 4, Y: 1, W: 2, H: 1}, {X: 0, Y: 4, W: 6, H: 1}}
	if len(data.GroundRects) != len(wantGround) {
		t.Fatalf("expected ground %v, got %v", wantGround, data.GroundRects)
	}
	for i, r := range wantGround {
		if data.GroundRects[i] != r {
			t.Errorf("ground %d: expected %v, got %v", i, r, data.GroundRects[i])
		}
	}

	if len(data.SpawnPoints) != 2 {
		t.Fatalf("expected 2 spawns, got %v", data.SpawnPoints)
	}
	if data.SpawnPoints[0].X != 1 || data.SpawnPoints[0].Index != 0 || data.SpawnPoints[1].X != 4 {
		t.Errorf("expected spawns sorted left to right, got %v", data.SpawnPoints)
	}

	if len(data.Hazards) != 1 {
		t.Fatalf("expected 1 hazard, got %v", data.Hazards)
	}
	hz := data.Hazards[0]
	if hz.Name != "spikes" || hz.Damage != 2 || hz.Interval != 250*time.Millisecond {
		t.Errorf("unexpected hazard %+v", hz)
	}
	if hz.Rect != (Rect{X: 2, Y: 3, W: 1, H: 1}) {
		t.Errorf("unexpected hazard rect %v", hz.Rect)
	}
}

func TestLoadAllLevelsMissingDir(t *testing.T) {
	if _, _, err := LoadAllLevels(os.DirFS("testdata"), "nope"); err == nil {
		t.Error("expected error for a directory without levels")
	}
}

func TestMergeRows(t *testing.T) {
	tiles := []Rect{
		{X: 0, Y: 0, W: 1, H: 1}, {X: 1, Y: 0, W: 1, H: 1}, {X: 3, Y: 0, W: 1, H: 1},
		{X: 4, Y: 1, W: 1, H: 1},
	}
	got := mergeRows(tiles)
	want := []Rect{{X: 0, Y: 0, W: 2, H: 1}, {X: 3, Y: 0, W: 1, H: 1}, {X: 4, Y: 1, W: 1, H: 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rect %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFlatLevel(t *testing.T) {
	lvl := FlatLevel(30, 10, 2)
	if len(lvl.GroundRects) != 1 || lvl.GroundRects[0] != (Rect{X: 0, Y: 9, W: 30, H: 1}) {
		t.Errorf("unexpected ground %v", lvl.GroundRects)
	}
	if len(lvl.SpawnPoints) != 2 || lvl.SpawnPoints[0].X != 10 || lvl.SpawnPoints[1].X != 20 {
		t.Errorf("unexpected spawns %v", lvl.SpawnPoints)
	}
	for _, sp := range lvl.SpawnPoints {
		if sp.Y != 9 {
			t.Errorf("expected spawn feet on ground top, got %v", sp.Y)
		}
	}
}
