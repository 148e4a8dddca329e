// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on ebitengine, donburi or resolv. Pure data only.
//
// All coordinates are in world units where one tile is one unit.
package leveldata

import "time"

// CollisionData holds all collision-relevant data parsed from a TMX level file.
type CollisionData struct {
	GroundRects []Rect
	SpawnPoints []SpawnPoint
	Hazards     []Hazard
	Width       int // in tiles
	Height      int // in tiles
}

// Rect is an axis-aligned rectangle; X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// SpawnPoint represents a player spawn location (feet position).
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// Hazard is a damaging zone. Players overlapping it take Damage every Interval.
type Hazard struct {
	Rect
	Name     string
	Damage   uint32
	Interval time.Duration
}

// DefaultHazardInterval applies when a hazard object omits intervalMs.
const DefaultHazardInterval = 500 * time.Millisecond

// FlatLevel builds a level with a single ground strip along the bottom row
// and evenly spaced spawn points. Used when no TMX file is configured.
func FlatLevel(width, height, spawns int) *CollisionData {
	if width < 1 {
		width = 1
	}
	if height < 2 {
		height = 2
	}
	if spawns < 1 {
		spawns = 1
	}
	data := &CollisionData{
		Width:  width,
		Height: height,
		GroundRects: []Rect{
			{X: 0, Y: float64(height - 1), W: float64(width), H: 1},
		},
	}
	gap := float64(width) / float64(spawns+1)
	for i := 0; i < spawns; i++ {
		data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
			X:     gap * float64(i+1),
			Y:     float64(height - 1),
			Index: i,
		})
	}
	return data
}
