package core

import (
	"fmt"
	"os"

	"github.com/solarlune/resolv"

	"github.com/automoto/netplayer/shared/leveldata"
	"github.com/automoto/netplayer/shared/logger"
)

// resolv works on whole-pixel cells, so the collision space is built at one
// tile per cell and world units are scaled by pixelsPerUnit on the way in.
const pixelsPerUnit = 16.0

// Collision tags.
const (
	TagGround = "ground"
	tagPlayer = "player"
	tagProbe  = "probe"
)

// ServerLevel holds the server's collision space, spawn data and hazards for a level.
type ServerLevel struct {
	Name        string
	Space       *resolv.Space
	Ground      []leveldata.Rect
	SpawnPoints []leveldata.SpawnPoint
	Hazards     []leveldata.Hazard
	Width       int
	Height      int

	nextSpawn int
}

// NewServerLevel builds a resolv.Space from parsed collision data.
func NewServerLevel(name string, data *leveldata.CollisionData) *ServerLevel {
	space := resolv.NewSpace(
		int(float64(data.Width)*pixelsPerUnit),
		int(float64(data.Height)*pixelsPerUnit),
		int(pixelsPerUnit), int(pixelsPerUnit),
	)

	for _, r := range data.GroundRects {
		x, y, w, h := toSpace(r.X), toSpace(r.Y), toSpace(r.W), toSpace(r.H)
		obj := resolv.NewObject(x, y, w, h, TagGround)
		obj.SetShape(resolv.NewRectangle(0, 0, w, h))
		space.Add(obj)
	}

	logger.Component("level").Infof("Loaded level %q: %d ground rects, %d spawn points, %d hazards, %dx%d map",
		name, len(data.GroundRects), len(data.SpawnPoints), len(data.Hazards), data.Width, data.Height)

	return &ServerLevel{
		Name:        name,
		Space:       space,
		Ground:      data.GroundRects,
		SpawnPoints: data.SpawnPoints,
		Hazards:     data.Hazards,
		Width:       data.Width,
		Height:      data.Height,
	}
}

// NextSpawn hands out spawn points round-robin. A level without spawn points
// spawns everyone at the top centre.
func (l *ServerLevel) NextSpawn() leveldata.SpawnPoint {
	if len(l.SpawnPoints) == 0 {
		return leveldata.SpawnPoint{X: float64(l.Width) / 2, Y: 0}
	}
	sp := l.SpawnPoints[l.nextSpawn%len(l.SpawnPoints)]
	l.nextSpawn++
	return sp
}

// LoadServerLevel loads levels/<name>.tmx from assetsDir. An empty name picks
// the first level in sort order.
func LoadServerLevel(assetsDir, name string) (*ServerLevel, error) {
	collisionMap, names, err := leveldata.LoadAllLevels(os.DirFS(assetsDir), "levels")
	if err != nil {
		return nil, fmt.Errorf("load all levels: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no levels found in %s", assetsDir)
	}
	if name == "" {
		name = names[0]
	}
	data, ok := collisionMap[name]
	if !ok {
		return nil, fmt.Errorf("level %q not found in %s", name, assetsDir)
	}
	return NewServerLevel(name, data), nil
}

func toSpace(v float64) float64 { return v * pixelsPerUnit }

func toWorld(v float64) float64 { return v / pixelsPerUnit }
