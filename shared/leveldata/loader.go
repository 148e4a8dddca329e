package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from TMX files.
const (
	GroundLayer      = "ground"
	SpawnObjectGroup = "PlayerSpawn"
	HazardGroup      = "Hazards"
)

// LoadCollisionData parses a TMX file and returns ground tiles, player spawn
// points and hazard zones. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS. Pixel coordinates are converted to tile units.
func LoadCollisionData(fsys fs.FS, tmxPath string) (*CollisionData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth == 0 || levelMap.TileHeight == 0 {
		return nil, fmt.Errorf("load TMX %s: zero tile size", tmxPath)
	}

	data := &CollisionData{
		Width:  levelMap.Width,
		Height: levelMap.Height,
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)

	for _, layer := range levelMap.Layers {
		if layer.Name != GroundLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				data.GroundRects = append(data.GroundRects, Rect{
					X: float64(x),
					Y: float64(y),
					W: 1,
					H: 1,
				})
			}
		}
		break
	}
	data.GroundRects = mergeRows(data.GroundRects)

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SpawnObjectGroup:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X / tileW,
					Y:     o.Y / tileH,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case HazardGroup:
			for _, o := range og.Objects {
				damage := o.Properties.GetInt("damage")
				if damage <= 0 {
					continue
				}
				interval := time.Duration(o.Properties.GetInt("intervalMs")) * time.Millisecond
				if interval <= 0 {
					interval = DefaultHazardInterval
				}
				data.Hazards = append(data.Hazards, Hazard{
					Rect:     Rect{X: o.X / tileW, Y: o.Y / tileH, W: o.Width / tileW, H: o.Height / tileH},
					Name:     o.Name,
					Damage:   uint32(damage),
					Interval: interval,
				})
			}
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].X < data.SpawnPoints[j].X
	})

	return data, nil
}

// mergeRows joins horizontally adjacent unit tiles on the same row into wider
// rectangles, so the collision space holds one object per run of ground.
// Input must be in row-major order.
func mergeRows(tiles []Rect) []Rect {
	var out []Rect
	for _, t := range tiles {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Y == t.Y && last.H == t.H && last.X+last.W == t.X {
				last.W += t.W
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads collision
// data for each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*CollisionData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadCollisionData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
