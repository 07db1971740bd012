package maploader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/krpors/titania/internal/core/geom"
	"github.com/krpors/titania/internal/world/tilegrid"
)

// SpawnPoint defines the player spawn location in pixels
type SpawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayerData is one layer of a JSON map
type LayerData struct {
	Name string  `json:"name"`
	Data [][]int `json:"data"` // Cell values [y][x]
}

// MapData represents a layered JSON map file
type MapData struct {
	Name           string      `json:"name"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	TileWidth      float64     `json:"tile_width"`
	TileHeight     float64     `json:"tile_height"`
	PlayerSpawn    *SpawnPoint `json:"player_spawn,omitempty"`
	CollisionLayer string      `json:"collision_layer,omitempty"` // Overrides the configured name
	MainLayer      string      `json:"main_layer,omitempty"`
	Background     string      `json:"background,omitempty"`
	Layers         []LayerData `json:"layers"`
}

func loadJSON(path string, opts Options) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", path, err)
	}

	m, err := buildJSONMap(&mapData, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}
	return m, nil
}

func buildJSONMap(data *MapData, opts Options) (*Map, error) {
	if data.TileWidth == 0 {
		data.TileWidth = opts.TileWidth
	}
	if data.TileHeight == 0 {
		data.TileHeight = opts.TileHeight
	}
	if data.CollisionLayer == "" {
		data.CollisionLayer = opts.CollisionLayer
	}
	if data.MainLayer == "" {
		data.MainLayer = opts.MainLayer
	}

	if err := validateMapData(data); err != nil {
		return nil, err
	}

	var (
		grid   *tilegrid.Grid
		layers []*Layer
	)
	for _, ld := range data.Layers {
		if ld.Name == data.CollisionLayer {
			g, err := tilegrid.FromRows(ld.Data, data.TileWidth, data.TileHeight)
			if err != nil {
				return nil, fmt.Errorf("layer %s: %w", ld.Name, err)
			}
			grid = g
			continue
		}

		l := NewLayer(ld.Name, data.Width, data.Height, data.TileWidth, data.TileHeight)
		for y, row := range ld.Data {
			for x, v := range row {
				l.Set(x, y, v)
			}
		}
		layers = append(layers, l)
	}
	if grid == nil {
		return nil, fmt.Errorf("collision layer %q not found", data.CollisionLayer)
	}

	if len(layers) == 0 {
		layers = []*Layer{collisionAsLayer(data.CollisionLayer, grid)}
	}

	m := &Map{
		Name:       data.Name,
		Grid:       grid,
		Layers:     layers,
		MainIndex:  mainIndex(layers, data.MainLayer),
		Background: data.Background,
	}
	if data.PlayerSpawn != nil {
		m.Spawn = &geom.Point{X: data.PlayerSpawn.X, Y: data.PlayerSpawn.Y}
	}
	return m, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if data.TileWidth <= 0 || data.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size: %gx%g", data.TileWidth, data.TileHeight)
	}

	if len(data.Layers) == 0 {
		return fmt.Errorf("map has no layers")
	}

	// Validate layer dimensions
	for _, l := range data.Layers {
		if len(l.Data) != data.Height {
			return fmt.Errorf("layer %s height mismatch: expected %d, got %d", l.Name, data.Height, len(l.Data))
		}
		for y, row := range l.Data {
			if len(row) != data.Width {
				return fmt.Errorf("layer %s width mismatch at row %d: expected %d, got %d", l.Name, y, data.Width, len(row))
			}
		}
	}

	return nil
}
