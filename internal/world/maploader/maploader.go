// Package maploader reads level files into a collision grid plus the visual
// tile layers drawn around the player. Three formats are understood, chosen
// by file extension: hex text grids (.txt, .map), layered JSON maps (.json)
// and LDtk projects (.ldtk).
package maploader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/krpors/titania/internal/core/geom"
	"github.com/krpors/titania/internal/world/tilegrid"
)

// Supported level file extensions.
var Extensions = []string{".txt", ".map", ".json", ".ldtk"}

// Options control how a level file is interpreted
type Options struct {
	TileWidth      float64 // Tile size for formats that carry none
	TileHeight     float64
	CollisionLayer string // Layer holding the collision codes
	MainLayer      string // Last layer drawn behind the player
	LDtkLevel      string // Level identifier inside an LDtk project; empty for the first
}

// DefaultOptions returns the options used when the config names nothing else.
func DefaultOptions() Options {
	return Options{
		TileWidth:      32,
		TileHeight:     32,
		CollisionLayer: "Collision",
		MainLayer:      "Main",
	}
}

// Layer is a grid of tileset references. A cell value of 0 is empty; any
// other value n refers to tile n-1 of the tileset.
type Layer struct {
	Name       string
	Width      int
	Height     int
	TileWidth  float64
	TileHeight float64
	cells      []int
}

// NewLayer allocates an empty layer.
func NewLayer(name string, width, height int, tileWidth, tileHeight float64) *Layer {
	return &Layer{
		Name:       name,
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		cells:      make([]int, width*height),
	}
}

// At returns the cell value, or 0 outside the layer.
func (l *Layer) At(x, y int) int {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return 0
	}
	return l.cells[y*l.Width+x]
}

// Set stores a cell value. Writes outside the layer are ignored.
func (l *Layer) Set(x, y, v int) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return
	}
	l.cells[y*l.Width+x] = v
}

// Map is a loaded level
type Map struct {
	Name       string
	Grid       *tilegrid.Grid
	Spawn      *geom.Point // nil when the file names no spawn point
	Layers     []*Layer    // Visual layers, back to front
	MainIndex  int         // Index in Layers of the last layer behind the player
	Background string      // Background image named by the file, if any
}

// BackgroundLayers returns the layers drawn behind the player.
func (m *Map) BackgroundLayers() []*Layer {
	return m.Layers[:m.MainIndex+1]
}

// ForegroundLayers returns the layers drawn over the player.
func (m *Map) ForegroundLayers() []*Layer {
	return m.Layers[m.MainIndex+1:]
}

// PixelSize returns the collision grid size in pixels.
func (m *Map) PixelSize() (w, h float64) {
	return m.Grid.PixelSize()
}

// LoadMap loads a level file, picking the reader by extension
func LoadMap(path string, opts Options) (*Map, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	var (
		m   *Map
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".map":
		m, err = loadHex(path, opts)
	case ".json":
		m, err = loadJSON(path, opts)
	case ".ldtk":
		m, err = loadLDtk(path, opts)
	default:
		return nil, fmt.Errorf("unsupported map format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

func validateOptions(opts Options) error {
	if opts.TileWidth <= 0 || opts.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size: %gx%g", opts.TileWidth, opts.TileHeight)
	}
	if opts.CollisionLayer == "" {
		return fmt.Errorf("collision layer name is required")
	}
	return nil
}

// collisionAsLayer turns the collision codes into a visual layer, used when
// a map carries nothing else to draw.
func collisionAsLayer(name string, g *tilegrid.Grid) *Layer {
	tw, th := g.TileSize()
	l := NewLayer(name, g.Width(), g.Height(), tw, th)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			l.Set(x, y, g.TileCodeAt(x, y))
		}
	}
	return l
}

// mainIndex finds the main layer by name, falling back to the last layer so
// everything is drawn behind the player.
func mainIndex(layers []*Layer, name string) int {
	for i, l := range layers {
		if l.Name == name {
			return i
		}
	}
	return len(layers) - 1
}
