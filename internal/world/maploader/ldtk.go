package maploader

import (
	"fmt"
	"os"

	"github.com/krpors/titania/internal/core/geom"
	"github.com/krpors/titania/internal/world/tilegrid"
	"github.com/solarlune/ldtkgo"
)

// Entity identifier marking the player spawn in LDtk levels.
const playerEntity = "Player"

func loadLDtk(path string, opts Options) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	project, err := ldtkgo.Read(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", path, err)
	}

	m, err := buildLDtkMap(project, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}
	return m, nil
}

func findLevel(project *ldtkgo.Project, identifier string) (*ldtkgo.Level, error) {
	if len(project.Levels) == 0 {
		return nil, fmt.Errorf("project has no levels")
	}
	if identifier == "" {
		return project.Levels[0], nil
	}
	for _, level := range project.Levels {
		if level.Identifier == identifier {
			return level, nil
		}
	}
	return nil, fmt.Errorf("level %q not found", identifier)
}

func buildLDtkMap(project *ldtkgo.Project, opts Options) (*Map, error) {
	level, err := findLevel(project, opts.LDtkLevel)
	if err != nil {
		return nil, err
	}

	collision := level.LayerByIdentifier(opts.CollisionLayer)
	if collision == nil {
		return nil, fmt.Errorf("collision layer %q not found in level %s", opts.CollisionLayer, level.Identifier)
	}
	if collision.GridSize <= 0 {
		return nil, fmt.Errorf("collision layer %q has no grid size", opts.CollisionLayer)
	}

	size := float64(collision.GridSize)
	grid, err := tilegrid.New(level.Width/collision.GridSize, level.Height/collision.GridSize, size, size)
	if err != nil {
		return nil, err
	}
	for _, cell := range collision.IntGrid {
		grid.Set(cell.Position[0]/collision.GridSize, cell.Position[1]/collision.GridSize, cell.Value)
	}

	m := &Map{
		Name: level.Identifier,
		Grid: grid,
	}

	// LDtk lists layers top-most first; Layers is back to front.
	for i := len(level.Layers) - 1; i >= 0; i-- {
		layer := level.Layers[i]

		if e := layer.EntityByIdentifier(playerEntity); e != nil && m.Spawn == nil {
			m.Spawn = &geom.Point{X: float64(e.Position[0]), Y: float64(e.Position[1])}
		}

		if layer.Identifier == opts.CollisionLayer || layer.GridSize <= 0 {
			continue
		}
		tiles := layer.AllTiles()
		if len(tiles) == 0 {
			continue
		}

		gs := layer.GridSize
		l := NewLayer(layer.Identifier, level.Width/gs, level.Height/gs, float64(gs), float64(gs))
		for _, t := range tiles {
			l.Set(t.Position[0]/gs, t.Position[1]/gs, t.ID+1)
		}
		m.Layers = append(m.Layers, l)
	}

	if len(m.Layers) == 0 {
		m.Layers = []*Layer{collisionAsLayer(opts.CollisionLayer, grid)}
	}
	m.MainIndex = mainIndex(m.Layers, opts.MainLayer)
	return m, nil
}
