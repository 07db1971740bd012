package game

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/krpors/titania/internal/audio"
	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/gamescanner"
	"github.com/krpors/titania/internal/world/maploader"
)

// LevelsDir is where levels live inside the data directory.
const LevelsDir = "levels"

// MapOptions converts the level settings to loader options.
func MapOptions(cfg config.LevelConfig) maploader.Options {
	return maploader.Options{
		TileWidth:      cfg.TileWidth,
		TileHeight:     cfg.TileHeight,
		CollisionLayer: cfg.CollisionLayer,
		MainLayer:      cfg.MainLayer,
		LDtkLevel:      cfg.LDtkLevel,
	}
}

// ListLevels returns the levels found under the data directory.
func ListLevels(dataDir string) ([]gamescanner.LevelEntry, error) {
	return gamescanner.ScanLevels(filepath.Join(dataDir, LevelsDir), maploader.Extensions)
}

// LoadLevel loads the named level, or the configured one when name is empty.
func LoadLevel(dataDir string, cfg *config.Config, name string) (*maploader.Map, error) {
	path := filepath.Join(dataDir, cfg.Level.Path)
	if name != "" {
		levels, err := ListLevels(dataDir)
		if err != nil {
			return nil, err
		}
		entry, err := gamescanner.Find(levels, name)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dataDir, LevelsDir, entry.Path)
	}

	log.Printf("Loading level: %s", path)
	m, err := maploader.LoadMap(path, MapOptions(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}
	log.Printf("Loaded level: %s (%dx%d)", m.Name, m.Grid.Width(), m.Grid.Height())
	return m, nil
}

// OpenCues opens the speaker, or returns a silent player when audio is
// disabled or unavailable.
func OpenCues(cfg config.AudioConfig) audio.Player {
	if !cfg.Enabled {
		return audio.Nop{}
	}
	p, err := audio.NewSpeakerPlayer(cfg.SampleRate, cfg.Volume)
	if err != nil {
		log.Printf("Warning: audio disabled: %v", err)
		return audio.Nop{}
	}
	return p
}
