// Package config provides the game settings. Settings are loaded from a JSON
// file layered over the defaults, so a file only needs the keys it changes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/krpors/titania/internal/gfx/particles"
	"github.com/krpors/titania/internal/player"
)

// Config holds all game settings
type Config struct {
	Window   WindowConfig     `json:"window"`
	Level    LevelConfig      `json:"level"`
	Player   player.Tuning    `json:"player"`
	Trail    particles.Config `json:"trail"`
	Timing   TimingConfig     `json:"timing"`
	Assets   AssetsConfig     `json:"assets"`
	Audio    AudioConfig      `json:"audio"`
	Terminal TerminalConfig   `json:"terminal"`
}

// WindowConfig defines the game window
type WindowConfig struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Title      string `json:"title"`
	Fullscreen bool   `json:"fullscreen"`
}

// LevelConfig selects and interprets the level file
type LevelConfig struct {
	Path           string  `json:"path"`            // Level file, relative to the data directory
	TileWidth      float64 `json:"tile_width"`      // Tile size for formats that do not carry one
	TileHeight     float64 `json:"tile_height"`     // Paired with TileWidth
	CollisionLayer string  `json:"collision_layer"` // Layer holding the collision codes
	MainLayer      string  `json:"main_layer"`      // Last layer drawn behind the player
	LDtkLevel      string  `json:"ldtk_level"`      // Level identifier inside an .ldtk project; empty for the first
}

// TimingConfig controls the frame clock
type TimingConfig struct {
	MaxDelta float64 `json:"max_delta"` // Largest dt handed to the simulation, in seconds
}

// MaxDeltaDuration returns MaxDelta as a duration.
func (t TimingConfig) MaxDeltaDuration() time.Duration {
	return time.Duration(t.MaxDelta * float64(time.Second))
}

// AssetsConfig names the art files, relative to the data directory
type AssetsConfig struct {
	PlayerSheet     string `json:"player_sheet"` // Sprite sheet description (JSON); empty for the built-in layout
	PlayerImage     string `json:"player_image"`
	Tileset         string `json:"tileset"`
	TilesetTileSize int    `json:"tileset_tile_size"` // Source tile size inside the tileset image
	Background      string `json:"background"`
}

// AudioConfig controls the synthesised sound cues
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	Volume     float64 `json:"volume"` // Gain in base-2 exponent steps; 0 is unchanged
}

// TerminalConfig controls the terminal frontend
type TerminalConfig struct {
	HoldTimeoutMS int     `json:"hold_timeout_ms"` // A key counts as held this long after its last repeat
	FrameMS       int     `json:"frame_ms"`        // Redraw interval
	CellWidth     float64 `json:"cell_width"`      // World pixels per terminal column
	CellHeight    float64 `json:"cell_height"`     // World pixels per terminal row
}

// HoldTimeout returns HoldTimeoutMS as a duration.
func (t TerminalConfig) HoldTimeout() time.Duration {
	return time.Duration(t.HoldTimeoutMS) * time.Millisecond
}

// FrameInterval returns FrameMS as a duration.
func (t TerminalConfig) FrameInterval() time.Duration {
	return time.Duration(t.FrameMS) * time.Millisecond
}

// DefaultConfig returns the stock settings
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Titania",
		},
		Level: LevelConfig{
			Path:           "levels/map01.txt",
			TileWidth:      32,
			TileHeight:     32,
			CollisionLayer: "Collision",
			MainLayer:      "Main",
		},
		Player: player.DefaultTuning(),
		Trail:  particles.DefaultConfig(),
		Timing: TimingConfig{
			MaxDelta: 0.05,
		},
		Assets: AssetsConfig{
			PlayerImage:     "images/player.png",
			Tileset:         "images/tileset.png",
			TilesetTileSize: 16,
			Background:      "images/background.png",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Terminal: TerminalConfig{
			HoldTimeoutMS: 150,
			FrameMS:       16,
			CellWidth:     8,
			CellHeight:    16,
		},
	}
}

// LoadConfig loads the config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Level.TileWidth <= 0 || c.Level.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size: %gx%g", c.Level.TileWidth, c.Level.TileHeight)
	}
	if c.Level.CollisionLayer == "" {
		return fmt.Errorf("collision_layer is required")
	}
	if err := c.Player.Validate(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if err := c.Trail.Validate(); err != nil {
		return fmt.Errorf("trail: %w", err)
	}
	if c.Timing.MaxDelta <= 0 {
		return fmt.Errorf("max_delta must be positive, got %g", c.Timing.MaxDelta)
	}
	if c.Assets.TilesetTileSize <= 0 {
		return fmt.Errorf("invalid tileset tile size: %d", c.Assets.TilesetTileSize)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.Audio.SampleRate)
	}
	if c.Terminal.HoldTimeoutMS <= 0 || c.Terminal.FrameMS <= 0 {
		return fmt.Errorf("terminal timings must be positive")
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("invalid terminal cell size: %gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	return nil
}
