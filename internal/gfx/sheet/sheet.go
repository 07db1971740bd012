package sheet

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"sort"
	"time"

	"github.com/krpors/titania/internal/gfx/anim"
)

// Animation names used by the player.
const (
	Rest = "rest"
	Move = "move"
	Jump = "jump"
	Fall = "fall"
)

// AnimationDef describes a run of frames laid out left to right on one row
type AnimationDef struct {
	Row     int `json:"row"`      // Row on the sheet (in frames)
	Col     int `json:"col"`      // First column (in frames)
	Frames  int `json:"frames"`   // Number of frames
	FrameMS int `json:"frame_ms"` // Time per frame in milliseconds; 0 for a still pose
}

// Config defines the JSON description of a sprite sheet
type Config struct {
	Name        string                  `json:"name"`
	ImagePath   string                  `json:"image_path"`   // Path to the sheet image
	FrameWidth  int                     `json:"frame_width"`  // Width of each frame in pixels
	FrameHeight int                     `json:"frame_height"` // Height of each frame in pixels
	Animations  map[string]AnimationDef `json:"animations"`
}

// Sheet is a validated sprite sheet description
type Sheet struct {
	Config *Config
}

// Default returns the layout of the bundled player sheet: four rest frames
// on row 0, six run frames on row 1, and the jump and fall poses on row 2.
func Default() *Sheet {
	return &Sheet{Config: &Config{
		Name:        "player",
		ImagePath:   "player.png",
		FrameWidth:  16,
		FrameHeight: 16,
		Animations: map[string]AnimationDef{
			Rest: {Row: 0, Col: 0, Frames: 4, FrameMS: 80},
			Move: {Row: 1, Col: 0, Frames: 6, FrameMS: 30},
			Jump: {Row: 2, Col: 0, Frames: 1},
			Fall: {Row: 2, Col: 1, Frames: 1},
		},
	}}
}

// LoadSheet loads a sprite sheet description from a JSON file
func LoadSheet(configPath string) (*Sheet, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet config %s: %w", configPath, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse sheet config %s: %w", configPath, err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid sheet config %s: %w", configPath, err)
	}

	return &Sheet{Config: &config}, nil
}

func validateConfig(config *Config) error {
	if config.FrameWidth <= 0 || config.FrameHeight <= 0 {
		return fmt.Errorf("invalid frame dimensions: %dx%d", config.FrameWidth, config.FrameHeight)
	}

	if config.ImagePath == "" {
		return fmt.Errorf("image_path is required in sheet config")
	}

	for _, name := range []string{Rest, Move, Jump, Fall} {
		if _, ok := config.Animations[name]; !ok {
			return fmt.Errorf("animation %q is required", name)
		}
	}

	for name, def := range config.Animations {
		if def.Frames <= 0 {
			return fmt.Errorf("animation %q has no frames", name)
		}
		if def.Row < 0 || def.Col < 0 {
			return fmt.Errorf("animation %q has a negative position", name)
		}
		if def.FrameMS < 0 {
			return fmt.Errorf("animation %q has a negative frame time", name)
		}
	}

	return nil
}

// GetAnimation returns an animation definition by name
func (s *Sheet) GetAnimation(name string) (AnimationDef, bool) {
	def, ok := s.Config.Animations[name]
	return def, ok
}

// Names returns the animation names in sorted order
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.Config.Animations))
	for name := range s.Config.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FrameRect returns the rectangle of the i-th frame of an animation
func (s *Sheet) FrameRect(def AnimationDef, i int) image.Rectangle {
	x := (def.Col + i) * s.Config.FrameWidth
	y := def.Row * s.Config.FrameHeight
	return image.Rect(x, y, x+s.Config.FrameWidth, y+s.Config.FrameHeight)
}

// Frame returns the first frame of an animation, used for still poses
func (s *Sheet) Frame(name string) (image.Rectangle, error) {
	def, ok := s.GetAnimation(name)
	if !ok {
		return image.Rectangle{}, fmt.Errorf("animation not found: %s", name)
	}
	return s.FrameRect(def, 0), nil
}

// Cycle builds an animation cycle with every frame of the named animation
func (s *Sheet) Cycle(name string) (*anim.Cycle, error) {
	def, ok := s.GetAnimation(name)
	if !ok {
		return nil, fmt.Errorf("animation not found: %s", name)
	}

	c := anim.NewCycle(time.Duration(def.FrameMS)*time.Millisecond, def.Frames)
	for i := 0; i < def.Frames; i++ {
		c.Append(s.FrameRect(def, i))
	}
	return c, nil
}

// Bounds returns the minimum image size that holds every frame
func (s *Sheet) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, def := range s.Config.Animations {
		last := s.FrameRect(def, def.Frames-1)
		b = b.Union(image.Rect(0, 0, last.Max.X, last.Max.Y))
	}
	return b
}
