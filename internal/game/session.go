package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/krpors/titania/internal/audio"
	"github.com/krpors/titania/internal/camera"
	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/core/geom"
	"github.com/krpors/titania/internal/gfx/sheet"
	"github.com/krpors/titania/internal/player"
	"github.com/krpors/titania/internal/world/maploader"
)

// messageTime is how long on-screen messages stay visible, in seconds.
const messageTime = 3.0

// Session is one play-through of a level. It owns the world state and is
// shared by every frontend: they feed it actions, call Step once per frame
// and draw what it exposes.
type Session struct {
	gameMap *maploader.Map
	body    *player.Body
	camera  *camera.Camera
	clock   *Clock
	cues    audio.Player
	spawn   geom.Point

	messages   []Message
	showGrid   bool
	showDebug  bool
	fullscreen bool
	halted     bool
	lastDelta  float64
}

// NewSession places the player on the map's spawn point, or the configured
// one when the map has none. cues may be nil.
func NewSession(cfg *config.Config, m *maploader.Map, sh *sheet.Sheet, cues audio.Player, clock *Clock, rng *rand.Rand) (*Session, error) {
	tuning := cfg.Player
	if m.Spawn != nil {
		tuning.SpawnX, tuning.SpawnY = m.Spawn.X, m.Spawn.Y
	}

	body, err := player.New(tuning, m.Grid, sh, cfg.Trail, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	if cues == nil {
		cues = audio.Nop{}
	}

	s := &Session{
		gameMap:    m,
		body:       body,
		camera:     camera.New(float64(cfg.Window.Width), float64(cfg.Window.Height)),
		clock:      clock,
		cues:       cues,
		spawn:      geom.Point{X: tuning.SpawnX, Y: tuning.SpawnY},
		fullscreen: cfg.Window.Fullscreen,
	}
	s.followPlayer()
	s.ShowMessage(m.Name)
	return s, nil
}

// Dispatch applies an action. Held actions receive both edges; the others
// only act on press.
func (s *Session) Dispatch(a Action, pressed bool) {
	switch a {
	case ActionLeft:
		s.body.SetMoveLeft(pressed)
	case ActionRight:
		s.body.SetMoveRight(pressed)
	case ActionJump:
		s.body.SetJumpIntent(pressed)
	}
	if !pressed {
		return
	}

	switch a {
	case ActionStop:
		s.body.Stop()
	case ActionPause:
		s.clock.SetPaused(!s.clock.Paused())
	case ActionGrid:
		s.showGrid = !s.showGrid
	case ActionDebug:
		s.showDebug = !s.showDebug
	case ActionFullscreen:
		s.fullscreen = !s.fullscreen
	case ActionRespawn:
		s.body.Respawn(s.spawn)
		s.ShowMessage("Respawned")
	case ActionQuit:
		s.halted = true
	}
}

// Step advances the world by one frame and returns the delta used.
func (s *Session) Step() float64 {
	dt := s.clock.Tick()
	s.lastDelta = dt
	if dt == 0 {
		return 0
	}

	ev := s.body.Update(dt)
	s.handleEvents(ev)
	s.followPlayer()
	s.updateMessages(dt)
	return dt
}

func (s *Session) handleEvents(ev player.Events) {
	if ev.Jumped {
		s.cues.Play(audio.CueJump)
	}
	if ev.Bumped {
		s.cues.Play(audio.CueBump)
	}
	if ev.HardLanding {
		s.cues.Play(audio.CueLand)
		log.Printf("Hard landing at %.0f px/s", ev.ImpactSpeed)
	}
}

func (s *Session) followPlayer() {
	w, h := s.gameMap.PixelSize()
	s.camera.Follow(s.body.Hitbox().Center(), w, h)
}

func (s *Session) updateMessages(dt float64) {
	var active []Message
	for _, msg := range s.messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	s.messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (s *Session) ShowMessage(text string) {
	if text == "" {
		return
	}
	s.messages = append(s.messages, Message{
		Text:     text,
		TimeLeft: messageTime,
		MaxTime:  messageTime,
	})
	log.Printf("Message: %s", text)
}

// Resize changes the viewport and re-clamps the camera.
func (s *Session) Resize(width, height int) {
	s.camera.Resize(float64(width), float64(height))
	s.followPlayer()
}

// Map returns the level.
func (s *Session) Map() *maploader.Map { return s.gameMap }

// Body returns the player.
func (s *Session) Body() *player.Body { return s.body }

// Camera returns the viewport.
func (s *Session) Camera() *camera.Camera { return s.camera }

// Messages returns the visible messages.
func (s *Session) Messages() []Message { return s.messages }

// ShowGrid reports whether the tile grid overlay is on.
func (s *Session) ShowGrid() bool { return s.showGrid }

// ShowDebug reports whether the debug overlay is on.
func (s *Session) ShowDebug() bool { return s.showDebug }

// Fullscreen reports whether fullscreen was requested.
func (s *Session) Fullscreen() bool { return s.fullscreen }

// Paused reports whether the simulation is paused.
func (s *Session) Paused() bool { return s.clock.Paused() }

// Halted reports whether the player asked to quit.
func (s *Session) Halted() bool { return s.halted }

// LastDelta returns the dt of the latest Step.
func (s *Session) LastDelta() float64 { return s.lastDelta }

// DebugLines describes the simulation state for the debug overlay.
func (s *Session) DebugLines() []string {
	pos := s.body.Position()
	dx, dy := s.body.Velocity()
	bump := s.body.Bump()
	cam := s.camera.Offset()
	tw, th := s.gameMap.Grid.TileSize()
	return []string{
		fmt.Sprintf("Position: %.2f, %.2f", pos.X, pos.Y),
		fmt.Sprintf("Velocity: %.2f, %.2f", dx, dy),
		fmt.Sprintf("State: %s (facing %d)", s.body.State(), s.body.Facing()),
		fmt.Sprintf("Bump life: %.0f", max(bump.Life, 0)),
		fmt.Sprintf("dt: %.4f", s.lastDelta),
		fmt.Sprintf("Camera: %.0f, %.0f", cam.X, cam.Y),
		fmt.Sprintf("Particles: %d/%d", s.body.Trail().LiveCount(), s.body.Trail().Capacity()),
		fmt.Sprintf("Tile size: %.0f x %.0f", tw, th),
	}
}
