package game

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/krpors/titania/internal/audio"
	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/core/geom"
	"github.com/krpors/titania/internal/gfx/sheet"
	"github.com/krpors/titania/internal/render"
	"github.com/krpors/titania/internal/world/maploader"
	"github.com/krpors/titania/internal/world/tilegrid"
)

const frame = time.Second / 60

// fakeTime is a manually advanced time source.
type fakeTime struct{ now time.Duration }

func (f *fakeTime) Now() time.Duration { return f.now }

// recordingCues remembers every cue played.
type recordingCues struct{ played []audio.Cue }

func (r *recordingCues) Play(c audio.Cue) { r.played = append(r.played, c) }
func (r *recordingCues) Close()           {}

func (r *recordingCues) count(c audio.Cue) int {
	n := 0
	for _, p := range r.played {
		if p == c {
			n++
		}
	}
	return n
}

// testMap is 20x12 tiles of 32px with a floor on row 10.
func testMap(t *testing.T) *maploader.Map {
	t.Helper()
	rows := make([][]int, 12)
	for y := range rows {
		rows[y] = make([]int, 20)
	}
	for x := range rows[10] {
		rows[10][x] = 1
	}
	g, err := tilegrid.FromRows(rows, 32, 32)
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	main := maploader.NewLayer("Main", 20, 12, 32, 32)
	for x := 0; x < 20; x++ {
		main.Set(x, 10, 1)
	}
	return &maploader.Map{Name: "Test Level", Grid: g, Layers: []*maploader.Layer{main}}
}

func newTestSession(t *testing.T) (*Session, *fakeTime, *recordingCues) {
	t.Helper()
	ft := &fakeTime{}
	cues := &recordingCues{}
	cfg := config.DefaultConfig()
	clock := NewClock(ft.Now, cfg.Timing.MaxDeltaDuration())
	s, err := NewSession(cfg, testMap(t), sheet.Default(), cues, clock, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return s, ft, cues
}

// run advances the fake time and steps the session n frames.
func run(s *Session, ft *fakeTime, n int) {
	for i := 0; i < n; i++ {
		ft.now += frame
		s.Step()
	}
}

func TestClockClampsAndPauses(t *testing.T) {
	ft := &fakeTime{}
	c := NewClock(ft.Now, 50*time.Millisecond)

	ft.now += 10 * time.Millisecond
	if dt := c.Tick(); dt != 0.01 {
		t.Errorf("Expected dt 0.01, got %v", dt)
	}

	ft.now += time.Second
	if dt := c.Tick(); dt != 0.05 {
		t.Errorf("Expected clamped dt 0.05, got %v", dt)
	}

	c.SetPaused(true)
	ft.now += 20 * time.Millisecond
	if dt := c.Tick(); dt != 0 {
		t.Errorf("Expected dt 0 while paused, got %v", dt)
	}

	ft.now += 5 * time.Second
	c.SetPaused(false)
	ft.now += 10 * time.Millisecond
	if dt := c.Tick(); dt != 0.01 {
		t.Errorf("Expected dt 0.01 after resume, got %v", dt)
	}
}

func TestClockIgnoresBackwardsTime(t *testing.T) {
	ft := &fakeTime{now: time.Second}
	c := NewClock(ft.Now, 50*time.Millisecond)
	ft.now -= 10 * time.Millisecond
	if dt := c.Tick(); dt != 0 {
		t.Errorf("Expected dt 0 for backwards time, got %v", dt)
	}
}

func TestMessageAlpha(t *testing.T) {
	tests := []struct {
		msg      Message
		expected uint8
	}{
		{Message{TimeLeft: 3, MaxTime: 3}, 255},
		{Message{TimeLeft: 1.5, MaxTime: 3}, 127},
		{Message{TimeLeft: 0, MaxTime: 3}, 0},
		{Message{TimeLeft: 1, MaxTime: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.msg.Alpha(); got != tt.expected {
			t.Errorf("Alpha(%v) = %d, expected %d", tt.msg, got, tt.expected)
		}
	}
}

func TestSessionLandsWithCue(t *testing.T) {
	s, ft, cues := newTestSession(t)

	if len(s.Messages()) != 1 || s.Messages()[0].Text != "Test Level" {
		t.Errorf("Expected level name message, got %v", s.Messages())
	}

	run(s, ft, 120)

	if !s.Body().OnGround() {
		t.Fatalf("Expected body to be grounded, position %v", s.Body().Position())
	}
	if got := cues.count(audio.CueLand); got != 1 {
		t.Errorf("Expected 1 land cue for the opening drop, got %d", got)
	}
}

func TestSessionJumpCue(t *testing.T) {
	s, ft, cues := newTestSession(t)
	run(s, ft, 120)

	s.Dispatch(ActionJump, true)
	run(s, ft, 1)

	if got := cues.count(audio.CueJump); got != 1 {
		t.Errorf("Expected 1 jump cue, got %d", got)
	}
	if _, dy := s.Body().Velocity(); dy >= 0 {
		t.Errorf("Expected upward velocity, got %v", dy)
	}
}

func TestSessionPauseFreezesWorld(t *testing.T) {
	s, ft, _ := newTestSession(t)
	run(s, ft, 5)

	s.Dispatch(ActionPause, true)
	if !s.Paused() {
		t.Fatal("Expected session to be paused")
	}
	before := s.Body().Position()
	run(s, ft, 30)
	if s.Body().Position() != before {
		t.Errorf("Expected position %v while paused, got %v", before, s.Body().Position())
	}
	if s.LastDelta() != 0 {
		t.Errorf("Expected last delta 0 while paused, got %v", s.LastDelta())
	}

	s.Dispatch(ActionPause, true)
	run(s, ft, 1)
	if s.Body().Position() == before {
		t.Error("Expected body to move after resuming")
	}
}

func TestSessionToggles(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.Dispatch(ActionGrid, true)
	s.Dispatch(ActionDebug, true)
	s.Dispatch(ActionFullscreen, true)
	if !s.ShowGrid() || !s.ShowDebug() || !s.Fullscreen() {
		t.Errorf("Expected all toggles on, got grid=%v debug=%v fullscreen=%v", s.ShowGrid(), s.ShowDebug(), s.Fullscreen())
	}

	// Releases do not toggle.
	s.Dispatch(ActionGrid, false)
	if !s.ShowGrid() {
		t.Error("Expected grid to stay on after release")
	}

	s.Dispatch(ActionQuit, true)
	if !s.Halted() {
		t.Error("Expected session to be halted")
	}
}

func TestSessionRespawn(t *testing.T) {
	s, ft, _ := newTestSession(t)
	s.Dispatch(ActionRight, true)
	run(s, ft, 120)
	s.Dispatch(ActionRight, false)

	s.Dispatch(ActionRespawn, true)
	pos := s.Body().Position()
	cfg := config.DefaultConfig()
	if pos.X != cfg.Player.SpawnX || pos.Y != cfg.Player.SpawnY {
		t.Errorf("Expected spawn (%v, %v), got %v", cfg.Player.SpawnX, cfg.Player.SpawnY, pos)
	}
}

func TestSessionUsesMapSpawn(t *testing.T) {
	ft := &fakeTime{}
	m := testMap(t)
	m.Spawn = &geom.Point{X: 300, Y: 40}
	cfg := config.DefaultConfig()
	s, err := NewSession(cfg, m, sheet.Default(), nil, NewClock(ft.Now, cfg.Timing.MaxDeltaDuration()), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if got := s.Body().Position(); got != *m.Spawn {
		t.Errorf("Expected map spawn %v, got %v", *m.Spawn, got)
	}

	run(s, ft, 60)
	s.Dispatch(ActionRespawn, true)
	if got := s.Body().Position(); got != *m.Spawn {
		t.Errorf("Expected respawn at %v, got %v", *m.Spawn, got)
	}
}

func TestMessagesExpire(t *testing.T) {
	s, ft, _ := newTestSession(t)
	// Each one-second frame is clamped to 0.05s, so 70 frames cover 3.5s.
	for i := 0; i < 70; i++ {
		ft.now += time.Second
		s.Step()
	}
	if len(s.Messages()) != 0 {
		t.Errorf("Expected messages to expire, got %v", s.Messages())
	}
}

// fakeInput reports scripted key edges.
type fakeInput struct {
	pressed  map[render.Key]bool
	released map[render.Key]bool
}

func (f *fakeInput) IsKeyJustPressed(k render.Key) bool  { return f.pressed[k] }
func (f *fakeInput) IsKeyJustReleased(k render.Key) bool { return f.released[k] }

func TestKeymapPoll(t *testing.T) {
	s, ft, _ := newTestSession(t)
	run(s, ft, 120)
	x0 := s.Body().Position().X

	in := &fakeInput{pressed: map[render.Key]bool{render.KeyRight: true, render.KeyD: true}}
	DefaultKeymap().Poll(in, s)
	run(s, ft, 10)

	if s.Body().Position().X <= x0 {
		t.Errorf("Expected body to move right from %v, got %v", x0, s.Body().Position().X)
	}
	if !s.ShowGrid() {
		t.Error("Expected D to toggle the grid")
	}

	in = &fakeInput{released: map[render.Key]bool{render.KeyRight: true, render.KeyD: true}}
	DefaultKeymap().Poll(in, s)
	x1 := s.Body().Position().X
	run(s, ft, 10)
	if s.Body().Position().X != x1 {
		t.Errorf("Expected body to stop at %v after release, got %v", x1, s.Body().Position().X)
	}
	if !s.ShowGrid() {
		t.Error("Expected grid toggle to ignore the release")
	}
}

func TestDefaultKeymapBindings(t *testing.T) {
	k := DefaultKeymap()
	expected := map[render.Key]Action{
		render.KeyUp:     ActionJump,
		render.KeyLeft:   ActionLeft,
		render.KeyRight:  ActionRight,
		render.KeyDown:   ActionStop,
		render.KeySpace:  ActionPause,
		render.KeyEscape: ActionQuit,
	}
	for key, action := range expected {
		if k[key] != action {
			t.Errorf("Expected key %d bound to %d, got %d", key, action, k[key])
		}
	}
}

func TestLoadLevelByName(t *testing.T) {
	dir := t.TempDir()
	levels := filepath.Join(dir, LevelsDir)
	if err := os.MkdirAll(levels, 0755); err != nil {
		t.Fatalf("Failed to create levels dir: %v", err)
	}
	hex := "00 00 00\n00 00 00\n01 01 01\n"
	if err := os.WriteFile(filepath.Join(levels, "tiny.txt"), []byte(hex), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}

	cfg := config.DefaultConfig()
	m, err := LoadLevel(dir, cfg, "tiny")
	if err != nil {
		t.Fatalf("Failed to load level: %v", err)
	}
	if m.Grid.Width() != 3 || m.Grid.Height() != 3 {
		t.Errorf("Expected 3x3 grid, got %dx%d", m.Grid.Width(), m.Grid.Height())
	}

	if _, err := LoadLevel(dir, cfg, "missing"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestOpenCuesDisabled(t *testing.T) {
	if _, ok := OpenCues(config.AudioConfig{Enabled: false}).(audio.Nop); !ok {
		t.Error("Expected Nop player when audio is disabled")
	}
}
