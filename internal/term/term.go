// Package term plays a session in a terminal. Each cell covers a fixed
// rectangle of world pixels.
//
// Terminals report key presses and auto-repeats but never releases, so a
// held action stays on until its key has been quiet for the hold timeout.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/core/geom"
	"github.com/krpors/titania/internal/game"
	"github.com/krpors/titania/internal/player"
)

var (
	styleSolid  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDecor  = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleTrail  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBump   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGrid   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// Frontend draws a session on a tcell screen and feeds it key events.
type Frontend struct {
	screen  tcell.Screen
	session *game.Session
	cfg     config.TerminalConfig
	now     func() time.Duration

	keys  map[tcell.Key]game.Action
	runes map[rune]game.Action
	held  map[game.Action]time.Duration // Last time each held action's key was seen
}

// New wraps an initialised screen. now is the time source for key holds.
func New(screen tcell.Screen, s *game.Session, cfg config.TerminalConfig, now func() time.Duration) *Frontend {
	f := &Frontend{
		screen:  screen,
		session: s,
		cfg:     cfg,
		now:     now,
		keys: map[tcell.Key]game.Action{
			tcell.KeyLeft:   game.ActionLeft,
			tcell.KeyRight:  game.ActionRight,
			tcell.KeyUp:     game.ActionJump,
			tcell.KeyDown:   game.ActionStop,
			tcell.KeyEscape: game.ActionQuit,
			tcell.KeyCtrlC:  game.ActionQuit,
		},
		runes: map[rune]game.Action{
			' ': game.ActionPause,
			'd': game.ActionGrid,
			'p': game.ActionDebug,
			'r': game.ActionRespawn,
			'q': game.ActionQuit,
		},
		held: make(map[game.Action]time.Duration),
	}
	f.resize()
	return f
}

func (f *Frontend) resize() {
	cols, rows := f.screen.Size()
	f.session.Resize(int(float64(cols)*f.cfg.CellWidth), int(float64(rows)*f.cfg.CellHeight))
}

func (f *Frontend) action(ev *tcell.EventKey) game.Action {
	if ev.Key() == tcell.KeyRune {
		return f.runes[ev.Rune()]
	}
	return f.keys[ev.Key()]
}

// HandleEvent applies one terminal event.
func (f *Frontend) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := f.action(ev)
		if a == game.ActionNone {
			return
		}
		if !a.Held() {
			f.session.Dispatch(a, true)
			return
		}
		if _, ok := f.held[a]; !ok {
			f.session.Dispatch(a, true)
		}
		f.held[a] = f.now()
	case *tcell.EventResize:
		f.screen.Sync()
		f.resize()
	}
}

// ReleaseExpired releases held actions whose key has been quiet for longer
// than the hold timeout.
func (f *Frontend) ReleaseExpired() {
	now := f.now()
	for a, seen := range f.held {
		if now-seen > f.cfg.HoldTimeout() {
			delete(f.held, a)
			f.session.Dispatch(a, false)
		}
	}
}

// Holding reports whether a is currently held.
func (f *Frontend) Holding(a game.Action) bool {
	_, ok := f.held[a]
	return ok
}

// Tick releases stale holds, steps the session and redraws.
func (f *Frontend) Tick() {
	f.ReleaseExpired()
	f.session.Step()
	f.Draw()
}

// Run pumps events and ticks until the session halts or ctx is done.
func (f *Frontend) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.cfg.FrameInterval())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go f.pump(ctx, events)

	for !f.session.Halted() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			f.HandleEvent(ev)
		case <-ticker.C:
			f.Tick()
		}
	}
	return nil
}

// pump forwards screen events to events until the screen is finalised or
// ctx is done. events is closed only in the first case.
func (f *Frontend) pump(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// cellCenter returns the world point in the middle of cell (cx, cy).
func (f *Frontend) cellCenter(cx, cy int) geom.Point {
	off := f.session.Camera().Offset()
	return geom.Point{
		X: off.X + (float64(cx)+0.5)*f.cfg.CellWidth,
		Y: off.Y + (float64(cy)+0.5)*f.cfg.CellHeight,
	}
}

// cellAt returns the cell containing world point p.
func (f *Frontend) cellAt(p geom.Point) (int, int) {
	off := f.session.Camera().Offset()
	return int((p.X - off.X) / f.cfg.CellWidth), int((p.Y - off.Y) / f.cfg.CellHeight)
}

// Draw renders the session. Row 0 is the status line.
func (f *Frontend) Draw() {
	f.screen.Clear()
	cols, rows := f.screen.Size()
	m := f.session.Map()
	tw, th := m.Grid.TileSize()

	for cy := 1; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			p := f.cellCenter(cx, cy)
			switch {
			case m.Grid.TileAtPixel(p.X, p.Y).Solid():
				f.screen.SetContent(cx, cy, '█', nil, styleSolid)
			case f.decorated(p):
				f.screen.SetContent(cx, cy, '░', nil, styleDecor)
			case f.session.ShowGrid() && onGridLine(p, tw, th, f.cfg):
				f.screen.SetContent(cx, cy, '·', nil, styleGrid)
			}
		}
	}

	for _, particle := range f.session.Body().Trail().Live() {
		cx, cy := f.cellAt(geom.Point{X: particle.X, Y: particle.Y})
		f.setCell(cx, cy, '.', styleTrail)
	}

	f.drawPlayer()
	f.drawBump()
	f.drawStatus(cols)
	f.screen.Show()
}

func (f *Frontend) setCell(cx, cy int, r rune, style tcell.Style) {
	cols, rows := f.screen.Size()
	if cx < 0 || cx >= cols || cy < 1 || cy >= rows {
		return
	}
	f.screen.SetContent(cx, cy, r, nil, style)
}

// decorated reports whether any visual layer has a tile under p.
func (f *Frontend) decorated(p geom.Point) bool {
	for _, layer := range f.session.Map().Layers {
		if layer.At(int(p.X/layer.TileWidth), int(p.Y/layer.TileHeight)) != 0 {
			return true
		}
	}
	return false
}

func onGridLine(p geom.Point, tw, th float64, cfg config.TerminalConfig) bool {
	return modBelow(p.X, tw, cfg.CellWidth) || modBelow(p.Y, th, cfg.CellHeight)
}

// modBelow reports whether v is within one cell of a multiple of step.
func modBelow(v, step, cell float64) bool {
	r := v - float64(int(v/step))*step
	return r < cell
}

func (f *Frontend) drawPlayer() {
	body := f.session.Body()
	glyph := poseGlyph(body.Pose(), body.Facing())
	box := body.Hitbox()

	x0, y0 := f.cellAt(geom.Point{X: box.X, Y: box.Y})
	x1, y1 := f.cellAt(geom.Point{X: box.Right() - 1, Y: box.Bottom() - 1})
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			f.setCell(cx, cy, glyph, stylePlayer)
		}
	}
}

func poseGlyph(p player.Pose, facing int) rune {
	switch p {
	case player.PoseJump:
		return '^'
	case player.PoseFall:
		return 'v'
	case player.PoseMove:
		if facing < 0 {
			return '<'
		}
		return '>'
	default:
		return '@'
	}
}

func (f *Frontend) drawBump() {
	bump := f.session.Body().Bump()
	if !bump.Active() {
		return
	}
	cx, cy := f.cellAt(bump.Anchor)
	for i, r := range game.BumpText {
		f.setCell(cx+i, cy, r, styleBump)
	}
}

func (f *Frontend) drawStatus(cols int) {
	status := ""
	if msgs := f.session.Messages(); len(msgs) > 0 {
		status = msgs[len(msgs)-1].Text
	}
	if f.session.ShowDebug() {
		pos := f.session.Body().Position()
		dx, dy := f.session.Body().Velocity()
		status = fmt.Sprintf("pos %.0f,%.0f vel %.0f,%.0f %s dt %.3f",
			pos.X, pos.Y, dx, dy, f.session.Body().State(), f.session.LastDelta())
	}
	if f.session.Paused() {
		status = "PAUSED " + status
	}

	for x := 0; x < cols; x++ {
		f.screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		f.screen.SetContent(i, 0, r, nil, styleStatus)
	}
}
