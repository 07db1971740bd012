package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/krpors/titania/internal/render"
	"github.com/krpors/titania/internal/world/maploader"
)

// The backdrop scrolls at 1/parallaxDivisor of the camera speed.
const parallaxDivisor = 6

// BumpText is shown over the player's head after a ceiling hit.
const BumpText = "Boop!!!"

var (
	skyColor    = color.RGBA{20, 20, 40, 255}
	gridColor   = color.NRGBA{255, 255, 255, 60}
	hitboxColor = color.RGBA{255, 60, 60, 255}
	textColor   = color.RGBA{255, 255, 255, 255}
	pausedColor = color.RGBA{255, 220, 80, 255}
)

// Draw renders the game to the screen.
func (m *Manager) Draw(screen render.Image) {
	screen.Fill(skyColor)

	m.drawBackground(screen)
	m.drawLayers(screen, m.session.Map().BackgroundLayers())
	m.drawTrail(screen)
	m.drawPlayer(screen)
	m.drawLayers(screen, m.session.Map().ForegroundLayers())
	m.drawBump(screen)

	if m.session.ShowGrid() {
		m.drawGrid(screen)
	}
	if m.session.ShowDebug() {
		m.drawDebug(screen)
	}
	m.drawUI(screen)
}

// drawBackground tiles the backdrop across the screen, offset by a fraction
// of the camera position.
func (m *Manager) drawBackground(screen render.Image) {
	if m.assets == nil || m.assets.Background == nil {
		return
	}
	bw, bh := m.assets.Background.Size()
	if bw == 0 || bh == 0 {
		return
	}
	sw, sh := screen.Size()
	cam := m.session.Camera().Offset()

	startX := -math.Mod(cam.X/parallaxDivisor, float64(bw))
	startY := -math.Mod(cam.Y/parallaxDivisor, float64(bh))

	for y := startY; y < float64(sh); y += float64(bh) {
		for x := startX; x < float64(sw); x += float64(bw) {
			opts := &render.DrawImageOptions{GeoM: m.renderer.NewGeoM()}
			opts.GeoM.Translate(x, y)
			screen.DrawImage(m.assets.Background, opts)
		}
	}
}

func (m *Manager) drawLayers(screen render.Image, layers []*maploader.Layer) {
	if m.assets == nil || m.assets.Tileset == nil {
		return
	}
	cam := m.session.Camera()
	off := cam.Offset()
	ts := float64(m.assets.TileSize)

	for _, layer := range layers {
		x0 := max(int(off.X/layer.TileWidth), 0)
		y0 := max(int(off.Y/layer.TileHeight), 0)
		x1 := min(int(math.Ceil((off.X+cam.ViewportWidth)/layer.TileWidth)), layer.Width)
		y1 := min(int(math.Ceil((off.Y+cam.ViewportHeight)/layer.TileHeight)), layer.Height)

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				src, ok := m.assets.TileRect(layer.At(x, y))
				if !ok {
					continue
				}
				opts := &render.DrawImageOptions{GeoM: m.renderer.NewGeoM()}
				opts.GeoM.Scale(layer.TileWidth/ts, layer.TileHeight/ts)
				opts.GeoM.Translate(float64(x)*layer.TileWidth-off.X, float64(y)*layer.TileHeight-off.Y)
				screen.DrawImage(m.assets.Tileset.SubImage(src), opts)
			}
		}
	}
}

func (m *Manager) drawTrail(screen render.Image) {
	off := m.session.Camera().Offset()
	for _, p := range m.session.Body().Trail().Live() {
		m.renderer.FillRect(screen,
			float32(p.X-off.X), float32(p.Y-off.Y), float32(p.W), float32(p.H),
			color.NRGBA{255, 255, 255, p.Alpha})
	}
}

// drawPlayer draws the current frame stretched over the hitbox, mirrored
// when facing left.
func (m *Manager) drawPlayer(screen render.Image) {
	body := m.session.Body()
	box := body.Hitbox()
	off := m.session.Camera().Offset()

	if m.assets == nil || m.assets.Player == nil {
		m.renderer.FillRect(screen, float32(box.X-off.X), float32(box.Y-off.Y), float32(box.W), float32(box.H), hitboxColor)
		return
	}

	frame := body.CurrentFrame()
	sx := box.W / float64(frame.Dx())
	sy := box.H / float64(frame.Dy())

	opts := &render.DrawImageOptions{GeoM: m.renderer.NewGeoM()}
	if body.Facing() < 0 {
		opts.GeoM.Scale(-sx, sy)
		opts.GeoM.Translate(box.Right()-off.X, box.Y-off.Y)
	} else {
		opts.GeoM.Scale(sx, sy)
		opts.GeoM.Translate(box.X-off.X, box.Y-off.Y)
	}
	screen.DrawImage(m.assets.Player.SubImage(frame), opts)
}

func (m *Manager) drawBump(screen render.Image) {
	bump := m.session.Body().Bump()
	if !bump.Active() {
		return
	}
	off := m.session.Camera().Offset()
	alpha := uint8(min(bump.Life, 255))
	w, _ := m.renderer.MeasureText(BumpText, bump.Scale)
	m.renderer.DrawText(screen, BumpText,
		bump.Anchor.X-off.X-w/2, bump.Anchor.Y-off.Y,
		color.NRGBA{255, 255, 255, alpha}, bump.Scale)
}

func (m *Manager) drawGrid(screen render.Image) {
	grid := m.session.Map().Grid
	tw, th := grid.TileSize()
	off := m.session.Camera().Offset()
	sw, sh := screen.Size()

	for x := -math.Mod(off.X, tw); x < float64(sw); x += tw {
		m.renderer.StrokeLine(screen, float32(x), 0, float32(x), float32(sh), 1, gridColor)
	}
	for y := -math.Mod(off.Y, th); y < float64(sh); y += th {
		m.renderer.StrokeLine(screen, 0, float32(y), float32(sw), float32(y), 1, gridColor)
	}
}

func (m *Manager) drawDebug(screen render.Image) {
	box := m.session.Body().Hitbox()
	off := m.session.Camera().Offset()
	m.renderer.StrokeRect(screen, float32(box.X-off.X), float32(box.Y-off.Y), float32(box.W), float32(box.H), 1, hitboxColor)

	lines := m.session.DebugLines()
	if m.engine != nil {
		lines = append(lines, fmt.Sprintf("FPS: %.1f", m.engine.ActualFPS()))
	}
	y := 10.0
	for _, line := range lines {
		m.renderer.DrawText(screen, line, 10, y, textColor, 1.0)
		y += 16
	}
}

func (m *Manager) drawUI(screen render.Image) {
	sw, sh := screen.Size()

	if m.session.Paused() {
		const banner = "PAUSED"
		w, h := m.renderer.MeasureText(banner, 3.0)
		m.renderer.DrawText(screen, banner, (float64(sw)-w)/2, (float64(sh)-h)/2, pausedColor, 3.0)
	}

	// Draw on-screen messages
	y := float64(sh) - 30
	for i := len(m.session.Messages()) - 1; i >= 0; i-- {
		msg := m.session.Messages()[i]
		m.renderer.DrawText(screen, msg.Text, 20, y, color.NRGBA{255, 255, 255, msg.Alpha()}, 1.0)
		y -= 20
	}
}
