package game

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/gfx/sheet"
	"github.com/krpors/titania/internal/render"
)

// fakeRenderer records draw calls instead of rasterising.
type fakeRenderer struct {
	texts []string
	rects int
	lines int
}

type fakeImage struct {
	w, h     int
	draws    *int
	disposed bool
}

func newFakeImage(w, h int) *fakeImage {
	return &fakeImage{w: w, h: h, draws: new(int)}
}

type fakeGeoM struct{}

func (fakeGeoM) Translate(tx, ty float64) {}
func (fakeGeoM) Scale(sx, sy float64)     {}

func (r *fakeRenderer) NewImageFromImage(img image.Image) render.Image {
	b := img.Bounds()
	return newFakeImage(b.Dx(), b.Dy())
}
func (r *fakeRenderer) NewGeoM() render.GeoM { return fakeGeoM{} }
func (r *fakeRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.rects++
}
func (r *fakeRenderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	r.rects++
}
func (r *fakeRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color) {
	r.lines++
}
func (r *fakeRenderer) DrawText(dst render.Image, text string, x, y float64, clr color.Color, scale float64) {
	r.texts = append(r.texts, text)
}
func (r *fakeRenderer) MeasureText(text string, scale float64) (float64, float64) {
	return float64(len(text)) * 7 * scale, 13 * scale
}

func (i *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }
func (i *fakeImage) Size() (int, int)        { return i.w, i.h }
func (i *fakeImage) SubImage(r image.Rectangle) render.Image {
	return &fakeImage{w: r.Dx(), h: r.Dy(), draws: i.draws}
}
func (i *fakeImage) Fill(clr color.Color) {}
func (i *fakeImage) Clear()               {}
func (i *fakeImage) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	*i.draws++
}
func (i *fakeImage) Dispose() { i.disposed = true }

// fakeEngine tracks fullscreen requests.
type fakeEngine struct{ fullscreen bool }

func (e *fakeEngine) SetWindowSize(width, height int)   {}
func (e *fakeEngine) SetWindowTitle(title string)       {}
func (e *fakeEngine) SetWindowResizable(resizable bool) {}
func (e *fakeEngine) SetFullscreen(fullscreen bool)     { e.fullscreen = fullscreen }
func (e *fakeEngine) IsFullscreen() bool                { return e.fullscreen }
func (e *fakeEngine) ActualFPS() float64                { return 60 }
func (e *fakeEngine) RunGame(game render.Game) error    { return nil }

func newTestManager(t *testing.T) (*Manager, *fakeRenderer, *fakeEngine, *fakeTime) {
	t.Helper()
	s, ft, _ := newTestSession(t)
	r := &fakeRenderer{}
	assets := LoadAssets(r, nil, t.TempDir(), config.DefaultConfig(), s.Map(), sheet.Default())
	e := &fakeEngine{}
	return NewManager(s, assets, r, &fakeInput{}, e, 800, 600), r, e, ft
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestManagerUpdateTerminatesOnQuit(t *testing.T) {
	m, _, _, ft := newTestManager(t)
	ft.now += frame
	if err := m.Update(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	m.Session().Dispatch(ActionQuit, true)
	ft.now += frame
	if err := m.Update(); !errors.Is(err, render.ErrTerminate) {
		t.Errorf("Expected ErrTerminate, got %v", err)
	}
}

func TestManagerSyncsFullscreen(t *testing.T) {
	m, _, e, _ := newTestManager(t)
	m.Session().Dispatch(ActionFullscreen, true)
	m.Update()
	if !e.fullscreen {
		t.Error("Expected engine to switch to fullscreen")
	}
	m.Session().Dispatch(ActionFullscreen, true)
	m.Update()
	if e.fullscreen {
		t.Error("Expected engine to leave fullscreen")
	}
}

func TestManagerLayoutResizesCamera(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	w, h := m.Layout(320, 240)
	if w != 320 || h != 240 {
		t.Errorf("Expected 320x240, got %dx%d", w, h)
	}
	cam := m.Session().Camera()
	if cam.ViewportWidth != 320 || cam.ViewportHeight != 240 {
		t.Errorf("Expected viewport 320x240, got %vx%v", cam.ViewportWidth, cam.ViewportHeight)
	}
}

func TestDrawOverlays(t *testing.T) {
	m, r, _, ft := newTestManager(t)
	screen := newFakeImage(800, 600)

	m.Draw(screen)
	if *screen.draws == 0 {
		t.Error("Expected tiles and player to be drawn")
	}
	if !contains(r.texts, "Test Level") {
		t.Errorf("Expected level name message, got %v", r.texts)
	}
	if r.lines != 0 {
		t.Errorf("Expected no grid lines, got %d", r.lines)
	}

	m.Session().Dispatch(ActionGrid, true)
	m.Session().Dispatch(ActionDebug, true)
	m.Session().Dispatch(ActionPause, true)
	ft.now += frame
	r.texts = nil
	m.Draw(screen)

	if r.lines == 0 {
		t.Error("Expected grid lines")
	}
	if !contains(r.texts, "PAUSED") {
		t.Errorf("Expected PAUSED banner, got %v", r.texts)
	}
	if !contains(r.texts, "FPS: 60.0") {
		t.Errorf("Expected FPS in debug overlay, got %v", r.texts)
	}
}

func TestDrawBump(t *testing.T) {
	m, r, _, ft := newTestManager(t)
	s := m.Session()

	run(s, ft, 120)
	// A low ceiling two tiles above the floor.
	for x := 0; x < s.Map().Grid.Width(); x++ {
		s.Map().Grid.Set(x, 6, 1)
	}
	s.Dispatch(ActionJump, true)
	for i := 0; i < 60 && !s.Body().Bump().Active(); i++ {
		run(s, ft, 1)
	}
	if !s.Body().Bump().Active() {
		t.Fatal("Expected a ceiling bump")
	}

	screen := newFakeImage(800, 600)
	m.Draw(screen)
	if !contains(r.texts, BumpText) {
		t.Errorf("Expected %q to be drawn, got %v", BumpText, r.texts)
	}
}

func TestAssetsTileRect(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	a := m.assets

	if _, ok := a.TileRect(0); ok {
		t.Error("Expected value 0 to be empty")
	}
	r, ok := a.TileRect(6)
	if !ok {
		t.Fatal("Expected value 6 to map to a tile")
	}
	// Tile 5 sits in column 1 of row 1 of a 4-wide tileset.
	expected := image.Rect(16, 16, 32, 32)
	if r != expected {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestAssetsDispose(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	a := m.assets
	a.Dispose()

	for name, img := range map[string]render.Image{"player": a.Player, "tileset": a.Tileset, "background": a.Background} {
		if !img.(*fakeImage).disposed {
			t.Errorf("Expected %s image to be disposed", name)
		}
	}

	// A second call must not touch released images.
	a.Dispose()
	if a.Player != nil || a.Tileset != nil || a.Background != nil {
		t.Errorf("Expected images to be cleared, got %v %v %v", a.Player, a.Tileset, a.Background)
	}
}
