package game

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/krpors/titania/internal/config"
	"github.com/krpors/titania/internal/gfx/sheet"
	"github.com/krpors/titania/internal/placeholders"
	"github.com/krpors/titania/internal/render"
	"github.com/krpors/titania/internal/world/maploader"
)

// Assets holds the images the graphical frontend draws with.
type Assets struct {
	Sheet      *sheet.Sheet
	Player     render.Image
	Tileset    render.Image
	Background render.Image
	TileSize   int // Source tile size inside Tileset

	tilesetColumns int
}

// LoadSheet reads the configured sprite sheet description, or returns the
// built-in layout when none is configured.
func LoadSheet(dataDir string, cfg *config.Config) (*sheet.Sheet, error) {
	if cfg.Assets.PlayerSheet == "" {
		return sheet.Default(), nil
	}
	sh, err := sheet.LoadSheet(filepath.Join(dataDir, cfg.Assets.PlayerSheet))
	if err != nil {
		return nil, fmt.Errorf("failed to load player sheet: %w", err)
	}
	return sh, nil
}

// LoadAssets loads the art for m. Any image that cannot be loaded is
// replaced by generated placeholder art, so a bare checkout still runs.
func LoadAssets(r render.Renderer, loader render.ResourceLoader, dataDir string, cfg *config.Config, m *maploader.Map, sh *sheet.Sheet) *Assets {
	ts := cfg.Assets.TilesetTileSize
	background := cfg.Assets.Background
	if m.Background != "" {
		background = m.Background
	}

	a := &Assets{
		Sheet:    sh,
		TileSize: ts,
		Player: loadOrGenerate(r, loader, dataDir, cfg.Assets.PlayerImage, func() image.Image {
			return placeholders.CreatePlayerSheet(sh)
		}),
		Tileset: loadOrGenerate(r, loader, dataDir, cfg.Assets.Tileset, func() image.Image {
			return placeholders.CreateTileset(ts)
		}),
		Background: loadOrGenerate(r, loader, dataDir, background, func() image.Image {
			return placeholders.CreateBackground(640, 360)
		}),
	}

	w, _ := a.Tileset.Size()
	a.tilesetColumns = max(w/ts, 1)
	return a
}

func loadOrGenerate(r render.Renderer, loader render.ResourceLoader, dataDir, path string, generate func() image.Image) render.Image {
	if path != "" && loader != nil {
		img, err := loader.LoadImage(filepath.Join(dataDir, path))
		if err == nil {
			return img
		}
		log.Printf("Warning: %v; using placeholder art", err)
	}
	return r.NewImageFromImage(generate())
}

// TileRect returns the tileset rectangle for a layer cell value. Value 0 is
// empty and reports false.
func (a *Assets) TileRect(v int) (image.Rectangle, bool) {
	if v <= 0 {
		return image.Rectangle{}, false
	}
	i := v - 1
	x := (i % a.tilesetColumns) * a.TileSize
	y := (i / a.tilesetColumns) * a.TileSize
	return image.Rect(x, y, x+a.TileSize, y+a.TileSize), true
}

// Dispose releases the images. The assets must not be drawn afterwards.
func (a *Assets) Dispose() {
	for _, img := range []*render.Image{&a.Player, &a.Tileset, &a.Background} {
		if *img != nil {
			(*img).Dispose()
			*img = nil
		}
	}
}
