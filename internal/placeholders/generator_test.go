package placeholders

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/krpors/titania/internal/gfx/sheet"
)

func TestCreateTileset(t *testing.T) {
	img := CreateTileset(16)
	if got := img.Bounds(); got != image.Rect(0, 0, 64, 32) {
		t.Errorf("Expected 64x32 tileset, got %v", got)
	}
	// The grass strip sits on top of tile 0.
	if c := img.RGBAAt(8, 0); c != ColorPalette.Grass {
		t.Errorf("Expected grass at the top of tile 0, got %v", c)
	}
}

func TestCreatePlayerSheetMatchesLayout(t *testing.T) {
	sh := sheet.Default()
	img := CreatePlayerSheet(sh)
	if img.Bounds() != sh.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", sh.Bounds(), img.Bounds())
	}

	// Every frame has some opaque pixels.
	for _, name := range sh.Names() {
		def, _ := sh.GetAnimation(name)
		for i := 0; i < def.Frames; i++ {
			r := sh.FrameRect(def, i)
			opaque := false
			for y := r.Min.Y; y < r.Max.Y && !opaque; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					if img.RGBAAt(x, y).A != 0 {
						opaque = true
						break
					}
				}
			}
			if !opaque {
				t.Errorf("Expected frame %s/%d to be drawn", name, i)
			}
		}
	}
}

func TestCreateBackgroundGradient(t *testing.T) {
	img := CreateBackground(64, 32)
	if img.RGBAAt(0, 0) != ColorPalette.SkyTop {
		t.Errorf("Expected sky top color at the top, got %v", img.RGBAAt(0, 0))
	}
	if img.RGBAAt(5, 31) != ColorPalette.Hills {
		t.Errorf("Expected hills at the bottom, got %v", img.RGBAAt(5, 31))
	}
}

func TestGenerateAndSave(t *testing.T) {
	dir := t.TempDir()
	files := Files{
		Player:     "images/player.png",
		Tileset:    "images/tileset.png",
		Background: "images/background.png",
	}
	if err := GenerateAndSave(dir, files, sheet.Default(), 16); err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, files.Tileset))
	if err != nil {
		t.Fatalf("Expected tileset to exist: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode tileset: %v", err)
	}
	if img.Bounds().Dx() != 16*TilesetColumns {
		t.Errorf("Expected tileset width %d, got %d", 16*TilesetColumns, img.Bounds().Dx())
	}
}

func TestDarkenLighten(t *testing.T) {
	c := ColorPalette.Stone
	if d := Darken(c, 0.5); d.R >= c.R {
		t.Errorf("Expected darker red, got %d from %d", d.R, c.R)
	}
	if l := Lighten(c, 0.5); l.R <= c.R {
		t.Errorf("Expected lighter red, got %d from %d", l.R, c.R)
	}
}
