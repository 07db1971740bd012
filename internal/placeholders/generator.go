// Package placeholders draws stand-in art so the game runs without any
// asset files: a tileset, the player sprite sheet and a parallax backdrop.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/krpors/titania/internal/gfx/sheet"
)

// TilesetColumns is the number of tiles per row in the generated tileset.
const TilesetColumns = 4

// ColorPalette defines colors for the placeholder art
var ColorPalette = struct {
	// Tiles
	Grass color.RGBA
	Dirt  color.RGBA
	Stone color.RGBA
	Brick color.RGBA
	Metal color.RGBA
	Wood  color.RGBA
	Crate color.RGBA
	Moss  color.RGBA

	// Player
	Suit  color.RGBA
	Visor color.RGBA
	Boots color.RGBA

	// Backdrop
	SkyTop    color.RGBA
	SkyBottom color.RGBA
	Hills     color.RGBA
}{
	Grass: color.RGBA{90, 170, 70, 255},
	Dirt:  color.RGBA{120, 85, 55, 255},
	Stone: color.RGBA{120, 120, 130, 255},
	Brick: color.RGBA{150, 70, 55, 255},
	Metal: color.RGBA{160, 170, 185, 255},
	Wood:  color.RGBA{150, 110, 60, 255},
	Crate: color.RGBA{185, 140, 75, 255},
	Moss:  color.RGBA{70, 120, 60, 255},

	Suit:  color.RGBA{230, 120, 40, 255},
	Visor: color.RGBA{120, 220, 255, 255},
	Boots: color.RGBA{60, 60, 70, 255},

	SkyTop:    color.RGBA{30, 40, 90, 255},
	SkyBottom: color.RGBA{110, 150, 210, 255},
	Hills:     color.RGBA{40, 60, 80, 255},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(size int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border
func CreateBorderedTile(size int, fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(size, fillColor)
	for i := 0; i < borderWidth; i++ {
		for x := 0; x < size; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, size-1-i, borderColor)
		}
		for y := 0; y < size; y++ {
			img.Set(i, y, borderColor)
			img.Set(size-1-i, y, borderColor)
		}
	}
	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(size int, baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(size, baseColor)

	switch pattern {
	case "bricks":
		half := size / 2
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				offset := 0
				if y >= half {
					offset = half
				}
				if y == 0 || y == half || (x+offset)%size == 0 {
					img.Set(x, y, patternColor)
				}
			}
		}
	case "planks":
		for y := 0; y < size; y += max(size/4, 1) {
			for x := 0; x < size; x++ {
				img.Set(x, y, patternColor)
			}
		}
	case "cross":
		for i := 0; i < size; i++ {
			img.Set(i, i, patternColor)
			img.Set(i, size-1-i, patternColor)
		}
	case "speckle":
		for y := 1; y < size; y += 3 {
			for x := (y * 7) % 4; x < size; x += 5 {
				img.Set(x, y, patternColor)
			}
		}
	}

	return img
}

// CreateGrassTile creates dirt with a grass strip on top
func CreateGrassTile(size int) *image.RGBA {
	img := CreatePatternedTile(size, ColorPalette.Dirt, Darken(ColorPalette.Dirt, 0.8), "speckle")
	strip := max(size/4, 1)
	draw.Draw(img, image.Rect(0, 0, size, strip), &image.Uniform{ColorPalette.Grass}, image.Point{}, draw.Src)
	return img
}

// CreateTileset lays out the placeholder tiles, TilesetColumns per row.
// Tile n of the tileset is drawn for cell value n+1.
func CreateTileset(size int) *image.RGBA {
	tiles := []*image.RGBA{
		CreateGrassTile(size),
		CreatePatternedTile(size, ColorPalette.Dirt, Darken(ColorPalette.Dirt, 0.8), "speckle"),
		CreateBorderedTile(size, ColorPalette.Stone, Darken(ColorPalette.Stone, 0.7), 1),
		CreatePatternedTile(size, ColorPalette.Brick, Lighten(ColorPalette.Brick, 0.4), "bricks"),
		CreateBorderedTile(size, ColorPalette.Metal, Lighten(ColorPalette.Metal, 0.5), 2),
		CreatePatternedTile(size, ColorPalette.Wood, Darken(ColorPalette.Wood, 0.7), "planks"),
		CreatePatternedTile(size, ColorPalette.Crate, Darken(ColorPalette.Crate, 0.6), "cross"),
		CreatePatternedTile(size, ColorPalette.Moss, Lighten(ColorPalette.Moss, 0.3), "speckle"),
	}
	return CreateAtlas(tiles, size, TilesetColumns)
}

// CreateAtlas creates a sprite atlas from multiple tiles
func CreateAtlas(tiles []*image.RGBA, size, columns int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	atlas := image.NewRGBA(image.Rect(0, 0, columns*size, rows*size))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * size
		y := (i / columns) * size
		draw.Draw(atlas, image.Rect(x, y, x+size, y+size), tile, image.Point{}, draw.Src)
	}

	return atlas
}

// drawFigure draws the player in one frame. legs shifts the feet apart,
// bob lifts the body.
func drawFigure(img *image.RGBA, r image.Rectangle, legs, bob int) {
	w, h := r.Dx(), r.Dy()
	fill := func(x0, y0, x1, y1 int, c color.RGBA) {
		rect := image.Rect(r.Min.X+x0, r.Min.Y+y0, r.Min.X+x1, r.Min.Y+y1).Intersect(r)
		draw.Draw(img, rect, &image.Uniform{c}, image.Point{}, draw.Src)
	}

	top := h/8 - bob
	fill(w/4, top, w-w/4, h-h/4-bob, ColorPalette.Suit)
	fill(w/4+w/8, top+h/8, w-w/4, top+h/4, ColorPalette.Visor)

	foot := max(w/6, 1)
	fill(w/4-legs, h-h/4, w/4-legs+foot, h, ColorPalette.Boots)
	fill(w-w/4-foot+legs, h-h/4, w-w/4+legs, h, ColorPalette.Boots)
}

// CreatePlayerSheet draws every frame the sheet describes. Run frames swing
// the legs, rest frames bob, the jump pose tucks and the fall pose spreads.
func CreatePlayerSheet(sh *sheet.Sheet) *image.RGBA {
	img := image.NewRGBA(sh.Bounds())

	for _, name := range sh.Names() {
		def, _ := sh.GetAnimation(name)
		for i := 0; i < def.Frames; i++ {
			r := sh.FrameRect(def, i)
			legs, bob := 0, 0
			switch name {
			case sheet.Move:
				legs = []int{0, 1, 2, 1, 0, -1}[i%6]
			case sheet.Rest:
				bob = i % 2
			case sheet.Jump:
				legs, bob = -1, 1
			case sheet.Fall:
				legs = 2
			}
			drawFigure(img, r, legs, bob)
		}
	}

	return img
}

// CreateBackground draws a sky gradient with a band of hills along the bottom.
func CreateBackground(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	top, bottom := ColorPalette.SkyTop, ColorPalette.SkyBottom

	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(height-1, 1))
		c := color.RGBA{
			R: uint8(float64(top.R) + (float64(bottom.R)-float64(top.R))*t),
			G: uint8(float64(top.G) + (float64(bottom.G)-float64(top.G))*t),
			B: uint8(float64(top.B) + (float64(bottom.B)-float64(top.B))*t),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	// Hills repeat every quarter width so the image tiles horizontally.
	period := max(width/4, 1)
	for x := 0; x < width; x++ {
		p := x % period
		d := p
		if p > period/2 {
			d = period - p
		}
		hill := height/2 + height/4 - d*height/(2*period)
		for y := hill; y < height; y++ {
			img.Set(x, y, ColorPalette.Hills)
		}
	}

	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}

// Files names the images GenerateAndSave writes, relative to its directory.
type Files struct {
	Player     string
	Tileset    string
	Background string
}

// GenerateAndSave writes the placeholder PNGs under dir.
func GenerateAndSave(dir string, files Files, sh *sheet.Sheet, tileSize int) error {
	images := []struct {
		path string
		img  image.Image
	}{
		{files.Player, CreatePlayerSheet(sh)},
		{files.Tileset, CreateTileset(tileSize)},
		{files.Background, CreateBackground(640, 360)},
	}

	for _, entry := range images {
		if entry.path == "" {
			continue
		}
		path := filepath.Join(dir, entry.path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := SavePNG(entry.img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		fmt.Printf("  Created %s\n", path)
	}

	return nil
}
