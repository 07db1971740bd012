// Package tilegrid holds the collision layer of a level: a width×height grid
// of integer tile codes and the queries the physics code runs against it.
package tilegrid

import (
	"fmt"
	"math"

	"github.com/krpors/titania/internal/core/geom"
)

// EdgeCode is returned for any query outside the grid. It is solid, so the
// edge of the authored map behaves like a wall.
const EdgeCode = 1

// Empty is the code of a passable tile.
const Empty = 0

// Tile is the result of a pixel lookup.
type Tile struct {
	Code int
	// Rect is the pixel-space rectangle covered by the tile.
	Rect geom.Rect
	// Coord is the tile index the pixel fell into.
	Coord geom.Coord
}

// Solid reports whether the tile blocks movement.
func (t Tile) Solid() bool { return IsSolid(t.Code) }

// IsSolid reports whether a tile code blocks movement. Any positive code is
// solid; there are no per-tile collision shapes.
func IsSolid(code int) bool { return code > 0 }

// Grid is the collision layer. It is populated once by a loader and is
// read-only during play.
type Grid struct {
	width      int
	height     int
	tileWidth  float64
	tileHeight float64
	codes      []int
}

// New creates an empty grid of the given tile counts and tile pixel size.
func New(width, height int, tileWidth, tileHeight float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", width, height)
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size: %gx%g", tileWidth, tileHeight)
	}
	return &Grid{
		width:      width,
		height:     height,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		codes:      make([]int, width*height),
	}, nil
}

// FromRows builds a grid from rows of codes indexed [y][x]. Every row must
// have the same length.
func FromRows(rows [][]int, tileWidth, tileHeight float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	g, err := New(len(rows[0]), len(rows), tileWidth, tileHeight)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", y, len(row), g.width)
		}
		copy(g.codes[y*g.width:], row)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// TileSize returns the pixel size of a single tile.
func (g *Grid) TileSize() (w, h float64) { return g.tileWidth, g.tileHeight }

// PixelSize returns the extent of the whole grid in pixels.
func (g *Grid) PixelSize() (w, h float64) {
	return float64(g.width) * g.tileWidth, float64(g.height) * g.tileHeight
}

// InBounds reports whether (tx, ty) addresses a stored tile.
func (g *Grid) InBounds(tx, ty int) bool {
	return tx >= 0 && tx < g.width && ty >= 0 && ty < g.height
}

// Set stores a code. Out-of-range writes are ignored.
func (g *Grid) Set(tx, ty, code int) {
	if !g.InBounds(tx, ty) {
		return
	}
	g.codes[ty*g.width+tx] = code
}

// TileCodeAt returns the code at tile (tx, ty), or EdgeCode when the
// coordinate lies outside the grid.
func (g *Grid) TileCodeAt(tx, ty int) int {
	if !g.InBounds(tx, ty) {
		return EdgeCode
	}
	return g.codes[ty*g.width+tx]
}

// TileIndex converts a pixel coordinate to the tile index containing it.
func (g *Grid) TileIndex(px, py float64) (tx, ty int) {
	return int(math.Floor(px / g.tileWidth)), int(math.Floor(py / g.tileHeight))
}

// TileAtPixel returns the tile that contains pixel (px, py) together with its
// pixel rectangle. Pixels outside the grid yield EdgeCode with the rectangle
// the tile would have had.
func (g *Grid) TileAtPixel(px, py float64) Tile {
	tx, ty := g.TileIndex(px, py)
	return Tile{
		Code:  g.TileCodeAt(tx, ty),
		Coord: geom.Coord{X: tx, Y: ty},
		Rect: geom.Rect{
			X: float64(tx) * g.tileWidth,
			Y: float64(ty) * g.tileHeight,
			W: g.tileWidth,
			H: g.tileHeight,
		},
	}
}

// Footprint returns the inclusive tile index range covering the closed
// rectangle [x, x+w] × [y, y+h]. The end index uses floor((pos+size)/tile),
// so a rectangle whose edge lies exactly on a tile boundary includes the
// tile past that boundary.
func (g *Grid) Footprint(r geom.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = g.TileIndex(r.X, r.Y)
	x1, y1 = g.TileIndex(r.X+r.W, r.Y+r.H)
	return x0, y0, x1, y1
}

// Collides reports whether any tile in the footprint of r is solid. Parts of
// r outside the grid collide with the edge.
func (g *Grid) Collides(r geom.Rect) bool {
	x0, y0, x1, y1 := g.Footprint(r)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			if IsSolid(g.TileCodeAt(x, y)) {
				return true
			}
		}
	}
	return false
}

// Rows returns a copy of the codes as [y][x] rows.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		rows[y] = append([]int(nil), g.codes[y*g.width:(y+1)*g.width]...)
	}
	return rows
}
