// Package camera keeps a viewport over the map centred on a target.
package camera

import "github.com/krpors/titania/internal/core/geom"

// Camera is a viewport in world pixels. X and Y are its top-left corner.
type Camera struct {
	X, Y           float64
	ViewportWidth  float64
	ViewportHeight float64
}

// New creates a camera with the given viewport size at the origin.
func New(viewportWidth, viewportHeight float64) *Camera {
	return &Camera{ViewportWidth: viewportWidth, ViewportHeight: viewportHeight}
}

// Resize changes the viewport size. The next Follow re-clamps the position.
func (c *Camera) Resize(viewportWidth, viewportHeight float64) {
	c.ViewportWidth = viewportWidth
	c.ViewportHeight = viewportHeight
}

// Follow centres the viewport on target, then clamps it to the map so no
// area outside [0, mapW] x [0, mapH] is shown. A map smaller than the
// viewport pins that axis to 0.
func (c *Camera) Follow(target geom.Point, mapW, mapH float64) {
	c.X = clamp(target.X-c.ViewportWidth/2, mapW-c.ViewportWidth)
	c.Y = clamp(target.Y-c.ViewportHeight/2, mapH-c.ViewportHeight)
}

func clamp(v, limit float64) float64 {
	if v > limit {
		v = limit
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Offset returns the camera position.
func (c *Camera) Offset() geom.Point {
	return geom.Point{X: c.X, Y: c.Y}
}

// WorldToScreen converts a world position to viewport coordinates.
func (c *Camera) WorldToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X - c.X, Y: p.Y - c.Y}
}

// Visible reports whether r overlaps the viewport.
func (c *Camera) Visible(r geom.Rect) bool {
	return r.Right() > c.X && r.X < c.X+c.ViewportWidth &&
		r.Bottom() > c.Y && r.Y < c.Y+c.ViewportHeight
}
