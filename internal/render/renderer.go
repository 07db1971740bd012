package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrTerminate is returned from Game.Update to end the game loop normally.
var ErrTerminate = errors.New("render: terminate")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// Image operations
	NewImageFromImage(img image.Image) Image
	NewGeoM() GeoM

	// Vector operations (for drawing shapes)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y float64, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height float64)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Sub-image extraction
	SubImage(r image.Rectangle) Image

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// Drawing operations
	DrawImage(src Image, opts *DrawImageOptions)

	// Resource management
	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
	// Alpha scales the opacity of the drawn image. Zero means opaque.
	Alpha float32
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Scale scales the image by (sx, sy).
	Scale(sx, sy float64)
}

// InputManager handles keyboard input.
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	IsKeyJustReleased(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
	KeyD // Grid toggle
	KeyF // Fullscreen
	KeyP // Debug overlay
	KeyR // Respawn
)

// Keys lists every key constant, for backends that poll.
var Keys = []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeySpace, KeyEscape, KeyD, KeyF, KeyP, KeyR}

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	// Returning ErrTerminate ends the loop without an error.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// SetFullscreen switches between fullscreen and windowed mode.
	SetFullscreen(fullscreen bool)
	IsFullscreen() bool

	// ActualFPS returns the measured frames per second.
	ActualFPS() float64

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
