package game

import (
	"log"

	"github.com/krpors/titania/internal/render"
)

// Manager adapts a Session to the graphical engine loop.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int

	session  *Session
	assets   *Assets
	renderer render.Renderer
	input    render.InputManager
	engine   render.Engine
	keymap   Keymap
}

// NewManager creates a new game manager. engine may be nil when the manager
// is not driven by a real window.
func NewManager(s *Session, assets *Assets, r render.Renderer, input render.InputManager, engine render.Engine, width, height int) *Manager {
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		session:      s,
		assets:       assets,
		renderer:     r,
		input:        input,
		engine:       engine,
		keymap:       DefaultKeymap(),
	}
}

// SetKeymap replaces the key bindings.
func (m *Manager) SetKeymap(k Keymap) { m.keymap = k }

// Session returns the session being played.
func (m *Manager) Session() *Session { return m.session }

// Update reads input and advances the session by one frame.
func (m *Manager) Update() error {
	if m.input != nil {
		m.keymap.Poll(m.input, m.session)
	}
	m.session.Step()

	if m.engine != nil && m.engine.IsFullscreen() != m.session.Fullscreen() {
		m.engine.SetFullscreen(m.session.Fullscreen())
	}

	if m.session.Halted() {
		log.Println("Quit requested")
		return render.ErrTerminate
	}
	return nil
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.session.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
