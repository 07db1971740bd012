package game

import "github.com/krpors/titania/internal/render"

// Action is something the player can ask for
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionJump
	ActionStop
	ActionPause
	ActionGrid
	ActionDebug
	ActionFullscreen
	ActionRespawn
	ActionQuit
)

// Held reports whether the action lasts while its key is down, as opposed
// to firing once on press.
func (a Action) Held() bool {
	switch a {
	case ActionLeft, ActionRight, ActionJump:
		return true
	default:
		return false
	}
}

// Keymap binds keys to actions.
type Keymap map[render.Key]Action

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		render.KeyLeft:   ActionLeft,
		render.KeyRight:  ActionRight,
		render.KeyUp:     ActionJump,
		render.KeyDown:   ActionStop,
		render.KeySpace:  ActionPause,
		render.KeyD:      ActionGrid,
		render.KeyP:      ActionDebug,
		render.KeyF:      ActionFullscreen,
		render.KeyR:      ActionRespawn,
		render.KeyEscape: ActionQuit,
	}
}

// Poll feeds key edges from input into s.
func (k Keymap) Poll(input render.InputManager, s *Session) {
	for _, key := range render.Keys {
		a, ok := k[key]
		if !ok {
			continue
		}
		if input.IsKeyJustPressed(key) {
			s.Dispatch(a, true)
		}
		if a.Held() && input.IsKeyJustReleased(key) {
			s.Dispatch(a, false)
		}
	}
}
