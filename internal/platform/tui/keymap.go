package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forge-studio/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "w", "up", "k":
		return core.ActionJump, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// IsHeld reports whether an action is a held direction rather than a
// one-shot command.
func IsHeld(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionDown:
		return true
	}
	return false
}
