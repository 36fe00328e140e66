package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-chase/internal/core"
)

// GameKeyMap holds the in-game bindings. It doubles as help.KeyMap.
type GameKeyMap struct {
	TurnLeft   key.Binding
	TurnRight  key.Binding
	Accelerate key.Binding
	Decelerate key.Binding
	Pause      key.Binding
	Save       key.Binding
	Quit       key.Binding
}

// DefaultGameKeyMap returns the standard bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		TurnLeft: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "turn left"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "turn right"),
		),
		Accelerate: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "faster"),
		),
		Decelerate: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "slower"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TurnLeft, k.TurnRight, k.Accelerate, k.Decelerate, k.Pause, k.Save, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TurnLeft, k.TurnRight, k.Accelerate, k.Decelerate},
		{k.Pause, k.Save, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the in-game bindings.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.TurnLeft):
		return core.ActionTurnLeft, false
	case key.Matches(msg, km.keys.TurnRight):
		return core.ActionTurnRight, false
	case key.Matches(msg, km.keys.Accelerate):
		return core.ActionAccelerate, false
	case key.Matches(msg, km.keys.Decelerate):
		return core.ActionDecelerate, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// IsSave reports whether msg asks for a save.
func (km *KeyMapper) IsSave(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Save)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionPrev
	MenuActionNext
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "a", "left", "h":
		return MenuActionPrev
	case "d", "right", "l":
		return MenuActionNext
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
