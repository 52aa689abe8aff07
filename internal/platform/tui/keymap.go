package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// KeyMap defines the key bindings of the game view.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Pause      key.Binding
	Start      key.Binding
	Back       key.Binding
	History    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.History, k.Back, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Start, k.Pause, k.History, k.Screenshot},
		{k.Back, k.Quit, k.Help},
	}
}

// DefaultKeyMap returns the default bindings. Letter keys match either case so
// caps lock does not break steering.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "W"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "S"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "A"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "D"),
			key.WithHelp("→/d", "right"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "space", "p", "P"),
			key.WithHelp("space/p", "pause"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "r", "R"),
			key.WithHelp("enter/r", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "logout"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyAction is what a key means to the game view.
type KeyAction int

const (
	KeyNone       KeyAction = iota
	KeyIntent               // Forward the intent to the engine
	KeyBack                 // Stop the run and log out
	KeyHistory              // Toggle the history panel
	KeyScreenshot           // Save the screen to a file
	KeyHelp                 // Toggle the full help
	KeyQuit                 // Leave the program
)

// KeyMapper translates Bubble Tea key messages to engine intents.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message. The intent is only meaningful when the
// action is KeyIntent.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Intent, KeyAction) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.Intent{}, KeyQuit
	case key.Matches(msg, k.Up):
		return core.Steer(core.DirUp), KeyIntent
	case key.Matches(msg, k.Down):
		return core.Steer(core.DirDown), KeyIntent
	case key.Matches(msg, k.Left):
		return core.Steer(core.DirLeft), KeyIntent
	case key.Matches(msg, k.Right):
		return core.Steer(core.DirRight), KeyIntent
	case key.Matches(msg, k.Pause):
		return core.TogglePause(), KeyIntent
	case key.Matches(msg, k.Start):
		return core.StartRun(), KeyIntent
	case key.Matches(msg, k.Back):
		return core.StopRun(), KeyBack
	case key.Matches(msg, k.History):
		return core.Intent{}, KeyHistory
	case key.Matches(msg, k.Screenshot):
		return core.Intent{}, KeyScreenshot
	case key.Matches(msg, k.Help):
		return core.Intent{}, KeyHelp
	}
	return core.Intent{}, KeyNone
}
