package viewer

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// KeyMap defines the viewer keybindings. It satisfies help.KeyMap.
type KeyMap struct {
	viewport.KeyMap

	Top    key.Binding
	Bottom key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Help, keys.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.PageUp, keys.PageDown},
		{keys.HalfPageUp, keys.HalfPageDown, keys.Top, keys.Bottom},
		{keys.Help, keys.Quit},
	}
}

func newKeyMap() KeyMap {
	return KeyMap{
		KeyMap: viewport.KeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			PageUp: key.NewBinding(
				key.WithKeys("pgup", "b"),
				key.WithHelp("pgup/b", "page up"),
			),
			PageDown: key.NewBinding(
				key.WithKeys("pgdown", " ", "f"),
				key.WithHelp("pgdn/space", "page down"),
			),
			HalfPageUp: key.NewBinding(
				key.WithKeys("u", "ctrl+u"),
				key.WithHelp("u", "½ page up"),
			),
			HalfPageDown: key.NewBinding(
				key.WithKeys("d", "ctrl+d"),
				key.WithHelp("d", "½ page down"),
			),
			Left: key.NewBinding(
				key.WithKeys("left", "h"),
				key.WithHelp("←/h", "scroll left"),
			),
			Right: key.NewBinding(
				key.WithKeys("right", "l"),
				key.WithHelp("→/l", "scroll right"),
			),
		},
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first line"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last line"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
