package game

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	More   key.Binding
	Fewer  key.Binding
	Select key.Binding
	Cancel key.Binding
	Group  key.Binding
	Hint   key.Binding
	Redeal key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "move right"),
		),
		More: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "grab more"),
		),
		Fewer: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "grab fewer"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select/place"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc", "cancel"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group dragons"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hint"),
		),
		Redeal: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart deal"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Group, k.Hint, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.More, k.Fewer},
		{k.Select, k.Cancel, k.Group, k.Hint},
		{k.Redeal, k.Help, k.Quit},
	}
}
