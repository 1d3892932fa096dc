package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap feeds the one-line key summary at the bottom of the screen. The
// bindings themselves are resolved by the input modes.
type keyMap struct {
	Focus  key.Binding
	Move   key.Binding
	Select key.Binding
	Step   key.Binding
	Filter key.Binding
	Mode   key.Binding
	Raw    key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Focus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "pane")),
		Move:   key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Step:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "step")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Mode:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Raw:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "raw")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Move, k.Select, k.Step, k.Filter, k.Mode, k.Raw, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Move, k.Select},
		{k.Step, k.Filter, k.Mode},
		{k.Raw, k.Help, k.Quit},
	}
}
