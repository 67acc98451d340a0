package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser's key bindings.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	End  key.Binding
	Copy key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Copy: key.NewBinding(key.WithKeys("enter", "c", "y"), key.WithHelp("enter/c", "copy")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.Quit}
}
