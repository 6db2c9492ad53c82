package tui

import "github.com/charmbracelet/bubbles/key"

// bindings is the full key set of the picker. ctrl+p/ctrl+n mirror the
// arrow keys so the picker is usable from shells with readline habits.
type bindings struct {
	moveUp     key.Binding
	moveDown   key.Binding
	pick       key.Binding
	quit       key.Binding
	scrollUp   key.Binding
	scrollDown key.Binding
	pageUp     key.Binding
	pageDown   key.Binding
}

var keys = bindings{
	moveUp: key.NewBinding(
		key.WithKeys("up", "ctrl+p", "ctrl+k"),
		key.WithHelp("up", "previous result"),
	),
	moveDown: key.NewBinding(
		key.WithKeys("down", "ctrl+n", "ctrl+j"),
		key.WithHelp("down", "next result"),
	),
	pick: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy message"),
	),
	quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	scrollUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "transcript up"),
	),
	scrollDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "transcript down"),
	),
	pageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "transcript page up"),
	),
	pageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "transcript page down"),
	),
}
