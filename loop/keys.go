package loop

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	prev    key.Binding
	next    key.Binding
	enter   key.Binding
	esc     key.Binding
	finish  key.Binding
	abort   key.Binding
	confirm key.Binding
}

var defaultKeymap = keymap{
	prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous"),
	),
	next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "log time"),
	),
	confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	finish: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "finish loop"),
	),
	abort: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit without saving"),
	),
}
