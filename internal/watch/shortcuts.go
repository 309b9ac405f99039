package watch

import "github.com/charmbracelet/bubbles/key"

// WatchKeys defines key bindings for watch mode
type WatchKeys struct {
	Hint  key.Binding
	List  key.Binding
	Rerun key.Binding
	Next  key.Binding
	Quit  key.Binding
}

func (k WatchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Hint, k.List, k.Rerun, k.Next, k.Quit}
}

func (k WatchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hint, k.List},
		{k.Rerun, k.Next},
		{k.Quit},
	}
}

var WatchKeyMap = WatchKeys{
	Hint:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
	List:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
	Rerun: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rerun")),
	Next:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
