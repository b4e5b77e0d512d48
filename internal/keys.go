package internal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Discard key.Binding
	Details key.Binding
	Manual  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Export  key.Binding
	Print   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys("enter", " ", "s"), key.WithHelp("s", "start/stop")),
		Discard: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "discard timer")),
		Details: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "details")),
		Manual:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "manual entry")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Export:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Print:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "print")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Manual, k.Edit, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Discard, k.Details, k.Manual},
		{k.Edit, k.Delete},
		{k.Export, k.Print, k.Quit},
	}
}
