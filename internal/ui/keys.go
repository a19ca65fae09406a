package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Refresh     key.Binding
	Sort        key.Binding
	Kill        key.Binding
	Logging     key.Binding
	Save        key.Binding
	ExportLog   key.Binding
	ClearLog    key.Binding
	Help        key.Binding
	Quit        key.Binding
	Acknowledge key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resample processes"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort cpu/mem"),
		),
		Kill: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "terminate"),
		),
		Logging: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle logging"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save snapshot"),
		),
		ExportLog: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export log"),
		),
		ClearLog: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Acknowledge: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "dismiss"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Logging, k.Save, k.ExportLog, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Sort, k.Refresh, k.Kill},
		{k.Logging, k.ClearLog, k.Save, k.ExportLog},
		{k.Help, k.Quit},
	}
}
