package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	RetireLater   key.Binding
	RetireEarlier key.Binding
	GrowthDown    key.Binding
	GrowthUp      key.Binding
	IncomeDown    key.Binding
	IncomeUp      key.Binding
	Reset         key.Binding
	Copy          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		RetireLater:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "retirement age")),
		RetireEarlier: key.NewBinding(key.WithKeys("-", "_")),
		GrowthDown:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "growth")),
		GrowthUp:      key.NewBinding(key.WithKeys("G")),
		IncomeDown:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i/I", "income")),
		IncomeUp:      key.NewBinding(key.WithKeys("I")),
		Reset:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy csv")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RetireLater, k.GrowthDown, k.IncomeDown, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RetireLater, k.GrowthDown, k.IncomeDown},
		{k.Reset, k.Copy},
		{k.Help, k.Quit},
	}
}
