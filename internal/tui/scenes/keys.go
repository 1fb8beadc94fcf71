package scenes

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding the TUI responds to; it satisfies help.KeyMap
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	CopayUp    key.Binding
	CopayDown  key.Binding
	Reset      key.Binding
	ToggleLang key.Binding
	SubLimits  key.Binding
	Exclusions key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
	Increase:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "raise")),
	Decrease:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "lower")),
	CopayUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "copay +5")),
	CopayDown:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "copay -5")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	ToggleLang: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "عربي/English")),
	SubLimits:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sub-limits")),
	Exclusions: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "exclusions")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Increase, k.CopayUp, k.ToggleLang, k.SubLimits, k.Exclusions, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Increase, k.Decrease},
		{k.CopayUp, k.CopayDown, k.Reset},
		{k.ToggleLang, k.SubLimits, k.Exclusions, k.Help, k.Quit},
	}
}
