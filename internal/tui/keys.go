package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Guess     key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	Sharper   key.Binding
	Flatter   key.Binding
	Play      key.Binding
	PlayTrue  key.Binding
	Stop      key.Binding
	New       key.Binding
	NextScale key.Binding
	PrevScale key.Binding
	LevelUp   key.Binding
	LevelDown key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Guess: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "guess note"),
		),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev key")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next key")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "guess key")),
		Sharper:   key.NewBinding(key.WithKeys("up", "s"), key.WithHelp("↑/s", "sharper")),
		Flatter:   key.NewBinding(key.WithKeys("down", "f"), key.WithHelp("↓/f", "flatter")),
		Play:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play scale")),
		PlayTrue:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "play correct scale")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new round")),
		NextScale: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next scale")),
		PrevScale: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev scale")),
		LevelUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more detune")),
		LevelDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less detune")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Guess, k.Sharper, k.Flatter, k.Play, k.New, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Guess, k.Left, k.Right, k.Select},
		{k.Sharper, k.Flatter},
		{k.Play, k.PlayTrue, k.Stop, k.New},
		{k.NextScale, k.PrevScale, k.LevelUp, k.LevelDown},
		{k.Help, k.Quit},
	}
}
