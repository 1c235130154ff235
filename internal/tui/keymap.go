package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser keybindings. The paged log viewer and the
// copy confirmation prompt have their own modal maps below.
type KeyMap struct {
	Quit    key.Binding
	Down    key.Binding
	Up      key.Binding
	Select  key.Binding
	GoUp    key.Binding
	Enter   key.Binding
	Home    key.Binding
	Clear   key.Binding
	Notify  key.Binding
	Copy    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/k", "move"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("", ""),
		),
		Select: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select"),
		),
		GoUp: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "up dir"),
		),
		Enter: key.NewBinding(
			key.WithKeys("l", "right", "enter"),
			key.WithHelp("l", "enter dir"),
		),
		Home: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "home"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear sel"),
		),
		Notify: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "show sel"),
		),
		Copy: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "copy"),
		),
	}
}

// ShortHelp returns keybindings for the footer help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Down, k.Clear, k.Notify, k.Copy, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.GoUp, k.Enter, k.Home},
		{k.Select, k.Clear, k.Notify, k.Copy, k.Quit},
	}
}

// PagerKeyMap defines keybindings inside the paged log viewer.
type PagerKeyMap struct {
	Down     key.Binding
	Up       key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Back     key.Binding
}

func DefaultPagerKeyMap() PagerKeyMap {
	return PagerKeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/k", "scroll"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("", ""),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d/u", "half page"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("", ""),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g/G", "top/bottom"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("", ""),
		),
		Back: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "back"),
		),
	}
}

func (k PagerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.HalfDown, k.Top, k.Back}
}

func (k PagerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.HalfDown, k.HalfUp},
		{k.Top, k.Bottom, k.Back},
	}
}

// confirmKey is the single key that confirms the copy prompt; any other
// key cancels.
var confirmKey = key.NewBinding(key.WithKeys("c"))
