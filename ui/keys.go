package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Submit      key.Binding
	FocusGrid   key.Binding
	FocusSearch key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Open        key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	Close       key.Binding
	NextMovie   key.Binding
	PrevMovie   key.Binding
	Browser     key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		FocusGrid:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "results")),
		FocusSearch: key.NewBinding(key.WithKeys("/", "tab"), key.WithHelp("/", "search")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		PrevPage:    key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev page")),
		NextPage:    key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next page")),
		FirstPage:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		LastPage:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		NextMovie:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next movie")),
		PrevMovie:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev movie")),
		Browser:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// bindings adapts a fixed list of bindings to help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

var _ help.KeyMap = bindings(nil)

func (k keyMap) inputHelp() bindings {
	return bindings{k.Submit, k.FocusGrid, k.ForceQuit}
}

func (k keyMap) gridHelp(paged bool) bindings {
	b := bindings{k.Open, k.Up, k.Down, k.Left, k.Right}
	if paged {
		b = append(b, k.PrevPage, k.NextPage)
	}
	return append(b, k.FocusSearch, k.Quit)
}

func (k keyMap) modalHelp() bindings {
	return bindings{k.Close, k.NextMovie, k.PrevMovie, k.Browser, k.Up, k.Down}
}
