package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	next    key.Binding
	back    key.Binding
	tab     key.Binding
	backtab key.Binding
	locale  key.Binding
	copy    key.Binding
	quit    key.Binding
	about   key.Binding
}

var keys = keyMap{
	left:    key.NewBinding(key.WithKeys("left")),
	right:   key.NewBinding(key.WithKeys("right")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	next:    key.NewBinding(key.WithKeys("ctrl+s")),
	back:    key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab", "down")),
	backtab: key.NewBinding(key.WithKeys("shift+tab", "up")),
	locale:  key.NewBinding(key.WithKeys("ctrl+l")),
	copy:    key.NewBinding(key.WithKeys("ctrl+y")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	about:   key.NewBinding(key.WithKeys("ctrl+v")),
}
