package tui

import (
	"camdeck/v0/pkg/panel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Close      key.Binding
	Settings   key.Binding
	Recordings key.Binding
	Release    key.Binding
	NextField  key.Binding
	PrevField  key.Binding

	// PTZ bindings, by direction.
	Ptz map[panel.Direction]key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Recordings: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recordings")),
		Release:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "stop")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up")),
		Ptz: map[panel.Direction]key.Binding{
			panel.DirectionLeft:    key.NewBinding(key.WithKeys("left", "h")),
			panel.DirectionUp:      key.NewBinding(key.WithKeys("up", "k")),
			panel.DirectionDown:    key.NewBinding(key.WithKeys("down", "j")),
			panel.DirectionRight:   key.NewBinding(key.WithKeys("right", "l")),
			panel.DirectionZoomIn:  key.NewBinding(key.WithKeys("+", "=")),
			panel.DirectionZoomOut: key.NewBinding(key.WithKeys("-", "_")),
		},
	}
}

// ptzDirection returns the PTZ direction bound to msg, if any.
func (k keyMap) ptzDirection(msg tea.KeyMsg) (panel.Direction, bool) {
	for _, dir := range panel.Directions {
		if key.Matches(msg, k.Ptz[dir]) {
			return dir, true
		}
	}
	return 0, false
}
