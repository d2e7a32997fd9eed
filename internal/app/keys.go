package app

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/pitchperfect/internal/ui/layout"
)

type keyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Select     key.Binding
	Release    key.Binding
	OctaveDown key.Binding
	OctaveUp   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
		Next:       key.NewBinding(key.WithKeys("tab", "right", "down"), key.WithHelp("←→", "Navigate")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "left", "up")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select")),
		Release:    key.NewBinding(key.WithKeys("space"), key.WithHelp("Space", "Release")),
		OctaveDown: key.NewBinding(key.WithKeys("z"), key.WithHelp("z/x", "Octave")),
		OctaveUp:   key.NewBinding(key.WithKeys("x")),
	}
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
