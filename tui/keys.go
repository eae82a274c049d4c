package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/user/video-trim-cli/tui/components"
)

// keyMap defines the TUI key bindings.
type keyMap struct {
	NextHandle key.Binding
	PrevHandle key.Binding
	Left       key.Binding
	Right      key.Binding
	LeftFast   key.Binding
	RightFast  key.Binding
	Play       key.Binding
	Loop       key.Binding
	Export     key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Cancel     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextHandle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Select next handle")),
		PrevHandle: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("Shift+Tab", "Select previous handle")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("← / h", "Move handle left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→ / l", "Move handle right")),
		LeftFast:   key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("Shift+←", "Move handle left 5 cells")),
		RightFast:  key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("Shift+→", "Move handle right 5 cells")),
		Play:       key.NewBinding(key.WithKeys(" "), key.WithHelp("Space", "Play/pause the trimmed range")),
		Loop:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "Toggle A-B loop")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Export trimmed range")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Show/hide this help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit immediately")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Cancel form")),
	}
}

// ShortHelp returns the bindings shown in the controls bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextHandle, k.Left, k.Right, k.Play, k.Loop, k.Export, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay, grouped.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextHandle, k.PrevHandle, k.Left, k.Right, k.LeftFast, k.RightFast},
		{k.Play, k.Loop},
		{k.Export, k.Cancel},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

var helpGroupTitles = []string{"Trim", "Playback", "Export", "General"}

func toBindings(bs []key.Binding) []components.Binding {
	out := make([]components.Binding, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		out = append(out, components.Binding{Key: h.Key, Desc: h.Desc})
	}
	return out
}

func (k keyMap) helpGroups() []components.BindingGroup {
	full := k.FullHelp()
	groups := make([]components.BindingGroup, len(full))
	for i, bs := range full {
		groups[i] = components.BindingGroup{Title: helpGroupTitles[i], Bindings: toBindings(bs)}
	}
	return groups
}
