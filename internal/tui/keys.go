package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	ToggleSidebar key.Binding
	PrevIteration key.Binding
	NextIteration key.Binding
	NextTab       key.Binding
	ScrollLeft    key.Binding
	ScrollRight   key.Binding
	Filter        key.Binding
	Export        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sidebar"),
		),
		PrevIteration: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev iteration"),
		),
		NextIteration: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next iteration"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch table"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "scroll right"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter projects"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.ToggleSidebar, k.PrevIteration, k.NextIteration, k.NextTab, k.ScrollLeft, k.ScrollRight, k.Filter, k.Export, k.Quit}
}
