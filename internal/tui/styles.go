package tui

import "github.com/charmbracelet/lipgloss"

const (
	sidebarWidth          = 20
	collapsedSidebarWidth = 8
	colWidth              = 10
)

type styles struct {
	sidebar    lipgloss.Style
	option     lipgloss.Style
	selected   lipgloss.Style
	title      lipgloss.Style
	header     lipgloss.Style
	tab        lipgloss.Style
	activeTab  lipgloss.Style
	muted      lipgloss.Style
	status     lipgloss.Style
	errorLabel lipgloss.Style
}

func defaultStyles() styles {
	accent := lipgloss.Color("#157f66")
	return styles{
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#c4ddd0")).
			PaddingRight(1),
		option:     lipgloss.NewStyle(),
		selected:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		tab:        lipgloss.NewStyle().Padding(0, 1),
		activeTab:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(accent),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5f6f67")),
		status:     lipgloss.NewStyle().Italic(true),
		errorLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#b23a48")),
	}
}
