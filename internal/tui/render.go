package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamreyes/Project-Green/internal/view"
)

func (m Model) View() string {
	frame := view.Render(m.state, m.page)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(frame), m.renderMain(frame))
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) renderSidebar(frame view.Frame) string {
	width := sidebarWidth
	title := "Project Green"
	if m.state.SidebarCollapsed {
		width = collapsedSidebarWidth
		title = "Green"
	}
	lines := []string{m.styles.title.Render(title), ""}
	for _, o := range frame.Options {
		if o.Selected {
			lines = append(lines, m.styles.selected.Render("> "+o.Label))
			continue
		}
		lines = append(lines, m.styles.option.Render("  "+o.Label))
	}
	return m.styles.sidebar.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderMain(frame view.Frame) string {
	var b strings.Builder
	if m.message != "" {
		b.WriteString(m.styles.errorLabel.Render(m.message))
		b.WriteString("\n")
	}
	if m.result.OptimizedCost != "" {
		b.WriteString("Optimized cost: " + m.styles.title.Render(m.result.OptimizedCost) + "\n")
	}

	if len(m.page.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.header.Render(padRight("Project", 28) + padLeft("Units", colWidth) + padLeft("Cost", colWidth+4)))
		b.WriteString("\n")
		for i, row := range m.page.Rows {
			if !frame.RowsVisible[i] {
				continue
			}
			b.WriteString(padRight(row[view.NameColumn], 28) + padLeft(row[2], colWidth) + padLeft(row[3], colWidth+4) + "\n")
		}
	}
	switch {
	case m.filtering:
		b.WriteString(m.filter.View() + "\n")
	case m.state.Filter != "":
		b.WriteString(m.styles.muted.Render("filter: "+m.state.Filter) + "\n")
	}

	if len(m.page.Iterations) == 0 {
		b.WriteString("\n" + m.styles.muted.Render("No iterations recorded."))
		return lipgloss.NewStyle().PaddingLeft(1).Render(b.String())
	}

	b.WriteString("\n")
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if frame.Tabs[i].Active {
			tabs = append(tabs, m.styles.activeTab.Render(title))
			continue
		}
		tabs = append(tabs, m.styles.tab.Render(title))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")

	dragStyle := m.styles.muted
	if m.drag.Pressed() {
		dragStyle = m.styles.status
	}
	b.WriteString(dragStyle.Render(
		strconv.Itoa(len(frame.VisibleSections()))+" of "+strconv.Itoa(len(frame.Sections))+" shown · offset "+
			strconv.Itoa(m.scroll)+" · "+m.drag.Cursor()) + "\n")

	viewWidth := m.tableWidth()
	for i, sec := range frame.Sections {
		if !sec.Visible {
			continue
		}
		b.WriteString("\n" + m.styles.title.Render("Iteration "+strconv.Itoa(sec.Number)) + "\n")
		for j, line := range m.tableLines(i) {
			line = cut(line, m.scroll, viewWidth)
			if j == 0 {
				line = m.styles.header.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(b.String())
}

func (m Model) renderFooter() string {
	var parts []string
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	footer := m.styles.muted.Render(strings.Join(parts, " · "))
	if m.status != "" {
		footer = m.styles.status.Render(m.status) + "\n" + footer
	}
	return footer
}

// tableLines lays out the active tab's table of iteration i as fixed-width
// plain text lines.
func (m Model) tableLines(i int) []string {
	it := m.result.Iterations[i]
	rows := it.TableauRows()
	if m.state.Tab == 1 {
		rows = it.BasicSolutionRows()
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for _, cell := range row {
			b.WriteString(padLeft(cell, colWidth))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func (m Model) tableWidth() int {
	width := m.width
	if width <= 0 {
		width = 100
	}
	side := sidebarWidth
	if m.state.SidebarCollapsed {
		side = collapsedSidebarWidth
	}
	if w := width - side - 3; w > colWidth {
		return w
	}
	return colWidth
}

// maxScroll is how far the widest visible table can be dragged.
func (m Model) maxScroll() int {
	frame := view.Render(m.state, m.page)
	widest := 0
	for i, sec := range frame.Sections {
		if !sec.Visible {
			continue
		}
		for _, line := range m.tableLines(i) {
			if len(line) > widest {
				widest = len(line)
			}
		}
	}
	if limit := widest - m.tableWidth(); limit > 0 {
		return limit
	}
	return 0
}

func cut(line string, offset, width int) string {
	if offset >= len(line) {
		return ""
	}
	end := offset + width
	if end > len(line) {
		end = len(line)
	}
	return line[offset:end]
}

func padLeft(s string, width int) string {
	if len(s) >= width-1 {
		return " " + s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width-1 {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
