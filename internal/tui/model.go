// Package tui is a terminal viewer for a solved project selection. It drives
// the same view.State as the web pages: the sidebar flag, the iteration
// selector, the Tableau/Basic Solution tabs, the project filter and
// drag-scrolling of wide tables.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamreyes/Project-Green/internal/export"
	"github.com/bamreyes/Project-Green/internal/prefs"
	"github.com/bamreyes/Project-Green/internal/solver"
	"github.com/bamreyes/Project-Green/internal/view"
)

var tabTitles = []string{export.TableauTitle, export.SolutionTitle}

type Options struct {
	// Result of the solve. For an infeasible selection only Iterations is
	// set and Message carries the reason.
	Result    solver.Result
	Message   string
	PrefsPath string
	ExportDir string
}

type exportedMsg struct {
	files []string
	err   error
}

type Model struct {
	result  solver.Result
	message string
	page    view.Page
	state   view.State

	drag   view.Drag
	scroll int

	filter     textinput.Model
	filtering  bool
	prevFilter string

	keys      keyMap
	styles    styles
	prefsPath string
	exportDir string
	status    string
	width     int
	height    int
}

func New(opts Options) Model {
	page := view.Page{Tabs: len(tabTitles)}
	for _, it := range opts.Result.Iterations {
		page.Iterations = append(page.Iterations, it.Number)
	}
	for _, p := range opts.Result.Projects {
		page.Rows = append(page.Rows, []string{"", p.Project.Name, solver.FormatCell(p.Units), p.Cost})
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	saved := prefs.Load(prefsPath)
	st := view.New(page)
	st.SidebarCollapsed = saved.SidebarCollapsed
	// A remembered iteration from another solve may not exist here.
	_ = st.SelectIteration(saved.LastIteration, page)

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter projects"
	ti.CharLimit = 64

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}
	return Model{
		result:    opts.Result,
		message:   opts.Message,
		page:      page,
		state:     st,
		filter:    ti,
		keys:      defaultKeyMap(),
		styles:    defaultStyles(),
		prefsPath: prefsPath,
		exportDir: exportDir,
	}
}

// Run shows the viewer until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) State() view.State {
	return m.state
}

func (m Model) Scroll() int {
	return m.scroll
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "wrote " + strings.Join(msg.files, ", ")
		}
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.apply(view.ToggleSidebar{})
		m.savePrefs()
	case key.Matches(msg, m.keys.PrevIteration):
		m.stepIteration(-1)
	case key.Matches(msg, m.keys.NextIteration):
		m.stepIteration(1)
	case key.Matches(msg, m.keys.NextTab):
		m.apply(view.SelectTab{Index: (m.state.Tab + 1) % len(tabTitles)})
		m.clampScroll()
	case key.Matches(msg, m.keys.ScrollLeft):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.ScrollRight):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.prevFilter = m.state.Filter
		m.filter.SetValue(m.state.Filter)
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue(m.prevFilter)
		m.apply(view.SetFilter{Text: m.prevFilter})
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.apply(view.SetFilter{Text: m.filter.Value()})
	return m, cmd
}

func (m *Model) apply(ev view.Event) {
	next, err := view.Update(m.state, m.page, ev)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.state = next
}

func (m *Model) stepIteration(delta int) {
	options := view.IterationOptions(m.page.Iterations)
	idx := 0
	for i, o := range options {
		if o.Value == m.state.Iteration {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(options)) % len(options)
	m.apply(view.SelectIteration{Value: options[idx].Value})
	m.clampScroll()
	m.savePrefs()
}

// handleMouse drags the tables while the left button is held.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag.Max = m.maxScroll()
			m.drag.Down(msg.X, m.scroll)
		}
	case tea.MouseActionMotion:
		if s, ok := m.drag.Move(msg.X); ok {
			m.scroll = s
		}
	case tea.MouseActionRelease:
		m.drag.Up()
	}
}

// scrollBy drags the visible tables by one column per step. It does nothing
// while a mouse drag is in progress.
func (m *Model) scrollBy(steps int) {
	if m.drag.Pressed() {
		return
	}
	m.drag.Max = m.maxScroll()
	m.drag.Down(0, m.scroll)
	if s, ok := m.drag.Move(-steps * colWidth / view.DragFactor); ok {
		m.scroll = s
	}
	m.drag.Up()
}

func (m *Model) clampScroll() {
	if limit := m.maxScroll(); m.scroll > limit {
		m.scroll = limit
	}
}

func (m *Model) savePrefs() {
	err := prefs.Save(m.prefsPath, prefs.Prefs{
		SidebarCollapsed: m.state.SidebarCollapsed,
		LastIteration:    m.state.Iteration,
	})
	if err != nil {
		m.status = "save preferences: " + err.Error()
	}
}

// exportCmd writes one CSV per visible iteration section.
func (m Model) exportCmd() tea.Cmd {
	frame := view.Render(m.state, m.page)
	var sections []export.Section
	for i, sec := range frame.Sections {
		if sec.Visible {
			sections = append(sections, export.FromIteration(m.result.Iterations[i]))
		}
	}
	dir := m.exportDir
	return func() tea.Msg {
		if len(sections) == 0 {
			return exportedMsg{err: errors.New("no iterations to export")}
		}
		var files []string
		for _, sec := range sections {
			path := filepath.Join(dir, sec.FileName())
			if err := writeSection(path, sec); err != nil {
				return exportedMsg{files: files, err: err}
			}
			files = append(files, path)
		}
		return exportedMsg{files: files}
	}
}

func writeSection(path string, sec export.Section) error {
	data, err := export.Bytes(sec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
