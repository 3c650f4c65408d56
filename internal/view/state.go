package view

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrUnknownIteration = errors.New("unknown iteration")
	ErrTabOutOfRange    = errors.New("result tab out of range")
	ErrMemberOutOfRange = errors.New("checkbox index out of range")
)

// Page describes the content a State is rendered against.
type Page struct {
	// Iterations are the numbers of the iteration sections present.
	Iterations []int
	// Tabs is the number of (table, button) result tab pairs.
	Tabs int
	// Rows are the selection table rows; Rows[i][NameColumn] is the project
	// name submitted for checkbox i.
	Rows [][]string
}

// iteration returns the canonical option value for value when the page has
// that section.
func (p Page) iteration(value string) (string, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return "", false
	}
	for _, it := range p.Iterations {
		if it == n {
			return strconv.Itoa(n), true
		}
	}
	return "", false
}

// State is the mutable part of the view.
type State struct {
	SidebarCollapsed bool
	// Iteration is AllIterations or the number of the single visible
	// section.
	Iteration string
	// Tab is the active result tab, -1 when there are none.
	Tab     int
	Members []bool
	Filter  string
}

// New returns the initial state for page: every iteration shown, the first
// result tab active and no project checked.
func New(page Page) State {
	s := State{
		Iteration: AllIterations,
		Tab:       -1,
		Members:   make([]bool, len(page.Rows)),
	}
	if page.Tabs > 0 {
		s.Tab = 0
	}
	return s
}

func (s State) clone() State {
	s.Members = append([]bool(nil), s.Members...)
	return s
}

func (s *State) ToggleSidebar() {
	s.SidebarCollapsed = !s.SidebarCollapsed
}

// SelectIteration shows only the section for value, or every section for
// AllIterations. A value with no section on page leaves s unchanged.
func (s *State) SelectIteration(value string, page Page) error {
	value = strings.TrimSpace(value)
	if value == AllIterations {
		s.Iteration = value
		return nil
	}
	canonical, ok := page.iteration(value)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownIteration, value)
	}
	s.Iteration = canonical
	return nil
}

func (s *State) SelectTab(i int, page Page) error {
	if i < 0 || i >= page.Tabs {
		return fmt.Errorf("%w: %d of %d", ErrTabOutOfRange, i, page.Tabs)
	}
	s.Tab = i
	return nil
}

func (s *State) SetMember(i int, checked bool) error {
	if i < 0 || i >= len(s.Members) {
		return fmt.Errorf("%w: %d of %d", ErrMemberOutOfRange, i, len(s.Members))
	}
	s.Members[i] = checked
	return nil
}

// SetAll sets every member to checked, as clicking the select-all box does.
func (s *State) SetAll(checked bool) {
	for i := range s.Members {
		s.Members[i] = checked
	}
}

// SelectAll is the derived state of the select-all checkbox.
func (s State) SelectAll() bool {
	return AllChecked(s.Members)
}

func (s *State) SetFilter(text string) {
	s.Filter = text
}

// CheckNames checks the members whose row name is in names and clears the
// rest. It restores a previous selection into a fresh state.
func (s *State) CheckNames(names []string, page Page) {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	for i := range s.Members {
		_, ok := want[rowName(page, i)]
		s.Members[i] = ok
	}
}

// SelectionForm is the body submitted by the project selection form: one
// "projects" value per checked member.
func (s State) SelectionForm(page Page) url.Values {
	form := url.Values{}
	for i, checked := range s.Members {
		if !checked {
			continue
		}
		if name := rowName(page, i); name != "" {
			form.Add("projects", name)
		}
	}
	return form
}

func rowName(page Page, i int) string {
	if i < 0 || i >= len(page.Rows) || NameColumn >= len(page.Rows[i]) {
		return ""
	}
	return page.Rows[i][NameColumn]
}

// Event is a user action applied by Update.
type Event interface {
	apply(s *State, page Page) error
}

type ToggleSidebar struct{}

type SelectIteration struct{ Value string }

type SelectTab struct{ Index int }

type SetMember struct {
	Index   int
	Checked bool
}

type SetAll struct{ Checked bool }

type SetFilter struct{ Text string }

func (ToggleSidebar) apply(s *State, _ Page) error {
	s.ToggleSidebar()
	return nil
}

func (e SelectIteration) apply(s *State, page Page) error {
	return s.SelectIteration(e.Value, page)
}

func (e SelectTab) apply(s *State, page Page) error {
	return s.SelectTab(e.Index, page)
}

func (e SetMember) apply(s *State, _ Page) error {
	return s.SetMember(e.Index, e.Checked)
}

func (e SetAll) apply(s *State, _ Page) error {
	s.SetAll(e.Checked)
	return nil
}

func (e SetFilter) apply(s *State, _ Page) error {
	s.SetFilter(e.Text)
	return nil
}

// Update applies ev to a copy of s. On error the returned state equals s.
func Update(s State, page Page, ev Event) (State, error) {
	next := s.clone()
	if err := ev.apply(&next, page); err != nil {
		return s, err
	}
	return next, nil
}
