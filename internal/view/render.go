package view

import "strconv"

type OptionFrame struct {
	Value    string
	Num      string
	Label    string
	Selected bool
}

type SectionFrame struct {
	Number  int
	ID      string
	Visible bool
}

type TabFrame struct {
	Visible bool
	Active  bool
}

// Frame is everything a renderer needs to draw the page for one State.
type Frame struct {
	BodyClass   string
	Options     []OptionFrame
	Sections    []SectionFrame
	Tabs        []TabFrame
	SelectAll   bool
	Members     []bool
	RowsVisible []bool
}

func Render(s State, page Page) Frame {
	f := Frame{
		SelectAll:   s.SelectAll(),
		Members:     append([]bool(nil), s.Members...),
		RowsVisible: FilterRows(s.Filter, page.Rows, NameColumn),
	}
	if s.SidebarCollapsed {
		f.BodyClass = CollapsedClass
	}

	for _, o := range IterationOptions(page.Iterations) {
		f.Options = append(f.Options, OptionFrame{
			Value:    o.Value,
			Num:      o.Num,
			Label:    OptionLabel(o, s.SidebarCollapsed),
			Selected: o.Value == s.Iteration,
		})
	}

	for _, n := range page.Iterations {
		value := strconv.Itoa(n)
		f.Sections = append(f.Sections, SectionFrame{
			Number:  n,
			ID:      SectionID(value),
			Visible: s.Iteration == AllIterations || s.Iteration == value,
		})
	}

	for i := 0; i < page.Tabs; i++ {
		f.Tabs = append(f.Tabs, TabFrame{Visible: i == s.Tab, Active: i == s.Tab})
	}
	return f
}

// VisibleSections returns the ids of the sections shown by f.
func (f Frame) VisibleSections() []string {
	var out []string
	for _, sec := range f.Sections {
		if sec.Visible {
			out = append(out, sec.ID)
		}
	}
	return out
}
