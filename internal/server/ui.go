package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/catalog"
	"github.com/bamreyes/Project-Green/internal/solver"
	"github.com/bamreyes/Project-Green/internal/store"
	"github.com/bamreyes/Project-Green/internal/view"
)

var (
	homePage    = mustPage(homeTemplate)
	solverPage  = mustPage(solverTemplate)
	tableauPage = mustPage(tableauTemplate)
)

func mustPage(content string) *template.Template {
	t := template.Must(template.New("page").Parse(layoutTemplate))
	return template.Must(t.Parse(content))
}

type layoutData struct {
	Title     string
	CSS       template.CSS
	BodyClass string
	Active    string
}

func newLayout(title, active string, frame view.Frame) layoutData {
	return layoutData{
		Title:     title,
		CSS:       template.CSS(uiPageChromeCSS),
		BodyClass: frame.BodyClass,
		Active:    active,
	}
}

type selectionRow struct {
	Name    string
	Values  []string
	Checked bool
	Visible bool
}

type resultTab struct {
	Title   string
	Headers []template.HTML
	Rows    [][]string
	Visible bool
	Active  bool
}

type resultView struct {
	OptimizedCost string
	Tabs          []resultTab
}

type solverPageData struct {
	layoutData
	Filter     string
	SelectAll  bool
	Pollutants []template.HTML
	Rows       []selectionRow
	Error      string
	Result     *resultView
}

type tableauSection struct {
	view.SectionFrame
	Tableau   [][]string
	Basic     [][]string
	ExportURL string
}

type tableauPageData struct {
	layoutData
	Options  []view.OptionFrame
	Sections []tableauSection
	Error    string
}

func pollutantHeaders() []template.HTML {
	out := make([]template.HTML, 0, len(catalog.Pollutants))
	for _, p := range catalog.Pollutants {
		out = append(out, template.HTML(p.LabelHTML()))
	}
	return out
}

// selectionPage describes the project table: one row per catalog project,
// checkbox cell first and the name in view.NameColumn.
func selectionPage(cat *catalog.Catalog, res *solver.Result) view.Page {
	page := view.Page{}
	for _, p := range cat.Projects() {
		row := []string{"", p.Name}
		for _, pol := range catalog.Pollutants {
			row = append(row, solver.FormatCell(p.Emission(pol)))
		}
		row = append(row, solver.FormatCell(p.Cost))
		page.Rows = append(page.Rows, row)
	}
	if res != nil {
		page.Tabs = len(resultTabs(*res))
	}
	return page
}

func resultTabs(res solver.Result) []resultTab {
	projects := resultTab{
		Title:   "Projects",
		Headers: []template.HTML{"Project", "Units", "Cost"},
	}
	for _, p := range res.Projects {
		projects.Rows = append(projects.Rows, []string{p.Project.Name, solver.FormatCell(p.Units), p.Cost})
	}
	pollutants := resultTab{
		Title:   "Pollutants",
		Headers: []template.HTML{"Pollutant", "Total", "Target"},
	}
	for _, p := range res.Pollutants {
		pollutants.Rows = append(pollutants.Rows, []string{string(p.Pollutant), p.Total, solver.FormatCell(p.Target)})
	}
	return []resultTab{projects, pollutants}
}

func iterationsPage(iterations []solver.Iteration) view.Page {
	page := view.Page{}
	for _, it := range iterations {
		page.Iterations = append(page.Iterations, it.Number)
	}
	return page
}

func exportURL(number int) string {
	return "/tableau/" + strconv.Itoa(number) + "/export.csv"
}

func (s *stateStore) homeHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	st := view.New(view.Page{})
	st.SidebarCollapsed = sess.SidebarCollapsed
	frame := view.Render(st, view.Page{})
	s.renderPage(w, homePage, newLayout("Home", "home", frame))
}

func (s *stateStore) solverPageHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	page := selectionPage(s.catalog, sess.Result)
	st := view.New(page)
	st.SidebarCollapsed = sess.SidebarCollapsed
	st.CheckNames(sess.SelectedProjects, page)
	st.SetFilter(r.URL.Query().Get("q"))
	if raw := r.URL.Query().Get("tab"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err == nil {
			err = st.SelectTab(i, page)
		}
		if err != nil {
			http.Error(w, "invalid result tab "+strconv.Quote(raw), http.StatusBadRequest)
			return
		}
	}
	frame := view.Render(st, page)

	data := solverPageData{
		layoutData: newLayout("Solver", "solver", frame),
		Filter:     st.Filter,
		SelectAll:  frame.SelectAll,
		Pollutants: pollutantHeaders(),
	}
	for i, row := range page.Rows {
		data.Rows = append(data.Rows, selectionRow{
			Name:    row[view.NameColumn],
			Values:  row[view.NameColumn+1:],
			Checked: frame.Members[i],
			Visible: frame.RowsVisible[i],
		})
	}
	if sess.Feasibility == store.Infeasible {
		data.Error = sess.Error
	}
	if sess.Result != nil {
		rv := &resultView{OptimizedCost: sess.Result.OptimizedCost, Tabs: resultTabs(*sess.Result)}
		for i := range rv.Tabs {
			rv.Tabs[i].Visible = frame.Tabs[i].Visible
			rv.Tabs[i].Active = frame.Tabs[i].Active
		}
		data.Result = rv
	}
	s.renderPage(w, solverPage, data)
}

func (s *stateStore) tableauPageHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	page := iterationsPage(sess.Iterations)
	st := view.New(page)
	st.SidebarCollapsed = sess.SidebarCollapsed
	if v := r.URL.Query().Get("iteration"); v != "" {
		if err := st.SelectIteration(v, page); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}
	frame := view.Render(st, page)

	data := tableauPageData{
		layoutData: newLayout("Tableau", "tableau", frame),
		Options:    frame.Options,
	}
	if sess.Feasibility == store.Infeasible {
		data.Error = sess.Error
	}
	for i, sec := range frame.Sections {
		it := sess.Iterations[i]
		data.Sections = append(data.Sections, tableauSection{
			SectionFrame: sec,
			Tableau:      it.TableauRows(),
			Basic:        it.BasicSolutionRows(),
			ExportURL:    exportURL(it.Number),
		})
	}
	s.renderPage(w, tableauPage, data)
}

func scriptHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write([]byte(uiScriptJS))
}

func (s *stateStore) renderPage(w http.ResponseWriter, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("render page failed", zap.Error(err))
		http.Error(w, "render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
