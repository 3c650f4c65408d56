package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIPagesCarryDOMContract(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	resp := mustGet(t, client, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	home := readBody(t, resp)
	requireContainsAll(t, home, "home page",
		"<h1>Project Green</h1>",
		`<script src="/static/script.js"></script>`,
		`id="sidebar-toggle"`,
		`href="/solver"`,
		`href="/tableau"`,
	)

	solver := readBody(t, mustGet(t, client, ts.URL+"/solver"))
	requireContainsAll(t, solver, "solver page",
		`<form id="projectSelection" method="post" action="/solver">`,
		`id="selectAllCheckbox"`,
		`class="project-checkbox" name="projects" value="Cheap Filters"`,
		`id="search-input"`,
		`<table class="selection-table">`,
		"<th>PM<sub>2.5</sub></th>",
		"<td>Pricey Scrubbers</td>",
	)

	solveBoth(t, ts.URL, client)
	tableau := readBody(t, mustGet(t, client, ts.URL+"/tableau"))
	requireContainsAll(t, tableau, "tableau page",
		`<select id="iterationSelection">`,
		`class="card iteration-wrapper" id="iteration-0"`,
		`class="iteration-count"`,
		`class="iteration-table-wrapper"`,
		"<h3>Basic Solution</h3>",
	)
}

func TestUIScriptServed(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	resp := mustGet(t, client, ts.URL+"/static/script.js")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/javascript; charset=utf-8", resp.Header.Get("Content-Type"))
	js := readBody(t, resp)
	requireContainsAll(t, js, "script",
		"function showSnackbar(",
		"function render()",
		"'/api/sidebar/toggle'",
		"fetch('/solver'",
		"URL.revokeObjectURL(href)",
		"(x - startX) * 2",
		"'All Iterations'",
		"'Iteration ' + num",
		"getElementsByTagName('td')[1]",
		"search.addEventListener('input'",
		"btn.closest('.iteration-wrapper')",
		"querySelector('.iteration-count')",
		"'Iteration_' + num + '_Data.csv'",
		`.replace(/"/g, '""')`,
	)
	requireNotContainsAll(t, js, "script", "'keyup'")
}

func TestUIScriptExportsFromPageBeforeServer(t *testing.T) {
	click := uiScriptJS[strings.Index(uiScriptJS, "function bindExport()"):]
	local := strings.Index(click, "sectionCSV(section)")
	fallback := strings.Index(click, "fetchExport(url)")
	require.GreaterOrEqual(t, local, 0)
	require.GreaterOrEqual(t, fallback, 0)
	assert.Less(t, local, fallback)
}

func TestUIScriptReloadsOnlyAfterSuccessfulSubmit(t *testing.T) {
	submit := uiScriptJS[strings.Index(uiScriptJS, "form.addEventListener('submit'"):]
	okCheck := strings.Index(submit, "if (!res.ok)")
	reload := strings.Index(submit, "window.location.reload()")
	require.GreaterOrEqual(t, okCheck, 0)
	require.GreaterOrEqual(t, reload, 0)
	assert.Less(t, okCheck, reload)
}
