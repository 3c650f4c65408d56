package server

const layoutTemplate = `{{define "layout"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}} · Project Green</title>
  <style>{{.CSS}}</style>
</head>
<body class="{{.BodyClass}}">
  <nav class="sidebar">
    <button type="button" id="sidebar-toggle" aria-label="Toggle sidebar">&#9776;</button>
    <a href="/" class="nav-link{{if eq .Active "home"}} active{{end}}"><span class="nav-label">Home</span></a>
    <a href="/solver" class="nav-link{{if eq .Active "solver"}} active{{end}}"><span class="nav-label">Solver</span></a>
    <a href="/tableau" class="nav-link{{if eq .Active "tableau"}} active{{end}}"><span class="nav-label">Tableau</span></a>
  </nav>
  <main>
{{template "content" .}}
  </main>
  <script src="/static/script.js"></script>
</body>
</html>
{{end}}`

const homeTemplate = `{{define "content"}}
    <section class="card">
      <h1>Project Green</h1>
      <p>Pick the pollution reduction projects to consider, then let the solver find the cheapest
      mix that meets every pollutant target.</p>
      <p><a class="nav-btn" href="/solver">Open the solver</a> <a class="nav-btn" href="/tableau">View iterations</a></p>
    </section>
{{end}}`

const solverTemplate = `{{define "content"}}
    <section class="card">
      <h1>Solver</h1>
      <form id="projectSelection" method="post" action="/solver">
        <div class="toolbar">
          <input type="search" id="search-input" placeholder="Search projects" value="{{.Filter}}" autocomplete="off" />
          <label><input type="checkbox" id="selectAllCheckbox"{{if .SelectAll}} checked{{end}} /> Select all</label>
          <button type="submit">Solve</button>
        </div>
        <div class="table-scroll">
        <table class="selection-table">
          <thead>
            <tr><th></th><th>Project</th>{{range .Pollutants}}<th>{{.}}</th>{{end}}<th>Cost</th></tr>
          </thead>
          <tbody>
          {{range .Rows}}
            <tr{{if not .Visible}} style="display:none"{{end}}>
              <td><input type="checkbox" class="project-checkbox" name="projects" value="{{.Name}}"{{if .Checked}} checked{{end}} /></td>
              <td>{{.Name}}</td>
              {{range .Values}}<td>{{.}}</td>{{end}}
            </tr>
          {{end}}
          </tbody>
        </table>
        </div>
      </form>
    </section>
    {{if .Error}}
    <section class="card banner bad">{{.Error}}</section>
    {{end}}
    {{with .Result}}
    <section class="card">
      <h2>Optimal mix</h2>
      <p class="muted">Optimized cost: <strong class="optimized-cost">{{.OptimizedCost}}</strong></p>
      <div class="tabs">
        {{range $i, $t := .Tabs}}<button type="button" class="result-table-button{{if $t.Active}} active{{end}}" data-tab-index="{{$i}}">{{$t.Title}}</button>{{end}}
      </div>
      {{range .Tabs}}
      <div class="result-table-wrapper"{{if not .Visible}} style="display:none"{{end}}>
        <table class="result-table">
          <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
          <tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
        </table>
      </div>
      {{end}}
    </section>
    {{end}}
{{end}}`

const tableauTemplate = `{{define "content"}}
    <section class="card">
      <h1>Iterations</h1>
      {{if .Sections}}
      <select id="iterationSelection">
        {{range .Options}}<option value="{{.Value}}"{{if .Num}} data-iteration-num="{{.Num}}"{{end}}{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
      </select>
      {{else}}
      <p class="muted">No iterations yet. Run the <a href="/solver">solver</a> first.</p>
      {{end}}
      {{if .Error}}<p class="banner bad">{{.Error}}</p>{{end}}
    </section>
    {{range .Sections}}
    <section class="card iteration-wrapper" id="{{.ID}}" style="display:{{if .Visible}}flex{{else}}none{{end}}">
      <header class="iteration-header">
        <h2>Iteration <span class="iteration-count" data-iteration="{{.Number}}">{{.Number}}</span></h2>
        <button type="button" class="export-button" data-export-url="{{.ExportURL}}">Export CSV</button>
      </header>
      <h3>Tableau</h3>
      <div class="iteration-table-wrapper">
        <table class="iteration-table">
          {{range $i, $row := .Tableau}}<tr>{{range $row}}{{if eq $i 0}}<th>{{.}}</th>{{else}}<td>{{.}}</td>{{end}}{{end}}</tr>{{end}}
        </table>
      </div>
      <h3>Basic Solution</h3>
      <div class="iteration-table-wrapper">
        <table class="iteration-table">
          {{range $i, $row := .Basic}}<tr>{{range $row}}{{if eq $i 0}}<th>{{.}}</th>{{else}}<td>{{.}}</td>{{end}}{{end}}</tr>{{end}}
        </table>
      </div>
    </section>
    {{end}}
{{end}}`
