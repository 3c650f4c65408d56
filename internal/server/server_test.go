package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamreyes/Project-Green/internal/config"
	"github.com/bamreyes/Project-Green/internal/store"
	"github.com/bamreyes/Project-Green/internal/version"
)

func decodeSolve(t *testing.T, resp *http.Response) solveResponse {
	t.Helper()
	var out solveResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	return out
}

func solveBoth(t *testing.T, ts string, client *http.Client) {
	t.Helper()
	resp := mustPostForm(t, client, ts+"/solver", url.Values{"projects": {"Cheap Filters", "Pricey Scrubbers"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decodeSolve(t, resp).Success)
}

func TestSolveFeasibleSelectionIsRemembered(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	solveBoth(t, ts.URL, client)

	resp := mustGet(t, client, ts.URL+"/solver")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := readBody(t, resp)
	requireContainsAll(t, page, "solver page",
		`value="Cheap Filters" checked`,
		`value="Pricey Scrubbers" checked`,
		`id="selectAllCheckbox" checked`,
		`<strong class="optimized-cost">250.00</strong>`,
		`class="result-table-button active" data-tab-index="0">Projects</button>`,
		`class="result-table-button" data-tab-index="1">Pollutants</button>`,
		"<td>100.00</td>",
		"<td>150.00</td>",
	)
	requireNotContainsAll(t, page, "solver page", `class="card banner bad"`)

	resp = mustGet(t, client, ts.URL+"/tableau")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = readBody(t, resp)
	requireContainsAll(t, page, "tableau page",
		`<option value="all" selected>All Iterations</option>`,
		`<option value="0" data-iteration-num="0">Iteration 0</option>`,
		`<option value="2" data-iteration-num="2">Iteration 2</option>`,
		`id="iteration-0" style="display:flex"`,
		`id="iteration-2" style="display:flex"`,
		`data-export-url="/tableau/2/export.csv"`,
		`<span class="iteration-count" data-iteration="1">1</span>`,
	)
	requireNotContainsAll(t, page, "tableau page", `id="iteration-3"`)
}

func TestSolveInfeasibleSelectionKeepsIterations(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	resp := mustPostForm(t, client, ts.URL+"/solver", url.Values{"projects": {"Cheap Filters"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeSolve(t, resp)
	assert.False(t, out.Success)
	assert.Equal(t, "the solution is infeasible", out.Error)

	page := readBody(t, mustGet(t, client, ts.URL+"/solver"))
	requireContainsAll(t, page, "solver page",
		`<section class="card banner bad">the solution is infeasible</section>`,
		`value="Cheap Filters" checked`,
	)
	requireNotContainsAll(t, page, "solver page", `class="optimized-cost"`, `value="Pricey Scrubbers" checked`)

	page = readBody(t, mustGet(t, client, ts.URL+"/tableau"))
	requireContainsAll(t, page, "tableau page", `id="iteration-0"`, "the solution is infeasible")
}

func TestSolveRejectsBadInput(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	resp := mustPostForm(t, client, ts.URL+"/solver", url.Values{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeSolve(t, resp)
	assert.False(t, out.Success)
	assert.Equal(t, "no projects selected", out.Error)

	resp = mustPostForm(t, client, ts.URL+"/solver", url.Values{"projects": {"Nope"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeSolve(t, resp).Error, "unknown project Nope")

	resp, err := client.Post(ts.URL+"/solver", "application/x-www-form-urlencoded", strings.NewReader("projects=%zz"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeSolve(t, resp).Error, "invalid form")
}

func TestTableauIterationQuery(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)
	solveBoth(t, ts.URL, client)

	resp := mustGet(t, client, ts.URL+"/tableau?iteration=01")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := readBody(t, resp)
	requireContainsAll(t, page, "tableau page",
		`<option value="1" data-iteration-num="1" selected>Iteration 1</option>`,
		`id="iteration-1" style="display:flex"`,
		`id="iteration-0" style="display:none"`,
		`id="iteration-2" style="display:none"`,
	)

	resp = mustGet(t, client, ts.URL+"/tableau?iteration=9")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	readBody(t, resp)
}

func TestExportIterationCSV(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)
	solveBoth(t, ts.URL, client)

	resp := mustGet(t, client, ts.URL+"/tableau/1/export.csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Iteration_1_Data.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	body := readBody(t, resp)
	assert.True(t, strings.HasPrefix(body, "\"Tableau\"\n\"S1\""), "body: %q", body)
	assert.Contains(t, body, "\n\n\"Basic Solution\"\n")

	for _, path := range []string{"/tableau/7/export.csv", "/tableau/all/export.csv", "/tableau/x/export.csv"} {
		resp := mustGet(t, client, ts.URL+path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		readBody(t, resp)
	}
}

func TestExportWithoutSolveIsNotFound(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	resp := mustGet(t, client, ts.URL+"/tableau/0/export.csv")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	readBody(t, resp)

	page := readBody(t, mustGet(t, client, ts.URL+"/tableau"))
	requireContainsAll(t, page, "tableau page", "No iterations yet.")
	requireNotContainsAll(t, page, "tableau page", `id="iterationSelection"`)
}

func TestSolverPageTabAndFilterQueries(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	resp := mustGet(t, client, ts.URL+"/solver?tab=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no result tabs before a solve")
	readBody(t, resp)

	solveBoth(t, ts.URL, client)

	page := readBody(t, mustGet(t, client, ts.URL+"/solver?tab=1&q=PRICEY"))
	requireContainsAll(t, page, "solver page",
		`class="result-table-button" data-tab-index="0">Projects</button>`,
		`class="result-table-button active" data-tab-index="1">Pollutants</button>`,
		`value="PRICEY"`,
		`<tr style="display:none">`,
	)
	assert.Equal(t, 1, strings.Count(page, `<tr style="display:none">`))
	assert.Equal(t, 1, strings.Count(page, `<div class="result-table-wrapper" style="display:none">`))

	for _, tab := range []string{"2", "-1", "x"} {
		resp := mustGet(t, client, ts.URL+"/solver?tab="+tab)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tab)
		readBody(t, resp)
	}
}

func TestToggleSidebarPersistsInSession(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)
	solveBoth(t, ts.URL, client)

	var out sidebarResponse
	resp := mustPostJSON(t, client, ts.URL+"/api/sidebar/toggle", "{}")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.True(t, out.Collapsed)

	page := readBody(t, mustGet(t, client, ts.URL+"/tableau"))
	requireContainsAll(t, page, "tableau page",
		`<body class="sidebar-collapsed">`,
		`<option value="all" selected>All</option>`,
		`<option value="1" data-iteration-num="1">1</option>`,
	)

	resp = mustPostJSON(t, client, ts.URL+"/api/sidebar/toggle", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.False(t, out.Collapsed)

	resp = mustPostJSON(t, client, ts.URL+"/api/sidebar/toggle", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	readBody(t, resp)
}

func TestSessionsAreIndependent(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)
	solveBoth(t, ts.URL, client)

	other := &http.Client{Transport: client.Transport}
	page := readBody(t, mustGet(t, other, ts.URL+"/solver"))
	requireNotContainsAll(t, page, "fresh session", "checked", `class="optimized-cost"`)
}

func TestPruneSessionsDropsExpired(t *testing.T) {
	s := newTestStateStore(t)
	ctx := context.Background()
	sess, err := s.db.CreateSession(ctx)
	require.NoError(t, err)

	s.sessionTTL = -time.Minute
	s.pruneSessions(ctx)

	_, err = s.db.GetSession(ctx, sess.ID)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestBrowsingKeepsSessionAlive(t *testing.T) {
	ts, client, s := newTestHTTPServer(t)
	solveBoth(t, ts.URL, client)

	start := time.Now().UTC()
	for h := 1; h <= 13; h++ {
		at := start.Add(time.Duration(h) * time.Hour)
		s.now = func() time.Time { return at }
		resp := mustGet(t, client, ts.URL+"/tableau")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		readBody(t, resp)
	}
	s.pruneSessions(context.Background())

	page := readBody(t, mustGet(t, client, ts.URL+"/solver"))
	requireContainsAll(t, page, "solver page after 13h of browsing", `<strong class="optimized-cost">250.00</strong>`)
}

func TestIdleSessionIsReplacedBeforeJanitorRuns(t *testing.T) {
	ts, client, s := newTestHTTPServer(t)
	solveBoth(t, ts.URL, client)

	idle := time.Now().UTC().Add(s.sessionTTL + time.Minute)
	s.now = func() time.Time { return idle }

	resp := mustGet(t, client, ts.URL+"/solver")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var renewed bool
	for _, c := range resp.Cookies() {
		renewed = renewed || c.Name == s.cookieName
	}
	assert.True(t, renewed, "expected a new session cookie")
	page := readBody(t, resp)
	requireNotContainsAll(t, page, "solver page after idle timeout", `class="optimized-cost"`, "checked")
}

func TestHealthAndServerInfo(t *testing.T) {
	ts, client, _ := newTestHTTPServer(t)

	resp := mustGet(t, client, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, readBody(t, resp))

	resp = mustGet(t, client, ts.URL+"/api/v1/server-info")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info serverInfoResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &info))
	assert.Equal(t, "green", info.Name)
	assert.Equal(t, 1, info.APIVersion)
	assert.Equal(t, version.Current(), info.Version)
	assert.Equal(t, 2, info.Projects)
}

func TestRunStopsOnCancel(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "green.db")
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.DBPath = dbPath
	cfg.Catalog.Root = filepath.Join("..", "..")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg, nil)
	}()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	got, ok, err := db.GetAppState(context.Background(), store.StateServerVersion)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, version.Current(), got)
}

func TestHealthzReportsClosedStore(t *testing.T) {
	ts, client, s := newTestHTTPServer(t)
	require.NoError(t, s.db.Close())

	resp := mustGet(t, client, ts.URL+"/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"status":"unavailable"}`, readBody(t, resp))
}
