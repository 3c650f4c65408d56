package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bamreyes/Project-Green/internal/catalog"
	"github.com/bamreyes/Project-Green/internal/config"
	"github.com/bamreyes/Project-Green/internal/solver"
	"github.com/bamreyes/Project-Green/internal/store"
)

// testOptions asks only for 300 CO2 so the two test projects decide the
// outcome on their own.
func testOptions() solver.Options {
	opts := solver.DefaultOptions()
	opts.Minimums = map[catalog.Pollutant]float64{}
	for _, p := range catalog.Pollutants {
		opts.Minimums[p] = 0
	}
	opts.Minimums[catalog.CO2] = 300
	return opts
}

func newTestStateStore(t *testing.T) *stateStore {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "green.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	cat, err := catalog.New([]catalog.Project{
		{Name: "Cheap Filters", Emissions: map[catalog.Pollutant]float64{catalog.CO2: 10}, Cost: 5},
		{Name: "Pricey Scrubbers", Emissions: map[catalog.Pollutant]float64{catalog.CO2: 20}, Cost: 30},
	})
	require.NoError(t, err)

	s := newStateStore(config.Default(), db, cat, zaptest.NewLogger(t))
	s.solverOpts = testOptions()
	return s
}

// newTestHTTPServer returns a server and a client that keeps the session
// cookie between requests.
func newTestHTTPServer(t *testing.T) (*httptest.Server, *http.Client, *stateStore) {
	t.Helper()

	s := newTestStateStore(t)
	ts := httptest.NewServer(buildRouter(s))
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Transport: ts.Client().Transport, Jar: jar}
	return ts, client, s
}

func mustGet(t *testing.T, client *http.Client, rawURL string) *http.Response {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err, "GET %s", rawURL)
	return resp
}

func mustPostForm(t *testing.T, client *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(rawURL, form)
	require.NoError(t, err, "POST %s", rawURL)
	return resp
}

func mustPostJSON(t *testing.T, client *http.Client, rawURL, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(rawURL, "application/json", strings.NewReader(body))
	require.NoError(t, err, "POST %s", rawURL)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func requireContainsAll(t *testing.T, content, subject string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if strings.Contains(content, needle) {
			continue
		}
		t.Fatalf("%s missing %q", subject, needle)
	}
}

func requireNotContainsAll(t *testing.T, content, subject string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if !strings.Contains(content, needle) {
			continue
		}
		t.Fatalf("%s should not contain %q", subject, needle)
	}
}
