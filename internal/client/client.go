// Package client talks to a running green server: it submits a project
// selection and toggles the sidebar, reporting every outcome as a Result
// instead of swallowing failures.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultTimeout = 15 * time.Second

type Kind int

const (
	Success Kind = iota
	NetworkError
	ServerError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case NetworkError:
		return "network error"
	case ServerError:
		return "server error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of one request. Status is set for Success and
// ServerError; Err is set for NetworkError and ServerError.
type Result struct {
	Kind   Kind
	Status int
	Err    error
	// Message is the error text the server put in a 200 response body.
	Message string
	// Collapsed is the server's sidebar flag after ToggleSidebar.
	Collapsed bool
}

func (r Result) String() string {
	switch r.Kind {
	case Success:
		if r.Message != "" {
			return "ok: " + r.Message
		}
		return "ok"
	case ServerError:
		return fmt.Sprintf("server error (status %d): %v", r.Status, r.Err)
	default:
		return fmt.Sprintf("%s: %v", r.Kind, r.Err)
	}
}

// ShouldReload reports whether the page should be reloaded after a
// submission: only when the server accepted it.
func ShouldReload(r Result) bool {
	return r.Kind == Success
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a client for the server at baseURL. The default HTTP client
// keeps cookies so consecutive calls share one server session.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server URL %q must use http or https", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: DefaultTimeout, Jar: jar},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type solveBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SubmitSelection posts the selected project names to /solver as the
// selection form does. An infeasible selection is still a Success with the
// server's message.
func (c *Client) SubmitSelection(ctx context.Context, projects []string) Result {
	form := url.Values{}
	for _, p := range projects {
		form.Add("projects", p)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solver", strings.NewReader(form.Encode()))
	if err != nil {
		return Result{Kind: NetworkError, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body solveBody
	res := c.do(req, &body)
	if res.Kind == Success && !body.Success {
		res.Message = body.Error
	}
	return res
}

type sidebarBody struct {
	Collapsed bool `json:"collapsed"`
}

// ToggleSidebar asks the server to flip the session's sidebar flag.
func (c *Client) ToggleSidebar(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sidebar/toggle", strings.NewReader("{}"))
	if err != nil {
		return Result{Kind: NetworkError, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var body sidebarBody
	res := c.do(req, &body)
	res.Collapsed = body.Collapsed
	return res
}

func (c *Client) do(req *http.Request, out any) Result {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("url", req.URL.String()), zap.Error(err))
		return Result{Kind: NetworkError, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{Kind: NetworkError, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		var body solveBody
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			msg = body.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn("server rejected request", zap.String("url", req.URL.String()), zap.Int("status", resp.StatusCode))
		return Result{Kind: ServerError, Status: resp.StatusCode, Err: errors.New(msg)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return Result{Kind: ServerError, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return Result{Kind: Success, Status: resp.StatusCode}
}
