package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/oauth2"

	"github.com/semmy-space/req/internal/auth"
	"github.com/semmy-space/req/internal/history"
	"github.com/semmy-space/req/internal/output"
)

// Request is one HTTP call as entered by the user
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    json.RawMessage
}

// Executor sends requests, prints their outcome, and records every attempt.
// Transport failures are recorded, not returned.
type Executor struct {
	client  *http.Client
	tokens  oauth2.TokenSource
	history history.Store
	out     io.Writer
	msg     io.Writer
	log     *output.Logger
	now     func() time.Time
	color   bool
}

// Option configures an Executor
type Option func(*Executor)

// WithClient sets the HTTP client; the default has no timeout
func WithClient(c *http.Client) Option {
	return func(e *Executor) {
		e.client = c
	}
}

// WithTokens sets the bearer token source. A nil source sends no Authorization.
func WithTokens(ts oauth2.TokenSource) Option {
	return func(e *Executor) {
		e.tokens = ts
	}
}

// WithOutput sets where response content (out) and status lines (msg) go
func WithOutput(out, msg io.Writer) Option {
	return func(e *Executor) {
		e.out = out
		e.msg = msg
	}
}

// WithLogger sets the verbose logger
func WithLogger(l *output.Logger) Option {
	return func(e *Executor) {
		e.log = l
	}
}

// WithClock replaces time.Now, used for timestamps and durations
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// WithColor enables ANSI colouring of JSON bodies
func WithColor(color bool) Option {
	return func(e *Executor) {
		e.color = color
	}
}

// NewExecutor creates an Executor recording into store
func NewExecutor(store history.Store, opts ...Option) *Executor {
	e := &Executor{
		client:  &http.Client{},
		history: store,
		out:     os.Stdout,
		msg:     os.Stderr,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// response is the fully read result of one call
type response struct {
	status int
	text   string
	header http.Header
	body   []byte
}

// Execute sends req and appends its outcome to the history.
// The returned error is only set when the history could not be written.
func (e *Executor) Execute(ctx context.Context, req Request) (history.Entry, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))

	recorded := make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		recorded[k] = v
	}
	wire := make(map[string]string, len(recorded)+1)
	for k, v := range recorded {
		wire[k] = v
	}
	e.authorize(wire)

	start := e.now()
	entry := history.NewEntry(start, method, req.URL, recorded, req.Body)

	e.log.Debugf("%s %s (%d headers, %d body bytes)", method, req.URL, len(wire), len(req.Body))
	resp, err := e.send(ctx, method, req.URL, wire, req.Body)
	elapsed := e.now().Sub(start)

	switch {
	case err != nil:
		entry = entry.Failed(history.StatusError, err.Error())
		fmt.Fprintf(e.msg, "✗ Request failed: %v\n", err)
	case resp.status >= http.StatusBadRequest:
		msg := fmt.Sprintf("Request failed with status code %d", resp.status)
		entry = entry.Failed(history.Status(resp.status), msg)
		fmt.Fprintf(e.msg, "✗ %s (%s)\n", msg, resp.text)
		if len(resp.body) > 0 {
			e.renderBody(resp.body)
		}
	default:
		entry = entry.Succeeded(resp.status, elapsed)
		fmt.Fprintf(e.msg, "✓ %s (%d ms, %s)\n", resp.text, *entry.Duration, humanize.IBytes(uint64(len(resp.body))))
		e.render(method, resp)
	}

	if err := e.history.Append(ctx, entry); err != nil {
		return entry, fmt.Errorf("failed to record history: %w", err)
	}
	return entry, nil
}

// authorize replaces any Authorization header with the stored bearer token
// and reports the token's expiry
func (e *Executor) authorize(headers map[string]string) {
	if e.tokens == nil {
		return
	}

	tok, err := e.tokens.Token()
	if err != nil {
		if !errors.Is(err, auth.ErrNoToken) {
			e.log.Debugf("token unavailable: %v", err)
		}
		return
	}

	for k := range headers {
		if strings.EqualFold(k, "Authorization") {
			delete(headers, k)
		}
	}
	headers["Authorization"] = tok.Type() + " " + tok.AccessToken

	if !tok.Expiry.IsZero() {
		fmt.Fprintf(e.msg, "Token %s\n", auth.ExpiryAt(tok.Expiry, e.now()))
	}
}

// send performs the call. The body is passed through for every method.
func (e *Executor) send(ctx context.Context, method, url string, headers map[string]string, body json.RawMessage) (*response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}
	if reader != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &response{
		status: httpResp.StatusCode,
		text:   httpResp.Status,
		header: httpResp.Header,
		body:   respBody,
	}, nil
}
