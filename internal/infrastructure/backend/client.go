// Package backend is the HTTP gateway to the remote diary API. Every call
// authenticates with the configured API key and reports failure as a value
// inside domain.Result rather than as a Go error.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/api/metrics"
	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the remote backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// New builds a Client. A default timeout is applied when none is provided.
func New(cfg Config, log zerolog.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    hc,
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// Request describes one backend call. Header values override the defaults.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

// Call performs r and decodes a successful JSON body into T.
//
//   - 2xx with a body: Data points at the decoded value.
//   - 204, an empty body or a literal null: Data is nil and Err is nil.
//   - non-2xx: Err has kind http and keeps the status.
//   - 2xx with malformed JSON: Err has kind parse.
//   - network failure: Err has kind transport.
func Call[T any](ctx context.Context, c *Client, r Request) (res domain.Result[T]) {
	resource := resourceOf(r.Path)
	start := time.Now()
	defer func() {
		outcome := "ok"
		if res.Err != nil {
			outcome = string(res.Err.Kind)
		}
		metrics.GatewayRequestsTotal.WithLabelValues(r.Method, resource, outcome).Inc()
		metrics.GatewayRequestDuration.WithLabelValues(r.Method, resource).Observe(time.Since(start).Seconds())

		ev := c.log.Debug()
		if res.Err != nil {
			ev = c.log.Warn().Str("error", res.Err.Message).Int("status", res.Err.Status)
		}
		ev.Str("method", r.Method).
			Str("path", r.Path).
			Str("outcome", outcome).
			Dur("elapsed", time.Since(start)).
			Msg("backend call")
	}()

	req, gerr := c.newRequest(ctx, r)
	if gerr != nil {
		return domain.Fail[T](gerr)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Fail[T](&domain.GatewayError{
			Kind:    domain.ErrKindTransport,
			Message: err.Error(),
			Err:     err,
		})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Fail[T](&domain.GatewayError{
			Kind:    domain.ErrKindTransport,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("read response: %v", err),
			Err:     err,
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Fail[T](domain.NewHTTPError(resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	trimmed := bytes.TrimSpace(raw)
	if resp.StatusCode == http.StatusNoContent || len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.Ok[T](nil)
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return domain.Fail[T](&domain.GatewayError{
			Kind:    domain.ErrKindParse,
			Status:  resp.StatusCode,
			Message: domain.MsgInvalidResponse,
			Err:     err,
		})
	}
	return domain.Ok(&out)
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, *domain.GatewayError) {
	var body io.Reader
	if r.Body != nil {
		buf, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &domain.GatewayError{
				Kind:    domain.ErrKindRequest,
				Message: fmt.Sprintf("encode request body: %v", err),
				Err:     err,
			}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, &domain.GatewayError{
			Kind:    domain.ErrKindRequest,
			Message: fmt.Sprintf("build request: %v", err),
			Err:     err,
		}
	}

	req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, vs := range r.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// Ping reports whether the backend answers at all. Any HTTP status counts
// as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// resourceOf returns the first path segment, used as a metric label.
func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
