// Package backend is the HTTP client of the calculation server.
//
// Every calculation is exactly one POST. The client never retries: a network
// failure or a non-success status is returned to the caller at once.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/numview/numview/pkg/buildinfo"
	"github.com/numview/numview/pkg/errors"
	"github.com/numview/numview/pkg/observability"
	"github.com/numview/numview/pkg/result"
)

const (
	// DefaultServer is the address of a locally running calculation server.
	DefaultServer = "http://127.0.0.1:5000"

	// DefaultTimeout bounds one calculation request.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the per-call request id.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 16 << 20
)

// Client posts calculation requests to one server.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client for server. A zero timeout means
// [DefaultTimeout].
func NewClient(server string, timeout time.Duration) (*Client, error) {
	if err := errors.ValidateServerURL(server); err != nil {
		return nil, err
	}
	base, _ := url.Parse(strings.TrimRight(server, "/"))
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			"User-Agent":   buildinfo.UserAgent(),
		},
	}, nil
}

// Server returns the base URL of the calculation server.
func (c *Client) Server() string { return c.base.String() }

// Response is a successful calculation response.
type Response struct {
	Status   int
	Body     []byte
	Duration time.Duration
}

// Calculate sends req to its method's endpoint.
//
// Errors carry [errors.ErrCodeNetwork] when no response was received and
// [errors.ErrCodeServer] for a non-success status, with the server's "error"
// text (or the fallback message) as the user message.
func (c *Client) Calculate(ctx context.Context, req result.Request, requestID string) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s request", req.Method())
	}
	return c.post(ctx, req.Method().Endpoint(), requestID, payload)
}

func (c *Client) post(ctx context.Context, path, requestID string, payload []byte) (*Response, error) {
	target := c.base.JoinPath(path)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	if requestID != "" {
		httpReq.Header.Set(RequestIDHeader, requestID)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodPost, target.Host, target.Path)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, target.Host, target.Path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "could not reach the calculation server at %s", c.base.Host)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, target.Host, target.Path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read response from %s", c.base.Host)
	}
	hooks.OnResponse(ctx, http.MethodPost, target.Host, target.Path, resp.StatusCode, elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.FromServer(resp.StatusCode, result.ErrorMessage(body))
	}
	return &Response{Status: resp.StatusCode, Body: body, Duration: elapsed}, nil
}

// String describes the client for log lines.
func (c *Client) String() string {
	return fmt.Sprintf("backend(%s, timeout=%s)", c.base, c.http.Timeout)
}
