// Package api is the HTTP client for the todo service.
//
// All requests and responses are JSON. The server wraps every response in a
// common envelope and carries the session as an httpOnly cookie, so the
// client keeps a cookie jar and never touches tokens directly. Non-2xx
// responses are normalized into *Error; transport failures stay plain
// wrapped errors so callers can tell the two classes apart.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// Envelope is the response wrapper the server puts around every payload.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// Client issues requests against a single API base URL.
type Client struct {
	baseURL    string
	base       *url.URL
	http       *http.Client
	jar        *fileJar
	cookieFile string
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The caller is
// responsible for attaching a cookie jar if session endpoints are used.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithCookieFile persists the API origin's cookies to the given file so the
// session credential survives process restarts. Without it the jar is
// in-memory only.
func WithCookieFile(path string) Option {
	return func(c *Client) {
		c.cookieFile = path
	}
}

// New creates a client for the given base URL, e.g. "https://example.com/api/v1".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api base URL is empty")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		if c.cookieFile != "" {
			jar, err := newFileJar(base, c.cookieFile)
			if err != nil {
				return nil, err
			}
			c.jar = jar
			c.http.Jar = jar
		} else {
			jar, err := cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("create cookie jar: %w", err)
			}
			c.http.Jar = jar
		}
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasSessionCookie reports whether the jar currently holds a credential for
// the API origin. This is the guard's "session indicator": a cookie without
// an in-memory user means a previous process logged in and the session
// should be revalidated rather than assumed dead.
func (c *Client) HasSessionCookie() bool {
	if c.http.Jar == nil {
		return false
	}
	return len(c.http.Jar.Cookies(c.base)) > 0
}

// ClearSessionCookies drops the stored credential, including the persisted
// cookie file when one is configured.
func (c *Client) ClearSessionCookies() {
	if c.jar != nil {
		c.jar.clear()
		return
	}
	if jar, err := cookiejar.New(nil); err == nil {
		c.http.Jar = jar
	}
}

// do issues a single request and decodes the response envelope. If out is
// non-nil the envelope's data payload is unmarshaled into it. A nil-body
// success response with a non-nil out leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
