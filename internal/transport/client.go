// Package transport is the single point of HTTP contact with the
// backend: base-URL resolution, bearer attachment, and centralized 401
// handling live here, not in the per-entity API modules.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"artconsole/config"
	"artconsole/internal/logger"
	"artconsole/internal/session"
)

type Client struct {
	http *http.Client
	sess *session.Session
	base func() string
	log  *slog.Logger
}

type Option func(*Client)

// WithBaseURL pins the base URL instead of resolving it from config on
// every request. Tests use this to point at an httptest server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.base = func() string { return base }
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(sess *session.Session, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{},
		sess: sess,
		base: config.BaseURL,
		log:  logger.With("component", "transport"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isExempt reports whether the path gets no Authorization header:
// public storefront routes and the auth routes themselves.
func isExempt(path string) bool {
	if strings.HasPrefix(path, "/public/") {
		return true
	}
	return path == "/auth/login" || path == "/auth/logout"
}

// DoRaw issues a request and returns the raw response body. Non-2xx
// responses come back as *APIError; network errors propagate unchanged
// (no retries). On 401 the session token is cleared and the session's
// unauthorized hook fires before the error is returned.
func (c *Client) DoRaw(ctx context.Context, method, path string, body io.Reader, contentType string, params url.Values) ([]byte, error) {
	endpoint := strings.TrimRight(c.base(), "/") + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.sess.Token(); token != "" && !isExempt(path) {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("unauthorized response, clearing session", "path", path)
		c.sess.Unauthorized()
		return nil, decodeAPIError(resp.StatusCode, data)
	}
	if resp.StatusCode >= 300 {
		c.log.Debug("request failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, decodeAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// Do issues a request and JSON-decodes the response into out (skipped
// when out is nil or the body is empty).
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string, params url.Values, out any) error {
	data, err := c.DoRaw(ctx, method, path, body, contentType, params)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// JSON marshals payload and issues it as an application/json request.
func (c *Client) JSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.Do(ctx, method, path, body, contentType, nil, out)
}

// Get issues a GET with optional query params.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.Do(ctx, "GET", path, nil, "", params, out)
}

// Post issues a bodyless POST, the shape of the per-entity actions
// (toggle-featured, like, ...).
func (c *Client) Post(ctx context.Context, path string, out any) error {
	return c.Do(ctx, "POST", path, nil, "", nil, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, "DELETE", path, nil, "", nil, nil)
}
