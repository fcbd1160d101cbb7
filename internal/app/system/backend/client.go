// Package backend is the typed client for the TankerHub REST API.
//
// The dashboard owns no business data: every customer, booking, tanker,
// driver, sensor, notification, complaint and audit record lives behind
// this API. Handlers put the signed-in admin's token on the request
// context with WithToken and the client forwards it as a bearer token.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 16 << 20

// Observer is notified after every upstream call. status is 0 when the
// request never produced a response.
type Observer func(method, path string, status int, elapsed time.Duration)

// Client calls the backend API.
type Client struct {
	base    string
	http    *http.Client
	log     *zap.Logger
	observe Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver installs a hook that sees every upstream call.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observe = o }
}

// New builds a client for the API rooted at baseURL. baseURL must be an
// absolute http or https URL; a trailing slash is ignored.
func New(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) (*Client, error) {
	if err := ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		base: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{Timeout: timeout},
		log:  logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ValidateBaseURL reports whether s is usable as the API root.
func ValidateBaseURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("api base url is empty")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("api base url has no host")
	}
	return nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string { return c.base }

type tokenKey struct{}

// WithToken returns a context carrying the bearer token for upstream calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the token stored by WithToken, if any.
func TokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

// PathID substitutes id (escaped) for the {id} placeholder in pattern.
func PathID(pattern, id string) string {
	return strings.ReplaceAll(pattern, "{id}", url.PathEscape(id))
}

// Do performs one request. body (if non-nil) is sent as JSON; a 2xx
// response body is decoded into out (if non-nil). Non-2xx responses
// return *APIError. Transport failures wrap ErrUnavailable.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.notify(method, path, 0, time.Since(start))
		c.log.Error("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	c.notify(method, path, resp.StatusCode, elapsed)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %w", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: messageFrom(raw, resp.StatusCode),
			Method:  method,
			Path:    path,
		}
		if resp.StatusCode >= 500 {
			c.log.Warn("backend server error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("message", apiErr.Message))
		}
		return apiErr
	}

	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Ping checks that the API answers at all. Any HTTP response, even an
// error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	return nil
}

func (c *Client) notify(method, path string, status int, elapsed time.Duration) {
	if c.observe != nil {
		c.observe(method, path, status, elapsed)
	}
}

// List fetches a collection endpoint and unwraps its envelope.
func List[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	items, err := DecodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("decode GET %s: %w", path, err)
	}
	return items, nil
}

// Get fetches a single record endpoint and unwraps its envelope.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Send[T](ctx, c, http.MethodGet, path, nil)
}

// Send issues a write (or read) and decodes the single record in the
// response. An empty response body yields the zero value.
func Send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	var raw json.RawMessage
	if err := c.Do(ctx, method, path, body, &raw); err != nil {
		return zero, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}
	v, err := DecodeOne[T](raw)
	if err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return v, nil
}
