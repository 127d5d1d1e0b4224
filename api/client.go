// Package api is the request pipeline for the rental backend. Every call
// goes through the same two cross-cutting behaviors: the current session's
// bearer token is attached on the way out, and a 401 on the way back
// invalidates the session and sends the navigator to the login view.
package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/session"
)

const defaultRequestTimeout = 30 * time.Second

// Redirector is the pipeline's hook into the navigation layer. When a 401
// invalidates the session, the pipeline asks the navigator to move to the
// login view, carrying the path the user was on as the pending destination.
// The navigator is responsible for ignoring the request when the login view
// is already showing.
type Redirector interface {
	RedirectToLogin(from string)
}

// Client wraps all outbound calls to the rental backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	redirector Redirector
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestTimeout bounds every non-login call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRedirector connects the pipeline's 401 handling to the navigator.
func WithRedirector(r Redirector) Option {
	return func(c *Client) {
		c.redirector = r
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the backend at baseURL (including the /api
// prefix, e.g. "http://localhost:8000/api"). Sessions are read from and
// invalidated through store; the Client never writes a new session.
func New(baseURL string, store session.Store, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		store:      store,
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	c.logger = c.logger.With().Str("component", "api").Logger()
	return c
}

// SetRedirector connects the navigator after construction. The navigator
// needs the session manager, which needs this client for its token call, so
// one of the three is wired late; call this once during startup, before any
// request is issued.
func (c *Client) SetRedirector(r Redirector) {
	c.redirector = r
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// normalizePath strips a redundant /api prefix from a caller-supplied path
// so that "/vehicles/" and "/api/vehicles/" reach the same endpoint. The
// base URL already carries the prefix; this is a compatibility shim, not a
// routing decision.
func (c *Client) normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return path
	}
	prefix := strings.TrimRight(base.Path, "/")
	if prefix != "" && (path == prefix || strings.HasPrefix(path, prefix+"/")) {
		trimmed := strings.TrimPrefix(path, prefix)
		if trimmed == "" {
			trimmed = "/"
		}
		return trimmed
	}
	return path
}

// do issues one request. body (when non-nil) is sent as JSON; a 2xx response
// is decoded into out (when non-nil). There is never an automatic retry: a
// 401 invalidates the session exactly once and the original failure is
// returned to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestURL := c.baseURL + c.normalizePath(path)
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var sentToken string
	current, err := c.store.Read()
	if err != nil {
		c.logger.Warn().Err(err).Msg("credential store read failed, sending unauthenticated")
	}
	if current.Valid() {
		sentToken = current.AccessToken
		req.Header.Set("Authorization", current.AuthorizationHeader())
	}

	requestID := uuid.NewString()
	logger := c.logger.With().Str("request_id", requestID).Str("method", method).Str("path", path).Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("request failed")
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(sentToken, path, query, logger)
		return apperrors.Wrapf(apperrors.ErrSessionExpired, "api: %s %s", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn().Int("status", resp.StatusCode).Msg("request rejected")
		return c.statusError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

// handleUnauthorized implements the inbound 401 interceptor. The session is
// cleared only when the store still holds the exact token that produced the
// 401: a login that completed while this request was in flight must not
// have its fresh session discarded by a stale failure.
func (c *Client) handleUnauthorized(sentToken, path string, query url.Values, logger zerolog.Logger) {
	current, err := c.store.Read()
	if err != nil {
		logger.Warn().Err(err).Msg("credential store read failed during 401 handling")
	}

	if current.Valid() && current.AccessToken != sentToken {
		logger.Info().Msg("401 for a superseded token, keeping newer session")
		return
	}

	if current.Valid() {
		if err := c.store.Clear(); err != nil {
			logger.Warn().Err(err).Msg("clearing invalid session failed")
		} else {
			logger.Info().Msg("session invalidated by 401")
		}
	}

	if c.redirector != nil {
		from := path
		if len(query) > 0 {
			from += "?" + query.Encode()
		}
		c.redirector.RedirectToLogin(from)
	}
}

// statusError maps a non-2xx, non-401 response to the error taxonomy,
// surfacing the backend's detail message when it sent one.
func (c *Client) statusError(status int, body []byte) error {
	detail := errorDetail(body)
	switch {
	case status == http.StatusNotFound:
		return apperrors.Wrapf(apperrors.ErrNotFound, "api: %s", detail)
	case status >= 500:
		return apperrors.Wrapf(apperrors.ErrServerError, "api: status %d: %s", status, detail)
	default:
		return fmt.Errorf("api: status %d: %s", status, detail)
	}
}

// errorDetail extracts the backend's {"detail": "..."} message from an
// error body, falling back to the raw body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

// Get issues a GET to an arbitrary backend path, decoding the response into
// out. Typed endpoint methods are preferred; this exists for one-off reads.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

// Post issues a POST to an arbitrary backend path.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT to an arbitrary backend path.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE to an arbitrary backend path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
