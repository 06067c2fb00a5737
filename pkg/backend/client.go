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

	"github.com/aureliajewels/storefront-api/pkg/config"
	"github.com/aureliajewels/storefront-api/pkg/logger"
	"github.com/aureliajewels/storefront-api/pkg/metrics"
)

var (
	errBaseURLRequired = errors.New("backend base URL is required")
	errLoggerRequired  = errors.New("backend logger is required")
)

// TokenSource supplies a service credential for requests that carry no
// caller token. Implementations may refresh behind this call.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client is a thin typed wrapper over the remote jewelry backend. It attaches
// the session bearer token to every request, applies a fixed timeout, and
// surfaces HTTP failures to callers as *APIError without retrying anything.
// A 401 is logged and returned; re-authentication is the caller's problem.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    *Session
	tokens     TokenSource
	metrics    *metrics.HTTPMetrics
	logger     *logger.Logger
}

// NewClient validates the configuration and builds the backend wrapper.
// The session is owned by the caller so tests and the identity layer can
// swap tokens without reaching into the client.
func NewClient(cfg config.BackendConfig, session *Session, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if session == nil {
		session = NewSession()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		session:    session,
		logger:     logg,
	}, nil
}

// Session exposes the token holder used by this client.
func (c *Client) Session() *Session {
	if c == nil {
		return nil
	}
	return c.session
}

// SetTokenSource installs a service-credential fallback used when neither
// the request context nor the session carries a token.
func (c *Client) SetTokenSource(tokens TokenSource) {
	if c == nil {
		return
	}
	c.tokens = tokens
}

// SetMetrics enables backend error counting. A nil receiver or metrics
// handle is a no-op.
func (c *Client) SetMetrics(m *metrics.HTTPMetrics) {
	if c == nil {
		return
	}
	c.metrics = m
}

// do issues a single request. No retries, no backoff, no deduplication:
// each logical user action maps to exactly one request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	token := TokenFromContext(ctx)
	if token == "" {
		token = c.session.Token()
	}
	if token == "" && c.tokens != nil {
		fetched, err := c.tokens.AccessToken(ctx)
		if err != nil {
			ctx := c.logger.WithField(ctx, "path", path)
			c.logger.Warn(ctx, "service credential unavailable, sending anonymous request")
		} else {
			token = fetched
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		ctx := c.logger.WithField(ctx, "path", path)
		c.logger.Warn(ctx, "unauthorized: invalid or missing token")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncUpstreamError(resp.StatusCode)
		return &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			body:   raw,
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, payload, out)
}

func (c *Client) put(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, payload, out)
}

func (c *Client) patch(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, payload, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
