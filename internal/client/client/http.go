package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/google/uuid"
)

const (
	contentTypeJSON = "application/json"

	// DefaultTimeout bounds every request end to end.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 64 << 10
)

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
	// Debug logs every request and response.
	Debug bool
	// Transport overrides http.DefaultTransport when set.
	Transport http.RoundTripper
}

// HTTPClient is the single shared HTTP adapter. It is safe for concurrent
// use.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
	debug   bool

	newRequestID func() string

	mu        sync.RWMutex
	observers []ResponseObserver
}

// NewHTTPClient validates cfg.BaseURL and builds the adapter. tokens may be
// nil for a client that never authenticates.
func NewHTTPClient(cfg HTTPConfig, tokens TokenSource, logger logging.Logger) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	if logger == nil {
		logger = logging.Nop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		baseURL:      base,
		http:         &http.Client{Timeout: timeout, Transport: cfg.Transport},
		tokens:       tokens,
		logger:       logger.With("component", "http"),
		debug:        cfg.Debug,
		newRequestID: uuid.NewString,
	}, nil
}

// AddObserver registers o for every subsequent response.
func (c *HTTPClient) AddObserver(o ResponseObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// ResolveURL turns a server-relative path into an absolute URL.
func (c *HTTPClient) ResolveURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL.String() + path
}

func (c *HTTPClient) notify(ctx context.Context, resp *http.Response) {
	c.mu.RLock()
	observers := append([]ResponseObserver(nil), c.observers...)
	c.mu.RUnlock()

	for _, o := range observers {
		o.ObserveResponse(ctx, resp)
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.ResolveURL(path), body)
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = contentTypeJSON
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(common.RequestIDHeaderName, c.newRequestID())

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.logger.Warn(ctx, "token unavailable, sending request anonymously", "error", err)
		} else if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	return req, nil
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	requestID := req.Header.Get(common.RequestIDHeaderName)

	if c.debug {
		c.logger.Debug(ctx, "API request", "method", method, "path", path, "request_id", requestID)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = classifyTransportError(ctx, err)
		if c.debug {
			c.logger.Debug(ctx, "API error", "method", method, "path", path, "request_id", requestID, "error", err)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if c.debug {
		c.logger.Debug(ctx, "API response", "method", method, "path", path, "status", resp.StatusCode,
			"request_id", requestID, "duration", time.Since(started))
	}

	c.notify(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, body, contentTypeJSON, out)
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrConnection, err)
}

// readErrorMessage pulls "message" (or "error") out of a JSON error body.
func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
