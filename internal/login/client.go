package login

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LoginPath is appended to the API base URL
const LoginPath = "/login"

// DefaultTimeout bounds a single login round-trip
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read
const maxBodySize = 1 << 20

// Dispatcher sends a single login request and returns the fully read response
type Dispatcher interface {
	Login(ctx context.Context, username string) (*Response, error)
}

// Request is the login request body
type Request struct {
	Username string `json:"username"`
}

// ClientConfig holds the endpoint settings for the login client
type ClientConfig struct {
	// Origin is the address requests are resolved against when APIURL is
	// empty or relative (e.g. http://localhost:8080)
	Origin string
	// APIURL is the API base address. Empty means relative to Origin.
	APIURL string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client is the HTTP login client
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Dispatcher = (*Client)(nil)

// NewClient creates a login client. If httpClient is nil a client with the
// configured timeout is used.
func NewClient(cfg ClientConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	endpoint, err := ResolveEndpoint(cfg.Origin, cfg.APIURL, LoginPath)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     loggerOrDiscard(logger),
	}, nil
}

// Endpoint returns the resolved login URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Login posts {"username": ...} to the login endpoint. Any failure before a
// response is obtained is wrapped in ErrServerUnavailable.
func (c *Client) Login(ctx context.Context, username string) (*Response, error) {
	data, err := json.Marshal(Request{Username: username})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrServerUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("login request failed",
			slog.String("endpoint", c.endpoint),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxBodySize {
		c.logger.Warn("login response too large",
			slog.String("endpoint", c.endpoint),
			slog.Int("status", resp.StatusCode),
			slog.Int("limit", maxBodySize),
		)
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxBodySize)
	}

	c.logger.Debug("login response",
		slog.String("endpoint", c.endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Int("size", len(body)),
		slog.Duration("duration", time.Since(start)),
	)

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// ResolveEndpoint joins apiURL and path, resolving the result against origin
// when it is not already absolute. An empty apiURL yields origin + path,
// the way a browser resolves a relative fetch against the page origin.
func ResolveEndpoint(origin, apiURL, path string) (string, error) {
	ref, err := url.Parse(strings.TrimSuffix(apiURL, "/") + path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return "", fmt.Errorf("%w: origin %q is not an absolute URL", ErrInvalidEndpoint, origin)
	}

	return base.ResolveReference(ref).String(), nil
}
