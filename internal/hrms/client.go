// Package hrms is the typed client for the HRMS backend REST API. It owns
// transport concerns only: bearer auth, timeouts, rate limiting, idempotency
// keys and error mapping. Business rules stay on the backend.
package hrms

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
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies the bearer token for authenticated calls.
// Implemented by the session store.
type TokenSource interface {
	Token() (string, error)
}

// Config holds API client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond bounds outgoing calls; 0 disables the limiter.
	RequestsPerSecond float64
	Burst             int
}

// Client calls the HRMS backend
type Client struct {
	baseURL    string
	httpClient HTTPClient
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates an API client. tokens may be nil for a client that only
// performs unauthenticated calls (login).
func NewClient(cfg Config, tokens TokenSource, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		limiter:    limiter,
		logger:     logger,
	}
}

// requestOptions control per-call behavior
type requestOptions struct {
	anonymous bool
}

type requestOption func(*requestOptions)

// anonymous skips the Authorization header, for the login call
func anonymous() requestOption {
	return func(o *requestOptions) { o.anonymous = true }
}

// do performs one request: rate-limit, marshal, auth, send, decode. A non-2xx
// response becomes an *APIError carrying the backend's detail message;
// transport failures are wrapped as-is.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any, opts ...requestOption) error {
	options := requestOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPut {
		// One key per attempt; a deliberate user retry is a new request.
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	if !options.anonymous && c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("no usable session: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err == nil && len(data) > 0 {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Detail = eb.Detail
		}
	}

	c.logger.Warn("Backend rejected request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", apiErr.Detail))
	return apiErr
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
