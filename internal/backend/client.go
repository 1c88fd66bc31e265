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

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const userAgent = "AdminConsole/1.0"

// Config describes how to reach the REST backend.
type Config struct {
	BaseURL      string
	Token        string
	TimeoutSec   int
	ReadRetries  int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client talks JSON to the backend. Reads go through a retrying client;
// writes are sent exactly once.
type Client struct {
	reads   *http.Client
	writes  *http.Client
	baseURL string
	token   string
}

// NewClient creates a client with the configured timeout and read retry policy.
func NewClient(cfg Config) *Client {
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 30
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = 200 * time.Millisecond
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = 2 * time.Second
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second

	rc := retryablehttp.NewClient()
	rc.RetryMax = max(cfg.ReadRetries, 0)
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	// hand the final response back instead of a "giving up" error so status codes survive
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	reads := rc.StandardClient()
	reads.Timeout = timeout

	return &Client{
		reads:   reads,
		writes:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

// BaseURL returns the backend root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Get makes a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(c.reads, req)
}

// PostJSON makes a POST request with a JSON payload.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, path, payload)
}

// PutJSON makes a PUT request with a JSON payload.
func (c *Client) PutJSON(ctx context.Context, path string, payload any) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPut, path, payload)
}

// Delete makes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(c.writes, req)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(c.writes, req)
}

func (c *Client) do(hc *http.Client, req *http.Request) (*Response, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Msg("making backend request")

	resp, err := hc.Do(req)
	if err != nil {
		log.Error().
			Str("method", req.Method).
			Str("url", req.URL.Redacted()).
			Err(err).
			Msg("backend request failed")
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	return c.handleResponse(req, resp)
}

// handleResponse reads the whole body so the connection can be reused.
func (c *Client) handleResponse(req *http.Request, resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("method", req.Method).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Msg("received backend response")

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// Response is a fully read backend response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
