package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with a timeout and a request counter.
type HTTPClient struct {
	client   *http.Client
	baseURL  string
	requests atomic.Int64
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Get performs a GET request and returns the status and full body.
func (c *HTTPClient) Get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.requests.Add(1)
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

// GetJSON performs a GET and decodes a 200 response into v.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, v any) ([]byte, error) {
	status, body, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status != StatusOK {
		return body, fmt.Errorf("%w: GET %s returned %d", ErrStatus, path, status)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return body, fmt.Errorf("decode %s: %w", path, err)
	}
	return body, nil
}

// Requests is how many requests were sent.
func (c *HTTPClient) Requests() int { return int(c.requests.Load()) }
