// Package external provides a generic HTTP caller for ad-hoc requests
// to third-party APIs.
package external

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

	"github.com/ragstack/ragdb-mcp/internal/logging"
)

const defaultTimeout = 15 * time.Second

// Request describes one outbound HTTP call.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Params  map[string]string
	Body    interface{}
}

// Client executes ad-hoc HTTP requests with a fixed per-call timeout.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *logging.Logger
}

// NewClient creates an external API client.
func NewClient(logger *logging.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logger:     logger,
	}
}

// Call performs the request and returns the decoded JSON response
// body. Non-JSON bodies are returned as plain strings.
func (c *Client) Call(ctx context.Context, req Request) (interface{}, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if len(req.Params) > 0 {
		q := target.Query()
		for k, v := range req.Params {
			q.Set(k, v)
		}
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	c.logger.Info("External API call completed", map[string]interface{}{
		"method": method,
		"url":    target.Host,
		"status": resp.StatusCode,
	})

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw), nil
	}
	return decoded, nil
}
