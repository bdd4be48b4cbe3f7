// Package client talks to the offers agent endpoint: one JSON POST per
// query, no retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sonnes/offerchat/core"
)

// maxErrorBody caps how much of a failed response body is kept for logging.
const maxErrorBody = 4 << 10

// StatusError reports a non-2xx response from the agent.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// Client posts queries to the agent endpoint.
type Client struct {
	// Endpoint is the full URL of the query API, e.g.
	// http://localhost:8080/api/query.
	Endpoint string
	// HTTPClient is used for requests. Timeouts, if any, belong here or on
	// the request context.
	HTTPClient *http.Client
}

// New creates a Client whose transport is instrumented with otelhttp.
func New(endpoint string) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Query sends a single request/response exchange.
func (c *Client) Query(ctx context.Context, req core.QueryRequest) (*core.QueryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	var out core.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
