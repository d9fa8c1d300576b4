// Package grafana provides the shared Grafana HTTP client, settings, and the
// wire models exchanged with Grafana's REST and plugin-proxy APIs.
package grafana

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
)

const requestTimeout = 30 * time.Second

// Client is a thin authenticated HTTP client for the Grafana API. It is safe
// for concurrent use; each tool call is an independent request-response
// exchange with no shared mutable state beyond the connection pool.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a Client from the given settings. The bearer auth header
// is attached once at construction via the transport, not per call.
func NewClient(settings Settings) *Client {
	transport := http.RoundTripper(http.DefaultTransport)
	if settings.APIKey != "" {
		transport = &bearerAuthTransport{
			apiKey:    settings.APIKey,
			transport: http.DefaultTransport,
		}
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(settings.URL, "/"),
	}
}

// Get performs a GET request against the Grafana API and returns the raw
// response body. A non-2xx response is returned as a *TransportError.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req)
}

// Post performs a POST request with a JSON body against the Grafana API and
// returns the raw response body. A non-2xx response is returned as a
// *TransportError.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}
	return bodyBytes, nil
}

// bearerAuthTransport is an http.RoundTripper that injects Bearer token
// authentication. It wraps an underlying transport and adds the
// Authorization header to all requests.
type bearerAuthTransport struct {
	apiKey    string
	transport http.RoundTripper
}

// RoundTrip implements http.RoundTripper by adding Bearer token authentication to requests.
func (t *bearerAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.transport.RoundTrip(req)
}
