// Package immich provides a client for the Immich API.
package immich

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

const (
	requestTimeout = 10 * time.Second
	probeTimeout   = 5 * time.Second
)

// Client represents an Immich API client.
type Client struct {
	serverURL string
	apiKey    string
	client    *http.Client
}

// NewClient creates a new Immich API client.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// ServerURL returns the server URL.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// SetAuthHeader sets the Immich API authentication header.
func (c *Client) SetAuthHeader(req *http.Request) {
	req.Header.Set("x-api-key", c.apiKey)
}

// NewRequest creates a new HTTP request with the given method and path.
func (c *Client) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// APIError is returned for non-2xx API responses. It carries enough of
// the exchange to diagnose a failure from the log line alone.
type APIError struct {
	StatusCode   int
	Method       string
	URL          string
	RequestBody  []byte
	ResponseBody []byte
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "immich API request failed. Status: %d. %s %s", e.StatusCode, e.Method, e.URL)
	if len(e.RequestBody) > 0 {
		fmt.Fprintf(&b, ". Request: %s", e.RequestBody)
	}
	if len(e.ResponseBody) > 0 {
		fmt.Fprintf(&b, ". Response: %s", bytes.TrimSpace(e.ResponseBody))
	}
	return b.String()
}

// Do performs the HTTP request and decodes the response into the provided value.
func (c *Client) Do(req *http.Request, v any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)

		var reqBody []byte
		if req.GetBody != nil {
			if r, err := req.GetBody(); err == nil {
				reqBody, _ = io.ReadAll(r)
				r.Close()
			}
		}

		return &APIError{
			StatusCode:   resp.StatusCode,
			Method:       req.Method,
			URL:          req.URL.String(),
			RequestBody:  reqBody,
			ResponseBody: respBody,
		}
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// ValidateServerURL checks that the URL uses an http or https scheme and
// upgrades http to https. The second return value reports whether an
// upgrade happened, so the caller can warn about it.
func ValidateServerURL(raw string) (string, bool, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false, fmt.Errorf("invalid server URL %q: must start with http:// or https://", raw)
	}

	upgraded := false
	if u.Scheme == "http" {
		u.Scheme = "https"
		upgraded = true
	}

	return strings.TrimRight(u.String(), "/"), upgraded, nil
}

// Ping probes the server's base URL with a short timeout. It returns the
// response status code; a connection failure or timeout is an error and
// should abort the run.
func (c *Client) Ping(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating probe request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probing server: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
