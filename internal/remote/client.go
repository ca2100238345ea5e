package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mcdevkit/internal/logger"
)

// UserAgent is sent with every request.
const UserAgent = "mcdevkit"

// Fetcher is the network boundary used by the validator, the resolvers and
// the downloader. Requests are never retried and carry no timeout of their own.
type Fetcher interface {
	// GetJSON fetches url and decodes the JSON body into out.
	GetJSON(ctx context.Context, url string, out any) error
	// Open starts a GET request and returns the response body together with
	// the advertised content length (0 when unknown). The caller closes the body.
	Open(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP status %d", e.URL, e.StatusCode)
}

// HTTPClient is the net/http backed Fetcher.
type HTTPClient struct {
	Client *http.Client
}

// NewHTTPClient returns an HTTPClient using http.DefaultClient.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: http.DefaultClient}
}

func (c *HTTPClient) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	logger.Debug("[DEBUG] GET %s\n", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to GET %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// GetJSON implements Fetcher.
func (c *HTTPClient) GetJSON(ctx context.Context, url string, out any) error {
	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}
	return nil
}

// Open implements Fetcher.
func (c *HTTPClient) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, 0, err
	}

	size := resp.ContentLength
	if size < 0 {
		size = 0
	}
	return resp.Body, size, nil
}
