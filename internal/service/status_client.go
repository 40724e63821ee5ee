package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrStatusUnavailable means the status board could not be read.
var ErrStatusUnavailable = errors.New("status board unavailable")

// HTTPStatusSource reads a remote GET /status endpoint.
type HTTPStatusSource struct {
	URL        string
	HTTPClient *http.Client
}

func NewHTTPStatusSource(url string) *HTTPStatusSource {
	return &HTTPStatusSource{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *HTTPStatusSource) FetchStatus(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrStatusUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatusUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrStatusUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatusUnavailable, c.URL, resp.StatusCode)
	}

	var status []string
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrStatusUnavailable, err)
	}
	return status, nil
}
