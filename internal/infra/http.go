package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Yahoo rejects the default Go User-Agent, so every request carries a
// browser one.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// httpClient is the shared client for all provider requests.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// DoGet performs an HTTP GET with the shared client and returns the response
// body, status code, and any error. The caller must close the body on success.
// Non-2xx responses are returned as errors with the body drained and closed.
func DoGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()
		return nil, resp.StatusCode, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	return resp.Body, resp.StatusCode, nil
}
