// Package record retrieves the raw text of a game record.
package record

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// maxRecordBytes bounds the size of a single record.
const maxRecordBytes = 16 << 20

// Fetcher retrieves record text. The text is returned unmodified.
type Fetcher interface {
	FetchRecord(ctx context.Context, url string) (string, error)
}

// FetchError reports a record that could not be retrieved.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: failed", e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPFetcher issues uncached GET requests.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher using client (http.DefaultClient when nil)
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// FetchRecord returns the body of url.
func (f *HTTPFetcher) FetchRecord(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRecordBytes))
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return string(body), nil
}

// FileFetcher reads records from a local tree.
type FileFetcher struct{}

// NewFileFetcher creates a fetcher for local paths and file:// locations
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// FetchRecord reads the file at path.
func (f *FileFetcher) FetchRecord(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{URL: path, Err: err}
	}
	file, err := os.Open(filepath.FromSlash(strings.TrimPrefix(path, "file://")))
	if err != nil {
		return "", &FetchError{URL: path, Err: err}
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxRecordBytes))
	if err != nil {
		return "", &FetchError{URL: path, Err: err}
	}
	return string(body), nil
}
