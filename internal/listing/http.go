package listing

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html"
)

// maxIndexBytes bounds how much of a listing page is read.
const maxIndexBytes = 8 << 20

// HTTPResolver scrapes autoindex pages served by a static file server.
type HTTPResolver struct {
	client *http.Client
}

// NewHTTPResolver creates a resolver using client (http.DefaultClient when nil)
func NewHTTPResolver(client *http.Client) *HTTPResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPResolver{client: client}
}

// ListEntries fetches url and returns the anchor targets of the page in
// document order, without empty targets and without the parent reference.
func (r *HTTPResolver) ListEntries(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	// Listings change as records are added; never accept a cached copy
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxIndexBytes))
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	return ParseIndex(io.LimitReader(resp.Body, maxIndexBytes)), nil
}

// ParseIndex extracts the href of every anchor in an HTML document.
// Markup that fails to parse yields whatever anchors were seen before the
// failure, possibly none.
func ParseIndex(r io.Reader) []string {
	entries := []string{}
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a read error; both end the document
			return entries
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			href := anchorTarget(z)
			if href == "" || href == ParentRef {
				continue
			}
			entries = append(entries, href)
		}
	}
}

// anchorTarget returns the href attribute of the current tag
func anchorTarget(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "href" {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}
