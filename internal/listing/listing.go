// Package listing discovers the entries of a record directory.
//
// The collection is published as a tree of month folders. A Resolver turns a
// directory location into the names it contains: folders carry a trailing
// slash, files are bare names. Callers never see how the names were found.
package listing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// ParentRef is the synthetic "up one level" entry autoindex pages emit.
const ParentRef = "../"

// Resolver lists the entries of a directory location.
type Resolver interface {
	ListEntries(ctx context.Context, url string) ([]string, error)
}

// FetchError reports a directory location that could not be listed.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("list %s: HTTP %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("list %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("list %s: failed", e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Folders keeps the folder entries and strips their trailing separator.
func Folders(entries []string) []string {
	folders := make([]string, 0, len(entries))
	for _, e := range entries {
		if !strings.HasSuffix(e, "/") {
			continue
		}
		name := strings.TrimSuffix(e, "/")
		if name == "" {
			continue
		}
		folders = append(folders, name)
	}
	return folders
}

// WithExt keeps the entries ending in ext, preserving their order.
func WithExt(entries []string, ext string) []string {
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e, ext) {
			files = append(files, e)
		}
	}
	return files
}

// DisplayName returns the human readable form of an entry name. Autoindex
// pages percent-encode non-ASCII names; entries that fail to decode are
// returned unchanged.
func DisplayName(entry string) string {
	name, err := url.PathUnescape(entry)
	if err != nil {
		return entry
	}
	return name
}
