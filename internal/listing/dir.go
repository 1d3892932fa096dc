package listing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// DirResolver lists directories of a local tree.
type DirResolver struct{}

// NewDirResolver creates a resolver for local paths and file:// locations
func NewDirResolver() *DirResolver {
	return &DirResolver{}
}

// ListEntries reads the directory at path. Sub-directories get a trailing
// slash; entries come back in name order as os.ReadDir returns them.
func (r *DirResolver) ListEntries(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: path, Err: err}
	}

	dir := filepath.FromSlash(strings.TrimPrefix(path, "file://"))
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FetchError{URL: path, Err: err}
	}

	entries := make([]string, 0, len(items))
	for _, item := range items {
		// Hidden files never show up in autoindex pages either
		if strings.HasPrefix(item.Name(), ".") {
			continue
		}
		if item.IsDir() {
			entries = append(entries, item.Name()+"/")
		} else {
			entries = append(entries, item.Name())
		}
	}
	return entries, nil
}
