// Package source wires a collection location to its listing and record
// backends.
package source

import (
	"net/http"
	"path/filepath"
	"strings"

	"sgfview/internal/listing"
	"sgfview/internal/record"
)

// Source bundles the two read paths of a collection.
type Source struct {
	Base     string
	Resolver listing.Resolver
	Fetcher  record.Fetcher
}

// IsRemote reports whether base is served over HTTP(S).
func IsRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}

// Open picks the HTTP backends for http(s) locations and the local tree
// backends for everything else.
func Open(base string, client *http.Client) *Source {
	if IsRemote(base) {
		return &Source{
			Base:     base,
			Resolver: listing.NewHTTPResolver(client),
			Fetcher:  record.NewHTTPFetcher(client),
		}
	}
	if !strings.HasPrefix(base, "file://") {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}
	return &Source{
		Base:     base,
		Resolver: listing.NewDirResolver(),
		Fetcher:  record.NewFileFetcher(),
	}
}

// Join appends parts to base with single separators. Parts ending in a slash
// keep it, so directory locations stay directory locations.
func Join(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		out = out + "/" + p
	}
	if len(parts) > 0 && strings.HasSuffix(parts[len(parts)-1], "/") {
		out += "/"
	}
	return out
}

// Dir returns the directory location of parts under base.
func Dir(base string, parts ...string) string {
	return Join(base, append(parts, "/")...)
}
