package listing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nginxIndex = `<html>
<head><title>Index of /sgf/pure/</title></head>
<body>
<h1>Index of /sgf/pure/</h1><hr><pre><a href="../">../</a>
<a href="2024-01/">2024-01/</a>                                           03-Feb-2024 10:00       -
<a href="2024-03/">2024-03/</a>                                           01-Apr-2024 10:00       -
<a href="2024-02/">2024-02/</a>                                           02-Mar-2024 10:00       -
</pre><hr></body>
</html>`

func TestParseIndexDropsParentAndKeepsOrder(t *testing.T) {
	entries := ParseIndex(strings.NewReader(nginxIndex))
	assert.Equal(t, []string{"2024-01/", "2024-03/", "2024-02/"}, entries)
}

func TestParseIndexDropsEmptyTargets(t *testing.T) {
	doc := `<a href="">empty</a><a>no href</a><a name="x" href="a.sgf">a</a><a href="../">up</a>`
	assert.Equal(t, []string{"a.sgf"}, ParseIndex(strings.NewReader(doc)))
}

func TestParseIndexEmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"empty body", "", []string{}},
		{"no anchors", "<html><body><p>nothing here</p></body></html>", []string{}},
		{"only parent", `<a href="../">../</a>`, []string{}},
		{"mismatched tags", `<p><a href="g1.sgf">g1</p></div></span><a href="g2.sgf">`, []string{"g1.sgf", "g2.sgf"}},
		{"not html", "\x00\x01 binary", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIndex(strings.NewReader(tt.doc))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPResolverListsEntries(t *testing.T) {
	var gotCacheControl string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(nginxIndex))
	}))
	defer srv.Close()

	entries, err := NewHTTPResolver(srv.Client()).ListEntries(context.Background(), srv.URL+"/sgf/pure/")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01/", "2024-03/", "2024-02/"}, entries)
	assert.Equal(t, "no-cache", gotCacheControl)
}

func TestHTTPResolverNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	url := srv.URL + "/sgf/ai/2024-03/"
	_, err := NewHTTPResolver(nil).ListEntries(context.Background(), url)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, url, fe.URL)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestHTTPResolverTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/"
	srv.Close()

	_, err := NewHTTPResolver(nil).ListEntries(context.Background(), url)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
	assert.NotNil(t, fe.Unwrap())
}

func TestHTTPResolverAgainstFileServer(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pure", "2024-03"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pure", "2024-03", "b.sgf"), []byte("(;)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pure", "2024-03", "a.sgf"), []byte("(;)"), 0o644))

	srv := httptest.NewServer(http.FileServer(http.Dir(root)))
	defer srv.Close()

	months, err := NewHTTPResolver(srv.Client()).ListEntries(context.Background(), srv.URL+"/pure/")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03"}, Folders(months))

	files, err := NewHTTPResolver(srv.Client()).ListEntries(context.Background(), srv.URL+"/pure/2024-03/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sgf", "b.sgf"}, WithExt(files, ".sgf"))
}

func TestDirResolver(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2024-02"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2024-01"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), nil, 0o644))

	entries, err := NewDirResolver().ListEntries(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01/", "2024-02/", "notes.txt"}, entries)

	entries, err = NewDirResolver().ListEntries(context.Background(), "file://"+filepath.ToSlash(root))
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = NewDirResolver().ListEntries(context.Background(), filepath.Join(root, "missing"))
	var fe *FetchError
	assert.ErrorAs(t, err, &fe)
}

func TestFoldersAndWithExt(t *testing.T) {
	entries := []string{"2024-01/", "readme.txt", "/", "g1.sgf", "2023-12/", "G2.SGF", "g3.sgf"}
	assert.Equal(t, []string{"2024-01", "2023-12"}, Folders(entries))
	assert.Equal(t, []string{"g1.sgf", "g3.sgf"}, WithExt(entries, ".sgf"))
	assert.Empty(t, WithExt(nil, ".sgf"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "名人战_a.sgf", DisplayName("%E5%90%8D%E4%BA%BA%E6%88%98_a.sgf"))
	assert.Equal(t, "plain.sgf", DisplayName("plain.sgf"))
	assert.Equal(t, "bad%zz.sgf", DisplayName("bad%zz.sgf"))
}
