package serve

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sgfview/internal/listing"
)

func collection(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	month := filepath.Join(root, "pure", "2024-03")
	require.NoError(t, os.MkdirAll(month, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(month, "g1.sgf"), []byte("(;GM[1])"), 0644))
	return root
}

func TestHandlerServesRecordsUncached(t *testing.T) {
	srv := httptest.NewServer(Handler(collection(t), ".sgf", nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/pure/2024-03/g1.sgf")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "(;GM[1])", string(body))
	assert.Equal(t, RecordContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
	assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
}

func TestHandlerIgnoresConditionalRequests(t *testing.T) {
	srv := httptest.NewServer(Handler(collection(t), ".sgf", nil))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/pure/2024-03/g1.sgf", nil)
	require.NoError(t, err)
	req.Header.Set("If-Modified-Since", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerIndexesReadByResolver(t *testing.T) {
	srv := httptest.NewServer(Handler(collection(t), ".sgf", nil))
	defer srv.Close()

	r := listing.NewHTTPResolver(srv.Client())
	months, err := r.ListEntries(context.Background(), srv.URL+"/pure/")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03/"}, months)

	files, err := r.ListEntries(context.Background(), srv.URL+"/pure/2024-03/")
	require.NoError(t, err)
	assert.Equal(t, []string{"g1.sgf"}, files)
}

func TestHandlerLogsRequests(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv := httptest.NewServer(Handler(collection(t), ".sgf", zap.New(core)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/missing.sgf")
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/missing.sgf", fields["path"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	h := Handler(collection(t), ".sgf", nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, h, nil) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/pure/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunReportsListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = Run(context.Background(), ln.Addr().String(), http.NotFoundHandler(), nil)
	assert.ErrorContains(t, err, "listen on")
}
