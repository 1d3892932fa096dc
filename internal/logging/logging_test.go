package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sgfview.log")
	logger, err := New(Options{File: path, Level: "info"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("listing", zap.String("url", "https://example.org/sgf/pure/"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"listing"`)
	assert.Contains(t, string(data), `"url":"https://example.org/sgf/pure/"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(Options{File: path, Level: "warn", Verbose: true})
	require.NoError(t, err)

	logger.Debug("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shown")
}

func TestNewWithoutSinkIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")
}
