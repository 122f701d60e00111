package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-client/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_WritesJSONToFallback(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(&config.ConfigLogger{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closeFn()

	log.Info("hidden")
	log.Warn("visible", "id", "1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	log, closeFn, err := New(&config.ConfigLogger{Level: "info", File: path}, nil)
	require.NoError(t, err)

	log.Info("notes loaded", "count", 3)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "notes loaded")
}
