package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Client)
	assert.Equal(t, "http://127.0.0.1:8000/api/notes/", cfg.Client.BaseURL)
	assert.Equal(t, 30, cfg.Client.TimeoutSeconds)
	assert.Equal(t, 3000, cfg.Notify.DurationMillis)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 8000, cfg.Server.PortHTTP)
	assert.Equal(t, 250, cfg.Summarizer.MaxTokens)
}

func TestLoad_FileWithEnvExpansion(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NOTES_TEST_PORT", "9090")

	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
logger:
  level: debug
client:
  base_url: ${NOTES_TEST_URL:-http://notes.local/api/notes/}
server:
  port_http: ${NOTES_TEST_PORT:-8000}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "http://notes.local/api/notes/", cfg.Client.BaseURL)
	assert.Equal(t, 9090, cfg.Server.PortHTTP)
	assert.Equal(t, 100, cfg.Gateway.RateLimitRPS, "Expected defaults for sections absent from the file")
}

func TestLoad_EnvOverridesBaseURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NOTES_API_URL", "http://env.local/api/notes/")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://env.local/api/notes/", cfg.Client.BaseURL)
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("NOTES_SET", "value")

	assert.Equal(t, "value", expandEnvWithDefaults("${NOTES_SET:-fallback}"))
	assert.Equal(t, "fallback", expandEnvWithDefaults("${NOTES_UNSET_VAR:-fallback}"))
	assert.Equal(t, "", expandEnvWithDefaults("${NOTES_UNSET_VAR}"))
	assert.Equal(t, "plain", expandEnvWithDefaults("plain"))
}
