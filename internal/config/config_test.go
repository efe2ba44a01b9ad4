package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
spotify:
  client_id: id
  client_secret: secret
  refresh_token: token
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Store.Path)
	assert.Equal(t, "history", cfg.Store.HistoryKey)
	assert.Equal(t, "report", cfg.Store.ReportKey)
	assert.Equal(t, 50, cfg.Fetch.RecentLimit)
	assert.Equal(t, 50, cfg.Fetch.TopListLimit)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
spotify:
  client_id: id
  client_secret: file-secret
  refresh_token: file-token
`)
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")
	t.Setenv("SPOTIFY_REFRESH_TOKEN", "env-token")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Spotify.ClientSecret)
	assert.Equal(t, "env-token", cfg.Spotify.RefreshToken)
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	path := writeConfig(t, `
spotify:
  client_id: id
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_secret")
}

func TestLoadRejectsOversizedLimits(t *testing.T) {
	path := writeConfig(t, `
spotify:
  client_id: id
  client_secret: secret
  refresh_token: token
fetch:
  recent_limit: 100
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent_limit")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
