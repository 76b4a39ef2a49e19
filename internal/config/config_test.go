package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Data.Backend)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "relevance", cfg.UI.DefaultSort)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
data:
  dir: /srv/gallery
  backend: bolt
ai:
  provider: groq
  timeout: 5s
  max_retries: 0
player:
  command: vlc
  args: ["--fullscreen"]
logging:
  level: DEBUG
`)

	cfg, err := load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/gallery", cfg.Data.Dir)
	assert.Equal(t, BackendBolt, cfg.Data.Backend)
	assert.Equal(t, "groq", cfg.AI.Provider)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 0, cfg.AI.MaxRetries)
	assert.Equal(t, "vlc", cfg.Player.Command)
	assert.Equal(t, []string{"--fullscreen"}, cfg.Player.Args)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoadReadsProviderKeysFromEnvironment(t *testing.T) {
	path := writeConfig(t, "ai:\n  provider: gemini\n")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("GROQ_API_KEY", "groq-key")
	t.Setenv("AI_PROVIDER", "groq")

	cfg, err := load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "google-key", cfg.AI.GoogleAPIKey)
	assert.Equal(t, "groq-key", cfg.AI.GroqAPIKey)
	assert.Equal(t, "groq", cfg.AI.Provider)
}

func TestLoadPrefixedEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "data:\n  dir: /from/file\n")
	t.Setenv("VISTA_DATA_DIR", "/from/env")

	cfg, err := load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Data.Dir)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "data:\n  backend: postgres\n")

	_, err := load(viper.New(), path)
	assert.ErrorContains(t, err, "invalid data.backend")
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "gallery"), expandHome("~/gallery"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
