package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caddan/ordna/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from a directory without a config file.
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "~", cfg.Root)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 65*time.Second, cfg.Cooldown)
	assert.Equal(t, "npx", cfg.Backend.Command)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ordna.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: /srv/files
model: qwen2.5
cooldown: 10s
redis:
  addr: localhost:6379
  ttl: 1h
backend:
  command: node
  args: ["server.js"]
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/files", cfg.Root)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.Cooldown)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "node", cfg.Backend.Command)
	assert.Equal(t, []string{"server.js"}, cfg.Backend.Args)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ordna.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: from-file\n"), 0o600))

	t.Setenv("OLLAMA_MODEL", "from-env")
	t.Setenv("ORDNA_DEBUG", "True")
	t.Setenv("ORDNA_COOLDOWN", "2s")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Model)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2*time.Second, cfg.Cooldown)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ordna.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: [broken"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
