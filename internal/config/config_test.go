package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:9200", cfg.Cluster.URL)
	assert.Equal(t, 30*time.Second, cfg.Cluster.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "watcher.yaml", `
cluster:
  url: https://es.example.com:9243
  username: elastic
  timeout: 5s
log:
  level: debug
  format: json
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://es.example.com:9243", cfg.Cluster.URL)
	assert.Equal(t, "elastic", cfg.Cluster.Username)
	assert.Empty(t, cfg.Cluster.Password)
	assert.Equal(t, 5*time.Second, cfg.Cluster.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "bad.yaml", "cluster: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "scheme.yaml", "cluster:\n  url: ftp://host\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOverlay_Env(t *testing.T) {
	t.Setenv("WATCHER_CLUSTER_URL", "http://10.0.0.1:9200")
	t.Setenv("WATCHER_CLUSTER_TIMEOUT", "2m")
	t.Setenv("WATCHER_CLUSTER_INSECURE", "true")

	cfg := DefaultConfig()
	cfg.Cluster.Username = "kept"
	require.NoError(t, cfg.Overlay(NewViper()))

	assert.Equal(t, "http://10.0.0.1:9200", cfg.Cluster.URL)
	assert.Equal(t, 2*time.Minute, cfg.Cluster.Timeout)
	assert.True(t, cfg.Cluster.Insecure)
	assert.Equal(t, "kept", cfg.Cluster.Username)
}

func TestOverlay_RejectsInvalid(t *testing.T) {
	t.Setenv("WATCHER_CLUSTER_URL", "localhost:9200")
	cfg := DefaultConfig()
	assert.Error(t, cfg.Overlay(NewViper()))
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "WATCHER_TEST_DOTENV=from-file\n")
	t.Setenv("WATCHER_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("WATCHER_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "from-file", os.Getenv("WATCHER_TEST_DOTENV"))
}

func TestGlobalConfig(t *testing.T) {
	cfg := DefaultConfig()
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(nil) })
	assert.Same(t, cfg, GetConfig())
}
