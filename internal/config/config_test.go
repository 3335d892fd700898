package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
listen: ":9090"
steps_endpoint: "https://admin.example.com/admin/scenarios/step/"
timeout: 2s
log_level: debug
redis:
  addr: "localhost:6379"
  db: 2
notifications:
  ttl: 5s
`)
	t.Setenv("SCENARIST_LISTEN", ":7070")
	t.Setenv("SCENARIST_REDIS_PREFIX", "test:")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "https://admin.example.com/admin/scenarios/step/", cfg.StepsEndpoint)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "test:", cfg.Redis.Prefix)
	assert.Equal(t, 5*time.Second, cfg.Notifications.TTL)
	assert.Equal(t, 300*time.Millisecond, cfg.Notifications.Fade, "unset keys keep their default")
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	path := writeFile(t, "metrics: false\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Metrics)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Load(missing)
	assert.ErrorIs(t, err, os.ErrNotExist)

	t.Setenv(EnvConfigFile, missing)
	_, err = Load("")
	assert.NoError(t, err, "implicit config file is optional")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "timeout: 0s\nredis:\n  db: -1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout must be positive")
	assert.Contains(t, err.Error(), "redis db must not be negative")
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("SCENARIST_TIMEOUT", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "parse env")
}
