package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "local", cfg.Quote.Submitter)
	assert.Equal(t, 30*time.Second, cfg.Quote.Timeout)
	assert.Equal(t, time.Second, cfg.Quote.Delay)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Quote.Kafka.Brokers)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
currency: EUR
storage:
  backend: redis
  redis:
    addr: cache:6379
quote:
  submitter: postgres
  timeout: 5s
`), 0o600))
	t.Setenv("PUREDRY_QUOTE_POSTGRES_HOST", "db.internal")
	t.Setenv("PUREDRY_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "postgres", cfg.Quote.Submitter)
	assert.Equal(t, 5*time.Second, cfg.Quote.Timeout)
	assert.Equal(t, "db.internal", cfg.Quote.Postgres.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PUREDRY_HTTP_ADDR=:9999\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PUREDRY_HTTP_ADDR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PUREDRY_STORAGE_BACKEND", "floppy")

	_, err := Load("")
	assert.ErrorContains(t, err, "floppy")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
