package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDatabaseDSN(t *testing.T) {
	dsn := Default().Database.DSN()

	assert.Equal(t, "host=localhost port=5432 user=estante password=estante dbname=estante sslmode=disable", dsn)
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", Default().Redis.Addr())
}

func TestValidateRejectsUnknownStorageDriver(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "ftp"

	require.Error(t, cfg.Validate())
}

func TestValidateRequiresS3Bucket(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "s3"

	require.Error(t, cfg.Validate())

	cfg.Storage.S3.Bucket = "estante-covers"
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiresNATSURLWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.NATS.Enabled = true
	cfg.NATS.URL = ""

	require.Error(t, cfg.Validate())
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("CATALOG_SERVICE_PORT", "9090")
	t.Setenv("CATALOG_DATABASE_HOST", "db.internal")
	t.Setenv("CATALOG_LOGGER_LEVEL", "debug")

	cfg, err := Load("catalog")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadReadsConfigPathFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := []byte("service:\n  port: 7070\nredis:\n  enabled: true\n  host: cache.internal\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("catalog")

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Service.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  port: 7070\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CATALOG_SERVICE_PORT", "9090")

	cfg, err := Load("catalog")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Service.Port)
}
