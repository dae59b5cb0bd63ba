package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CFG_TEST_STR", "value")
	t.Setenv("CFG_TEST_INT", "42")
	t.Setenv("CFG_TEST_BAD_INT", "forty-two")
	t.Setenv("CFG_TEST_BOOL", "true")
	t.Setenv("CFG_TEST_DUR", "90s")

	assert.Equal(t, "value", GetEnv("CFG_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CFG_TEST_MISSING", "fallback"))
	assert.Equal(t, 42, GetIntEnv("CFG_TEST_INT", 7))
	assert.Equal(t, 7, GetIntEnv("CFG_TEST_BAD_INT", 7))
	assert.True(t, GetBoolEnv("CFG_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetDurationEnv("CFG_TEST_DUR", time.Second))
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("ADMIN_KEY", "secret")
	t.Setenv("STORAGE", "POSTGRES")
	t.Setenv("DB_NAME", "ledger")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CONVERTER", "fixed")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "ledger", cfg.DB.Name)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "fixed", cfg.Converter.Kind)
	assert.Equal(t, "secret", cfg.Admin.Key)
	assert.Contains(t, cfg.DB.DSN(), "dbname=ledger")
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
port: "8081"
storage: memory
admin:
  key: from-file
converter:
  kind: random
  ticker_ttl: 2m
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "from-file", cfg.Admin.Key)
	assert.Equal(t, "random", cfg.Converter.Kind)
	assert.Equal(t, 2*time.Minute, cfg.Converter.TickerTTL)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "admin credential is required")

	cfg.Admin.Key = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Storage = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg.Storage = StorageMemory
	cfg.DB.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}
