package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_ENABLED", "DB_HOST", "JWT_TTL", "DEFAULT_NETWORK", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "mumbai", cfg.DefaultNetwork)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "routes")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("DEFAULT_NETWORK", "demo")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "demo", cfg.DefaultNetwork)
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Contains(t, cfg.DSN(), "dbname=routes")
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("DB_ENABLED", "maybe")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("DB_ENABLED", "false")
	t.Setenv("JWT_TTL", "soon")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("JWT_TTL", "-1h")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	// godotenv 不覆盖已存在的变量，先清掉 (t.Setenv 负责在结束时恢复)
	for _, key := range []string{"PORT", "DEFAULT_NETWORK"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nDEFAULT_NETWORK=demo\n"), 0o600))

	cfg, loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "demo", cfg.DefaultNetwork)

	_, loaded, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}
