package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config file that only sets the port
		path := writeConfig(t, "http-port: \"8080\"\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the other values fall back to defaults
		require.NoError(t, err)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Redis storage", func(t *testing.T) {
		// Given: a config file selecting redis
		path := writeConfig(t, "storage: redis\nsession-ttl: 30m\nredis:\n  host: cache\n  port: \"6380\"\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the redis settings are read
		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, 30*time.Minute, conf.SessionTTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Unknown storage is rejected", func(t *testing.T) {
		path := writeConfig(t, "storage: mongo\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
