package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":           os.Getenv("PORT"),
		"DATABASE_URL":   os.Getenv("DATABASE_URL"),
		"REDIS_URL":      os.Getenv("REDIS_URL"),
		"SESSION_SECRET": os.Getenv("SESSION_SECRET"),
		"STATIC_DIR":     os.Getenv("STATIC_DIR"),
		"MIGRATIONS_DIR": os.Getenv("MIGRATIONS_DIR"),
		"LOG_LEVEL":      os.Getenv("LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("SESSION_SECRET", "test-secret")
		os.Unsetenv("PORT")
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("STATIC_DIR")
		os.Unsetenv("MIGRATIONS_DIR")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, "static", cfg.StaticDir)
		assert.Equal(t, "internal/database/migrations", cfg.MigrationsDir)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("SESSION_SECRET", "test-secret")
		os.Setenv("PORT", "3000")
		os.Setenv("STATIC_DIR", "public")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "public", cfg.StaticDir)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required DATABASE_URL", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Setenv("SESSION_SECRET", "test-secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without required SESSION_SECRET", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Unsetenv("SESSION_SECRET")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	strongSecret := strings.Repeat("a1b2c3d4", 5)

	t.Run("accepts any secret outside production", func(t *testing.T) {
		cfg := &Config{SessionSecret: "short"}
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("rejects short secret in production", func(t *testing.T) {
		cfg := &Config{SessionSecret: "short"}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects known weak secret in production", func(t *testing.T) {
		cfg := &Config{SessionSecret: "caffe-bar-919-secret-key-change-in-production"}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("accepts strong secret in production", func(t *testing.T) {
		cfg := &Config{SessionSecret: strongSecret}
		assert.NoError(t, cfg.Validate(true))
	})
}
