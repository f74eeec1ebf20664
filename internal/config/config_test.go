package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		path := writeConfig(t, `
env: "dev"
dsn: "postgres://u:p@localhost:5432/db"
auth:
  admin_secret: "a-secret"
  client_secret: "c-secret"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "dev", cfg.Env)
		assert.Equal(t, "8080", cfg.HTTP.Port)
		assert.Equal(t, time.Hour, cfg.Auth.AdminTokenTTL)
		assert.Equal(t, 24*time.Hour, cfg.Auth.ClientTokenTTL)
		assert.Equal(t, int64(5), cfg.ContactLimit.Requests)
		assert.Equal(t, time.Hour, cfg.ContactLimit.Window)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "local", cfg.ImageHost.Driver)
		assert.Equal(t, "client-galleries", cfg.ImageHost.Folder)
	})

	t.Run("explicit values", func(t *testing.T) {
		path := writeConfig(t, `
env: "prod"
dsn: "postgres://u:p@localhost:5432/db"
http:
  port: "9000"
  timeout: 3s
auth:
  admin_secret: "a-secret"
  client_secret: "c-secret"
  admin_token_ttl: 30m
image_host:
  driver: "cloudinary"
  cloud_name: "studio"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.HTTP.Port)
		assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, 30*time.Minute, cfg.Auth.AdminTokenTTL)
		assert.Equal(t, "cloudinary", cfg.ImageHost.Driver)
		assert.Equal(t, "studio", cfg.ImageHost.CloudName)
	})

	t.Run("shared secret rejected", func(t *testing.T) {
		path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
auth:
  admin_secret: "same"
  client_secret: "same"
`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrSharedSecret)
	})

	t.Run("unknown image driver", func(t *testing.T) {
		path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
auth:
  admin_secret: "a-secret"
  client_secret: "c-secret"
image_host:
  driver: "s3"
`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrImageDriver)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestMustLoadPath_Panics(t *testing.T) {
	path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
auth:
  admin_secret: "same"
  client_secret: "same"
`)

	assert.Panics(t, func() { MustLoadPath(path) })
}
