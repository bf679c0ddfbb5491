package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "ela2121", cfg.Admin.Password)
	assert.Equal(t, "flight-booking-queue", cfg.Temporal.TaskQueue)
	assert.Empty(t, cfg.Temporal.Host)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestNew_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "http:\n  port: \"9090\"\nstore:\n  driver: postgres\n  data_dir: /var/lib/airline\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("STORE_DRIVER", "file")

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "/var/lib/airline", cfg.Store.DataDir)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNew_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))

	_, err := New(path)
	assert.Error(t, err)
}
