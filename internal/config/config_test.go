package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PANELCART_DATA_DIR", "")
	t.Setenv("PANELCART_BACKEND", "")
	t.Setenv("PANELCART_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".panelcart"), cfg.DataDir)
	require.Equal(t, BackendFile, cfg.Backend)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PANELCART_DATA_DIR", "/srv/panelcart")
	t.Setenv("PANELCART_BACKEND", "SQLite")
	t.Setenv("PANELCART_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/srv/panelcart", cfg.DataDir)
	require.Equal(t, BackendSQLite, cfg.Backend)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("PANELCART_DATA_DIR", "/srv/panelcart")
	t.Setenv("PANELCART_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid backend: redis")
}
