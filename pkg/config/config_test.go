package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Security.WipeMemory)
	assert.False(t, cfg.Security.RequireEncrypted)
	assert.Equal(t, "normal", cfg.UI.Verbosity)
}

func TestManagerCreatesAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("SA015_CONFIG", path)

	mgr, err := NewManager()
	require.NoError(t, err)
	assert.FileExists(t, path)

	cfg := mgr.Get()
	cfg.Defaults.RegistryPath = "/srv/blobs/registry.json"
	mgr.Set(cfg)
	require.NoError(t, err)
	require.NoError(t, mgr.Save())

	mgr2, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, "/srv/blobs/registry.json", mgr2.Get().Defaults.RegistryPath)
}
