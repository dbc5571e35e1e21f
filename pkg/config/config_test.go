package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesRowCodecConstants(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 8*1024*1024, cfg.MaxRowSize)
	require.Equal(t, 500, cfg.InitialBufferSize)
	require.Equal(t, 10000, cfg.SortSpillThreshold)
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort_spill_threshold: 250\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 250, cfg.SortSpillThreshold)
	require.Equal(t, DefaultConfig().MaxRowSize, cfg.MaxRowSize)
	require.Equal(t, DefaultConfig().InitialBufferSize, cfg.InitialBufferSize)
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_row_sizee: 100\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
