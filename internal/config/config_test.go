package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "mpv", cfg.MpvPath)
	assert.Equal(t, 0.7, cfg.Volume)
	assert.Empty(t, cfg.DataFile)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_file = "/srv/episodes.json"
mpv_path = "/opt/mpv/bin/mpv"
volume = 0.4
log_file = "/tmp/ondacast.log"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/episodes.json", cfg.DataFile)
	assert.Equal(t, "/opt/mpv/bin/mpv", cfg.MpvPath)
	assert.Equal(t, 0.4, cfg.Volume)
	assert.Equal(t, "/tmp/ondacast.log", cfg.LogFile)
}

func TestLoadClampsVolume(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"volume = -0.5", 0},
		{"volume = 1.5", 1},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(tt.raw), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, cfg.Volume)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("volume = ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
