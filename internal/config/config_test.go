package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, v, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, v)

	require.InDelta(t, 0.25, cfg.PMix, 1e-12)
	require.Equal(t, 512, cfg.NColors)
	require.Equal(t, "color_hist.txt", cfg.HistFile)
	require.Equal(t, "colors.json", cfg.ColorFile)
	require.Equal(t, "palette.png", cfg.PaletteFile)
	require.Equal(t, "info", cfg.LogLevel)
	require.NotEmpty(t, cfg.DBPath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "p_mix: 0.4\nn_colors: 64\nhist_file: hist.csv\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.InDelta(t, 0.4, cfg.PMix, 1e-12)
	require.Equal(t, 64, cfg.NColors)
	require.Equal(t, "hist.csv", cfg.HistFile)
	require.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults.
	require.Equal(t, "colors.json", cfg.ColorFile)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadPMix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("p_mix: 1.5\n"), 0o644))

	_, _, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PALGEN_N_COLORS", "128")

	cfg, _, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 128, cfg.NColors)
}
