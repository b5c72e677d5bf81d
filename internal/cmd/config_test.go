package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/rclean/internal/config"
)

func TestConfigInitLocal(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	chdir(t, dir)

	stdout, _, err := execute(t, nil, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote")

	path := filepath.Join(dir, config.SettingsFilename)
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"common", "python"}, cfg.Presets)

	_, _, err = execute(t, nil, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = execute(t, nil, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInitGlobal(t *testing.T) {
	isolate(t)
	chdir(t, t.TempDir())

	_, _, err := execute(t, nil, "config", "init", "--global")
	require.NoError(t, err)

	path, err := config.GlobalConfigFile()
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestConfigShowDefaults(t *testing.T) {
	isolate(t)
	chdir(t, t.TempDir())

	stdout, _, err := execute(t, nil, "config", "show", "--no-config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# source: built-in defaults")

	var cfg config.CleanConfig
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	defaults := config.DefaultConfig()
	assert.Equal(t, defaults.Path, cfg.Path)
	assert.Equal(t, defaults.Format, cfg.Format)
	assert.Equal(t, defaults.LogLevel, cfg.LogLevel)
	assert.Equal(t, defaults.History, cfg.History)
	assert.Empty(t, cfg.Patterns)
}

func TestConfigShowDiscovered(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFilename), []byte("stats_mode: true\nformat: json\n"), 0644))
	chdir(t, dir)

	stdout, _, err := execute(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# source: ")
	assert.Contains(t, stdout, config.SettingsFilename)
	assert.Contains(t, stdout, "stats_mode: true")
	assert.Contains(t, stdout, "format: json")
}

func TestConfigShowInvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown_key: 1\n"), 0644))

	_, _, err := execute(t, nil, "config", "show", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
