package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Path != "." {
		t.Errorf("Path = %q, want %q", cfg.Path, ".")
	}
	if cfg.Format != FormatText {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatText)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if !cfg.History {
		t.Errorf("History = %v, want true", cfg.History)
	}
	if cfg.DryRun || cfg.SkipConfirmation || cfg.IncludeSymlinks || cfg.RemoveBrokenSymlinks || cfg.StatsMode {
		t.Errorf("boolean options should default to false, got %+v", cfg)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `path: /srv/project
patterns:
  - "**/*.pyc"
  - "**/__pycache__"
presets: [node]
exclude_patterns: ["**/keep/**"]
dry_run: true
skip_confirmation: true
include_symlinks: true
remove_broken_symlinks: true
stats_mode: true
older_than: 30d
format: json
log_level: debug
history: false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Path != "/srv/project" {
		t.Errorf("Path = %q, want %q", cfg.Path, "/srv/project")
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{"**/*.pyc", "**/__pycache__"}) {
		t.Errorf("Patterns = %v", cfg.Patterns)
	}
	if !reflect.DeepEqual(cfg.Presets, []string{"node"}) {
		t.Errorf("Presets = %v", cfg.Presets)
	}
	if !reflect.DeepEqual(cfg.ExcludePatterns, []string{"**/keep/**"}) {
		t.Errorf("ExcludePatterns = %v", cfg.ExcludePatterns)
	}
	if !cfg.DryRun || !cfg.SkipConfirmation || !cfg.IncludeSymlinks || !cfg.RemoveBrokenSymlinks || !cfg.StatsMode {
		t.Errorf("boolean options not loaded: %+v", cfg)
	}
	if cfg.OlderThan != "30d" {
		t.Errorf("OlderThan = %q, want %q", cfg.OlderThan, "30d")
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatJSON)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.History {
		t.Errorf("History = %v, want false", cfg.History)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

// TestLoadConfigEmptyFile tests that an empty file keeps the defaults
func TestLoadConfigEmptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

// TestLoadConfigInvalid tests error handling for malformed files
func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed yaml",
			content: "path: .\npatterns: [this is not valid\n",
		},
		{
			name:    "unknown key",
			content: "path: .\ndelete_everything: true\n",
		},
		{
			name:    "wrong type",
			content: "dry_run: sometimes\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := LoadConfig(configPath)
			if err == nil {
				t.Fatal("LoadConfig() expected error, got nil")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error should wrap ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), configPath) {
				t.Errorf("error should name the file, got %v", err)
			}
		})
	}
}

// TestLoadConfigPartialValues tests that partial config merges with defaults
func TestLoadConfigPartialValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("stats_mode: true\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !cfg.StatsMode {
		t.Errorf("StatsMode = %v, want true", cfg.StatsMode)
	}
	if cfg.Path != "." || cfg.LogLevel != "info" || !cfg.History {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func ptr[T any](v T) *T {
	return &v
}

// TestMergeWithFlags tests that set flags override and unset flags keep file values
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Patterns = []string{"from-file"}
	cfg.DryRun = true
	cfg.OlderThan = "7d"

	cfg.MergeWithFlags(Overrides{
		Path:         ptr("/tmp/x"),
		Patterns:     []string{"**/*.log"},
		DryRun:       ptr(false),
		StatsMode:    ptr(true),
		Format:       ptr(FormatYAML),
		History:      ptr(false),
		ShowProgress: ptr(true),
	})

	if cfg.Path != "/tmp/x" {
		t.Errorf("Path = %q, want %q", cfg.Path, "/tmp/x")
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{"**/*.log"}) {
		t.Errorf("Patterns = %v, want flag value", cfg.Patterns)
	}
	if cfg.DryRun {
		t.Errorf("DryRun = true, flag false should win")
	}
	if !cfg.StatsMode || !cfg.ShowProgress {
		t.Errorf("StatsMode/ShowProgress not merged: %+v", cfg)
	}
	if cfg.OlderThan != "7d" {
		t.Errorf("OlderThan = %q, unset flag should keep file value", cfg.OlderThan)
	}
	if cfg.Format != FormatYAML || cfg.History {
		t.Errorf("Format/History not merged: %+v", cfg)
	}
}

// TestMergeWithFlagsEmpty tests that empty overrides change nothing
func TestMergeWithFlagsEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludePatterns = []string{"keep"}
	want := *cfg

	cfg.MergeWithFlags(Overrides{})

	if !reflect.DeepEqual(*cfg, want) {
		t.Errorf("MergeWithFlags(empty) changed config: %+v", cfg)
	}
}

// TestValidate tests configuration validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *CleanConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *CleanConfig) {}},
		{name: "every format", mutate: func(c *CleanConfig) { c.Format = FormatHTML }},
		{name: "empty path", mutate: func(c *CleanConfig) { c.Path = "  " }, wantErr: "path"},
		{name: "bad format", mutate: func(c *CleanConfig) { c.Format = "xml" }, wantErr: "format"},
		{name: "bad level", mutate: func(c *CleanConfig) { c.LogLevel = "loud" }, wantErr: "log_level"},
		{name: "empty pattern", mutate: func(c *CleanConfig) { c.Patterns = []string{"a", ""} }, wantErr: "patterns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want ErrInvalid mentioning %q", err, tt.wantErr)
			}
		})
	}
}

// TestSaveAndLoadRoundTrip tests that a saved config loads back unchanged
func TestSaveAndLoadRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", SettingsFilename)

	cfg := DefaultConfig()
	cfg.Patterns = []string{"**/*.tmp"}
	cfg.Presets = []string{"rust"}
	cfg.ExcludePatterns = []string{"**/target/keep"}
	cfg.OlderThan = "2w"
	cfg.RemoveBrokenSymlinks = true

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

// TestWriteStarter tests the starter file is loadable and not overwritten by default
func TestWriteStarter(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), SettingsFilename)

	if err := WriteStarter(configPath, false); err != nil {
		t.Fatalf("WriteStarter() error = %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("starter config should load, got: %v", err)
	}
	if !reflect.DeepEqual(cfg.Presets, []string{"common", "python"}) {
		t.Errorf("Presets = %v", cfg.Presets)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("starter config should validate, got: %v", err)
	}

	if err := WriteStarter(configPath, false); err == nil {
		t.Error("WriteStarter() should refuse to overwrite without force")
	}
	if err := WriteStarter(configPath, true); err != nil {
		t.Errorf("WriteStarter(force) error = %v", err)
	}
}
