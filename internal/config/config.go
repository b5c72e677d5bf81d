package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/rclean/internal/filelock"
)

// ErrInvalid indicates a configuration value that cannot be used
var ErrInvalid = errors.New("invalid configuration")

// Output format constants
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// CleanConfig is the full set of user-facing options for one cleaning run.
// It is a plain value: the cleaner reads it and never modifies it.
type CleanConfig struct {
	// Path is the directory to clean
	Path string `yaml:"path"`

	// Patterns are include globs
	Patterns []string `yaml:"patterns"`

	// Presets are named include groups expanded into patterns
	Presets []string `yaml:"presets"`

	// ExcludePatterns suppress matches of the include globs
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// DryRun reports matches without deleting anything
	DryRun bool `yaml:"dry_run"`

	// SkipConfirmation deletes without asking
	SkipConfirmation bool `yaml:"skip_confirmation"`

	// IncludeSymlinks allows matched symlinks to be deleted
	IncludeSymlinks bool `yaml:"include_symlinks"`

	// RemoveBrokenSymlinks deletes dangling symlinks
	RemoveBrokenSymlinks bool `yaml:"remove_broken_symlinks"`

	// StatsMode enables per-pattern statistics
	StatsMode bool `yaml:"stats_mode"`

	// OlderThan is an optional age threshold such as "30d"
	OlderThan string `yaml:"older_than,omitempty"`

	// ShowProgress renders a scanning spinner
	ShowProgress bool `yaml:"show_progress"`

	// Format selects the report output (text, json, yaml, markdown, html)
	Format string `yaml:"format"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables run log files in this directory when set
	LogDir string `yaml:"log_dir,omitempty"`

	// History records each run in the history database
	History bool `yaml:"history"`
}

// DefaultConfig returns a CleanConfig with sensible default values
func DefaultConfig() *CleanConfig {
	return &CleanConfig{
		Path:     ".",
		Format:   FormatText,
		LogLevel: "info",
		History:  true,
	}
}

// fileConfig mirrors CleanConfig with pointers so that keys present in a file
// can be told apart from zero values
type fileConfig struct {
	Path                 *string  `yaml:"path"`
	Patterns             []string `yaml:"patterns"`
	Presets              []string `yaml:"presets"`
	ExcludePatterns      []string `yaml:"exclude_patterns"`
	DryRun               *bool    `yaml:"dry_run"`
	SkipConfirmation     *bool    `yaml:"skip_confirmation"`
	IncludeSymlinks      *bool    `yaml:"include_symlinks"`
	RemoveBrokenSymlinks *bool    `yaml:"remove_broken_symlinks"`
	StatsMode            *bool    `yaml:"stats_mode"`
	OlderThan            *string  `yaml:"older_than"`
	ShowProgress         *bool    `yaml:"show_progress"`
	Format               *string  `yaml:"format"`
	LogLevel             *string  `yaml:"log_level"`
	LogDir               *string  `yaml:"log_dir"`
	History              *bool    `yaml:"history"`
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed or has unknown keys, returns an error.
func LoadConfig(path string) (*CleanConfig, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.apply(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	return cfg, nil
}

// apply decodes YAML and overlays every key present on the receiver
func (c *CleanConfig) apply(data []byte) error {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		// An empty file decodes to io.EOF and leaves the defaults untouched
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if fc.Path != nil {
		c.Path = *fc.Path
	}
	if fc.Patterns != nil {
		c.Patterns = fc.Patterns
	}
	if fc.Presets != nil {
		c.Presets = fc.Presets
	}
	if fc.ExcludePatterns != nil {
		c.ExcludePatterns = fc.ExcludePatterns
	}
	if fc.DryRun != nil {
		c.DryRun = *fc.DryRun
	}
	if fc.SkipConfirmation != nil {
		c.SkipConfirmation = *fc.SkipConfirmation
	}
	if fc.IncludeSymlinks != nil {
		c.IncludeSymlinks = *fc.IncludeSymlinks
	}
	if fc.RemoveBrokenSymlinks != nil {
		c.RemoveBrokenSymlinks = *fc.RemoveBrokenSymlinks
	}
	if fc.StatsMode != nil {
		c.StatsMode = *fc.StatsMode
	}
	if fc.OlderThan != nil {
		c.OlderThan = *fc.OlderThan
	}
	if fc.ShowProgress != nil {
		c.ShowProgress = *fc.ShowProgress
	}
	if fc.Format != nil {
		c.Format = *fc.Format
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.LogDir != nil {
		c.LogDir = *fc.LogDir
	}
	if fc.History != nil {
		c.History = *fc.History
	}

	return nil
}

// Overrides carries CLI flag values. Nil fields were not set on the command line.
type Overrides struct {
	Path                 *string
	Patterns             []string
	Presets              []string
	ExcludePatterns      []string
	DryRun               *bool
	SkipConfirmation     *bool
	IncludeSymlinks      *bool
	RemoveBrokenSymlinks *bool
	StatsMode            *bool
	OlderThan            *string
	ShowProgress         *bool
	Format               *string
	LogLevel             *string
	LogDir               *string
	History              *bool
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values; list flags replace lists.
func (c *CleanConfig) MergeWithFlags(o Overrides) {
	if o.Path != nil {
		c.Path = *o.Path
	}
	if o.Patterns != nil {
		c.Patterns = o.Patterns
	}
	if o.Presets != nil {
		c.Presets = o.Presets
	}
	if o.ExcludePatterns != nil {
		c.ExcludePatterns = o.ExcludePatterns
	}
	if o.DryRun != nil {
		c.DryRun = *o.DryRun
	}
	if o.SkipConfirmation != nil {
		c.SkipConfirmation = *o.SkipConfirmation
	}
	if o.IncludeSymlinks != nil {
		c.IncludeSymlinks = *o.IncludeSymlinks
	}
	if o.RemoveBrokenSymlinks != nil {
		c.RemoveBrokenSymlinks = *o.RemoveBrokenSymlinks
	}
	if o.StatsMode != nil {
		c.StatsMode = *o.StatsMode
	}
	if o.OlderThan != nil {
		c.OlderThan = *o.OlderThan
	}
	if o.ShowProgress != nil {
		c.ShowProgress = *o.ShowProgress
	}
	if o.Format != nil {
		c.Format = *o.Format
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.History != nil {
		c.History = *o.History
	}
}

// Validate validates the configuration values.
// Duration syntax is checked by the cleaner when the run is set up.
func (c *CleanConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("%w: path cannot be empty", ErrInvalid)
	}

	validFormats := map[string]bool{
		FormatText:     true,
		FormatJSON:     true,
		FormatYAML:     true,
		FormatMarkdown: true,
		FormatHTML:     true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("%w: format %q, must be one of: text, json, yaml, markdown, html", ErrInvalid, c.Format)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("%w: log_level %q, must be one of: trace, debug, info, warn, error", ErrInvalid, c.LogLevel)
	}

	for _, p := range c.Patterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: patterns cannot contain empty entries", ErrInvalid)
		}
	}

	return nil
}

// Structured reports whether the output format is a document
// that must own stdout
func (c *CleanConfig) Structured() bool {
	return c.Format != FormatText
}

// Marshal renders the configuration as YAML
func (c *CleanConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path while holding a lock on it
func (c *CleanConfig) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return filelock.LockAndWrite(path, data)
}

// starterConfig is written by "rclean config init"
const starterConfig = `# rclean configuration
path: "."

# Include globs. Patterns without a slash also match base names at any depth.
patterns: []

# Named pattern groups: common, python, node, rust, java, c, go, all.
# With no patterns and no presets, common + python are used.
presets:
  - common
  - python

exclude_patterns:
  - "**/.git"
  - "**/.venv"

dry_run: false
skip_confirmation: false
include_symlinks: false
remove_broken_symlinks: false
stats_mode: false

# Only remove entries older than this (s, m, h, d, w), e.g. "30d".
# older_than: "30d"

show_progress: false
format: text
log_level: info
history: true
`

// WriteStarter writes the commented starter configuration to path.
// An existing file is only replaced when force is set.
func WriteStarter(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}
	return filelock.LockAndWrite(path, []byte(starterConfig))
}
