package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllPresetNamesResolve(t *testing.T) {
	for _, name := range PresetNames() {
		patterns, ok := Preset(name)
		assert.True(t, ok, "preset %q should resolve", name)
		assert.NotEmpty(t, patterns, "preset %q should have at least one pattern", name)
	}
}

func TestUnknownPreset(t *testing.T) {
	_, ok := Preset("nonexistent")
	assert.False(t, ok)

	_, ok = Preset("")
	assert.False(t, ok)
}

func TestPresetContents(t *testing.T) {
	tests := []struct {
		preset string
		want   []string
	}{
		{"python", []string{"**/__pycache__", "**/*.pyc"}},
		{"node", []string{"**/node_modules"}},
		{"rust", []string{"**/target"}},
		{"go", []string{"**/vendor"}},
		{"all", []string{"**/__pycache__", "**/node_modules", "**/target", "**/.DS_Store"}},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			patterns, ok := Preset(tt.preset)
			require.True(t, ok)
			for _, want := range tt.want {
				assert.Contains(t, patterns, want)
			}
		})
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	patterns, _ := Preset("rust")
	patterns[0] = "mutated"

	again, _ := Preset("rust")
	assert.Equal(t, "**/target", again[0])
}

func TestNoDuplicates(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{name: "all preset", patterns: func() []string { p, _ := Preset("all"); return p }()},
		{name: "defaults", patterns: Defaults()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)
			for _, p := range tt.patterns {
				assert.False(t, seen[p], "duplicate pattern %q", p)
				seen[p] = true
			}
		})
	}
}

func TestDefaultsAreCommonPlusPython(t *testing.T) {
	defaults := Defaults()
	assert.NotEmpty(t, defaults)
	assert.Equal(t, "**/.DS_Store", defaults[0])
	assert.Contains(t, defaults, "**/__pycache__")
	assert.NotContains(t, defaults, "**/node_modules")
}

func TestResolvePresets(t *testing.T) {
	// python and node both list **/dist
	patterns, err := ResolvePresets([]string{"python", "node"})
	require.NoError(t, err)

	count := 0
	for _, p := range patterns {
		if p == "**/dist" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, patterns, "**/node_modules")
}

func TestResolvePresetsUnknown(t *testing.T) {
	_, err := ResolvePresets([]string{"python", "cobol"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPreset))
	assert.Contains(t, err.Error(), "cobol")
}

func TestResolveIncludes(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		presets  []string
		want     []string
	}{
		{
			name: "empty falls back to defaults",
			want: Defaults(),
		},
		{
			name:     "explicit patterns only",
			patterns: []string{"**/*.log", "**/*.log", "*.tmp"},
			want:     []string{"**/*.log", "*.tmp"},
		},
		{
			name:     "patterns before preset patterns",
			patterns: []string{"**/target", "*.bak"},
			presets:  []string{"rust"},
			want:     []string{"**/target", "*.bak"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveIncludes(tt.patterns, tt.presets)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
