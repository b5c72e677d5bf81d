package pattern

import (
	"fmt"
	"sort"
)

// PresetAll names the preset that unions every other preset
const PresetAll = "all"

// presetOrder lists the presets in the order "all" merges them
var presetOrder = []string{"common", "python", "node", "rust", "java", "c", "go"}

// presets maps each named ecosystem to its include patterns
var presets = map[string][]string{
	"common": {
		"**/.DS_Store",
		"**/.bash_history",
		"**/.python_history",
		"**/Thumbs.db",
		"**/*.swp",
		"**/*.swo",
		"**/*~",
	},
	"python": {
		"**/__pycache__",
		"**/.coverage",
		"**/.mypy_cache",
		"**/.pylint_cache",
		"**/.pytest_cache",
		"**/.ruff_cache",
		"**/.rumdl_cache",
		"**/.pyscn",
		"**/.ropeproject",
		"**/.python_history",
		"**/pip-log.txt",
		"**/*.pyc",
		"**/*.pyo",
		"**/*.egg-info",
		"**/dist",
	},
	"node": {
		"**/node_modules",
		"**/.next",
		"**/.nuxt",
		"**/.cache",
		"**/dist",
		"**/.parcel-cache",
		"**/.turbo",
		"**/.eslintcache",
		"**/coverage",
		"**/.nyc_output",
	},
	"rust": {
		"**/target",
	},
	"java": {
		"**/*.class",
		"**/target",
		"**/.gradle",
		"**/build",
		"**/.settings",
		"**/.classpath",
		"**/.project",
	},
	"c": {
		"**/*.o",
		"**/*.obj",
		"**/*.a",
		"**/*.lib",
		"**/*.so",
		"**/*.dylib",
		"**/*.dll",
	},
	"go": {
		"**/vendor",
	},
}

// PresetNames returns every preset name, "all" last
func PresetNames() []string {
	names := make([]string, 0, len(presetOrder)+1)
	names = append(names, presetOrder...)
	return append(names, PresetAll)
}

// Preset returns the patterns of a named preset.
// The second result is false for unknown names.
func Preset(name string) ([]string, bool) {
	if name == PresetAll {
		var all []string
		for _, n := range presetOrder {
			all = append(all, presets[n]...)
		}
		return Dedupe(all), true
	}

	patterns, ok := presets[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(patterns))
	copy(out, patterns)
	return out, true
}

// Defaults returns the include set used when none is configured:
// the common and python presets merged and deduplicated
func Defaults() []string {
	common, _ := Preset("common")
	python, _ := Preset("python")
	return Dedupe(append(common, python...))
}

// ResolvePresets expands preset names into one deduplicated pattern list
func ResolvePresets(names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		patterns, ok := Preset(name)
		if !ok {
			known := PresetNames()
			sort.Strings(known)
			return nil, fmt.Errorf("%w %q (known presets: %v)", ErrUnknownPreset, name, known)
		}
		out = append(out, patterns...)
	}
	return Dedupe(out), nil
}

// ResolveIncludes merges explicit patterns with preset patterns.
// When both are empty the default set is returned.
func ResolveIncludes(patterns, presetNames []string) ([]string, error) {
	fromPresets, err := ResolvePresets(presetNames)
	if err != nil {
		return nil, err
	}

	merged := Dedupe(append(append([]string{}, patterns...), fromPresets...))
	if len(merged) == 0 {
		return Defaults(), nil
	}
	return merged, nil
}

// Dedupe removes repeated strings, keeping the first occurrence's position
func Dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
