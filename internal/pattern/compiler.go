// Package pattern compiles include/exclude globs into matchers and resolves
// named preset groups into pattern lists.
//
// Globs use doublestar syntax (`*`, `?`, `[...]`, `{a,b}`, `**`) and are
// evaluated against slash-separated paths relative to the working root. A
// pattern without a slash also matches an entry's base name at any depth, so
// `*.pyc` matches both `mod.pyc` and `pkg/mod.pyc`.
package pattern

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher pairs a pattern with its validated glob
type Matcher struct {
	pattern  string
	glob     string
	baseName bool
}

// Compile validates a glob and returns its matcher
func Compile(raw string) (Matcher, error) {
	glob := normalizePattern(raw)
	if glob == "" {
		return Matcher{}, fmt.Errorf("%w %q: pattern is empty", ErrSyntax, raw)
	}
	if !doublestar.ValidatePattern(glob) {
		return Matcher{}, fmt.Errorf("%w %q", ErrSyntax, raw)
	}

	return Matcher{
		pattern:  raw,
		glob:     glob,
		baseName: !strings.Contains(glob, "/"),
	}, nil
}

// Pattern returns the pattern string as the user wrote it
func (m Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether the root-relative slash path matches
func (m Matcher) Match(rel string) bool {
	if doublestar.MatchUnvalidated(m.glob, rel) {
		return true
	}
	return m.baseName && doublestar.MatchUnvalidated(m.glob, path.Base(rel))
}

// Set is an ordered list of matchers
type Set []Matcher

// CompileSet compiles every pattern, failing on the first invalid one.
// Duplicate pattern strings compile once.
func CompileSet(patterns []string) (Set, error) {
	unique := Dedupe(patterns)
	set := make(Set, 0, len(unique))
	for _, p := range unique {
		m, err := Compile(p)
		if err != nil {
			return nil, err
		}
		set = append(set, m)
	}
	return set, nil
}

// First returns the first pattern in order that matches rel
func (s Set) First(rel string) (string, bool) {
	for _, m := range s {
		if m.Match(rel) {
			return m.pattern, true
		}
	}
	return "", false
}

// Any reports whether any matcher matches rel
func (s Set) Any(rel string) bool {
	_, ok := s.First(rel)
	return ok
}

// Patterns returns the pattern strings in order
func (s Set) Patterns() []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = m.pattern
	}
	return out
}

// Compiled holds the include and exclude matchers of one run
type Compiled struct {
	Include Set
	Exclude Set
}

// CompileAll resolves presets and compiles include and exclude patterns.
// Nothing is returned unless every pattern compiles.
func CompileAll(includes, presetNames, excludes []string) (*Compiled, error) {
	resolved, err := ResolveIncludes(includes, presetNames)
	if err != nil {
		return nil, err
	}

	include, err := CompileSet(resolved)
	if err != nil {
		return nil, err
	}

	exclude, err := CompileSet(excludes)
	if err != nil {
		return nil, err
	}

	return &Compiled{Include: include, Exclude: exclude}, nil
}

// normalizePattern normalizes a source pattern for compilation.
func normalizePattern(raw string) string {
	p := strings.TrimSpace(raw)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}
