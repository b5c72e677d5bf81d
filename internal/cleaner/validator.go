package cleaner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator keeps every operation inside the canonical working root.
type PathValidator struct {
	root string
}

// NewPathValidator canonicalizes path once. The root must exist and be a directory.
func NewPathValidator(path string) (*PathValidator, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &SetupError{Phase: PhaseRoot, Input: path, Err: fmt.Errorf("%w: %w", ErrFatalSetup, err)}
	}

	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, &SetupError{Phase: PhaseRoot, Input: path, Err: fmt.Errorf("%w: %w", ErrFatalSetup, err)}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, &SetupError{Phase: PhaseRoot, Input: path, Err: fmt.Errorf("%w: %w", ErrFatalSetup, err)}
	}
	if !info.IsDir() {
		return nil, &SetupError{Phase: PhaseRoot, Input: path, Err: fmt.Errorf("%w: not a directory", ErrFatalSetup)}
	}

	return &PathValidator{root: root}, nil
}

// Root returns the canonical working root
func (v *PathValidator) Root() string {
	return v.root
}

// Check reports whether path is the root or lies inside it. Relative paths
// are taken relative to the root. A path that cannot be canonicalized, such as
// a broken symlink, is not rejected here; the symlink policy decides about it.
func (v *PathValidator) Check(path string) error {
	literal := path
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrPathTraversal, path)
		}
		literal = rel
	}

	if hasParentPrefix(literal) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}

	resolved, err := filepath.EvalSymlinks(filepath.Join(v.root, literal))
	if err != nil {
		return nil
	}
	if !Within(v.root, resolved) {
		return fmt.Errorf("%w: %s resolves to %s", ErrPathTraversal, path, resolved)
	}
	return nil
}

// Within reports whether path equals root or is a descendant of it.
// Both must be clean absolute paths.
func Within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// hasParentPrefix reports whether the literal path starts with a ".." segment
func hasParentPrefix(p string) bool {
	first, _, _ := strings.Cut(filepath.ToSlash(p), "/")
	return first == ".."
}
