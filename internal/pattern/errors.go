package pattern

import "errors"

// Sentinel errors for pattern compilation and preset resolution.
var (
	// ErrSyntax indicates a glob that cannot be compiled.
	ErrSyntax = errors.New("invalid glob pattern")
	// ErrUnknownPreset indicates a preset name missing from the preset table.
	ErrUnknownPreset = errors.New("unknown preset")
)
