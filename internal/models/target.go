package models

import "time"

// BrokenSymlinkPattern attributes broken symlinks that no include pattern matched
const BrokenSymlinkPattern = "broken-symlink"

// Metadata is the snapshot of an entry taken when it was collected
type Metadata struct {
	IsDir     bool      // Entry is a directory
	IsSymlink bool      // Entry is a symbolic link (valid or broken)
	IsBroken  bool      // Symlink target does not resolve
	Size      int64     // Own length for files/symlinks, recursive file total for directories
	ModTime   time.Time // Modification time of the entry itself
}

// Target is a filesystem entry selected for deletion
type Target struct {
	Path     string   // Absolute path under the working root
	Metadata Metadata // Cached metadata, never re-read after collection
	Pattern  string   // Include pattern (or BrokenSymlinkPattern) that selected the entry
}

// RemovalKind selects how a target is removed
type RemovalKind int

const (
	// RemoveSingle removes one file, symlink or broken symlink
	RemoveSingle RemovalKind = iota
	// RemoveTreeRecursive removes a directory and everything below it
	RemoveTreeRecursive
)

// String returns the string representation of RemovalKind.
func (k RemovalKind) String() string {
	switch k {
	case RemoveSingle:
		return "single"
	case RemoveTreeRecursive:
		return "tree"
	default:
		return "unknown"
	}
}

// RemovalKind derives the removal operation from the cached metadata.
// Symlinks to directories are removed as single entries, never followed.
func (t Target) RemovalKind() RemovalKind {
	if t.Metadata.IsDir && !t.Metadata.IsSymlink {
		return RemoveTreeRecursive
	}
	return RemoveSingle
}
