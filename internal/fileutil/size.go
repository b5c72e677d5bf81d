package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SizeResult contains the results of a directory size walk
type SizeResult struct {
	// Bytes is the sum of the lengths of all regular files found
	Bytes int64
	// Files is the number of regular files counted
	Files int
	// Errors contains any errors encountered during the walk
	Errors []error
}

// DirSize totals the regular files below dir without following symlinks
func DirSize(dir string) (*SizeResult, error) {
	info, err := os.Lstat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &SizeResult{
		Errors: make([]error, 0),
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to stat %s: %w", path, err))
			return nil
		}

		result.Bytes += fi.Size()
		result.Files++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

// Binary unit thresholds
const (
	kib = 1024.0
	mib = kib * 1024.0
	gib = mib * 1024.0
	tib = gib * 1024.0
)

// FormatSize formats a byte count using IEC binary prefixes: B, KiB, MiB, GiB, TiB
func FormatSize(bytes int64) string {
	size := float64(bytes)
	switch {
	case size >= tib:
		return fmt.Sprintf("%.2f TiB", size/tib)
	case size >= gib:
		return fmt.Sprintf("%.2f GiB", size/gib)
	case size >= mib:
		return fmt.Sprintf("%.2f MiB", size/mib)
	case size >= kib:
		return fmt.Sprintf("%.2f KiB", size/kib)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
