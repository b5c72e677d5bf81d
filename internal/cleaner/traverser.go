package cleaner

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/rclean/internal/fileutil"
	"github.com/harrison/rclean/internal/models"
	"github.com/harrison/rclean/internal/pattern"
)

// TraverseOptions controls which entries the traverser may select
type TraverseOptions struct {
	IncludeSymlinks      bool          // Valid symlinks may become targets
	RemoveBrokenSymlinks bool          // Broken symlinks become targets
	OlderThan            time.Duration // Entries modified within this window are skipped; 0 disables
}

// Traverser walks the working root and collects deletion targets.
type Traverser struct {
	validator *PathValidator
	patterns  *pattern.Compiled
	opts      TraverseOptions
	reporter  Reporter
	now       func() time.Time
}

// NewTraverser creates a traverser over the validator's root
func NewTraverser(v *PathValidator, patterns *pattern.Compiled, opts TraverseOptions, reporter Reporter) *Traverser {
	return &Traverser{
		validator: v,
		patterns:  patterns,
		opts:      opts,
		reporter:  orNop(reporter),
		now:       time.Now,
	}
}

// Collect walks the tree depth-first and returns the targets in visit order.
// Symlinks are never followed and a directory target's interior is not visited.
// Per-entry problems are reported and skipped; only an unreadable root fails.
func (t *Traverser) Collect() ([]models.Target, error) {
	root := t.validator.Root()

	var cutoff time.Time
	if t.opts.OlderThan > 0 {
		cutoff = t.now().Add(-t.opts.OlderThan)
	}

	var targets []models.Target
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			t.reporter.Skipped(path, SkipUnreadable, err)
			return nil
		}
		if path == root {
			return nil
		}

		t.reporter.Visited(path)

		target, descend := t.visit(root, path, d, cutoff)
		if target != nil {
			targets = append(targets, *target)
			t.reporter.Matched(*target)
		}
		if d.IsDir() && !descend {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, &SetupError{Phase: PhaseRoot, Input: root, Err: err}
	}

	return targets, nil
}

// visit decides about one entry. It returns the target, if any, and whether a
// directory entry should be descended into.
func (t *Traverser) visit(root, path string, d fs.DirEntry, cutoff time.Time) (*models.Target, bool) {
	if err := t.validator.Check(path); err != nil {
		t.reporter.Skipped(path, SkipOutsideRoot, err)
		return nil, false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		t.reporter.Skipped(path, SkipUnreadable, err)
		return nil, false
	}
	rel = filepath.ToSlash(rel)

	isSymlink := d.Type()&fs.ModeSymlink != 0
	isBroken := false
	if isSymlink {
		if _, err := os.Stat(path); err != nil {
			isBroken = true
		}
		switch {
		case isBroken && !t.opts.RemoveBrokenSymlinks:
			t.reporter.Skipped(path, SkipBrokenSymlink, nil)
			return nil, false
		case !isBroken && !t.opts.IncludeSymlinks:
			t.reporter.Skipped(path, SkipSymlink, nil)
			return nil, false
		}
	}

	matched, ok := t.patterns.Include.First(rel)
	if !ok && isBroken {
		matched, ok = models.BrokenSymlinkPattern, true
	}
	if !ok {
		return nil, true
	}

	if excludedBy, hit := t.patterns.Exclude.First(rel); hit {
		t.reporter.Excluded(path, excludedBy)
		return nil, true
	}

	info, err := d.Info()
	if err != nil {
		t.reporter.Skipped(path, SkipUnreadable, err)
		return nil, false
	}

	if !cutoff.IsZero() && info.ModTime().After(cutoff) {
		t.reporter.Skipped(path, SkipTooRecent, nil)
		return nil, true
	}

	meta := models.Metadata{
		IsDir:     d.IsDir(),
		IsSymlink: isSymlink,
		IsBroken:  isBroken,
		Size:      info.Size(),
		ModTime:   info.ModTime(),
	}
	if meta.IsDir {
		sized, err := fileutil.DirSize(path)
		if err != nil {
			t.reporter.Skipped(path, SkipUnreadable, err)
			return nil, false
		}
		meta.Size = sized.Bytes
	}

	return &models.Target{Path: path, Metadata: meta, Pattern: matched}, false
}
