package cleaner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harrison/rclean/internal/models"
)

// Executor deletes targets in order. It remembers every directory it removed
// recursively and skips later targets inside one of them.
type Executor struct {
	root     string
	dryRun   bool
	reporter Reporter
	removed  map[string]struct{}
}

// NewExecutor creates an executor for targets below root.
// In dry-run mode the filesystem is never touched.
func NewExecutor(root string, dryRun bool, reporter Reporter) *Executor {
	return &Executor{
		root:     filepath.Clean(root),
		dryRun:   dryRun,
		reporter: orNop(reporter),
		removed:  make(map[string]struct{}),
	}
}

// Execute processes every target and assigns it exactly one outcome.
// A failed removal is recorded and the remaining targets are still attempted.
func (e *Executor) Execute(targets []models.Target) *models.DeletionResult {
	result := &models.DeletionResult{
		Outcomes: make([]string, len(targets)),
		Failures: []models.FailedDeletion{},
	}

	for i, target := range targets {
		if e.coveredByRemoved(target.Path) {
			result.Outcomes[i] = models.OutcomeSkippedOverlap
			result.SkippedOverlap++
			continue
		}

		kind := target.RemovalKind()

		// Dry-runs track directories too so that outcomes match a real run
		if e.dryRun {
			if kind == models.RemoveTreeRecursive {
				e.removed[target.Path] = struct{}{}
			}
			result.Outcomes[i] = models.OutcomeDryRun
			result.DryRun++
			e.reporter.Removed(target, true)
			continue
		}

		if err := remove(target.Path, kind); err != nil {
			failure := models.FailedDeletion{
				Path:  target.Path,
				Error: err.Error(),
				Kind:  failureKind(err),
			}
			result.Outcomes[i] = models.OutcomeFailed
			result.Failures = append(result.Failures, failure)
			e.reporter.Failed(failure)
			continue
		}

		if kind == models.RemoveTreeRecursive {
			e.removed[target.Path] = struct{}{}
		}
		result.Outcomes[i] = models.OutcomeRemoved
		result.Removed++
		e.reporter.Removed(target, false)
	}

	return result
}

// coveredByRemoved reports whether a strict ancestor of path below the
// root was removed. The root itself is never a target.
func (e *Executor) coveredByRemoved(path string) bool {
	if len(e.removed) == 0 {
		return false
	}
	for dir := filepath.Dir(path); dir != e.root; dir = filepath.Dir(dir) {
		if _, ok := e.removed[dir]; ok {
			return true
		}
		if parent := filepath.Dir(dir); parent == dir {
			return false
		}
	}
	return false
}

// remove performs the removal selected for a target. os.RemoveAll succeeds
// on a missing path, so a vanished directory is detected first.
func remove(path string, kind models.RemovalKind) error {
	if kind == models.RemoveTreeRecursive {
		if _, err := os.Lstat(path); err != nil {
			return err
		}
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return models.FailurePermission
	case errors.Is(err, fs.ErrNotExist):
		return models.FailureNotFound
	default:
		return models.FailureIO
	}
}
