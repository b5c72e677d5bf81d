package cleaner

import "github.com/harrison/rclean/internal/models"

// SkipReason explains why a visited entry did not become a target
type SkipReason string

const (
	SkipOutsideRoot   SkipReason = "outside working root"
	SkipUnreadable    SkipReason = "unreadable"
	SkipSymlink       SkipReason = "symlink (include-symlinks not set)"
	SkipBrokenSymlink SkipReason = "broken symlink (remove-broken-symlinks not set)"
	SkipTooRecent     SkipReason = "newer than age threshold"
)

// Reporter receives progress events from traversal and deletion.
// A Job accepts a nil Reporter and then reports nothing.
type Reporter interface {
	// Visited is called once for every entry the traverser looks at
	Visited(path string)
	// Matched is called when an entry becomes a target
	Matched(target models.Target)
	// Skipped is called when an entry is passed over; err may be nil
	Skipped(path string, reason SkipReason, err error)
	// Excluded is called when an exclude pattern suppresses a match
	Excluded(path, pattern string)
	// Removed is called after a target is deleted, or would be in a dry-run
	Removed(target models.Target, dryRun bool)
	// Failed is called when the filesystem rejects a deletion
	Failed(failure models.FailedDeletion)
}

type nopReporter struct{}

func (nopReporter) Visited(string)                    {}
func (nopReporter) Matched(models.Target)             {}
func (nopReporter) Skipped(string, SkipReason, error) {}
func (nopReporter) Excluded(string, string)           {}
func (nopReporter) Removed(models.Target, bool)       {}
func (nopReporter) Failed(models.FailedDeletion)      {}

func orNop(r Reporter) Reporter {
	if r == nil {
		return nopReporter{}
	}
	return r
}
