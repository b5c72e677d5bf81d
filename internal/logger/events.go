package logger

import (
	"fmt"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/fileutil"
	"github.com/harrison/rclean/internal/models"
)

// event is one formatted log line and the level it belongs to
type event struct {
	level   string
	message string
}

// skipLevel decides how loud a skipped entry is. Entries rejected for
// safety or read errors are warnings; policy skips are debug noise.
func skipLevel(reason cleaner.SkipReason) string {
	switch reason {
	case cleaner.SkipOutsideRoot, cleaner.SkipUnreadable:
		return "warn"
	default:
		return "debug"
	}
}

func visitedEvent(path string) event {
	return event{level: "trace", message: "Visit " + path}
}

func matchedEvent(t models.Target) event {
	kind := "file"
	switch {
	case t.Metadata.IsBroken:
		kind = "broken symlink"
	case t.Metadata.IsSymlink:
		kind = "symlink"
	case t.Metadata.IsDir:
		kind = "dir"
	}
	return event{
		level:   "info",
		message: fmt.Sprintf("Matched %s %s (%s) [%s]", kind, t.Path, fileutil.FormatSize(t.Metadata.Size), t.Pattern),
	}
}

func skippedEvent(path string, reason cleaner.SkipReason, err error) event {
	msg := fmt.Sprintf("Skipped %s: %s", path, reason)
	if err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, err)
	}
	return event{level: skipLevel(reason), message: msg}
}

func excludedEvent(path, pattern string) event {
	return event{level: "debug", message: fmt.Sprintf("Excluded %s [%s]", path, pattern)}
}

func removedEvent(t models.Target, dryRun bool) event {
	if dryRun {
		return event{level: "debug", message: "Would remove " + t.Path}
	}
	return event{level: "debug", message: "Removed " + t.Path}
}

func failedEvent(f models.FailedDeletion) event {
	return event{level: "error", message: fmt.Sprintf("Failed to remove %s: %s", f.Path, f.Error)}
}

// summaryLine is the one-line outcome of a run
func summaryLine(r *models.Report) string {
	size := fileutil.FormatSize(r.TotalSize)
	switch {
	case r.TotalCount == 0:
		return "No matching items found"
	case r.Cancelled:
		return "Cleaning operation cancelled"
	case r.DryRun:
		return fmt.Sprintf("Dry run: would delete %d item(s) totalling %s", r.TotalCount, size)
	case r.HasFailures():
		return fmt.Sprintf("Deleted %d of %d item(s) totalling %s, %d failed", r.Removed+r.SkippedOverlap, r.TotalCount, size, len(r.Failures))
	default:
		return fmt.Sprintf("Deleted %d item(s) totalling %s", r.TotalCount, size)
	}
}
