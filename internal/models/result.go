package models

import "time"

// Deletion outcome constants. Every target ends in exactly one of them.
const (
	OutcomeRemoved        = "removed"         // Entry was removed from disk
	OutcomeSkippedOverlap = "skipped_overlap" // An ancestor directory was already removed
	OutcomeDryRun         = "dry_run"         // Would be removed; filesystem untouched
	OutcomeFailed         = "failed"          // Removal attempted and rejected
	OutcomeNotAttempted   = "not_attempted"   // Run was cancelled before deletion
)

// Failure kind constants for FailedDeletion.Kind
const (
	FailurePermission = "permission" // Permission denied
	FailureNotFound   = "not_found"  // Entry vanished between collection and deletion
	FailureIO         = "io"         // Any other filesystem error
)

// FailedDeletion records a target the filesystem refused to remove
type FailedDeletion struct {
	Path  string // Absolute path of the target
	Error string // Error description
	Kind  string // One of the Failure* constants
}

// PatternStat aggregates matched targets per originating pattern
type PatternStat struct {
	Pattern   string // Pattern identity
	Count     int    // Number of targets attributed to the pattern
	TotalSize int64  // Sum of target sizes in bytes
}

// DeletionResult is what the executor reports after processing a target list
type DeletionResult struct {
	Outcomes       []string         // Outcome per target, parallel to the target list
	Removed        int              // Targets removed
	SkippedOverlap int              // Targets skipped because an ancestor was removed
	DryRun         int              // Targets that would have been removed
	Failures       []FailedDeletion // Attempted removals that failed
}

// Report is the in-memory result of one cleaning run
type Report struct {
	RunID          string           // Unique run identifier
	Root           string           // Canonical working root
	StartedAt      time.Time        // When the run started
	Duration       time.Duration    // Wall time of the run
	DryRun         bool             // Run was a dry-run
	Cancelled      bool             // Deletion was declined at confirmation
	StatsMode      bool             // Per-pattern stats were requested
	Targets        []Target         // Matched targets in collection order
	TotalCount     int              // Number of matched targets
	TotalSize      int64            // Sum of matched target sizes
	Removed        int              // Targets removed
	WouldRemove    int              // Targets a dry-run would have removed
	SkippedOverlap int              // Targets covered by an already removed directory
	Outcomes       []string         // Outcome per target, parallel to Targets; empty before deletion
	Stats          []PatternStat    // Per-pattern stats, sorted by count descending
	Failures       []FailedDeletion // Failed deletions
}

// HasFailures reports whether any deletion failed
func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}
