// Package cleaner implements the matching, traversal and deletion pipeline.
//
// A Job is built from a finished config.CleanConfig. NewJob performs every
// setup step that can fail (pattern compilation, age parsing, root
// canonicalization) before the filesystem is read, so a bad input never
// leaves a run half done. Collect then walks the root, Delete removes the
// targets, and Report assembles the result for display and history.
package cleaner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/rclean/internal/config"
	"github.com/harrison/rclean/internal/models"
	"github.com/harrison/rclean/internal/pattern"
)

// ConfirmFunc is asked before a real deletion unless confirmation is skipped
type ConfirmFunc func(targets []models.Target) (bool, error)

// Job is the state of one cleaning run
type Job struct {
	cfg       config.CleanConfig
	runID     string
	startedAt time.Time
	validator *PathValidator
	patterns  *pattern.Compiled
	olderThan time.Duration
	reporter  Reporter

	targets   []models.Target
	collected bool
	result    *models.DeletionResult
	cancelled bool
	finished  time.Time
}

// NewJob validates cfg and prepares a run. reporter may be nil.
func NewJob(cfg config.CleanConfig, reporter Reporter) (*Job, error) {
	compiled, err := pattern.CompileAll(cfg.Patterns, cfg.Presets, cfg.ExcludePatterns)
	if err != nil {
		if errors.Is(err, pattern.ErrUnknownPreset) {
			err = fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return nil, &SetupError{Phase: PhasePatterns, Err: err}
	}

	var olderThan time.Duration
	if cfg.OlderThan != "" {
		olderThan, err = ParseAge(cfg.OlderThan)
		if err != nil {
			return nil, &SetupError{Phase: PhaseAge, Input: cfg.OlderThan, Err: err}
		}
	}

	validator, err := NewPathValidator(cfg.Path)
	if err != nil {
		return nil, err
	}

	return &Job{
		cfg:       cfg,
		runID:     uuid.NewString(),
		startedAt: time.Now(),
		validator: validator,
		patterns:  compiled,
		olderThan: olderThan,
		reporter:  orNop(reporter),
	}, nil
}

// RunID returns the unique identifier of the run
func (j *Job) RunID() string {
	return j.runID
}

// Root returns the canonical working root
func (j *Job) Root() string {
	return j.validator.Root()
}

// Patterns returns the compiled include and exclude matchers
func (j *Job) Patterns() *pattern.Compiled {
	return j.patterns
}

// Collect walks the working root once and caches the targets.
func (j *Job) Collect() ([]models.Target, error) {
	if j.collected {
		return j.targets, nil
	}

	traverser := NewTraverser(j.validator, j.patterns, TraverseOptions{
		IncludeSymlinks:      j.cfg.IncludeSymlinks,
		RemoveBrokenSymlinks: j.cfg.RemoveBrokenSymlinks,
		OlderThan:            j.olderThan,
	}, j.reporter)

	targets, err := traverser.Collect()
	if err != nil {
		return nil, err
	}

	j.targets = targets
	j.collected = true
	return targets, nil
}

// Delete processes the collected targets. When proceed is false nothing is
// touched and the run is marked cancelled.
func (j *Job) Delete(proceed bool) *models.DeletionResult {
	if !proceed {
		j.cancelled = true
		outcomes := make([]string, len(j.targets))
		for i := range outcomes {
			outcomes[i] = models.OutcomeNotAttempted
		}
		j.result = &models.DeletionResult{Outcomes: outcomes, Failures: []models.FailedDeletion{}}
	} else {
		j.result = NewExecutor(j.Root(), j.cfg.DryRun, j.reporter).Execute(j.targets)
	}

	j.finished = time.Now()
	return j.result
}

// Run collects targets and deletes them. Dry-runs and runs with confirmation
// skipped proceed without asking; otherwise confirm decides, and a nil
// confirm declines.
func (j *Job) Run(confirm ConfirmFunc) (*models.Report, error) {
	targets, err := j.Collect()
	if err != nil {
		return nil, err
	}

	proceed := j.cfg.DryRun || j.cfg.SkipConfirmation || len(targets) == 0
	if !proceed && confirm != nil {
		proceed, err = confirm(targets)
		if err != nil {
			return nil, err
		}
	}

	j.Delete(proceed)
	return j.Report(), nil
}

// Report assembles the result of the run. Totals and stats cover every
// matched target regardless of deletion outcome.
func (j *Job) Report() *models.Report {
	count, size := Totals(j.targets)

	end := j.finished
	if end.IsZero() {
		end = time.Now()
	}

	r := &models.Report{
		RunID:      j.runID,
		Root:       j.Root(),
		StartedAt:  j.startedAt,
		Duration:   end.Sub(j.startedAt),
		DryRun:     j.cfg.DryRun,
		Cancelled:  j.cancelled,
		StatsMode:  j.cfg.StatsMode,
		Targets:    j.targets,
		TotalCount: count,
		TotalSize:  size,
		Stats:      Aggregate(j.targets),
		Failures:   []models.FailedDeletion{},
	}

	if j.result != nil {
		r.Removed = j.result.Removed
		r.WouldRemove = j.result.DryRun
		r.SkippedOverlap = j.result.SkippedOverlap
		r.Outcomes = j.result.Outcomes
		r.Failures = j.result.Failures
	}

	return r
}
