package cleaner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/rclean/internal/config"
	"github.com/harrison/rclean/internal/models"
)

// writeTree creates files (and their parent directories) under root.
// A key ending in "/" creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// snapshot lists every path below root, relative and slash separated
func snapshot(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(paths)
	return paths
}

// relTargets returns the target paths relative to root
func relTargets(t *testing.T, root string, targets []models.Target) []string {
	t.Helper()
	out := make([]string, 0, len(targets))
	for _, target := range targets {
		rel, err := filepath.Rel(root, target.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

// runJob builds and runs a job with confirmation skipped
func runJob(t *testing.T, b *config.Builder, reporter Reporter) (*Job, *models.Report) {
	t.Helper()
	job, err := NewJob(b.SkipConfirmation(true).Build(), reporter)
	require.NoError(t, err)
	report, err := job.Run(nil)
	require.NoError(t, err)
	return job, report
}

type skipEvent struct {
	path   string
	reason SkipReason
}

// recorder is a Reporter that keeps every event
type recorder struct {
	visited  []string
	matched  []models.Target
	skipped  []skipEvent
	excluded []string
	removed  []string
	failed   []models.FailedDeletion
}

func (r *recorder) Visited(path string)            { r.visited = append(r.visited, path) }
func (r *recorder) Matched(target models.Target)   { r.matched = append(r.matched, target) }
func (r *recorder) Excluded(path, pattern string)  { r.excluded = append(r.excluded, path) }
func (r *recorder) Failed(f models.FailedDeletion) { r.failed = append(r.failed, f) }

func (r *recorder) Skipped(path string, reason SkipReason, err error) {
	r.skipped = append(r.skipped, skipEvent{path: path, reason: reason})
}

func (r *recorder) Removed(target models.Target, dryRun bool) {
	r.removed = append(r.removed, target.Path)
}

func (r *recorder) skippedFor(reason SkipReason) []string {
	var out []string
	for _, e := range r.skipped {
		if e.reason == reason {
			out = append(out, e.path)
		}
	}
	return out
}
