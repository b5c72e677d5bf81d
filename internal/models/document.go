package models

import "github.com/harrison/rclean/internal/fileutil"

// Document is the machine-readable form of a Report.
// It is a pure re-serialization: every field is derived from the Report.
type Document struct {
	Matches  []MatchEntry   `json:"matches" yaml:"matches"`
	Summary  SummaryEntry   `json:"summary" yaml:"summary"`
	Stats    *[]StatEntry   `json:"stats,omitempty" yaml:"stats,omitempty"`
	Failures []FailureEntry `json:"failures" yaml:"failures"`
}

// MatchEntry is one matched target
type MatchEntry struct {
	Path    string `json:"path" yaml:"path"`
	Size    int64  `json:"size" yaml:"size"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Outcome string `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// SummaryEntry carries the run totals
type SummaryEntry struct {
	TotalCount     int    `json:"total_count" yaml:"total_count"`
	TotalSize      int64  `json:"total_size" yaml:"total_size"`
	TotalSizeHuman string `json:"total_size_human" yaml:"total_size_human"`
	DryRun         bool   `json:"dry_run" yaml:"dry_run"`
	Removed        int    `json:"removed" yaml:"removed"`
	WouldRemove    int    `json:"would_remove" yaml:"would_remove"`
	SkippedOverlap int    `json:"skipped_overlap" yaml:"skipped_overlap"`
	Failed         int    `json:"failed" yaml:"failed"`
	Cancelled      bool   `json:"cancelled" yaml:"cancelled"`
}

// StatEntry is one per-pattern statistic
type StatEntry struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	Count     int    `json:"count" yaml:"count"`
	Size      int64  `json:"size" yaml:"size"`
	SizeHuman string `json:"size_human" yaml:"size_human"`
}

// FailureEntry is one failed deletion
type FailureEntry struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
	Kind  string `json:"kind" yaml:"kind"`
}

// Document builds the structured form of the report.
// Stats are present only when the run requested them.
func (r *Report) Document() Document {
	doc := Document{
		Matches:  make([]MatchEntry, 0, len(r.Targets)),
		Failures: make([]FailureEntry, 0, len(r.Failures)),
		Summary: SummaryEntry{
			TotalCount:     r.TotalCount,
			TotalSize:      r.TotalSize,
			TotalSizeHuman: fileutil.FormatSize(r.TotalSize),
			DryRun:         r.DryRun,
			Removed:        r.Removed,
			WouldRemove:    r.WouldRemove,
			SkippedOverlap: r.SkippedOverlap,
			Failed:         len(r.Failures),
			Cancelled:      r.Cancelled,
		},
	}

	for i, t := range r.Targets {
		entry := MatchEntry{
			Path:    t.Path,
			Size:    t.Metadata.Size,
			Pattern: t.Pattern,
		}
		if i < len(r.Outcomes) {
			entry.Outcome = r.Outcomes[i]
		}
		doc.Matches = append(doc.Matches, entry)
	}

	if r.StatsMode {
		stats := make([]StatEntry, 0, len(r.Stats))
		for _, s := range r.Stats {
			stats = append(stats, StatEntry{
				Pattern:   s.Pattern,
				Count:     s.Count,
				Size:      s.TotalSize,
				SizeHuman: fileutil.FormatSize(s.TotalSize),
			})
		}
		doc.Stats = &stats
	}

	for _, f := range r.Failures {
		doc.Failures = append(doc.Failures, FailureEntry{
			Path:  f.Path,
			Error: f.Error,
			Kind:  f.Kind,
		})
	}

	return doc
}
