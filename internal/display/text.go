package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/harrison/rclean/internal/fileutil"
	"github.com/harrison/rclean/internal/models"
)

// RenderStats writes the per-pattern statistics table
func RenderStats(w io.Writer, stats []models.PatternStat, useColor bool) {
	if len(stats) == 0 {
		return
	}

	patternWidth, countWidth := len("Pattern"), len("Count")
	for _, s := range stats {
		patternWidth = max(patternWidth, len(s.Pattern))
		countWidth = max(countWidth, len(strconv.Itoa(s.Count)))
	}

	header := paint(useColor, color.Bold)
	label := paint(useColor, color.FgCyan)

	fmt.Fprintln(w, header.Sprint("Pattern statistics:"))
	fmt.Fprintf(w, "  %-*s  %*s  %s\n", patternWidth, "Pattern", countWidth, "Count", "Size")
	for _, s := range stats {
		fmt.Fprintf(w, "  %s  %*d  %s\n",
			label.Sprintf("%-*s", patternWidth, s.Pattern),
			countWidth, s.Count,
			fileutil.FormatSize(s.TotalSize))
	}
}

// RenderSummary writes the totals of a run
func RenderSummary(w io.Writer, r *models.Report, useColor bool) {
	header := paint(useColor, color.Bold)
	ok := paint(useColor, color.FgGreen)
	bad := paint(useColor, color.FgRed)

	mode := "delete"
	if r.DryRun {
		mode = "dry run"
	}

	fmt.Fprintln(w, header.Sprint("Summary:"))
	fmt.Fprintf(w, "  Root:     %s\n", r.Root)
	fmt.Fprintf(w, "  Mode:     %s\n", mode)
	fmt.Fprintf(w, "  Matched:  %d item(s), %s\n", r.TotalCount, fileutil.FormatSize(r.TotalSize))

	switch {
	case r.Cancelled:
		fmt.Fprintln(w, "  Status:   cancelled, nothing was deleted")
	case r.DryRun:
		fmt.Fprintln(w, "  Status:   nothing was deleted")
		fmt.Fprintf(w, "  Would:    remove %s item(s)\n", ok.Sprint(r.WouldRemove))
		if r.SkippedOverlap > 0 {
			fmt.Fprintf(w, "  Covered:  %d (inside a directory that would be removed)\n", r.SkippedOverlap)
		}
	default:
		fmt.Fprintf(w, "  Removed:  %s\n", ok.Sprint(r.Removed))
		if r.SkippedOverlap > 0 {
			fmt.Fprintf(w, "  Covered:  %d (inside a removed directory)\n", r.SkippedOverlap)
		}
		if r.HasFailures() {
			fmt.Fprintf(w, "  Failed:   %s\n", bad.Sprint(len(r.Failures)))
		} else {
			fmt.Fprintln(w, "  Failed:   0")
		}
	}
}

// RenderText writes stats (when requested), the summary and any failures
func RenderText(w io.Writer, r *models.Report, useColor bool) {
	if r.StatsMode {
		RenderStats(w, r.Stats, useColor)
		fmt.Fprintln(w)
	}
	RenderSummary(w, r, useColor)
	if r.HasFailures() {
		fmt.Fprintln(w)
		FailureWarning(r.Failures).Display(w, useColor)
	}
}
