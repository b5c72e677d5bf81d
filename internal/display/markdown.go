package display

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/rclean/internal/fileutil"
	"github.com/harrison/rclean/internal/models"
)

// RenderMarkdown renders the report as a Markdown document
func RenderMarkdown(r *models.Report) string {
	var b strings.Builder

	mode := "delete"
	if r.DryRun {
		mode = "dry run"
	}

	b.WriteString("# rclean report\n\n")
	fmt.Fprintf(&b, "- **Root:** `%s`\n", r.Root)
	if r.RunID != "" {
		fmt.Fprintf(&b, "- **Run ID:** `%s`\n", r.RunID)
	}
	fmt.Fprintf(&b, "- **Mode:** %s\n", mode)
	if !r.StartedAt.IsZero() {
		fmt.Fprintf(&b, "- **Started:** %s\n", r.StartedAt.Format(time.RFC3339))
	}
	if r.Cancelled {
		b.WriteString("- **Status:** cancelled, nothing was deleted\n")
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Matched | %d |\n", r.TotalCount)
	fmt.Fprintf(&b, "| Total size | %s (%d bytes) |\n", fileutil.FormatSize(r.TotalSize), r.TotalSize)
	if r.DryRun {
		fmt.Fprintf(&b, "| Would remove | %d |\n", r.WouldRemove)
	} else {
		fmt.Fprintf(&b, "| Removed | %d |\n", r.Removed)
	}
	fmt.Fprintf(&b, "| Inside removed directories | %d |\n", r.SkippedOverlap)
	fmt.Fprintf(&b, "| Failed | %d |\n", len(r.Failures))

	if r.StatsMode && len(r.Stats) > 0 {
		b.WriteString("\n## Pattern statistics\n\n")
		b.WriteString("| Pattern | Count | Size |\n|---|---:|---:|\n")
		for _, s := range r.Stats {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", mdCode(s.Pattern), s.Count, fileutil.FormatSize(s.TotalSize))
		}
	}

	if r.HasFailures() {
		b.WriteString("\n## Failures\n\n")
		b.WriteString("| Path | Kind | Error |\n|---|---|---|\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", mdCode(f.Path), f.Kind, mdCell(f.Error))
		}
	}

	if len(r.Targets) > 0 {
		b.WriteString("\n## Matches\n\n")
		b.WriteString("| Path | Pattern | Size | Outcome |\n|---|---|---:|---|\n")
		for i, t := range r.Targets {
			outcome := "-"
			if i < len(r.Outcomes) {
				outcome = r.Outcomes[i]
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", mdCode(t.Path), mdCode(t.Pattern), fileutil.FormatSize(t.Metadata.Size), outcome)
		}
	}

	return b.String()
}

// RenderHTML converts the Markdown report to a standalone HTML page
func RenderHTML(r *models.Report) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(r)), &body); err != nil {
		return nil, fmt.Errorf("failed to render HTML report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>rclean report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// mdCell escapes table separators in a cell
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// mdCode wraps s in a code span long enough to hold its own backticks
func mdCode(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	s = mdCell(s)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}
