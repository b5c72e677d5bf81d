// Package display renders cleaning reports for people and for machines.
//
// Every renderer writes to an io.Writer and takes the finished
// models.Report, so the same run can be shown as text, JSON, YAML, Markdown
// or HTML without re-reading the filesystem:
//
//	if err := display.Render(os.Stdout, report, cfg.Format, useColor); err != nil {
//	    return err
//	}
//
// Text output uses github.com/fatih/color. Callers decide whether color is
// wanted (usually a TTY check on the destination); the renderers never look
// at the terminal themselves.
//
// Warnings about failed deletions or skipped entries go through Warning:
//
//	display.FailureWarning(report.Failures).Display(os.Stderr, useColor)
package display
