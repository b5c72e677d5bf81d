// Package logger provides logging implementations for rclean runs.
//
// ConsoleLogger and FileLogger write leveled "[HH:MM:SS] [LEVEL] message"
// lines and implement cleaner.Reporter, so traversal and deletion events flow
// straight into them. ProgressReporter renders a scanning spinner instead.
// Implementations are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/models"
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything
// else means "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is os.Stdout or os.Stderr and color is allowed.
// fatih/color turns NoColor on for non-TTYs and when NO_COLOR is set.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("trace", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("debug", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("info", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("warn", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("error", message)
}

// logWithLevel writes one line if the level passes the filter.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !enabled(cl.logLevel, level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := strings.ToUpper(level)
	if cl.colorOutput {
		label = levelColor(label).Sprint(label)
	}

	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

// levelColor picks the color of a level label
func levelColor(label string) *color.Color {
	switch label {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

func (cl *ConsoleLogger) log(e event) {
	cl.logWithLevel(e.level, e.message)
}

// LogRunStart announces the root being cleaned and the patterns in use
func (cl *ConsoleLogger) LogRunStart(root string, includes, excludes []string, dryRun bool) {
	mode := "Cleaning"
	if dryRun {
		mode = "Dry run of"
	}
	cl.LogInfo(fmt.Sprintf("%s %s", mode, root))
	cl.LogDebug(fmt.Sprintf("Include patterns: %s", strings.Join(includes, ", ")))
	if len(excludes) > 0 {
		cl.LogDebug(fmt.Sprintf("Exclude patterns: %s", strings.Join(excludes, ", ")))
	}
}

// LogSummary logs the outcome of a run at INFO level, or WARN when
// deletions failed.
func (cl *ConsoleLogger) LogSummary(r *models.Report) {
	line := summaryLine(r)
	if cl.colorOutput {
		switch {
		case r.HasFailures():
			line = color.New(color.FgRed).Sprint(line)
		case r.TotalCount > 0 && !r.Cancelled && !r.DryRun:
			line = color.New(color.FgGreen).Sprint(line)
		}
	}

	if r.HasFailures() {
		cl.LogWarn(line)
	} else {
		cl.LogInfo(line)
	}
	cl.LogDebug(fmt.Sprintf("Run %s took %s", r.RunID, formatDuration(r.Duration)))
}

// Visited logs every traversed entry at TRACE level
func (cl *ConsoleLogger) Visited(path string) {
	cl.log(visitedEvent(path))
}

// Matched logs a new target at INFO level
func (cl *ConsoleLogger) Matched(t models.Target) {
	cl.log(matchedEvent(t))
}

// Skipped logs an entry that was passed over
func (cl *ConsoleLogger) Skipped(path string, reason cleaner.SkipReason, err error) {
	cl.log(skippedEvent(path, reason, err))
}

// Excluded logs an entry suppressed by an exclude pattern
func (cl *ConsoleLogger) Excluded(path, pattern string) {
	cl.log(excludedEvent(path, pattern))
}

// Removed logs a deleted (or would-be deleted) target
func (cl *ConsoleLogger) Removed(t models.Target, dryRun bool) {
	cl.log(removedEvent(t, dryRun))
}

// Failed logs a rejected deletion at ERROR level
func (cl *ConsoleLogger) Failed(f models.FailedDeletion) {
	cl.log(failedEvent(f))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger discards everything. It satisfies cleaner.Reporter.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogInfo(string)                            {}
func (n *NoOpLogger) LogWarn(string)                            {}
func (n *NoOpLogger) LogError(string)                           {}
func (n *NoOpLogger) Visited(string)                            {}
func (n *NoOpLogger) Matched(models.Target)                     {}
func (n *NoOpLogger) Skipped(string, cleaner.SkipReason, error) {}
func (n *NoOpLogger) Excluded(string, string)                   {}
func (n *NoOpLogger) Removed(models.Target, bool)               {}
func (n *NoOpLogger) Failed(models.FailedDeletion)              {}
