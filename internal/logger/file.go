package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/models"
)

// FileLogger writes run events to a timestamped log file and keeps a
// latest.log symlink pointing at the most recent run.
// It supports log level filtering to control message verbosity.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates logDir if needed, opens run-YYYYMMDD-HHMMSS.log in it
// and repoints latest.log.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== rclean Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the run log file of this logger
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("info", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("warn", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("error", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !enabled(fl.logLevel, level) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), strings.ToUpper(level), message))
}

func (fl *FileLogger) log(e event) {
	fl.logWithLevel(e.level, e.message)
}

func (fl *FileLogger) Visited(path string) {
	fl.log(visitedEvent(path))
}

func (fl *FileLogger) Matched(t models.Target) {
	fl.log(matchedEvent(t))
}

func (fl *FileLogger) Skipped(path string, reason cleaner.SkipReason, err error) {
	fl.log(skippedEvent(path, reason, err))
}

func (fl *FileLogger) Excluded(path, pattern string) {
	fl.log(excludedEvent(path, pattern))
}

func (fl *FileLogger) Removed(t models.Target, dryRun bool) {
	fl.log(removedEvent(t, dryRun))
}

func (fl *FileLogger) Failed(f models.FailedDeletion) {
	fl.log(failedEvent(f))
}

// LogSummary writes the run summary block, including every failure,
// regardless of the configured level.
func (fl *FileLogger) LogSummary(r *models.Report) {
	var b strings.Builder
	b.WriteString("\n=== Summary ===\n")
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	fmt.Fprintf(&b, "Root: %s\n", r.Root)
	fmt.Fprintf(&b, "Dry run: %t\n", r.DryRun)
	fmt.Fprintf(&b, "Result: %s\n", summaryLine(r))
	fmt.Fprintf(&b, "Duration: %s\n", formatDuration(r.Duration))

	if r.HasFailures() {
		fmt.Fprintf(&b, "Failures (%d):\n", len(r.Failures))
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  - %s [%s]: %s\n", f.Path, f.Kind, f.Error)
		}
	}

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
