package logger

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/models"
)

var (
	_ cleaner.Reporter = (*ConsoleLogger)(nil)
	_ cleaner.Reporter = (*FileLogger)(nil)
	_ cleaner.Reporter = (*NoOpLogger)(nil)
	_ cleaner.Reporter = (*ProgressReporter)(nil)
)

// TestNewConsoleLogger verifies the constructor stores writer and level.
func TestNewConsoleLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "DEBUG")

	assert.Same(t, buf, logger.writer)
	assert.Equal(t, "debug", logger.logLevel)
	assert.False(t, logger.colorOutput, "buffers never get color")
}

// TestTimestampFormat verifies the [HH:MM:SS] [LEVEL] prefix.
func TestTimestampFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogInfo("hello")

	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[INFO\] hello\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Errorf("unexpected line format: %q", buf.String())
	}
}

// TestNilWriter verifies a nil writer discards everything.
func TestNilWriter(t *testing.T) {
	logger := NewConsoleLogger(nil, "trace")

	logger.LogInfo("ignored")
	logger.Matched(models.Target{Path: "/x"})
	logger.LogSummary(&models.Report{})
}

func TestReporterEvents(t *testing.T) {
	target := models.Target{
		Path:     "/root/a/__pycache__",
		Pattern:  "**/__pycache__",
		Metadata: models.Metadata{IsDir: true, Size: 2048},
	}

	tests := []struct {
		name     string
		level    string
		emit     func(l *ConsoleLogger)
		contains []string
		empty    bool
	}{
		{
			name:     "matched at info",
			level:    "info",
			emit:     func(l *ConsoleLogger) { l.Matched(target) },
			contains: []string{"[INFO]", "Matched dir /root/a/__pycache__", "2.00 KiB", "[**/__pycache__]"},
		},
		{
			name:  "visited hidden at info",
			level: "info",
			emit:  func(l *ConsoleLogger) { l.Visited("/root/a") },
			empty: true,
		},
		{
			name:     "visited at trace",
			level:    "trace",
			emit:     func(l *ConsoleLogger) { l.Visited("/root/a") },
			contains: []string{"[TRACE]", "Visit /root/a"},
		},
		{
			name:     "outside root is a warning",
			level:    "info",
			emit:     func(l *ConsoleLogger) { l.Skipped("/root/link", cleaner.SkipOutsideRoot, errors.New("escapes")) },
			contains: []string{"[WARN]", "Skipped /root/link", string(cleaner.SkipOutsideRoot), "escapes"},
		},
		{
			name:  "symlink policy is debug",
			level: "info",
			emit:  func(l *ConsoleLogger) { l.Skipped("/root/link", cleaner.SkipSymlink, nil) },
			empty: true,
		},
		{
			name:     "excluded at debug",
			level:    "debug",
			emit:     func(l *ConsoleLogger) { l.Excluded("/root/keep.log", "**/keep.log") },
			contains: []string{"[DEBUG]", "Excluded /root/keep.log [**/keep.log]"},
		},
		{
			name:     "dry-run removal",
			level:    "debug",
			emit:     func(l *ConsoleLogger) { l.Removed(target, true) },
			contains: []string{"Would remove /root/a/__pycache__"},
		},
		{
			name:     "real removal",
			level:    "debug",
			emit:     func(l *ConsoleLogger) { l.Removed(target, false) },
			contains: []string{"Removed /root/a/__pycache__"},
		},
		{
			name:  "failure at error",
			level: "error",
			emit: func(l *ConsoleLogger) {
				l.Failed(models.FailedDeletion{Path: "/root/x", Error: "permission denied", Kind: models.FailurePermission})
			},
			contains: []string{"[ERROR]", "Failed to remove /root/x: permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.emit(NewConsoleLogger(buf, tt.level))

			if tt.empty {
				assert.Empty(t, buf.String())
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestLogSummary(t *testing.T) {
	tests := []struct {
		name   string
		report models.Report
		want   string
		level  string
	}{
		{
			name:   "nothing matched",
			report: models.Report{},
			want:   "No matching items found",
			level:  "[INFO]",
		},
		{
			name:   "dry run",
			report: models.Report{DryRun: true, TotalCount: 3, TotalSize: 1536},
			want:   "Dry run: would delete 3 item(s) totalling 1.50 KiB",
			level:  "[INFO]",
		},
		{
			name:   "cancelled",
			report: models.Report{Cancelled: true, TotalCount: 2},
			want:   "Cleaning operation cancelled",
			level:  "[INFO]",
		},
		{
			name:   "deleted",
			report: models.Report{TotalCount: 2, TotalSize: 10, Removed: 2},
			want:   "Deleted 2 item(s) totalling 10 B",
			level:  "[INFO]",
		},
		{
			name: "with failures",
			report: models.Report{
				TotalCount: 3,
				TotalSize:  10,
				Removed:    2,
				Failures:   []models.FailedDeletion{{Path: "/x", Error: "gone"}},
			},
			want:  "Deleted 2 of 3 item(s) totalling 10 B, 1 failed",
			level: "[WARN]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewConsoleLogger(buf, "info").LogSummary(&tt.report)

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), tt.level)
		})
	}
}

func TestLogRunStart(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "debug").LogRunStart("/srv/app", []string{"*.pyc", "**/node_modules"}, []string{"**/.git"}, true)

	out := buf.String()
	assert.Contains(t, out, "Dry run of /srv/app")
	assert.Contains(t, out, "Include patterns: *.pyc, **/node_modules")
	assert.Contains(t, out, "Exclude patterns: **/.git")
}

// TestConcurrentLogging verifies lines are never interleaved.
func TestConcurrentLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.LogInfo("concurrent message")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 200)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, "[INFO] concurrent message"), "corrupted line %q", line)
	}
}

func TestDurationFormatting(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{250 * time.Millisecond, "250ms"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{3 * time.Hour, "3h"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.duration); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
		}
	}
}
