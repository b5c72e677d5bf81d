package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/models"
)

func TestProgressReporterCounts(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgressReporter(buf)

	p.Visited("/a")
	p.Visited("/b")
	p.Visited("/c")
	p.Matched(models.Target{Path: "/b"})
	p.Skipped("/c", cleaner.SkipSymlink, nil)
	p.Removed(models.Target{Path: "/b"}, false)
	p.Finish()

	scanned, matched := p.Counts()
	assert.Equal(t, 3, scanned)
	assert.Equal(t, 1, matched)
}
