package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/models"
)

// ProgressReporter renders a spinner with scan and match counters while the
// traverser runs. Deletion events are ignored.
type ProgressReporter struct {
	bar     *progressbar.ProgressBar
	mu      sync.Mutex
	scanned int
	matched int
}

// NewProgressReporter creates a spinner on w, usually os.Stderr
func NewProgressReporter(w io.Writer) *ProgressReporter {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressReporter{bar: bar}
}

// Counts returns the entries scanned and matched so far
func (p *ProgressReporter) Counts() (scanned, matched int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scanned, p.matched
}

func (p *ProgressReporter) describe() {
	p.bar.Describe(fmt.Sprintf("Scanned %d items, found %d matches", p.scanned, p.matched))
}

func (p *ProgressReporter) Visited(string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scanned++
	p.describe()
	p.bar.Add(1)
}

func (p *ProgressReporter) Matched(models.Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matched++
	p.describe()
}

func (p *ProgressReporter) Skipped(string, cleaner.SkipReason, error) {}
func (p *ProgressReporter) Excluded(string, string)                  {}
func (p *ProgressReporter) Removed(models.Target, bool)              {}
func (p *ProgressReporter) Failed(models.FailedDeletion)             {}

// Finish clears the spinner so later output starts on a clean line
func (p *ProgressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Finish()
}
