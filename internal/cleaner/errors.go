package cleaner

import (
	"errors"
	"fmt"

	"github.com/harrison/rclean/internal/models"
	"github.com/harrison/rclean/internal/pattern"
)

// Error taxonomy. Setup errors abort a run before any filesystem mutation;
// traversal and deletion errors only affect the entry they occurred on.
var (
	// ErrPatternSyntax indicates a glob that cannot be compiled
	ErrPatternSyntax = pattern.ErrSyntax

	// ErrConfiguration indicates an unusable option such as a bad duration or
	// an unknown preset
	ErrConfiguration = errors.New("configuration error")

	// ErrPathTraversal indicates an entry that resolves outside the working root
	ErrPathTraversal = errors.New("path outside working root")

	// ErrPermission indicates a deletion rejected for lack of permission
	ErrPermission = errors.New("permission denied")

	// ErrIO indicates any other deletion failure
	ErrIO = errors.New("i/o error")

	// ErrFatalSetup indicates a working root that does not exist or cannot be canonicalized
	ErrFatalSetup = errors.New("fatal setup error")
)

// Setup phases reported in SetupError
const (
	PhasePatterns = "compile patterns"
	PhaseAge      = "parse age threshold"
	PhaseRoot     = "resolve working root"
	PhaseLock     = "lock working root"
)

// SetupError reports a failure that prevented a run from starting.
// Input names the value that was rejected.
type SetupError struct {
	Phase string
	Input string
	Err   error
}

func (e *SetupError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Phase, e.Input, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// FailuresError summarizes the failed deletions of a report as a single error.
// It returns nil when every deletion succeeded.
func FailuresError(r *models.Report) error {
	if !r.HasFailures() {
		return nil
	}

	var permission, other bool
	for _, f := range r.Failures {
		if f.Kind == models.FailurePermission {
			permission = true
		} else {
			other = true
		}
	}

	var causes []error
	if permission {
		causes = append(causes, ErrPermission)
	}
	if other {
		causes = append(causes, ErrIO)
	}

	return fmt.Errorf("%d deletion(s) failed: %w", len(r.Failures), errors.Join(causes...))
}
