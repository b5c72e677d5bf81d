package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/rclean/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow when useColor is set
func (w Warning) Display(out io.Writer, useColor bool) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected path:\n")
		} else {
			b.WriteString("    Affected paths:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, paint(useColor, color.FgYellow).Sprint(b.String()))
}

// FailureWarning builds the warning listing failed deletions
func FailureWarning(failures []models.FailedDeletion) Warning {
	files := make([]string, len(failures))
	permission := false
	for i, f := range failures {
		files[i] = fmt.Sprintf("%s: %s", f.Path, f.Error)
		if f.Kind == models.FailurePermission {
			permission = true
		}
	}

	w := Warning{
		Title:   fmt.Sprintf("%d deletion(s) failed", len(failures)),
		Message: "The remaining targets were still processed.",
		Files:   files,
	}
	if permission {
		w.Suggestion = "Check ownership and permissions of the listed paths, then run rclean again"
	}
	return w
}

// paint returns a color that is on or off regardless of the global NoColor
func paint(useColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
