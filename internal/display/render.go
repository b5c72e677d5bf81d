package display

import (
	"fmt"
	"io"

	"github.com/harrison/rclean/internal/config"
	"github.com/harrison/rclean/internal/models"
)

// Render writes the report in the requested output format
func Render(w io.Writer, r *models.Report, format string, useColor bool) error {
	switch format {
	case config.FormatText, "":
		RenderText(w, r, useColor)
		return nil
	case config.FormatJSON:
		return RenderJSON(w, r)
	case config.FormatYAML:
		return RenderYAML(w, r)
	case config.FormatMarkdown:
		_, err := io.WriteString(w, RenderMarkdown(r))
		return err
	case config.FormatHTML:
		page, err := RenderHTML(r)
		if err != nil {
			return err
		}
		_, err = w.Write(page)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
