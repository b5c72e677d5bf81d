package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/fileutil"
	"github.com/harrison/rclean/internal/models"
)

// isInteractive reports whether answers can be read from in. Readers other
// than files (tests, embedding callers) are trusted to answer.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newConfirmFunc asks on out before targets under root are deleted
func newConfirmFunc(in io.Reader, out io.Writer, root string) cleaner.ConfirmFunc {
	return func(targets []models.Target) (bool, error) {
		if !isInteractive(in) {
			return false, fmt.Errorf("%w: stdin is not a terminal, pass --skip-confirmation or --dry-run", cleaner.ErrConfiguration)
		}

		count, size := cleaner.Totals(targets)
		fmt.Fprintf(out, "\nAbout to delete %d item(s) totalling %s from %s\n", count, fileutil.FormatSize(size), root)
		return confirmAction(in, out), nil
	}
}

// confirmAction prompts the user for confirmation. Anything but y or yes,
// including end of input, declines.
func confirmAction(in io.Reader, out io.Writer) bool {
	fmt.Fprintf(out, "Continue? [y/N]: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		fmt.Fprintln(out)
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
