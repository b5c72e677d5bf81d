package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/config"
	"github.com/harrison/rclean/internal/display"
	"github.com/harrison/rclean/internal/fileutil"
	"github.com/harrison/rclean/internal/history"
)

// errNoHistory is returned by openHistory when nothing was recorded yet
var errNoHistory = errors.New("no history database")

// NewHistoryCommand creates the 'rclean history' command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded cleaning runs",
		Long: `List past runs, most recent first. Every run is recorded unless
--no-history was given or history is disabled in the config.

Examples:
  rclean history --limit 5
  rclean history show 3f2a
  rclean history failures --root ~/src/project
  rclean history clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")
	cmd.PersistentFlags().String("db-path", "", "Path to history database (for testing)")
	_ = cmd.PersistentFlags().MarkHidden("db-path")

	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryFailuresCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

// openHistory opens the history store named by --db-path or the default
// location. errNoHistory is returned when the database does not exist.
func openHistory(cmd *cobra.Command) (*history.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db-path")
	if dbPath == "" {
		p, err := config.GetHistoryDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get history database path: %w", err)
		}
		dbPath = p
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, errNoHistory
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, limit int) error {
	out := cmd.OutOrStdout()

	store, err := openHistory(cmd)
	if errors.Is(err, errNoHistory) {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	printRuns(out, runs)
	return nil
}

func printRuns(w io.Writer, runs []history.RunRecord) {
	cyan := color.New(color.FgCyan, color.Bold)
	red := color.New(color.FgRed)

	cyan.Fprintf(w, "%-8s  %-19s  %-8s  %7s  %10s  %6s  %s\n", "RUN", "STARTED", "MODE", "MATCHED", "SIZE", "FAILED", "ROOT")
	for _, r := range runs {
		fmt.Fprintf(w, "%-8s  %-19s  %-8s  %7d  %10s  ", shortID(r.ID), formatTimestamp(r.StartedAt), runMode(r), r.TotalCount, fileutil.FormatSize(r.TotalSize))
		if r.Failed > 0 {
			red.Fprintf(w, "%6d", r.Failed)
		} else {
			fmt.Fprintf(w, "%6d", r.Failed)
		}
		fmt.Fprintf(w, "  %s\n", r.Root)
	}
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the stats and failures of one run",
		Long:  `Show one recorded run. The run ID may be abbreviated to any unique prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd)
			if errors.Is(err, errNoHistory) {
				return fmt.Errorf("%w: %s", history.ErrRunNotFound, args[0])
			}
			if err != nil {
				return err
			}
			defer store.Close()

			detail, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printRunDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func printRunDetail(w io.Writer, d *history.RunDetail) {
	cyan := color.New(color.FgCyan, color.Bold)

	cyan.Fprintf(w, "\n=== Run %s ===\n\n", d.ID)
	fmt.Fprintf(w, "  Root:     %s\n", d.Root)
	fmt.Fprintf(w, "  Started:  %s (%s ago)\n", formatTimestamp(d.StartedAt), formatAge(time.Since(d.StartedAt)))
	fmt.Fprintf(w, "  Duration: %s\n", d.Duration)
	fmt.Fprintf(w, "  Mode:     %s\n", runMode(d.RunRecord))
	fmt.Fprintf(w, "  Matched:  %d item(s), %s\n", d.TotalCount, fileutil.FormatSize(d.TotalSize))
	if d.DryRun {
		fmt.Fprintf(w, "  Would:    remove %d item(s)\n", d.WouldRemove)
	} else {
		fmt.Fprintf(w, "  Removed:  %d\n", d.Removed)
	}
	if d.SkippedOverlap > 0 {
		fmt.Fprintf(w, "  Covered:  %d\n", d.SkippedOverlap)
	}
	fmt.Fprintf(w, "  Failed:   %d\n", d.Failed)

	if len(d.Stats) > 0 {
		fmt.Fprintln(w)
		display.RenderStats(w, d.Stats, !color.NoColor)
	}

	if len(d.Failures) > 0 {
		fmt.Fprintln(w)
		display.FailureWarning(d.Failures).Display(w, !color.NoColor)
	}
	fmt.Fprintln(w)
}

func newHistoryFailuresCommand() *cobra.Command {
	var root string
	var limit int

	cmd := &cobra.Command{
		Use:   "failures",
		Short: "List failed deletions across recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			store, err := openHistory(cmd)
			if errors.Is(err, errNoHistory) {
				fmt.Fprintln(out, "No failures recorded.")
				return nil
			}
			if err != nil {
				return err
			}
			defer store.Close()

			// Recorded roots are canonical, so the filter must be too
			if root != "" {
				v, err := cleaner.NewPathValidator(root)
				if err != nil {
					return err
				}
				root = v.Root()
			}

			records, err := store.QueryFailures(cmd.Context(), root, limit)
			if err != nil {
				return fmt.Errorf("query failures: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No failures recorded.")
				return nil
			}

			red := color.New(color.FgRed)
			for _, rec := range records {
				fmt.Fprintf(out, "%s  %s  %-10s  %s\n", shortID(rec.RunID), formatTimestamp(rec.StartedAt), rec.Kind, rec.Path)
				red.Fprintf(out, "    %s\n", rec.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Only failures of runs on this root")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of failures to list (0 = all)")

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			store, err := openHistory(cmd)
			if errors.Is(err, errNoHistory) {
				fmt.Fprintln(out, "No history database found.")
				return nil
			}
			if err != nil {
				return err
			}
			defer store.Close()

			if !yes {
				fmt.Fprintf(out, "WARNING: This will delete ALL recorded runs from %s.\n", store.Path())
				if !confirmAction(cmd.InOrStdin(), out) {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
			}

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear history: %w", err)
			}

			recordText := "run"
			if n != 1 {
				recordText = "runs"
			}
			fmt.Fprintf(out, "Deleted %d %s.\n", n, recordText)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runMode(r history.RunRecord) string {
	switch {
	case r.DryRun:
		return "dry-run"
	case r.Cancelled:
		return "declined"
	default:
		return "clean"
	}
}

// formatTimestamp formats a timestamp in local time
func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// formatAge renders an elapsed duration in its largest whole unit
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
