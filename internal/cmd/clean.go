package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/config"
	"github.com/harrison/rclean/internal/display"
	"github.com/harrison/rclean/internal/filelock"
	"github.com/harrison/rclean/internal/history"
	"github.com/harrison/rclean/internal/logger"
	"github.com/harrison/rclean/internal/models"
)

// cleanOptions holds the flag values of the root command
type cleanOptions struct {
	path                 string
	globs                []string
	excludes             []string
	presets              []string
	dryRun               bool
	skipConfirmation     bool
	includeSymlinks      bool
	removeBrokenSymlinks bool
	stats                bool
	olderThan            string
	progress             bool
	format               string
	json                 bool
	noHistory            bool
	logLevel             string
	logDir               string
	historyDB            string
}

func (o *cleanOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.path, "path", "p", ".", "Directory to clean")
	f.StringArrayVarP(&o.globs, "glob", "g", nil, "Include glob pattern (repeatable)")
	f.StringArrayVarP(&o.excludes, "exclude", "e", nil, "Exclude glob pattern (repeatable)")
	f.StringArrayVar(&o.presets, "preset", nil, "Named pattern group to include (repeatable, see 'rclean presets')")
	f.BoolVarP(&o.dryRun, "dry-run", "d", false, "Report matches without deleting anything")
	f.BoolVarP(&o.skipConfirmation, "skip-confirmation", "y", false, "Delete without asking for confirmation")
	f.BoolVarP(&o.includeSymlinks, "include-symlinks", "l", false, "Allow matched symlinks to be removed")
	f.BoolVarP(&o.removeBrokenSymlinks, "remove-broken-symlinks", "b", false, "Remove dangling symlinks")
	f.BoolVarP(&o.stats, "stats", "s", false, "Show per-pattern statistics")
	f.StringVar(&o.olderThan, "older-than", "", "Only remove entries older than this (e.g. 30s, 15m, 12h, 30d, 2w)")
	f.BoolVar(&o.progress, "progress", false, "Show a scanning spinner on stderr")
	f.StringVarP(&o.format, "format", "f", config.FormatText, "Report format: text, json, yaml, markdown, html")
	f.BoolVar(&o.json, "json", false, "Shorthand for --format json")
	f.BoolVar(&o.noHistory, "no-history", false, "Do not record this run in the history database")
	f.StringVar(&o.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	f.StringVar(&o.logDir, "log-dir", "", "Write a run log file to this directory")
	f.StringVar(&o.historyDB, "history-db", "", "Path to history database (for testing)")
	_ = f.MarkHidden("history-db")

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: .rclean.yaml searched upward, then ~/.config/rclean/config.yaml)")
	pf.Bool("no-config", false, "Ignore configuration files")
}

// overrides converts explicitly set flags into config overrides
func (o *cleanOptions) overrides(f *pflag.FlagSet) (config.Overrides, error) {
	var ov config.Overrides

	setString := func(name string, v string) *string {
		if f.Changed(name) {
			return &v
		}
		return nil
	}
	setBool := func(name string, v bool) *bool {
		if f.Changed(name) {
			return &v
		}
		return nil
	}

	ov.Path = setString("path", o.path)
	if f.Changed("glob") {
		ov.Patterns = o.globs
	}
	if f.Changed("exclude") {
		ov.ExcludePatterns = o.excludes
	}
	if f.Changed("preset") {
		ov.Presets = o.presets
	}
	ov.DryRun = setBool("dry-run", o.dryRun)
	ov.SkipConfirmation = setBool("skip-confirmation", o.skipConfirmation)
	ov.IncludeSymlinks = setBool("include-symlinks", o.includeSymlinks)
	ov.RemoveBrokenSymlinks = setBool("remove-broken-symlinks", o.removeBrokenSymlinks)
	ov.StatsMode = setBool("stats", o.stats)
	ov.OlderThan = setString("older-than", o.olderThan)
	ov.ShowProgress = setBool("progress", o.progress)
	ov.LogLevel = setString("log-level", o.logLevel)
	ov.LogDir = setString("log-dir", o.logDir)

	ov.Format = setString("format", o.format)
	if f.Changed("json") && o.json {
		if ov.Format != nil && *ov.Format != config.FormatJSON {
			return ov, fmt.Errorf("cannot use --json together with --format %s", *ov.Format)
		}
		format := config.FormatJSON
		ov.Format = &format
	}

	if f.Changed("no-history") && o.noHistory {
		enabled := false
		ov.History = &enabled
	}

	return ov, nil
}

// loadConfig resolves the configuration file named by --config, discovered
// from the working directory, or none at all with --no-config. The returned
// source is empty when defaults were used.
func loadConfig(cmd *cobra.Command) (*config.CleanConfig, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	noConfig, _ := cmd.Flags().GetBool("no-config")

	if configPath != "" && noConfig {
		return nil, "", fmt.Errorf("%w: cannot use both --config and --no-config", cleaner.ErrConfiguration)
	}

	if noConfig {
		return config.DefaultConfig(), "", nil
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, "", fmt.Errorf("%w: config file %s: %w", cleaner.ErrConfiguration, configPath, err)
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", cleaner.ErrConfiguration, err)
		}
		return cfg, configPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}
	cfg, source, err := config.LoadDiscovered(cwd)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", cleaner.ErrConfiguration, err)
	}
	return cfg, source, nil
}

// effectiveConfig loads the config file and applies the command line on top
func effectiveConfig(cmd *cobra.Command, opts *cleanOptions) (*config.CleanConfig, string, error) {
	cfg, source, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	ov, err := opts.overrides(cmd.Flags())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", cleaner.ErrConfiguration, err)
	}
	cfg.MergeWithFlags(ov)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %w", cleaner.ErrConfiguration, err)
	}
	return cfg, source, nil
}

// runClean implements the root command
func runClean(cmd *cobra.Command, opts *cleanOptions) error {
	cfg, source, err := effectiveConfig(cmd, opts)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()

	// Structured documents own stdout, so logs move to stderr
	logOut := stdout
	if cfg.Structured() {
		logOut = cmd.ErrOrStderr()
	}
	console := logger.NewConsoleLogger(logOut, cfg.LogLevel)
	if source != "" {
		console.LogDebug(fmt.Sprintf("Using config %s", source))
	}

	reporters := multiReporter{console}

	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: %w", cleaner.ErrConfiguration, err)
		}
		defer fileLog.Close()
		reporters = append(reporters, fileLog)
	}

	var progress *logger.ProgressReporter
	if cfg.ShowProgress {
		progress = logger.NewProgressReporter(cmd.ErrOrStderr())
		reporters = append(reporters, progress)
	}

	job, err := cleaner.NewJob(*cfg, reporters)
	if err != nil {
		return err
	}

	if !cfg.DryRun {
		lock, err := acquireRootLock(job.Root())
		if err != nil {
			return err
		}
		defer lock.Unlock()
	}

	console.LogRunStart(job.Root(), job.Patterns().Include.Patterns(), job.Patterns().Exclude.Patterns(), cfg.DryRun)

	if _, err := job.Collect(); err != nil {
		finishProgress(progress)
		return err
	}
	finishProgress(progress)

	report, err := job.Run(newConfirmFunc(cmd.InOrStdin(), logOut, job.Root()))
	if err != nil {
		return err
	}

	console.LogSummary(report)
	if fileLog != nil {
		fileLog.LogSummary(report)
	}

	useColor := stdout == os.Stdout && !color.NoColor
	if err := display.Render(stdout, report, cfg.Format, useColor); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if cfg.History {
		if err := recordHistory(cmd.Context(), opts.historyDB, report); err != nil {
			console.LogWarn(fmt.Sprintf("Run not recorded in history: %v", err))
		}
	}

	return cleaner.FailuresError(report)
}

// acquireRootLock takes the per-root run lock so that two processes never
// clean the same root at once
func acquireRootLock(root string) (*filelock.FileLock, error) {
	lockPath, err := config.GetLockPath(root)
	if err != nil {
		return nil, &cleaner.SetupError{Phase: cleaner.PhaseLock, Input: root, Err: fmt.Errorf("%w: %w", cleaner.ErrFatalSetup, err)}
	}

	lock, err := filelock.AcquireRunLock(lockPath)
	if err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return nil, &cleaner.SetupError{Phase: cleaner.PhaseLock, Input: root, Err: err}
		}
		return nil, &cleaner.SetupError{Phase: cleaner.PhaseLock, Input: root, Err: fmt.Errorf("%w: %w", cleaner.ErrFatalSetup, err)}
	}
	return lock, nil
}

func finishProgress(p *logger.ProgressReporter) {
	if p != nil {
		p.Finish()
	}
}

// recordHistory stores the report in the history database. dbPath overrides
// the default location.
func recordHistory(ctx context.Context, dbPath string, report *models.Report) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if dbPath == "" {
		var err error
		dbPath, err = config.GetHistoryDBPath()
		if err != nil {
			return err
		}
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRun(ctx, report)
}

// multiReporter fans cleaner events out to several reporters
type multiReporter []cleaner.Reporter

func (m multiReporter) Visited(path string) {
	for _, r := range m {
		r.Visited(path)
	}
}

func (m multiReporter) Matched(t models.Target) {
	for _, r := range m {
		r.Matched(t)
	}
}

func (m multiReporter) Skipped(path string, reason cleaner.SkipReason, err error) {
	for _, r := range m {
		r.Skipped(path, reason, err)
	}
}

func (m multiReporter) Excluded(path, pattern string) {
	for _, r := range m {
		r.Excluded(path, pattern)
	}
}

func (m multiReporter) Removed(t models.Target, dryRun bool) {
	for _, r := range m {
		r.Removed(t, dryRun)
	}
}

func (m multiReporter) Failed(f models.FailedDeletion) {
	for _, r := range m {
		r.Failed(f)
	}
}

var _ cleaner.Reporter = multiReporter(nil)
