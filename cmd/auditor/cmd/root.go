// Package cmd provides the CLI commands for the auditor.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightschool/auditor/internal/audit"
	"github.com/flightschool/auditor/internal/config"
	"github.com/flightschool/auditor/internal/dataset"
	"github.com/flightschool/auditor/internal/errors"
	"github.com/flightschool/auditor/internal/logging"
	"github.com/flightschool/auditor/internal/output"
	"github.com/flightschool/auditor/internal/profiling"
	"github.com/flightschool/auditor/internal/report"
	"github.com/flightschool/auditor/pkg/version"
)

// UsageLine is printed when the root command gets the wrong arguments.
const UsageLine = "Usage: auditor dataset [output.csv]"

// usageError marks argument mistakes so Execute prints the usage line
// instead of a formatted error.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	debug   bool
	profile profiling.Options
	session *profiling.Session
}

// auditOptions holds the root command's own flags.
type auditOptions struct {
	configPath string
	checks     []string
	missing    string
}

// NewRootCmd creates the root command for the auditor CLI.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	opts := &auditOptions{}

	cmd := &cobra.Command{
		Use:   "auditor dataset [output.csv]",
		Short: "Audit flight lessons against weather minimums",
		Long: `auditor reads a flight school's lesson log, weather observations,
sunrise/sunset table and weather minimums from a dataset directory, and
reports every lesson that took off in weather below the minimums for its
area, day or night period and filed flight rule.

The console shows a single count line. Pass an output path to also write
the violations as CSV.`,
		Example: `  # Count violations
  auditor ./data/2017-01

  # Write them to a CSV file
  auditor ./data/2017-01 violations.csv

  # Also check for lessons flown while the airplane was in the shop
  auditor ./data/2017-01 --check weather --check maintenance`,
		Version:       version.Version,
		Args:          rootArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return runAudit(cmd, g, opts, args[0], out)
		},
	}

	cmd.SetVersionTemplate("auditor version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if c.HasParent() {
			return err
		}
		return &usageError{msg: err.Error()}
	})

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default: <dataset>/.auditor.yaml)")
	cmd.Flags().StringSliceVar(&opts.checks, "check", nil, "Check to run: weather, maintenance (repeatable, overrides config)")
	cmd.Flags().StringVar(&opts.missing, "missing-data", "", "Lessons with missing weather data: skip or fatal")

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging to ~/.auditor/logs/")
	cmd.PersistentFlags().StringVar(&g.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&g.profile.Heap, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&g.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return g.startProfiling()
	}
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return g.stopProfiling()
	}

	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// rootArgs accepts a dataset directory and an optional output path.
func rootArgs(_ *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return &usageError{msg: fmt.Sprintf("expected 1 or 2 arguments, got %d", len(args))}
	}
	return nil
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	return execute(NewRootCmd(), os.Stderr)
}

func execute(cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	var ue *usageError
	if stderrors.As(err, &ue) {
		_, _ = fmt.Fprintln(stderr, UsageLine)
		return err
	}
	_, _ = fmt.Fprint(stderr, errors.FormatForCLI(err))
	return err
}

func (g *globalOptions) startProfiling() error {
	if !g.profile.Enabled() {
		return nil
	}
	session, err := profiling.Start(g.profile)
	if err != nil {
		return err
	}
	g.session = session
	return nil
}

func (g *globalOptions) stopProfiling() error {
	if g.session == nil {
		return nil
	}
	err := g.session.Stop()
	g.session = nil
	if err != nil {
		return fmt.Errorf("failed to stop profiling: %w", err)
	}
	return nil
}

// startLogging installs the slog default for one run. File logging is on
// with --debug or when the config names a log file; otherwise every record
// is dropped so the console carries only the command's own output.
func startLogging(cfg *config.Config, debug bool) (func(), error) {
	if !debug && cfg.Logging.File == "" {
		logging.Discard()
		return func() {}, nil
	}

	lc := logging.Config{
		Level:     cfg.Logging.Level,
		FilePath:  cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	}
	if debug {
		lc.Level = "debug"
	}

	cleanup, err := logging.SetupDefault(lc)
	if err != nil {
		return nil, errors.ConfigError("failed to open log file", err)
	}
	slog.Debug("logging enabled",
		slog.String("level", lc.Level),
		slog.String("version", version.Version))
	return cleanup, nil
}

// loadConfig loads layered config and applies the audit flags on top.
func loadConfig(cmd *cobra.Command, datasetDir string, opts *auditOptions) (*config.Config, error) {
	cfg, err := config.Load(datasetDir, opts.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("check") {
		var names []string
		for _, c := range opts.checks {
			names = append(names, config.SplitList(c)...)
		}
		cfg.Audit.Checks = names
	}
	if cmd.Flags().Changed("missing-data") {
		cfg.Audit.MissingData = opts.missing
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runAudit(cmd *cobra.Command, g *globalOptions, opts *auditOptions, datasetDir, outPath string) error {
	cfg, err := loadConfig(cmd, datasetDir, opts)
	if err != nil {
		return err
	}

	stopLogging, err := startLogging(cfg, g.debug)
	if err != nil {
		return err
	}
	defer stopLogging()

	slog.Info("audit started",
		slog.String("dataset", datasetDir),
		slog.String("output", outPath),
		slog.Any("checks", cfg.Audit.Checks),
		slog.String("missing_data", cfg.Audit.MissingData))

	set, err := dataset.Load(datasetDir)
	if err != nil {
		logFailure("dataset load failed", err)
		return suggestValidate(err, datasetDir)
	}

	checkers, err := audit.NewCheckers(cfg.CheckNames(), audit.Options{
		Missing: cfg.MissingPolicy(),
		Logger:  slog.Default(),
	})
	if err != nil {
		return err
	}

	violations, err := audit.Run(set, checkers...)
	if err != nil {
		logFailure("audit failed", err)
		return err
	}

	if outPath != "" {
		if err := report.WriteCSV(outPath, violations); err != nil {
			return err
		}
	}

	slog.Info("audit complete",
		slog.Int("lessons", len(set.Lessons)),
		slog.Int("violations", len(violations)))

	output.New(cmd.OutOrStdout()).Line(report.Summary(len(violations)))
	return nil
}

// logFailure logs a run-ending error at error level if it is fatal by
// severity, otherwise at warn (a lookup error under --missing-data fatal).
func logFailure(msg string, err error) {
	level := slog.LevelWarn
	if errors.IsFatal(err) {
		level = slog.LevelError
	}
	slog.Log(context.Background(), level, msg, slog.Any("error", errors.FormatForLog(err)))
}

// suggestValidate points dataset errors without a hint at the validate
// command, which lists every broken file instead of the first.
func suggestValidate(err error, dir string) error {
	var ae *errors.AuditError
	if errors.IsDataset(err) && stderrors.As(err, &ae) && ae.Suggestion == "" {
		ae.WithSuggestion(fmt.Sprintf("Run 'auditor validate %s' to list every problem", dir))
	}
	return err
}
